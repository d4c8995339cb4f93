package database

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rpupo63/contractor-marketplace-backend/errs"
	"github.com/rpupo63/contractor-marketplace-backend/models"
	"gorm.io/gorm"
)

type UserRepo struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) *UserRepo {
	return &UserRepo{db}
}

func (r *UserRepo) FindUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NewNotFound("User")
	}
	if err != nil {
		return nil, errs.NewDatabaseError("find", "user", err)
	}
	return &user, nil
}

// UpdateUser applies a sparse patch of name, email and phone.
func (r *UserRepo) UpdateUser(ctx context.Context, id uuid.UUID, patch models.UserPatch) (*models.User, error) {
	if columns := patch.Columns(); len(columns) > 0 {
		result := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Updates(columns)
		if errs.IsUniqueViolation(result.Error) {
			return nil, errs.NewUniqueConstraintViolationError("users", "email", result.Error)
		}
		if result.Error != nil {
			return nil, errs.NewDatabaseError("update", "user", result.Error)
		}
		if result.RowsAffected == 0 {
			return nil, errs.NewNotFound("User")
		}
	}
	return r.FindUser(ctx, id)
}

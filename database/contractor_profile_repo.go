package database

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rpupo63/contractor-marketplace-backend/errs"
	"github.com/rpupo63/contractor-marketplace-backend/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ContractorProfileRepo struct {
	db *gorm.DB
}

func NewContractorProfileRepo(db *gorm.DB) *ContractorProfileRepo {
	return &ContractorProfileRepo{db}
}

func (r *ContractorProfileRepo) FindProfileByUser(ctx context.Context, userID uuid.UUID) (*models.ContractorProfile, error) {
	var profile models.ContractorProfile
	err := r.db.WithContext(ctx).First(&profile, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NewNotFound("Contractor profile")
	}
	if err != nil {
		return nil, errs.NewDatabaseError("find", "contractor profile", err)
	}
	return &profile, nil
}

// SaveProfile upserts on user_id.
func (r *ContractorProfileRepo) SaveProfile(ctx context.Context, profile *models.ContractorProfile) error {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"skills", "experience", "certifications", "updated_at"}),
	}).Create(profile).Error
	if err != nil {
		return errs.NewDatabaseError("save", "contractor profile", err)
	}
	return nil
}

// identityRow is the users/contractor_profiles join.
type identityRow struct {
	ID             uuid.UUID
	Name           string
	Email          string
	Phone          *string
	Skills         datatypes.JSONSlice[string]
	Experience     int
	Certifications datatypes.JSONSlice[string]
}

func (row identityRow) identity() models.ContractorIdentity {
	skills := []string(row.Skills)
	if skills == nil {
		skills = []string{}
	}
	certifications := []string(row.Certifications)
	if certifications == nil {
		certifications = []string{}
	}
	return models.ContractorIdentity{
		ID:             row.ID,
		Name:           row.Name,
		Email:          row.Email,
		Phone:          row.Phone,
		Skills:         skills,
		Experience:     row.Experience,
		Certifications: certifications,
	}
}

const identitySelect = "users.id, users.name, users.email, users.phone, " +
	"COALESCE(contractor_profiles.skills, '[]'::jsonb) AS skills, " +
	"COALESCE(contractor_profiles.experience, 0) AS experience, " +
	"COALESCE(contractor_profiles.certifications, '[]'::jsonb) AS certifications"

// LookupIdentities batch-loads contractor identities for the bid listing.
// Users without a profile come back with empty skills.
func (r *ContractorProfileRepo) LookupIdentities(ctx context.Context, userIDs []uuid.UUID) (map[uuid.UUID]models.ContractorIdentity, error) {
	out := make(map[uuid.UUID]models.ContractorIdentity, len(userIDs))
	if len(userIDs) == 0 {
		return out, nil
	}

	var rows []identityRow
	err := r.db.WithContext(ctx).
		Table("users").
		Select(identitySelect).
		Joins("LEFT JOIN contractor_profiles ON contractor_profiles.user_id = users.id").
		Where("users.id IN ?", userIDs).
		Scan(&rows).Error
	if err != nil {
		return nil, errs.NewDatabaseError("find", "contractors", err)
	}
	for _, row := range rows {
		out[row.ID] = row.identity()
	}
	return out, nil
}

func (r *ContractorProfileRepo) ListContractors(ctx context.Context) ([]models.ContractorIdentity, error) {
	var rows []identityRow
	err := r.db.WithContext(ctx).
		Table("contractor_profiles").
		Select(identitySelect).
		Joins("JOIN users ON users.id = contractor_profiles.user_id").
		Order("users.name ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, errs.NewDatabaseError("list", "contractors", err)
	}
	out := make([]models.ContractorIdentity, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.identity())
	}
	return out, nil
}

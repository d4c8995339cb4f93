package database

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rpupo63/contractor-marketplace-backend/errs"
	"github.com/rpupo63/contractor-marketplace-backend/models"
	"gorm.io/gorm"
	"gorm.io/plugin/dbresolver"
)

type ProjectRepo struct {
	db *gorm.DB
}

func NewProjectRepo(db *gorm.DB) *ProjectRepo {
	return &ProjectRepo{db}
}

// GetDB returns the underlying database connection for debugging purposes
func (r *ProjectRepo) GetDB() *gorm.DB {
	return r.db
}

// CreateProject inserts a new project
func (r *ProjectRepo) CreateProject(ctx context.Context, project *models.Project) error {
	if err := r.db.WithContext(ctx).Create(project).Error; err != nil {
		return errs.NewDatabaseError("create", "project", err)
	}
	return nil
}

// FindProject reads from the primary so that the gates before a write see
// the latest state.
func (r *ProjectRepo) FindProject(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	var project models.Project
	err := r.db.WithContext(ctx).Clauses(dbresolver.Write).First(&project, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NewNotFound("Project")
	}
	if err != nil {
		return nil, errs.NewDatabaseError("find", "project", err)
	}
	return &project, nil
}

// ListProjects returns all projects, newest first
func (r *ProjectRepo) ListProjects(ctx context.Context) ([]models.Project, error) {
	var projects []models.Project
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&projects).Error; err != nil {
		return nil, errs.NewDatabaseError("list", "projects", err)
	}
	return projects, nil
}

func (r *ProjectRepo) ListProjectsByCustomer(ctx context.Context, customerID uuid.UUID) ([]models.Project, error) {
	var projects []models.Project
	err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("created_at DESC").
		Find(&projects).Error
	if err != nil {
		return nil, errs.NewDatabaseError("list", "projects", err)
	}
	return projects, nil
}

// ApplyProjectPatch updates only the columns present in patch.
func (r *ProjectRepo) ApplyProjectPatch(ctx context.Context, id uuid.UUID, patch models.ProjectPatch) error {
	columns := patch.Columns()
	if len(columns) == 0 {
		return nil
	}
	result := r.db.WithContext(ctx).Model(&models.Project{}).Where("id = ?", id).Updates(columns)
	if result.Error != nil {
		return errs.NewDatabaseError("update", "project", result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewNotFound("Project")
	}
	return nil
}

func (r *ProjectRepo) SetBiddingClosed(ctx context.Context, id uuid.UUID, closed bool) error {
	result := r.db.WithContext(ctx).Model(&models.Project{}).Where("id = ?", id).Update("bidding_closed", closed)
	if result.Error != nil {
		return errs.NewDatabaseError("update", "project", result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewNotFound("Project")
	}
	return nil
}

// AssignContractor is a single UPDATE guarded by status = 'open'. Zero
// affected rows means another assignment (or a status change) got there
// first.
func (r *ProjectRepo) AssignContractor(ctx context.Context, projectID, contractorID uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Project{}).
		Where("id = ? AND status = ?", projectID, models.ProjectStatusOpen).
		Updates(map[string]any{
			"status":                 models.ProjectStatusAssigned,
			"assigned_contractor_id": contractorID,
			"bidding_closed":         true,
		})
	if result.Error != nil {
		return false, errs.NewDatabaseError("assign", "project", result.Error)
	}
	return result.RowsAffected == 1, nil
}

// DeleteProjectCascade removes the project's bids, project-linked job
// requests and the project itself in one transaction.
func (r *ProjectRepo) DeleteProjectCascade(ctx context.Context, id uuid.UUID) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", id).Delete(&models.Bid{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", id).Delete(&models.JobRequest{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", id).Delete(&models.Project{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.NewNotFound("Project")
	}
	if err != nil {
		return errs.NewTransactionFailedError("delete project", err)
	}
	return nil
}

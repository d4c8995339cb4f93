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

type JobRequestRepo struct {
	db *gorm.DB
}

func NewJobRequestRepo(db *gorm.DB) *JobRequestRepo {
	return &JobRequestRepo{db}
}

// CreateJobRequest inserts a request. Duplicates fail on the partial unique
// indexes job_requests_project_key and job_requests_direct_key.
func (r *JobRequestRepo) CreateJobRequest(ctx context.Context, request *models.JobRequest) error {
	err := r.db.WithContext(ctx).Create(request).Error
	if errs.IsUniqueViolation(err) {
		return errs.NewUniqueConstraintViolationError("job_requests", "contractor_id", err)
	}
	if err != nil {
		return errs.NewDatabaseError("create", "job request", err)
	}
	return nil
}

func (r *JobRequestRepo) FindJobRequest(ctx context.Context, id uuid.UUID) (*models.JobRequest, error) {
	var request models.JobRequest
	err := r.db.WithContext(ctx).Clauses(dbresolver.Write).First(&request, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NewNotFound("Job request")
	}
	if err != nil {
		return nil, errs.NewDatabaseError("find", "job request", err)
	}
	return &request, nil
}

func (r *JobRequestRepo) ProjectJobRequestExists(ctx context.Context, contractorID, projectID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Clauses(dbresolver.Write).
		Model(&models.JobRequest{}).
		Where("contractor_id = ? AND project_id = ?", contractorID, projectID).
		Count(&count).Error
	if err != nil {
		return false, errs.NewDatabaseError("find", "job request", err)
	}
	return count > 0, nil
}

// DirectJobRequestExists matches the key of job_requests_direct_key.
func (r *JobRequestRepo) DirectJobRequestExists(ctx context.Context, key models.DirectJobRequestKey) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Clauses(dbresolver.Write).
		Model(&models.JobRequest{}).
		Where("project_id IS NULL").
		Where("contractor_id = ? AND customer_id = ?", key.ContractorID, key.CustomerID).
		Where("COALESCE(requirements, '') = ? AND COALESCE(budget, 0) = ?", key.Requirements, key.Budget).
		Count(&count).Error
	if err != nil {
		return false, errs.NewDatabaseError("find", "job request", err)
	}
	return count > 0, nil
}

func (r *JobRequestRepo) SetJobRequestStatus(ctx context.Context, id uuid.UUID, status models.JobRequestStatus) error {
	result := r.db.WithContext(ctx).Model(&models.JobRequest{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return errs.NewDatabaseError("update", "job request", result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewNotFound("Job request")
	}
	return nil
}

// ListJobRequestsByContractor returns requests newest first
func (r *JobRequestRepo) ListJobRequestsByContractor(ctx context.Context, contractorID uuid.UUID) ([]models.JobRequest, error) {
	var requests []models.JobRequest
	err := r.db.WithContext(ctx).
		Where("contractor_id = ?", contractorID).
		Order("created_at DESC").
		Find(&requests).Error
	if err != nil {
		return nil, errs.NewDatabaseError("list", "job requests", err)
	}
	return requests, nil
}

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

type BidRepo struct {
	db *gorm.DB
}

func NewBidRepo(db *gorm.DB) *BidRepo {
	return &BidRepo{db}
}

// CreateBid inserts a bid. A second bid for the same (project, contractor)
// pair fails on bids_project_contractor_key.
func (r *BidRepo) CreateBid(ctx context.Context, bid *models.Bid) error {
	err := r.db.WithContext(ctx).Create(bid).Error
	if errs.IsUniqueViolation(err) {
		return errs.NewUniqueConstraintViolationError("bids", "bids_project_contractor_key", err)
	}
	if err != nil {
		return errs.NewDatabaseError("create", "bid", err)
	}
	return nil
}

func (r *BidRepo) FindBid(ctx context.Context, id uuid.UUID) (*models.Bid, error) {
	var bid models.Bid
	err := r.db.WithContext(ctx).Clauses(dbresolver.Write).First(&bid, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NewNotFound("Bid")
	}
	if err != nil {
		return nil, errs.NewDatabaseError("find", "bid", err)
	}
	return &bid, nil
}

func (r *BidRepo) FindBidByProjectAndContractor(ctx context.Context, projectID, contractorID uuid.UUID) (*models.Bid, error) {
	var bid models.Bid
	err := r.db.WithContext(ctx).
		Clauses(dbresolver.Write).
		Where("project_id = ? AND contractor_id = ?", projectID, contractorID).
		First(&bid).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NewNotFound("Bid")
	}
	if err != nil {
		return nil, errs.NewDatabaseError("find", "bid", err)
	}
	return &bid, nil
}

// UpdateBidContent replaces budget and message; created_at is untouched.
func (r *BidRepo) UpdateBidContent(ctx context.Context, id uuid.UUID, budget float64, message string) (*models.Bid, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Bid{}).
		Where("id = ?", id).
		Updates(map[string]any{"budget": budget, "message": message})
	if result.Error != nil {
		return nil, errs.NewDatabaseError("update", "bid", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, errs.NewNotFound("Bid")
	}
	return r.FindBid(ctx, id)
}

func (r *BidRepo) DeleteBid(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Bid{})
	if result.Error != nil {
		return errs.NewDatabaseError("delete", "bid", result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewNotFound("Bid")
	}
	return nil
}

// ListBidsByProject returns bids in insertion order
func (r *BidRepo) ListBidsByProject(ctx context.Context, projectID uuid.UUID) ([]models.Bid, error) {
	var bids []models.Bid
	err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("created_at ASC").
		Find(&bids).Error
	if err != nil {
		return nil, errs.NewDatabaseError("list", "bids", err)
	}
	return bids, nil
}

func (r *BidRepo) ListBidsByContractor(ctx context.Context, contractorID uuid.UUID) ([]models.Bid, error) {
	var bids []models.Bid
	err := r.db.WithContext(ctx).
		Where("contractor_id = ?", contractorID).
		Order("created_at DESC").
		Find(&bids).Error
	if err != nil {
		return nil, errs.NewDatabaseError("list", "bids", err)
	}
	return bids, nil
}

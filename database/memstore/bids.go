package memstore

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rpupo63/contractor-marketplace-backend/errs"
	"github.com/rpupo63/contractor-marketplace-backend/models"
)

// CreateBid checks bids_project_contractor_key under the write lock, so of
// two concurrent inserts for the same pair exactly one succeeds.
func (s *Store) CreateBid(_ context.Context, bid *models.Bid) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.projects[bid.ProjectID]; !ok {
		return errs.NewDatabaseError("create", "bid", fmt.Errorf("violates foreign key constraint on project_id"))
	}
	for _, r := range s.bids {
		if r.value.ProjectID == bid.ProjectID && r.value.ContractorID == bid.ContractorID {
			return uniqueViolation("bids_project_contractor_key")
		}
	}
	if bid.ID == uuid.Nil {
		bid.ID = uuid.New()
	}
	now := time.Now()
	bid.CreatedAt, bid.UpdatedAt = now, now
	s.bids[bid.ID] = row[models.Bid]{seq: s.next(), value: *bid}
	return nil
}

func (s *Store) FindBid(_ context.Context, id uuid.UUID) (*models.Bid, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.bids[id]
	if !ok {
		return nil, errs.NewNotFound("Bid")
	}
	bid := r.value
	return &bid, nil
}

func (s *Store) FindBidByProjectAndContractor(_ context.Context, projectID, contractorID uuid.UUID) (*models.Bid, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.bids {
		if r.value.ProjectID == projectID && r.value.ContractorID == contractorID {
			bid := r.value
			return &bid, nil
		}
	}
	return nil, errs.NewNotFound("Bid")
}

func (s *Store) UpdateBidContent(_ context.Context, id uuid.UUID, budget float64, message string) (*models.Bid, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.bids[id]
	if !ok {
		return nil, errs.NewNotFound("Bid")
	}
	r.value.Budget = budget
	r.value.Message = message
	r.value.UpdatedAt = time.Now()
	s.bids[id] = r
	bid := r.value
	return &bid, nil
}

func (s *Store) DeleteBid(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.bids[id]; !ok {
		return errs.NewNotFound("Bid")
	}
	delete(s.bids, id)
	return nil
}

func (s *Store) ListBidsByProject(_ context.Context, projectID uuid.UUID) ([]models.Bid, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sortedValues(s.bids, func(b models.Bid) bool { return b.ProjectID == projectID }), nil
}

func (s *Store) ListBidsByContractor(_ context.Context, contractorID uuid.UUID) ([]models.Bid, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sortedValues(s.bids, func(b models.Bid) bool { return b.ContractorID == contractorID }), nil
}

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Bid is a contractor's offer on a project. At most one bid exists per
// (project, contractor) pair, enforced by the bids_project_contractor_key
// unique constraint.
type Bid struct {
	ID           uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey"`
	ProjectID    uuid.UUID `json:"projectId" db:"project_id" gorm:"type:uuid;not null;uniqueIndex:bids_project_contractor_key,priority:1"`
	ContractorID uuid.UUID `json:"contractorId" db:"contractor_id" gorm:"type:uuid;not null;uniqueIndex:bids_project_contractor_key,priority:2;index:idx_bids_contractor_id"`
	Budget       float64   `json:"budget" db:"budget" gorm:"type:numeric(14,2);not null"`
	Message      string    `json:"message" db:"message" gorm:"type:text;not null"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}

func (b *Bid) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// BidWithContractor is a bid joined with the bidder's public identity.
type BidWithContractor struct {
	Bid        Bid                `json:"bid"`
	Contractor ContractorIdentity `json:"contractor"`
}

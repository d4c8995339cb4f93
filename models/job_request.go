package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type JobRequestStatus string

const (
	JobRequestPending  JobRequestStatus = "pending"
	JobRequestAccepted JobRequestStatus = "accepted"
	JobRequestRejected JobRequestStatus = "rejected"
)

// JobRequest is a customer's out-of-band proposal to a contractor. Direct
// requests have no ProjectID and carry their own requirements and budget.
type JobRequest struct {
	ID           uuid.UUID        `json:"id" db:"id" gorm:"type:uuid;primaryKey"`
	ProjectID    *uuid.UUID       `json:"projectId" db:"project_id" gorm:"type:uuid"`
	ContractorID uuid.UUID        `json:"contractorId" db:"contractor_id" gorm:"type:uuid;not null;index:idx_job_requests_contractor_id"`
	CustomerID   uuid.UUID        `json:"customerId" db:"customer_id" gorm:"type:uuid;not null"`
	Requirements *string          `json:"requirements,omitempty" db:"requirements" gorm:"type:text"`
	Budget       *float64         `json:"budget,omitempty" db:"budget" gorm:"type:numeric(14,2)"`
	Status       JobRequestStatus `json:"status" db:"status" gorm:"type:text;not null"`
	CreatedAt    time.Time        `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time        `json:"updatedAt" db:"updated_at"`
}

func (j *JobRequest) BeforeCreate(tx *gorm.DB) error {
	if j.ID == uuid.Nil {
		j.ID = uuid.New()
	}
	return nil
}

func (j *JobRequest) IsDirect() bool {
	return j.ProjectID == nil
}

// DirectJobRequestKey is the duplicate key of a direct request.
type DirectJobRequestKey struct {
	ContractorID uuid.UUID
	CustomerID   uuid.UUID
	Requirements string
	Budget       float64
}

package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ProjectStatus string

const (
	ProjectStatusOpen       ProjectStatus = "open"
	ProjectStatusAssigned   ProjectStatus = "assigned"
	ProjectStatusInProgress ProjectStatus = "in_progress"
	ProjectStatusCompleted  ProjectStatus = "completed"
	ProjectStatusCancelled  ProjectStatus = "cancelled"
)

// projectTransitions lists the allowed next states for each status.
// Only open -> assigned is driven by this service; the rest belong to the
// external project lifecycle.
var projectTransitions = map[ProjectStatus][]ProjectStatus{
	ProjectStatusOpen:       {ProjectStatusAssigned, ProjectStatusCancelled},
	ProjectStatusAssigned:   {ProjectStatusInProgress},
	ProjectStatusInProgress: {ProjectStatusCompleted},
}

func (s ProjectStatus) Valid() bool {
	switch s {
	case ProjectStatusOpen, ProjectStatusAssigned, ProjectStatusInProgress,
		ProjectStatusCompleted, ProjectStatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo reports whether next is a legal successor of s.
func (s ProjectStatus) CanTransitionTo(next ProjectStatus) bool {
	for _, allowed := range projectTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Project is a construction project posted by a customer
type Project struct {
	ID                   uuid.UUID                   `json:"id" db:"id" gorm:"type:uuid;primaryKey"`
	Title                string                      `json:"title" db:"title" gorm:"type:text;not null"`
	Description          string                      `json:"description" db:"description" gorm:"type:text;not null"`
	Location             string                      `json:"location" db:"location" gorm:"type:text;not null"`
	Budget               float64                     `json:"budget" db:"budget" gorm:"type:numeric(14,2);not null"`
	BiddingDeadline      time.Time                   `json:"biddingDeadline" db:"bidding_deadline" gorm:"type:timestamptz;not null"`
	ProjectDeadline      time.Time                   `json:"projectDeadline" db:"project_deadline" gorm:"type:timestamptz;not null"`
	Files                datatypes.JSONSlice[string] `json:"files" db:"files" gorm:"type:jsonb;not null"`
	CustomerID           uuid.UUID                   `json:"customerId" db:"customer_id" gorm:"type:uuid;not null;index:idx_projects_customer_id"`
	Status               ProjectStatus               `json:"status" db:"status" gorm:"type:text;not null;index:idx_projects_status"`
	BiddingClosed        bool                        `json:"biddingClosed" db:"bidding_closed" gorm:"not null"`
	AssignedContractorID *uuid.UUID                  `json:"assignedContractor" db:"assigned_contractor_id" gorm:"type:uuid"`
	CreatedAt            time.Time                   `json:"createdAt" db:"created_at"`
	UpdatedAt            time.Time                   `json:"updatedAt" db:"updated_at"`
}

func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.Files == nil {
		p.Files = datatypes.JSONSlice[string]{}
	}
	return nil
}

// BiddingOpenAt is the bidding window predicate: the project must be open,
// not manually closed, and now must not be past the bidding deadline.
func (p *Project) BiddingOpenAt(now time.Time) bool {
	return p.Status == ProjectStatusOpen &&
		!p.BiddingClosed &&
		!now.After(p.BiddingDeadline)
}

func (p *Project) OwnedBy(userID uuid.UUID) bool {
	return p.CustomerID == userID
}

// ProjectPatch is a sparse project update: nil fields are left untouched.
// Status, ownership and assignment are not patchable.
type ProjectPatch struct {
	Title           *string    `json:"title"`
	Description     *string    `json:"description"`
	Location        *string    `json:"location"`
	Budget          *float64   `json:"budget"`
	BiddingDeadline *time.Time `json:"biddingDeadline"`
	ProjectDeadline *time.Time `json:"projectDeadline"`
	Files           *[]string  `json:"files"`
}

func (p ProjectPatch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.Location == nil &&
		p.Budget == nil && p.BiddingDeadline == nil && p.ProjectDeadline == nil &&
		p.Files == nil
}

// Apply copies the present fields onto project.
func (p ProjectPatch) Apply(project *Project) {
	if p.Title != nil {
		project.Title = strings.TrimSpace(*p.Title)
	}
	if p.Description != nil {
		project.Description = strings.TrimSpace(*p.Description)
	}
	if p.Location != nil {
		project.Location = strings.TrimSpace(*p.Location)
	}
	if p.Budget != nil {
		project.Budget = *p.Budget
	}
	if p.BiddingDeadline != nil {
		project.BiddingDeadline = *p.BiddingDeadline
	}
	if p.ProjectDeadline != nil {
		project.ProjectDeadline = *p.ProjectDeadline
	}
	if p.Files != nil {
		project.Files = append(datatypes.JSONSlice[string]{}, *p.Files...)
	}
}

// Columns maps the present fields to their column names for a targeted
// UPDATE that leaves other columns alone.
func (p ProjectPatch) Columns() map[string]any {
	columns := make(map[string]any)
	if p.Title != nil {
		columns["title"] = strings.TrimSpace(*p.Title)
	}
	if p.Description != nil {
		columns["description"] = strings.TrimSpace(*p.Description)
	}
	if p.Location != nil {
		columns["location"] = strings.TrimSpace(*p.Location)
	}
	if p.Budget != nil {
		columns["budget"] = *p.Budget
	}
	if p.BiddingDeadline != nil {
		columns["bidding_deadline"] = *p.BiddingDeadline
	}
	if p.ProjectDeadline != nil {
		columns["project_deadline"] = *p.ProjectDeadline
	}
	if p.Files != nil {
		columns["files"] = datatypes.JSONSlice[string](*p.Files)
	}
	return columns
}

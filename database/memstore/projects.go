package memstore

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rpupo63/contractor-marketplace-backend/errs"
	"github.com/rpupo63/contractor-marketplace-backend/models"
)

func copyProject(p models.Project) *models.Project {
	p.Files = append([]string{}, p.Files...)
	if p.AssignedContractorID != nil {
		id := *p.AssignedContractorID
		p.AssignedContractorID = &id
	}
	return &p
}

func (s *Store) CreateProject(_ context.Context, project *models.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[project.CustomerID]; !ok {
		return errs.NewDatabaseError("create", "project", fmt.Errorf("violates foreign key constraint on customer_id"))
	}
	if project.ID == uuid.Nil {
		project.ID = uuid.New()
	}
	if _, ok := s.projects[project.ID]; ok {
		return uniqueViolation("projects_pkey")
	}
	now := time.Now()
	project.CreatedAt, project.UpdatedAt = now, now
	if project.Files == nil {
		project.Files = []string{}
	}
	s.projects[project.ID] = row[models.Project]{seq: s.next(), value: *copyProject(*project)}
	return nil
}

func (s *Store) FindProject(_ context.Context, id uuid.UUID) (*models.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.projects[id]
	if !ok {
		return nil, errs.NewNotFound("Project")
	}
	return copyProject(r.value), nil
}

func (s *Store) ListProjects(_ context.Context) ([]models.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.listProjects(func(models.Project) bool { return true }), nil
}

func (s *Store) ListProjectsByCustomer(_ context.Context, customerID uuid.UUID) ([]models.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.listProjects(func(p models.Project) bool { return p.CustomerID == customerID }), nil
}

// listProjects returns matches newest first.
func (s *Store) listProjects(keep func(models.Project) bool) []models.Project {
	projects := sortedValues(s.projects, keep)
	out := make([]models.Project, 0, len(projects))
	for i := len(projects) - 1; i >= 0; i-- {
		out = append(out, *copyProject(projects[i]))
	}
	return out
}

func (s *Store) ApplyProjectPatch(_ context.Context, id uuid.UUID, patch models.ProjectPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.projects[id]
	if !ok {
		return errs.NewNotFound("Project")
	}
	patch.Apply(&r.value)
	r.value.UpdatedAt = time.Now()
	s.projects[id] = r
	return nil
}

func (s *Store) SetBiddingClosed(_ context.Context, id uuid.UUID, closed bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.projects[id]
	if !ok {
		return errs.NewNotFound("Project")
	}
	r.value.BiddingClosed = closed
	r.value.UpdatedAt = time.Now()
	s.projects[id] = r
	return nil
}

func (s *Store) AssignContractor(_ context.Context, projectID, contractorID uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.projects[projectID]
	if !ok || r.value.Status != models.ProjectStatusOpen {
		return false, nil
	}
	r.value.Status = models.ProjectStatusAssigned
	r.value.AssignedContractorID = &contractorID
	r.value.BiddingClosed = true
	r.value.UpdatedAt = time.Now()
	s.projects[projectID] = r
	return true, nil
}

func (s *Store) DeleteProjectCascade(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.projects[id]; !ok {
		return errs.NewNotFound("Project")
	}
	for bidID, r := range s.bids {
		if r.value.ProjectID == id {
			delete(s.bids, bidID)
		}
	}
	for requestID, r := range s.jobRequests {
		if r.value.ProjectID != nil && *r.value.ProjectID == id {
			delete(s.jobRequests, requestID)
		}
	}
	delete(s.projects, id)
	return nil
}

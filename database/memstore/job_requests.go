package memstore

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rpupo63/contractor-marketplace-backend/errs"
	"github.com/rpupo63/contractor-marketplace-backend/models"
)

func copyJobRequest(j models.JobRequest) *models.JobRequest {
	if j.ProjectID != nil {
		id := *j.ProjectID
		j.ProjectID = &id
	}
	if j.Requirements != nil {
		requirements := *j.Requirements
		j.Requirements = &requirements
	}
	if j.Budget != nil {
		budget := *j.Budget
		j.Budget = &budget
	}
	return &j
}

func sameProjectRequest(j models.JobRequest, contractorID, projectID uuid.UUID) bool {
	return j.ProjectID != nil && *j.ProjectID == projectID && j.ContractorID == contractorID
}

func sameDirectRequest(j models.JobRequest, key models.DirectJobRequestKey) bool {
	if j.ProjectID != nil || j.ContractorID != key.ContractorID || j.CustomerID != key.CustomerID {
		return false
	}
	requirements := ""
	if j.Requirements != nil {
		requirements = *j.Requirements
	}
	var budget float64
	if j.Budget != nil {
		budget = *j.Budget
	}
	return requirements == key.Requirements && budget == key.Budget
}

func (s *Store) CreateJobRequest(_ context.Context, request *models.JobRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.jobRequests {
		if request.ProjectID != nil && sameProjectRequest(r.value, request.ContractorID, *request.ProjectID) {
			return uniqueViolation("job_requests_project_key")
		}
		if request.ProjectID == nil && sameDirectRequest(r.value, directKey(*request)) {
			return uniqueViolation("job_requests_direct_key")
		}
	}
	if request.ID == uuid.Nil {
		request.ID = uuid.New()
	}
	now := time.Now()
	request.CreatedAt, request.UpdatedAt = now, now
	s.jobRequests[request.ID] = row[models.JobRequest]{seq: s.next(), value: *copyJobRequest(*request)}
	return nil
}

func directKey(j models.JobRequest) models.DirectJobRequestKey {
	key := models.DirectJobRequestKey{ContractorID: j.ContractorID, CustomerID: j.CustomerID}
	if j.Requirements != nil {
		key.Requirements = *j.Requirements
	}
	if j.Budget != nil {
		key.Budget = *j.Budget
	}
	return key
}

func (s *Store) FindJobRequest(_ context.Context, id uuid.UUID) (*models.JobRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.jobRequests[id]
	if !ok {
		return nil, errs.NewNotFound("Job request")
	}
	return copyJobRequest(r.value), nil
}

func (s *Store) ProjectJobRequestExists(_ context.Context, contractorID, projectID uuid.UUID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.jobRequests {
		if sameProjectRequest(r.value, contractorID, projectID) {
			return true, nil
		}
	}
	return false, nil
}

func (s *Store) DirectJobRequestExists(_ context.Context, key models.DirectJobRequestKey) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.jobRequests {
		if sameDirectRequest(r.value, key) {
			return true, nil
		}
	}
	return false, nil
}

func (s *Store) SetJobRequestStatus(_ context.Context, id uuid.UUID, status models.JobRequestStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.jobRequests[id]
	if !ok {
		return errs.NewNotFound("Job request")
	}
	r.value.Status = status
	r.value.UpdatedAt = time.Now()
	s.jobRequests[id] = r
	return nil
}

func (s *Store) ListJobRequestsByContractor(_ context.Context, contractorID uuid.UUID) ([]models.JobRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	requests := sortedValues(s.jobRequests, func(j models.JobRequest) bool { return j.ContractorID == contractorID })
	out := make([]models.JobRequest, 0, len(requests))
	for i := len(requests) - 1; i >= 0; i-- {
		out = append(out, *copyJobRequest(requests[i]))
	}
	return out, nil
}

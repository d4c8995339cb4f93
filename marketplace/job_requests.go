package marketplace

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rpupo63/contractor-marketplace-backend/errs"
	"github.com/rpupo63/contractor-marketplace-backend/models"
)

type ProjectJobRequestInput struct {
	ContractorID uuid.UUID `json:"contractorId"`
	ProjectID    uuid.UUID `json:"projectId"`
}

type DirectJobRequestInput struct {
	ContractorID uuid.UUID `json:"contractorId"`
	Requirements string    `json:"requirements"`
	Budget       float64   `json:"budget"`
}

// JobRequestChannel is the proposal flow between a customer and a contractor.
// It never reads or writes bid state or project status.
type JobRequestChannel struct {
	*core
}

func (c *JobRequestChannel) SendProjectJobRequest(ctx context.Context, principal Principal, in ProjectJobRequestInput) (*models.JobRequest, error) {
	if err := principal.require(models.RoleCustomer, "Only customers can send job requests."); err != nil {
		return nil, err
	}
	if in.ContractorID == uuid.Nil {
		return nil, errs.NewMissingRequiredFieldError("contractorId")
	}
	if in.ProjectID == uuid.Nil {
		return nil, errs.NewMissingRequiredFieldError("projectId")
	}

	project, err := c.stores.Projects.FindProject(ctx, in.ProjectID)
	if err != nil {
		return nil, err
	}
	if !project.OwnedBy(principal.ID) {
		return nil, errs.NewForbiddenError("You can only send job requests for your own projects")
	}
	if err := c.requireContractor(ctx, in.ContractorID); err != nil {
		return nil, err
	}

	exists, err := c.stores.JobRequests.ProjectJobRequestExists(ctx, in.ContractorID, in.ProjectID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, errs.NewConflictError("Job request already sent to this contractor for this project.")
	}

	projectID := in.ProjectID
	request := &models.JobRequest{
		ID:           uuid.New(),
		ProjectID:    &projectID,
		ContractorID: in.ContractorID,
		CustomerID:   principal.ID,
		Status:       models.JobRequestPending,
	}
	if err := c.create(ctx, request, "Job request already sent to this contractor for this project."); err != nil {
		return nil, err
	}

	c.notify(ctx, Notification{
		UserID:  in.ContractorID,
		Subject: "New job request",
		Body:    fmt.Sprintf("You have been invited to work on %q.", project.Title),
	})
	return request, nil
}

func (c *JobRequestChannel) SendDirectJobRequest(ctx context.Context, principal Principal, in DirectJobRequestInput) (*models.JobRequest, error) {
	if err := principal.require(models.RoleCustomer, "Only customers can send job requests."); err != nil {
		return nil, err
	}
	if in.ContractorID == uuid.Nil {
		return nil, errs.NewMissingRequiredFieldError("contractorId")
	}
	requirements := strings.TrimSpace(in.Requirements)
	if requirements == "" {
		return nil, errs.NewMissingRequiredFieldError("requirements")
	}
	if in.Budget <= 0 {
		return nil, errs.NewInvalidFieldError("budget", "must be greater than zero")
	}
	if err := c.requireContractor(ctx, in.ContractorID); err != nil {
		return nil, err
	}

	exists, err := c.stores.JobRequests.DirectJobRequestExists(ctx, models.DirectJobRequestKey{
		ContractorID: in.ContractorID,
		CustomerID:   principal.ID,
		Requirements: requirements,
		Budget:       in.Budget,
	})
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, errs.NewConflictError("Direct job request already sent to this contractor.")
	}

	budget := in.Budget
	request := &models.JobRequest{
		ID:           uuid.New(),
		ContractorID: in.ContractorID,
		CustomerID:   principal.ID,
		Requirements: &requirements,
		Budget:       &budget,
		Status:       models.JobRequestPending,
	}
	if err := c.create(ctx, request, "Direct job request already sent to this contractor."); err != nil {
		return nil, err
	}

	c.notify(ctx, Notification{
		UserID:  in.ContractorID,
		Subject: "New direct job request",
		Body:    fmt.Sprintf("A customer sent you a job request: %s (budget %.2f)", requirements, budget),
	})
	return request, nil
}

func (c *JobRequestChannel) create(ctx context.Context, request *models.JobRequest, duplicate string) error {
	if err := c.stores.JobRequests.CreateJobRequest(ctx, request); err != nil {
		if errs.IsUniqueViolation(err) {
			return errs.NewConflictError(duplicate)
		}
		return err
	}
	c.log.Info().
		Str("jobRequestId", request.ID.String()).
		Str("contractorId", request.ContractorID.String()).
		Bool("direct", request.IsDirect()).
		Msg("job request sent")
	return nil
}

func (c *JobRequestChannel) requireContractor(ctx context.Context, userID uuid.UUID) error {
	user, err := c.stores.Users.FindUser(ctx, userID)
	if errs.IsNotFound(err) {
		return errs.NewNotFoundError("Contractor not found")
	}
	if err != nil {
		return err
	}
	if user.Role != models.RoleContractor {
		return errs.NewInvalidFieldError("contractorId", "user is not a contractor")
	}
	return nil
}

// RespondToJobRequest accepts or rejects a request addressed to the caller.
func (c *JobRequestChannel) RespondToJobRequest(ctx context.Context, requestID uuid.UUID, principal Principal, action string) (*models.JobRequest, error) {
	var status models.JobRequestStatus
	switch action {
	case "accept":
		status = models.JobRequestAccepted
	case "reject":
		status = models.JobRequestRejected
	default:
		return nil, errs.NewValidationErrorWithField("Invalid action", "action")
	}

	request, err := c.stores.JobRequests.FindJobRequest(ctx, requestID)
	if err != nil && !errs.IsNotFound(err) {
		return nil, err
	}
	if request == nil || request.ContractorID != principal.ID {
		return nil, errs.NewNotFoundError("Job request not found")
	}

	if err := c.stores.JobRequests.SetJobRequestStatus(ctx, requestID, status); err != nil {
		return nil, err
	}
	request.Status = status

	c.log.Info().Str("jobRequestId", requestID.String()).Str("status", string(status)).Msg("job request answered")
	c.notify(ctx, Notification{
		UserID:  request.CustomerID,
		Subject: "Job request " + string(status),
		Body:    fmt.Sprintf("Your job request was %s by the contractor.", status),
	})
	return request, nil
}

// ListForContractor returns the requests addressed to the caller.
func (c *JobRequestChannel) ListForContractor(ctx context.Context, principal Principal) ([]models.JobRequest, error) {
	if err := principal.require(models.RoleContractor, "Only contractors receive job requests"); err != nil {
		return nil, err
	}
	return c.stores.JobRequests.ListJobRequestsByContractor(ctx, principal.ID)
}

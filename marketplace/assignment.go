package marketplace

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rpupo63/contractor-marketplace-backend/errs"
	"github.com/rpupo63/contractor-marketplace-backend/models"
)

// AssignmentEngine performs the open -> assigned transition.
type AssignmentEngine struct {
	*core
}

// AssignContractor binds the bid's contractor to the project, sets the
// status to assigned and closes bidding in a single conditional write. Of two
// concurrent calls at most one succeeds; the other gets a conflict.
func (e *AssignmentEngine) AssignContractor(ctx context.Context, projectID, bidID uuid.UUID, principal Principal) (*models.Project, error) {
	project, err := e.stores.Projects.FindProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if !project.OwnedBy(principal.ID) {
		return nil, errs.NewForbiddenError("Only the project owner can assign a contractor")
	}

	bid, err := e.stores.Bids.FindBid(ctx, bidID)
	if errs.IsNotFound(err) {
		return nil, errs.NewNotFoundError("Bid not found")
	}
	if err != nil {
		return nil, err
	}
	if bid.ProjectID != projectID {
		return nil, errs.NewNotFoundError("Bid not found for this project")
	}

	if project.Status == models.ProjectStatusAssigned {
		return nil, errs.NewConflictError("Project is already assigned")
	}
	if !project.Status.CanTransitionTo(models.ProjectStatusAssigned) {
		return nil, errs.NewConflictError(fmt.Sprintf("Project is %s and cannot be assigned", project.Status))
	}

	assigned, err := e.stores.Projects.AssignContractor(ctx, projectID, bid.ContractorID)
	if err != nil {
		return nil, err
	}
	if !assigned {
		return nil, errs.NewConflictError("Project is already assigned")
	}

	e.log.Info().
		Str("projectId", projectID.String()).
		Str("bidId", bidID.String()).
		Str("contractorId", bid.ContractorID.String()).
		Msg("contractor assigned")

	e.notify(ctx, Notification{
		UserID:  bid.ContractorID,
		Subject: "You won a project",
		Body:    fmt.Sprintf("Your bid on %q was accepted. The project is now assigned to you.", project.Title),
	})

	return e.stores.Projects.FindProject(ctx, projectID)
}

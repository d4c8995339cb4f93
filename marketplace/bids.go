package marketplace

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/rpupo63/contractor-marketplace-backend/errs"
	"github.com/rpupo63/contractor-marketplace-backend/models"
)

const (
	msgBiddingClosed = "Bidding is closed for this project"
	msgDuplicateBid  = "You have already placed a bid on this project"
)

type BidInput struct {
	Budget  float64 `json:"budget"`
	Message string  `json:"message"`
}

func (in BidInput) validate() error {
	if in.Budget <= 0 {
		return errs.NewValidationErrorWithField("Invalid budget amount", "budget")
	}
	if strings.TrimSpace(in.Message) == "" {
		return errs.NewValidationErrorWithField("Message is required", "message")
	}
	return nil
}

// BidLedger keeps at most one bid per contractor per project and only lets
// bids change while the project's bidding window is open.
type BidLedger struct {
	*core
	lifecycle *LifecycleManager
}

// biddableProject loads the project and applies the gates shared by every
// bid mutation: contractor role and an open bidding window.
func (l *BidLedger) biddableProject(ctx context.Context, projectID uuid.UUID, principal Principal, roleDenied string) (*models.Project, error) {
	if err := principal.require(models.RoleContractor, roleDenied); err != nil {
		return nil, err
	}
	project, err := l.stores.Projects.FindProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if project.OwnedBy(principal.ID) {
		return nil, errs.NewForbiddenError("Project owners cannot bid on their own projects")
	}
	if !l.lifecycle.IsBiddingOpen(project) {
		return nil, errs.NewConflictError(msgBiddingClosed)
	}
	return project, nil
}

func (l *BidLedger) SubmitBid(ctx context.Context, projectID uuid.UUID, principal Principal, in BidInput) (*models.Bid, error) {
	if _, err := l.biddableProject(ctx, projectID, principal, "Only contractors can place bids"); err != nil {
		return nil, err
	}
	if err := in.validate(); err != nil {
		return nil, err
	}

	_, err := l.stores.Bids.FindBidByProjectAndContractor(ctx, projectID, principal.ID)
	switch {
	case err == nil:
		return nil, errs.NewConflictError(msgDuplicateBid)
	case !errs.IsNotFound(err):
		return nil, err
	}

	bid := &models.Bid{
		ID:           uuid.New(),
		ProjectID:    projectID,
		ContractorID: principal.ID,
		Budget:       in.Budget,
		Message:      strings.TrimSpace(in.Message),
	}
	if err := l.stores.Bids.CreateBid(ctx, bid); err != nil {
		// a concurrent submit won the race on the unique key
		if errs.IsUniqueViolation(err) {
			return nil, errs.NewConflictError(msgDuplicateBid)
		}
		return nil, err
	}

	l.log.Info().Str("projectId", projectID.String()).Str("bidId", bid.ID.String()).Str("contractorId", principal.ID.String()).Msg("bid submitted")
	return bid, nil
}

// UpdateBid replaces the budget and message of the caller's bid in place.
func (l *BidLedger) UpdateBid(ctx context.Context, projectID uuid.UUID, principal Principal, in BidInput) (*models.Bid, error) {
	if _, err := l.biddableProject(ctx, projectID, principal, "Only contractors can update bids"); err != nil {
		return nil, err
	}
	if err := in.validate(); err != nil {
		return nil, err
	}

	existing, err := l.ownBid(ctx, projectID, principal, "No existing bid to update")
	if err != nil {
		return nil, err
	}
	return l.stores.Bids.UpdateBidContent(ctx, existing.ID, in.Budget, strings.TrimSpace(in.Message))
}

func (l *BidLedger) DeleteBid(ctx context.Context, projectID uuid.UUID, principal Principal) error {
	if _, err := l.biddableProject(ctx, projectID, principal, "Only contractors can delete bids"); err != nil {
		return err
	}
	existing, err := l.ownBid(ctx, projectID, principal, "No bid found to delete")
	if err != nil {
		return err
	}
	if err := l.stores.Bids.DeleteBid(ctx, existing.ID); err != nil {
		return err
	}
	l.log.Info().Str("projectId", projectID.String()).Str("bidId", existing.ID.String()).Msg("bid withdrawn")
	return nil
}

func (l *BidLedger) ownBid(ctx context.Context, projectID uuid.UUID, principal Principal, missing string) (*models.Bid, error) {
	bid, err := l.stores.Bids.FindBidByProjectAndContractor(ctx, projectID, principal.ID)
	if errs.IsNotFound(err) {
		return nil, errs.NewNotFoundError(missing)
	}
	return bid, err
}

// ListBidsForProject returns the project's bids in insertion order, each
// joined with the bidder's identity. Only the owner may read them.
func (l *BidLedger) ListBidsForProject(ctx context.Context, projectID uuid.UUID, principal Principal) ([]models.BidWithContractor, error) {
	project, err := l.stores.Projects.FindProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if !project.OwnedBy(principal.ID) {
		return nil, errs.NewForbiddenError("Access denied. You do not own this project.")
	}

	bids, err := l.stores.Bids.ListBidsByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(bids))
	for _, b := range bids {
		ids = append(ids, b.ContractorID)
	}
	identities, err := l.stores.Profiles.LookupIdentities(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]models.BidWithContractor, 0, len(bids))
	for _, b := range bids {
		identity, ok := identities[b.ContractorID]
		if !ok {
			identity = models.ContractorIdentity{ID: b.ContractorID}
		}
		out = append(out, models.BidWithContractor{Bid: b, Contractor: identity})
	}
	return out, nil
}

// ListMyBids returns the caller's own bids across all projects.
func (l *BidLedger) ListMyBids(ctx context.Context, principal Principal) ([]models.Bid, error) {
	if err := principal.require(models.RoleContractor, "Only contractors have bids"); err != nil {
		return nil, err
	}
	return l.stores.Bids.ListBidsByContractor(ctx, principal.ID)
}

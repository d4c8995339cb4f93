package marketplace

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rpupo63/contractor-marketplace-backend/errs"
	"github.com/rpupo63/contractor-marketplace-backend/models"
)

// ProjectInput carries the fields of a new project. Pointer fields are
// required and distinguish "absent" from a zero value.
type ProjectInput struct {
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	Location        string     `json:"location"`
	Budget          *float64   `json:"budget"`
	BiddingDeadline *time.Time `json:"biddingDeadline"`
	ProjectDeadline *time.Time `json:"projectDeadline"`
	Files           []string   `json:"files"`
}

func (in ProjectInput) validate() error {
	required := []struct{ field, value string }{
		{"title", in.Title},
		{"description", in.Description},
		{"location", in.Location},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return errs.NewMissingRequiredFieldError(r.field)
		}
	}
	if in.Budget == nil {
		return errs.NewMissingRequiredFieldError("budget")
	}
	if in.BiddingDeadline == nil {
		return errs.NewMissingRequiredFieldError("biddingDeadline")
	}
	if in.ProjectDeadline == nil {
		return errs.NewMissingRequiredFieldError("projectDeadline")
	}
	if *in.Budget <= 0 {
		return errs.NewInvalidFieldError("budget", "must be greater than zero")
	}
	if in.BiddingDeadline.After(*in.ProjectDeadline) {
		return errs.NewInvalidFieldError("biddingDeadline", "must not be after projectDeadline")
	}
	return nil
}

// LifecycleManager owns project creation, edits, deletion and the bidding
// window.
type LifecycleManager struct {
	*core
}

func (m *LifecycleManager) CreateProject(ctx context.Context, principal Principal, in ProjectInput) (*models.Project, error) {
	if err := principal.require(models.RoleCustomer, "Only customers can post projects"); err != nil {
		return nil, err
	}
	if err := in.validate(); err != nil {
		return nil, err
	}

	project := &models.Project{
		ID:              uuid.New(),
		Title:           strings.TrimSpace(in.Title),
		Description:     strings.TrimSpace(in.Description),
		Location:        strings.TrimSpace(in.Location),
		Budget:          *in.Budget,
		BiddingDeadline: *in.BiddingDeadline,
		ProjectDeadline: *in.ProjectDeadline,
		Files:           append([]string{}, in.Files...),
		CustomerID:      principal.ID,
		Status:          models.ProjectStatusOpen,
	}
	if err := m.stores.Projects.CreateProject(ctx, project); err != nil {
		return nil, err
	}

	m.log.Info().Str("projectId", project.ID.String()).Str("customerId", principal.ID.String()).Msg("project created")
	return project, nil
}

func (m *LifecycleManager) GetProject(ctx context.Context, projectID uuid.UUID) (*models.Project, error) {
	return m.stores.Projects.FindProject(ctx, projectID)
}

func (m *LifecycleManager) ListProjects(ctx context.Context) ([]models.Project, error) {
	return m.stores.Projects.ListProjects(ctx)
}

// ListCustomerProjects returns a customer's projects, newest first.
func (m *LifecycleManager) ListCustomerProjects(ctx context.Context, customerID uuid.UUID) ([]models.Project, error) {
	return m.stores.Projects.ListProjectsByCustomer(ctx, customerID)
}

// UpdateProject applies a sparse patch. Fields absent from the patch keep
// their stored values.
func (m *LifecycleManager) UpdateProject(ctx context.Context, projectID uuid.UUID, principal Principal, patch models.ProjectPatch) (*models.Project, error) {
	project, err := m.ownedProject(ctx, projectID, principal, "You are not allowed to update this project")
	if err != nil {
		return nil, err
	}
	if patch.Empty() {
		return nil, errs.NewValidationError("No fields to update")
	}
	if err := validatePatch(patch); err != nil {
		return nil, err
	}

	merged := *project
	patch.Apply(&merged)
	if merged.BiddingDeadline.After(merged.ProjectDeadline) {
		return nil, errs.NewInvalidFieldError("biddingDeadline", "must not be after projectDeadline")
	}

	if err := m.stores.Projects.ApplyProjectPatch(ctx, projectID, patch); err != nil {
		return nil, err
	}
	return m.stores.Projects.FindProject(ctx, projectID)
}

func validatePatch(patch models.ProjectPatch) error {
	present := []struct {
		field string
		value *string
	}{
		{"title", patch.Title},
		{"description", patch.Description},
		{"location", patch.Location},
	}
	for _, p := range present {
		if p.value != nil && strings.TrimSpace(*p.value) == "" {
			return errs.NewInvalidFieldError(p.field, "must not be blank")
		}
	}
	if patch.Budget != nil && *patch.Budget <= 0 {
		return errs.NewInvalidFieldError("budget", "must be greater than zero")
	}
	return nil
}

// DeleteProject removes the project together with its bids and
// project-linked job requests.
func (m *LifecycleManager) DeleteProject(ctx context.Context, projectID uuid.UUID, principal Principal) error {
	if _, err := m.ownedProject(ctx, projectID, principal, "Unauthorized to delete this project"); err != nil {
		return err
	}
	if err := m.stores.Projects.DeleteProjectCascade(ctx, projectID); err != nil {
		return err
	}
	m.log.Info().Str("projectId", projectID.String()).Msg("project deleted")
	return nil
}

// ToggleBidding flips the manual biddingClosed override and returns its new
// value. The bidding deadline is not consulted, so an owner may reopen past
// the deadline; the status gate in IsBiddingOpen still applies.
func (m *LifecycleManager) ToggleBidding(ctx context.Context, projectID uuid.UUID, principal Principal) (bool, error) {
	project, err := m.ownedProject(ctx, projectID, principal, "You are not the owner of this project")
	if err != nil {
		return false, err
	}
	closed := !project.BiddingClosed
	if err := m.stores.Projects.SetBiddingClosed(ctx, projectID, closed); err != nil {
		return false, err
	}
	m.log.Info().Str("projectId", projectID.String()).Bool("biddingClosed", closed).Msg("bidding toggled")
	return closed, nil
}

// IsBiddingOpen is the gate for every bid mutation.
func (m *LifecycleManager) IsBiddingOpen(project *models.Project) bool {
	return project.BiddingOpenAt(m.now())
}

func (m *LifecycleManager) ownedProject(ctx context.Context, projectID uuid.UUID, principal Principal, denied string) (*models.Project, error) {
	project, err := m.stores.Projects.FindProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if !project.OwnedBy(principal.ID) {
		return nil, errs.NewForbiddenError(denied)
	}
	return project, nil
}

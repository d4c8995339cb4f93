package marketplace

import (
	"context"
	"net/mail"
	"strings"

	"github.com/google/uuid"
	"github.com/rpupo63/contractor-marketplace-backend/errs"
	"github.com/rpupo63/contractor-marketplace-backend/models"
)

// ProfileDirectory edits contractor profiles and basic user info.
type ProfileDirectory struct {
	*core
}

// UpsertProfile creates the caller's contractor profile on first use and
// applies the sparse patch.
func (d *ProfileDirectory) UpsertProfile(ctx context.Context, principal Principal, patch models.ContractorProfilePatch) (*models.ContractorProfile, error) {
	if err := principal.require(models.RoleContractor, "Only contractors can update their profile"); err != nil {
		return nil, err
	}
	if patch.Experience != nil && *patch.Experience < 0 {
		return nil, errs.NewInvalidFieldError("experience", "must not be negative")
	}

	profile, err := d.stores.Profiles.FindProfileByUser(ctx, principal.ID)
	switch {
	case errs.IsNotFound(err):
		profile = &models.ContractorProfile{ID: uuid.New(), UserID: principal.ID}
	case err != nil:
		return nil, err
	}

	patch.Apply(profile)
	if profile.Skills == nil {
		profile.Skills = []string{}
	}
	if profile.Certifications == nil {
		profile.Certifications = []string{}
	}
	if err := d.stores.Profiles.SaveProfile(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

func (d *ProfileDirectory) ListContractors(ctx context.Context) ([]models.ContractorIdentity, error) {
	return d.stores.Profiles.ListContractors(ctx)
}

func (d *ProfileDirectory) UpdateUserInfo(ctx context.Context, principal Principal, patch models.UserPatch) (*models.User, error) {
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return nil, errs.NewInvalidFieldError("name", "must not be blank")
	}
	if patch.Email != nil {
		if _, err := mail.ParseAddress(*patch.Email); err != nil {
			return nil, errs.NewInvalidFieldError("email", "must be a valid address")
		}
	}

	user, err := d.stores.Users.UpdateUser(ctx, principal.ID, patch)
	if errs.IsNotFound(err) {
		return nil, errs.NewNotFoundError("User not found")
	}
	if errs.IsUniqueViolation(err) {
		return nil, errs.NewConflictError("Email is already in use")
	}
	return user, err
}

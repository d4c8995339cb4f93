package marketplace

import (
	"github.com/google/uuid"
	"github.com/rpupo63/contractor-marketplace-backend/errs"
	"github.com/rpupo63/contractor-marketplace-backend/models"
)

// Principal is the authenticated caller of a core operation.
type Principal struct {
	ID   uuid.UUID
	Role models.Role
}

func (p Principal) require(role models.Role, message string) error {
	if p.Role != role {
		return errs.NewInsufficientRoleError(message, string(role))
	}
	return nil
}

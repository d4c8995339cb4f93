package api

import (
	"context"

	"github.com/rpupo63/contractor-marketplace-backend/errs"
	"github.com/rpupo63/contractor-marketplace-backend/marketplace"
)

type keyType string

const principalKey keyType = "principal"

// ctxWithPrincipal adds the authenticated caller to the context
func ctxWithPrincipal(ctx context.Context, principal marketplace.Principal) context.Context {
	return context.WithValue(ctx, principalKey, principal)
}

// ctxGetPrincipal retrieves the authenticated caller from the context
func ctxGetPrincipal(ctx context.Context) (marketplace.Principal, error) {
	principal, ok := ctx.Value(principalKey).(marketplace.Principal)
	if !ok {
		return marketplace.Principal{}, errs.NewMissingTokenError()
	}
	return principal, nil
}

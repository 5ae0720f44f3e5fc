package api

import (
	"context"

	"github.com/inkfold/blog-backend/auth"
	"github.com/inkfold/blog-backend/errs"
)

type keyType string

const (
	identityKey keyType = "identity"
)

// ctxWithIdentity adds the verified caller identity to the context
func ctxWithIdentity(ctx context.Context, identity auth.Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

// ctxGetIdentity retrieves the verified caller identity from the context.
// Only set by the auth middleware, so absence means the route was wired
// without authentication.
func ctxGetIdentity(ctx context.Context) (auth.Identity, error) {
	ctxValue := ctx.Value(identityKey)
	if ctxValue == nil {
		return auth.Identity{}, errs.NewMissingTokenError()
	}
	identity, ok := ctxValue.(auth.Identity)
	if !ok {
		return auth.Identity{}, errs.NewMissingTokenError()
	}
	return identity, nil
}

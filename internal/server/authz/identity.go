// Package authz resolves the caller behind a bearer token and checks roles.
package authz

import (
	"context"

	"github.com/dmitrijs2005/coursehub/internal/server/models"
)

// Identity is attached to every request context that passed through the
// gate. The zero value is the unauthenticated identity.
type Identity struct {
	AccountID string
	Role      models.Role
}

func (i Identity) Authenticated() bool {
	return i.AccountID != ""
}

type ctxKey struct{}

var Unauthenticated = Identity{}

func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// FromContext always returns a value; callers check Authenticated.
func FromContext(ctx context.Context) Identity {
	id, ok := ctx.Value(ctxKey{}).(Identity)
	if !ok {
		return Unauthenticated
	}
	return id
}

package authz

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/dmitrijs2005/coursehub/internal/common"
	"github.com/dmitrijs2005/coursehub/internal/logging"
	"github.com/dmitrijs2005/coursehub/internal/server/auth"
	"github.com/dmitrijs2005/coursehub/internal/server/models"
)

type TokenVerifier interface {
	VerifyAccess(token string) (*auth.Claims, error)
}

type AccountFinder interface {
	FindByID(ctx context.Context, id string) (*models.Account, error)
}

type Gate struct {
	tokens   TokenVerifier
	accounts AccountFinder
	logger   logging.Logger
}

func NewGate(tokens TokenVerifier, accounts AccountFinder, l logging.Logger) *Gate {
	return &Gate{tokens: tokens, accounts: accounts, logger: l.With("module", "authz")}
}

// BearerToken extracts the token from an Authorization header value.
func BearerToken(header string) (string, bool) {
	if len(header) < len(common.BearerPrefix) || !strings.EqualFold(header[:len(common.BearerPrefix)], common.BearerPrefix) {
		return "", false
	}
	token := strings.TrimSpace(header[len(common.BearerPrefix):])
	return token, token != ""
}

// Authenticate verifies the access token and reloads the account so that the
// returned role is the current one, not the one baked into the token.
func (g *Gate) Authenticate(ctx context.Context, authorization string) (Identity, error) {
	token, ok := BearerToken(authorization)
	if !ok {
		return Unauthenticated, common.ErrUnauthorized
	}

	claims, err := g.tokens.VerifyAccess(token)
	if err != nil {
		g.logger.Debug(ctx, "access token rejected", "reason", err.Error())
		return Unauthenticated, fmt.Errorf("%w: %w", common.ErrUnauthorized, err)
	}

	acc, err := g.accounts.FindByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return Unauthenticated, common.ErrUnauthorized
		}
		g.logger.Error(ctx, "account lookup failed", "error", err)
		return Unauthenticated, common.ErrorInternal
	}

	return Identity{AccountID: acc.ID, Role: acc.Role}, nil
}

// RequireRole returns ErrUnauthorized for an anonymous identity and
// ErrForbidden when the role is outside allowed. An empty allow-set admits any
// authenticated caller.
func RequireRole(id Identity, allowed ...models.Role) error {
	if !id.Authenticated() {
		return common.ErrUnauthorized
	}
	if len(allowed) == 0 || slices.Contains(allowed, id.Role) {
		return nil
	}
	return common.ErrForbidden
}

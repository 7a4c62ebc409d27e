package accounts

import (
	"context"
	"time"

	"github.com/dmitrijs2005/coursehub/internal/server/models"
)

// Repository persists accounts. Lookups that find nothing return
// common.ErrorNotFound; Create returns common.ErrDuplicateEmail when the
// normalized email is taken.
//
// The Consume* methods find the account holding an unexpired token digest and
// clear the token in one atomic step, so a token can be redeemed only once.
type Repository interface {
	Create(ctx context.Context, acc *models.Account) (*models.Account, error)
	FindByID(ctx context.Context, id string) (*models.Account, error)
	FindByEmail(ctx context.Context, email string) (*models.Account, error)
	List(ctx context.Context) ([]*models.Account, error)

	SetVerificationToken(ctx context.Context, id string, token models.PendingToken) error
	ConsumeVerificationToken(ctx context.Context, digest string, now time.Time) (*models.Account, error)

	SetResetToken(ctx context.Context, id string, token models.PendingToken) error
	ConsumeResetToken(ctx context.Context, digest string, now time.Time, passwordDigest string) (*models.Account, error)

	// UpdatePassword replaces the password digest and, when clearReset is
	// set, drops any pending reset token.
	UpdatePassword(ctx context.Context, id string, passwordDigest string, clearReset bool) error
	SetRole(ctx context.Context, id string, role models.Role) (*models.Account, error)
	// SetAvatar stores the profile image key. An empty key clears it.
	SetAvatar(ctx context.Context, id string, key string) (*models.Account, error)
	Delete(ctx context.Context, id string) error

	// CountByRole reports how many accounts hold each role. Roles without
	// accounts are absent from the map.
	CountByRole(ctx context.Context) (map[models.Role]int, error)
}

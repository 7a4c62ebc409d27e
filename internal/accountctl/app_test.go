package accountctl

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/dmitrijs2005/coursehub/internal/common"
	"github.com/dmitrijs2005/coursehub/internal/cryptox"
	"github.com/dmitrijs2005/coursehub/internal/logging"
	"github.com/dmitrijs2005/coursehub/internal/server/models"
	"github.com/dmitrijs2005/coursehub/internal/server/repositories/accounts"
	"github.com/dmitrijs2005/coursehub/internal/server/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubPasswords makes readPassword return the given answers in order.
func stubPasswords(t *testing.T, answers ...string) {
	t.Helper()
	orig := readPassword
	t.Cleanup(func() { readPassword = orig })

	readPassword = func(int) ([]byte, error) {
		if len(answers) == 0 {
			return nil, errors.New("no more input")
		}
		a := answers[0]
		answers = answers[1:]
		return []byte(a), nil
	}
}

func newTestApp(t *testing.T) (*App, *accounts.MemoryRepository, *bytes.Buffer) {
	t.Helper()
	hasher := cryptox.NewPasswordHasher(cryptox.Argon2Params{Memory: 1024, Iterations: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32}, 2)
	creds := services.NewCredentialStore(hasher, 6, logging.Nop{})
	repo := accounts.NewMemoryRepository()
	var out bytes.Buffer
	return NewApp(repo, creds, &out), repo, &out
}

func TestCreate_DefaultsToVerifiedAdmin(t *testing.T) {
	app, repo, out := newTestApp(t)
	stubPasswords(t, "rootpass", "rootpass")

	err := app.Run(context.Background(), []string{"create", "-email", "Root@X.com", "-name", "Root", "-d", "ignored"})
	require.NoError(t, err)

	acc, err := repo.FindByEmail(context.Background(), "root@x.com")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, acc.Role)
	assert.True(t, acc.EmailVerified)
	assert.NotContains(t, acc.PasswordDigest, "rootpass")
	assert.Contains(t, out.String(), "created root@x.com (admin)")
}

func TestCreate_PasswordMismatch(t *testing.T) {
	app, repo, _ := newTestApp(t)
	stubPasswords(t, "rootpass", "other")

	err := app.Run(context.Background(), []string{"create", "-email", "root@x.com", "-name", "Root"})
	assert.ErrorIs(t, err, errPasswordMismatch)

	_, err = repo.FindByEmail(context.Background(), "root@x.com")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestCreate_ShortPasswordRejected(t *testing.T) {
	app, _, _ := newTestApp(t)
	stubPasswords(t, "abc", "abc")

	err := app.Run(context.Background(), []string{"create", "-email", "root@x.com", "-name", "Root"})
	assert.ErrorIs(t, err, common.ErrValidation)
}

func TestRoleAndDelete(t *testing.T) {
	app, repo, out := newTestApp(t)
	ctx := context.Background()
	stubPasswords(t, "secret1", "secret1")

	require.NoError(t, app.Run(ctx, []string{"create", "-email", "a@x.com", "-name", "A", "-role", "student"}))

	require.NoError(t, app.Run(ctx, []string{"role", "-email", "A@x.com", "-role", "instructor"}))
	acc, err := repo.FindByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, models.RoleInstructor, acc.Role)
	assert.Contains(t, out.String(), "a@x.com is now instructor")

	assert.ErrorIs(t, app.Run(ctx, []string{"role", "-email", "a@x.com", "-role", "owner"}), ErrUsage)
	assert.ErrorIs(t, app.Run(ctx, []string{"role", "-email", "a@x.com"}), ErrUsage)

	require.NoError(t, app.Run(ctx, []string{"delete", "-email", "a@x.com"}))
	_, err = repo.FindByEmail(ctx, "a@x.com")
	assert.ErrorIs(t, err, common.ErrorNotFound)

	err = app.Run(ctx, []string{"delete", "-email", "a@x.com"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no account")
}

func TestRun_Usage(t *testing.T) {
	app, _, _ := newTestApp(t)
	ctx := context.Background()

	assert.ErrorIs(t, app.Run(ctx, nil), ErrUsage)
	assert.ErrorIs(t, app.Run(ctx, []string{"frobnicate"}), ErrUsage)
	assert.ErrorIs(t, app.Run(ctx, []string{"delete"}), ErrUsage)
	assert.ErrorIs(t, app.Run(ctx, []string{"create", "-email", "a@x.com"}), ErrUsage)
}

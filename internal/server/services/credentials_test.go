package services

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/coursehub/internal/common"
	"github.com/dmitrijs2005/coursehub/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCredentialStore_CheckEmail(t *testing.T) {
	f := newFixture(t)

	got, err := f.creds.CheckEmail("  Alice@Example.COM ")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", got)

	for _, bad := range []string{"", "   ", "alice", "a@", "@x.com"} {
		_, err := f.creds.CheckEmail(bad)
		assert.ErrorIs(t, err, common.ErrValidation, bad)
	}
}

func TestCredentialStore_CheckPassword(t *testing.T) {
	f := newFixture(t)

	assert.NoError(t, f.creds.CheckPassword("123456"))
	assert.ErrorIs(t, f.creds.CheckPassword("12345"), common.ErrValidation)
	assert.ErrorIs(t, f.creds.CheckPassword(""), common.ErrValidation)
	// counted in characters, not bytes
	assert.ErrorIs(t, f.creds.CheckPassword("ééééé"), common.ErrValidation)
}

func TestCredentialStore_CreateVerified(t *testing.T) {
	f := newFixture(t)

	acc, err := f.creds.Create(context.Background(), f.repos.Accounts(nil), NewAccount{
		DisplayName: " Ops ", Email: "OPS@x.com", Password: "opspass", Role: models.RoleAdmin, Verified: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "Ops", acc.DisplayName)
	assert.Equal(t, "ops@x.com", acc.Email)
	assert.True(t, acc.EmailVerified)

	_, err = f.creds.Create(context.Background(), f.repos.Accounts(nil), NewAccount{
		DisplayName: "x", Email: "ops@X.com", Password: "opspass",
	})
	assert.ErrorIs(t, err, common.ErrDuplicateEmail)

	_, err = f.creds.Create(context.Background(), f.repos.Accounts(nil), NewAccount{
		DisplayName: "x", Email: "y@x.com", Password: "opspass", Role: "owner",
	})
	assert.ErrorIs(t, err, common.ErrRoleInvalid)
}

func TestCredentialStore_SetRoleRejectsUnknown(t *testing.T) {
	f := newFixture(t)

	_, err := f.creds.SetRole(context.Background(), f.repos.Accounts(nil), "id", "owner")
	assert.ErrorIs(t, err, common.ErrValidation)
}

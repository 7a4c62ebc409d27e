package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/dmitrijs2005/coursehub/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	tests := []struct {
		in   string
		want Role
		err  bool
	}{
		{"", RoleStudent, false},
		{"student", RoleStudent, false},
		{" Instructor ", RoleInstructor, false},
		{"ADMIN", RoleAdmin, false},
		{"owner", "", true},
	}
	for _, tt := range tests {
		got, err := ParseRole(tt.in)
		if tt.err {
			assert.ErrorIs(t, err, common.ErrRoleInvalid)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
		assert.True(t, got.Valid())
	}
	assert.False(t, Role("owner").Valid())
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "a@x.com", NormalizeEmail("  A@X.Com \n"))
}

func TestPendingToken_Usable(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	var none *PendingToken
	assert.False(t, none.Usable(now))
	assert.False(t, (&PendingToken{ExpiresAt: now.Add(time.Hour)}).Usable(now))
	assert.True(t, (&PendingToken{Digest: "d", ExpiresAt: now.Add(time.Second)}).Usable(now))
	assert.False(t, (&PendingToken{Digest: "d", ExpiresAt: now}).Usable(now))
}

func TestAccountView_HidesSecrets(t *testing.T) {
	a := &Account{
		ID:                "id-1",
		DisplayName:       "alice",
		Email:             "a@x.com",
		PasswordDigest:    "$argon2id$secret",
		Role:              RoleStudent,
		EmailVerification: &PendingToken{Digest: "digest-v"},
		PasswordReset:     &PendingToken{Digest: "digest-r"},
	}

	b, err := json.Marshal(a.View())
	require.NoError(t, err)
	s := string(b)

	assert.Contains(t, s, `"email":"a@x.com"`)
	assert.NotContains(t, s, "argon2id")
	assert.NotContains(t, s, "digest-v")
	assert.NotContains(t, s, "digest-r")
}

func TestAccountView_AvatarFlagOnly(t *testing.T) {
	a := &Account{ID: "id-1", AvatarKey: "avatars/id-1/2026/10/19/abc.png"}

	v := a.View()
	assert.True(t, v.HasAvatar)

	b, err := json.Marshal(v)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"hasAvatar":true`)
	assert.NotContains(t, string(b), "avatars/")
	assert.False(t, (&Account{}).View().HasAvatar)
}

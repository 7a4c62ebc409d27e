package accounts

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dmitrijs2005/coursehub/internal/common"
	"github.com/dmitrijs2005/coursehub/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ Repository = (*MemoryRepository)(nil)
var _ Repository = (*PostgresRepository)(nil)

func seed(t *testing.T, r *MemoryRepository, email string) *models.Account {
	t.Helper()
	acc, err := r.Create(context.Background(), &models.Account{
		DisplayName: "alice", Email: email, PasswordDigest: "d", Role: models.RoleStudent,
	})
	require.NoError(t, err)
	return acc
}

func TestMemory_CreateAndFind(t *testing.T) {
	r := NewMemoryRepository()
	acc := seed(t, r, "a@x.com")

	assert.NotEmpty(t, acc.ID)
	assert.False(t, acc.CreatedAt.IsZero())

	byID, err := r.FindByID(context.Background(), acc.ID)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", byID.Email)

	byEmail, err := r.FindByEmail(context.Background(), " A@X.COM")
	require.NoError(t, err)
	assert.Equal(t, acc.ID, byEmail.ID)

	_, err = r.FindByID(context.Background(), "missing")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestMemory_ReturnsCopies(t *testing.T) {
	r := NewMemoryRepository()
	acc := seed(t, r, "a@x.com")

	got, _ := r.FindByID(context.Background(), acc.ID)
	got.Role = models.RoleAdmin

	again, _ := r.FindByID(context.Background(), acc.ID)
	assert.Equal(t, models.RoleStudent, again.Role)
}

func TestMemory_DuplicateEmailRace(t *testing.T) {
	r := NewMemoryRepository()

	const n = 16
	var ok, dup atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			email := "race@x.com"
			if i%2 == 0 {
				email = "RACE@x.com"
			}
			_, err := r.Create(context.Background(), &models.Account{Email: email})
			switch {
			case err == nil:
				ok.Add(1)
			case errors.Is(err, common.ErrDuplicateEmail):
				dup.Add(1)
			}
		}(i)
	}
	wg.Wait()

	assert.EqualValues(t, 1, ok.Load())
	assert.EqualValues(t, n-1, dup.Load())

	list, _ := r.List(context.Background())
	assert.Len(t, list, 1)
}

func TestMemory_ConsumeVerificationToken(t *testing.T) {
	r := NewMemoryRepository()
	acc := seed(t, r, "a@x.com")
	now := time.Now()

	require.NoError(t, r.SetVerificationToken(context.Background(), acc.ID,
		models.PendingToken{Digest: "vd", ExpiresAt: now.Add(time.Hour)}))

	_, err := r.ConsumeVerificationToken(context.Background(), "other", now)
	assert.ErrorIs(t, err, common.ErrorNotFound)

	got, err := r.ConsumeVerificationToken(context.Background(), "vd", now)
	require.NoError(t, err)
	assert.True(t, got.EmailVerified)
	assert.Nil(t, got.EmailVerification)

	_, err = r.ConsumeVerificationToken(context.Background(), "vd", now)
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestMemory_ConsumeExpired(t *testing.T) {
	r := NewMemoryRepository()
	acc := seed(t, r, "a@x.com")
	now := time.Now()

	require.NoError(t, r.SetResetToken(context.Background(), acc.ID,
		models.PendingToken{Digest: "rd", ExpiresAt: now.Add(time.Minute)}))

	_, err := r.ConsumeResetToken(context.Background(), "rd", now.Add(2*time.Minute), "new")
	assert.ErrorIs(t, err, common.ErrorNotFound)

	stored, _ := r.FindByID(context.Background(), acc.ID)
	assert.Equal(t, "d", stored.PasswordDigest)
}

func TestMemory_ConsumeRace(t *testing.T) {
	r := NewMemoryRepository()
	acc := seed(t, r, "a@x.com")
	now := time.Now()

	require.NoError(t, r.SetResetToken(context.Background(), acc.ID,
		models.PendingToken{Digest: "rd", ExpiresAt: now.Add(time.Hour)}))

	const n = 8
	var wins atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := r.ConsumeResetToken(context.Background(), "rd", now, "new"); err == nil {
				wins.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.EqualValues(t, 1, wins.Load())
}

func TestMemory_ResendOverwritesToken(t *testing.T) {
	r := NewMemoryRepository()
	acc := seed(t, r, "a@x.com")
	now := time.Now()

	require.NoError(t, r.SetVerificationToken(context.Background(), acc.ID, models.PendingToken{Digest: "old", ExpiresAt: now.Add(time.Hour)}))
	require.NoError(t, r.SetVerificationToken(context.Background(), acc.ID, models.PendingToken{Digest: "new", ExpiresAt: now.Add(time.Hour)}))

	_, err := r.ConsumeVerificationToken(context.Background(), "old", now)
	assert.ErrorIs(t, err, common.ErrorNotFound)

	_, err = r.ConsumeVerificationToken(context.Background(), "new", now)
	assert.NoError(t, err)
}

func TestMemory_UpdatePasswordClearsReset(t *testing.T) {
	r := NewMemoryRepository()
	acc := seed(t, r, "a@x.com")

	require.NoError(t, r.SetResetToken(context.Background(), acc.ID, models.PendingToken{Digest: "rd", ExpiresAt: time.Now().Add(time.Hour)}))

	require.NoError(t, r.UpdatePassword(context.Background(), acc.ID, "d2", false))
	got, _ := r.FindByID(context.Background(), acc.ID)
	assert.NotNil(t, got.PasswordReset)

	require.NoError(t, r.UpdatePassword(context.Background(), acc.ID, "d3", true))
	got, _ = r.FindByID(context.Background(), acc.ID)
	assert.Nil(t, got.PasswordReset)
	assert.Equal(t, "d3", got.PasswordDigest)

	assert.ErrorIs(t, r.UpdatePassword(context.Background(), "missing", "x", false), common.ErrorNotFound)
}

func TestMemory_SetRoleAndDelete(t *testing.T) {
	r := NewMemoryRepository()
	acc := seed(t, r, "a@x.com")

	got, err := r.SetRole(context.Background(), acc.ID, models.RoleInstructor)
	require.NoError(t, err)
	assert.Equal(t, models.RoleInstructor, got.Role)

	require.NoError(t, r.Delete(context.Background(), acc.ID))
	assert.ErrorIs(t, r.Delete(context.Background(), acc.ID), common.ErrorNotFound)

	// email is free again
	seed(t, r, "a@x.com")
}

func TestMemory_SetAvatar(t *testing.T) {
	r := NewMemoryRepository()
	acc := seed(t, r, "a@x.com")

	got, err := r.SetAvatar(context.Background(), acc.ID, "avatars/k.png")
	require.NoError(t, err)
	assert.Equal(t, "avatars/k.png", got.AvatarKey)

	got, err = r.SetAvatar(context.Background(), acc.ID, "")
	require.NoError(t, err)
	assert.Empty(t, got.AvatarKey)

	_, err = r.SetAvatar(context.Background(), "missing", "k")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestMemory_CountByRole(t *testing.T) {
	r := NewMemoryRepository()
	seed(t, r, "a@x.com")
	seed(t, r, "b@x.com")
	c := seed(t, r, "c@x.com")
	_, err := r.SetRole(context.Background(), c.ID, models.RoleAdmin)
	require.NoError(t, err)

	got, err := r.CountByRole(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[models.Role]int{models.RoleStudent: 2, models.RoleAdmin: 1}, got)
}

package accounts

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/dmitrijs2005/coursehub/internal/common"
	"github.com/dmitrijs2005/coursehub/internal/server/models"
	"github.com/google/uuid"
)

// MemoryRepository keeps accounts in process memory. Every method runs under
// one mutex, which gives the same atomicity the Postgres repository gets from
// its unique index and conditional updates. Returned accounts are copies.
type MemoryRepository struct {
	mu      sync.Mutex
	byID    map[string]*models.Account
	byEmail map[string]string
	now     func() time.Time
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		byID:    make(map[string]*models.Account),
		byEmail: make(map[string]string),
		now:     time.Now,
	}
}

func clone(a *models.Account) *models.Account {
	c := *a
	if a.EmailVerification != nil {
		v := *a.EmailVerification
		c.EmailVerification = &v
	}
	if a.PasswordReset != nil {
		r := *a.PasswordReset
		c.PasswordReset = &r
	}
	return &c
}

func (r *MemoryRepository) Create(_ context.Context, acc *models.Account) (*models.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := models.NormalizeEmail(acc.Email)
	if _, ok := r.byEmail[key]; ok {
		return nil, common.ErrDuplicateEmail
	}

	if acc.ID == "" {
		acc.ID = uuid.NewString()
	}
	now := r.now()
	acc.CreatedAt, acc.UpdatedAt = now, now

	r.byID[acc.ID] = clone(acc)
	r.byEmail[key] = acc.ID

	return acc, nil
}

func (r *MemoryRepository) FindByID(_ context.Context, id string) (*models.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return clone(a), nil
}

func (r *MemoryRepository) FindByEmail(_ context.Context, email string) (*models.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id, ok := r.byEmail[models.NormalizeEmail(email)]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return clone(r.byID[id]), nil
}

func (r *MemoryRepository) List(_ context.Context) ([]*models.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	result := make([]*models.Account, 0, len(r.byID))
	for _, a := range r.byID {
		result = append(result, clone(a))
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].ID < result[j].ID
		}
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}

// update applies fn to the stored account under the lock.
func (r *MemoryRepository) update(id string, fn func(a *models.Account)) (*models.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	fn(a)
	a.UpdatedAt = r.now()
	return clone(a), nil
}

// consume finds the account whose token selected by pick matches digest and
// has not expired, then applies fn. Lookup and mutation share the lock.
func (r *MemoryRepository) consume(digest string, now time.Time, pick func(a *models.Account) *models.PendingToken, fn func(a *models.Account)) (*models.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, a := range r.byID {
		p := pick(a)
		if p == nil || p.Digest != digest {
			continue
		}
		if !p.Usable(now) {
			return nil, common.ErrorNotFound
		}
		fn(a)
		a.UpdatedAt = r.now()
		return clone(a), nil
	}
	return nil, common.ErrorNotFound
}

func (r *MemoryRepository) SetVerificationToken(_ context.Context, id string, token models.PendingToken) error {
	_, err := r.update(id, func(a *models.Account) { a.EmailVerification = &token })
	return err
}

func (r *MemoryRepository) ConsumeVerificationToken(_ context.Context, digest string, now time.Time) (*models.Account, error) {
	return r.consume(digest, now,
		func(a *models.Account) *models.PendingToken { return a.EmailVerification },
		func(a *models.Account) {
			a.EmailVerified = true
			a.EmailVerification = nil
		})
}

func (r *MemoryRepository) SetResetToken(_ context.Context, id string, token models.PendingToken) error {
	_, err := r.update(id, func(a *models.Account) { a.PasswordReset = &token })
	return err
}

func (r *MemoryRepository) ConsumeResetToken(_ context.Context, digest string, now time.Time, passwordDigest string) (*models.Account, error) {
	return r.consume(digest, now,
		func(a *models.Account) *models.PendingToken { return a.PasswordReset },
		func(a *models.Account) {
			a.PasswordDigest = passwordDigest
			a.PasswordReset = nil
		})
}

func (r *MemoryRepository) UpdatePassword(_ context.Context, id string, passwordDigest string, clearReset bool) error {
	_, err := r.update(id, func(a *models.Account) {
		a.PasswordDigest = passwordDigest
		if clearReset {
			a.PasswordReset = nil
		}
	})
	return err
}

func (r *MemoryRepository) SetRole(_ context.Context, id string, role models.Role) (*models.Account, error) {
	return r.update(id, func(a *models.Account) { a.Role = role })
}

func (r *MemoryRepository) SetAvatar(_ context.Context, id string, key string) (*models.Account, error) {
	return r.update(id, func(a *models.Account) { a.AvatarKey = key })
}

func (r *MemoryRepository) CountByRole(_ context.Context) (map[models.Role]int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	result := make(map[models.Role]int)
	for _, a := range r.byID {
		result[a.Role]++
	}
	return result, nil
}

func (r *MemoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.byID[id]
	if !ok {
		return common.ErrorNotFound
	}
	delete(r.byEmail, models.NormalizeEmail(a.Email))
	delete(r.byID, id)
	return nil
}

package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/coursehub/internal/cryptox"
	"github.com/dmitrijs2005/coursehub/internal/logging"
	"github.com/dmitrijs2005/coursehub/internal/server/auth"
	"github.com/dmitrijs2005/coursehub/internal/server/repositories/repomanager"
)

type sentMail struct {
	kind  string
	to    string
	token string
}

type fakeNotifier struct {
	mu   sync.Mutex
	sent []sentMail
	err  error
}

func (f *fakeNotifier) SendVerification(_ context.Context, to, _, raw, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, sentMail{"verify", to, raw})
	return f.err
}

func (f *fakeNotifier) SendPasswordReset(_ context.Context, to, _, raw, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, sentMail{"reset", to, raw})
	return f.err
}

func (f *fakeNotifier) last() sentMail {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.sent) == 0 {
		return sentMail{}
	}
	return f.sent[len(f.sent)-1]
}

type clock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

type fixture struct {
	identity *IdentityService
	admin    *AdminService
	creds    *CredentialStore
	repos    *repomanager.MemoryRepositoryManager
	issuer   *auth.Issuer
	notifier *fakeNotifier
	clock    *clock
	hasher   *cryptox.PasswordHasher
}

func fastParams() cryptox.Argon2Params {
	return cryptox.Argon2Params{Memory: 1024, Iterations: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32}
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	clk := &clock{t: time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)}
	hasher := cryptox.NewPasswordHasher(fastParams(), 4)
	repos := repomanager.NewMemoryRepositoryManager()
	issuer := auth.NewIssuer([]byte("access"), []byte("refresh"), time.Hour, 7*24*time.Hour).WithClock(clk.Now)
	n := &fakeNotifier{}
	creds := NewCredentialStore(hasher, 6, logging.Nop{})

	id := NewIdentityService(nil, repos, creds, issuer, n, IdentityOptions{
		VerificationTokenTTL: 24 * time.Hour,
		ResetTokenTTL:        time.Hour,
	}, logging.Nop{}).WithClock(clk.Now)

	return &fixture{
		identity: id,
		admin:    NewAdminService(nil, repos, creds, logging.Nop{}),
		creds:    creds,
		repos:    repos,
		issuer:   issuer,
		notifier: n,
		clock:    clk,
		hasher:   hasher,
	}
}

// verified registers an account and confirms its email.
func (f *fixture) verified(t *testing.T, name, email, password string) string {
	t.Helper()
	ctx := context.Background()

	res, err := f.identity.Register(ctx, name, email, password, "")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := f.identity.VerifyEmail(ctx, res.VerificationHandle); err != nil {
		t.Fatalf("verify: %v", err)
	}
	return res.Account.ID
}

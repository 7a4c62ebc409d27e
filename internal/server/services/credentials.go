// Package services contains server-side business logic: the credential
// store, the identity lifecycle (register, verify, login, reset, refresh) and
// the admin console.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/dmitrijs2005/coursehub/internal/common"
	"github.com/dmitrijs2005/coursehub/internal/logging"
	"github.com/dmitrijs2005/coursehub/internal/server/models"
	"github.com/dmitrijs2005/coursehub/internal/server/repositories/accounts"
	"github.com/go-playground/validator/v10"
)

// PasswordHasher produces and checks self-describing password digests.
type PasswordHasher interface {
	Hash(ctx context.Context, plaintext string) (string, error)
	Verify(ctx context.Context, plaintext, digest string) (bool, error)
	NeedsRehash(digest string) bool
}

const maxDisplayNameLength = 100

// CredentialStore validates and hashes credentials before they reach a
// repository. Methods take the repository explicitly so they can run inside a
// caller's transaction.
type CredentialStore struct {
	hasher            PasswordHasher
	validate          *validator.Validate
	minPasswordLength int
	logger            logging.Logger
}

// NewCredentialStore rejects passwords shorter than minPasswordLength.
func NewCredentialStore(h PasswordHasher, minPasswordLength int, l logging.Logger) *CredentialStore {
	return &CredentialStore{
		hasher:            h,
		logger:            l.With("module", "credentials"),
		validate:          validator.New(validator.WithRequiredStructEnabled()),
		minPasswordLength: minPasswordLength,
	}
}

// NewAccount is the input of Create. Verified skips email verification.
type NewAccount struct {
	DisplayName string
	Email       string
	Password    string
	Role        models.Role
	Verified    bool
}

func validationError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", common.ErrValidation, fmt.Sprintf(format, args...))
}

// CheckEmail normalizes email and rejects values that are not addresses.
func (c *CredentialStore) CheckEmail(email string) (string, error) {
	email = models.NormalizeEmail(email)
	if email == "" {
		return "", validationError("email is required")
	}
	if err := c.validate.Var(email, "email,max=254"); err != nil {
		return "", validationError("email is not valid")
	}
	return email, nil
}

func (c *CredentialStore) CheckPassword(password string) error {
	if password == "" {
		return validationError("password is required")
	}
	if utf8.RuneCountInString(password) < c.minPasswordLength {
		return validationError("password must be at least %d characters", c.minPasswordLength)
	}
	return nil
}

// HashPassword checks the password policy and returns a fresh digest.
func (c *CredentialStore) HashPassword(ctx context.Context, password string) (string, error) {
	if err := c.CheckPassword(password); err != nil {
		return "", err
	}
	digest, err := c.hasher.Hash(ctx, password)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return digest, nil
}

// Create persists a new account. A concurrent duplicate is caught by the
// repository's unique index, not by a prior lookup.
func (c *CredentialStore) Create(ctx context.Context, repo accounts.Repository, in NewAccount) (*models.Account, error) {
	name := strings.TrimSpace(in.DisplayName)
	if name == "" {
		return nil, validationError("display name is required")
	}
	if utf8.RuneCountInString(name) > maxDisplayNameLength {
		return nil, validationError("display name is too long")
	}
	email, err := c.CheckEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if in.Role == "" {
		in.Role = models.RoleStudent
	}
	if !in.Role.Valid() {
		return nil, fmt.Errorf("%w: %w", common.ErrValidation, common.ErrRoleInvalid)
	}

	digest, err := c.HashPassword(ctx, in.Password)
	if err != nil {
		return nil, err
	}

	return repo.Create(ctx, &models.Account{
		DisplayName:    name,
		Email:          email,
		PasswordDigest: digest,
		Role:           in.Role,
		EmailVerified:  in.Verified,
	})
}

// Authenticate reports whether password matches the account. A digest with
// outdated parameters is upgraded in place; an upgrade failure is logged and
// does not fail the login.
func (c *CredentialStore) Authenticate(ctx context.Context, repo accounts.Repository, acc *models.Account, password string) (bool, error) {
	ok, err := c.hasher.Verify(ctx, password, acc.PasswordDigest)
	if err != nil || !ok {
		return false, err
	}

	if c.hasher.NeedsRehash(acc.PasswordDigest) {
		digest, err := c.hasher.Hash(ctx, password)
		if err == nil {
			err = repo.UpdatePassword(ctx, acc.ID, digest, false)
		}
		if err != nil {
			c.logger.Warn(ctx, "password digest upgrade failed", "account_id", acc.ID, "error", err)
		} else {
			acc.PasswordDigest = digest
			c.logger.Info(ctx, "password digest upgraded", "account_id", acc.ID)
		}
	}

	return true, nil
}

// SetPassword re-hashes and stores a new password, dropping any pending reset
// token.
func (c *CredentialStore) SetPassword(ctx context.Context, repo accounts.Repository, id, password string) error {
	digest, err := c.HashPassword(ctx, password)
	if err != nil {
		return err
	}
	return repo.UpdatePassword(ctx, id, digest, true)
}

func (c *CredentialStore) SetRole(ctx context.Context, repo accounts.Repository, id string, role models.Role) (*models.Account, error) {
	if !role.Valid() {
		return nil, fmt.Errorf("%w: %w", common.ErrValidation, common.ErrRoleInvalid)
	}
	return repo.SetRole(ctx, id, role)
}

// dummyVerify spends roughly the same time as a real verification so that
// unknown emails are not distinguishable by latency.
func (c *CredentialStore) dummyVerify(ctx context.Context, digest string) {
	if digest == "" {
		return
	}
	_, _ = c.hasher.Verify(ctx, "not-the-password", digest)
}

// isDomainError reports whether err is one of the caller-facing sentinels
// that services pass through unchanged.
func isDomainError(err error) bool {
	for _, target := range []error{
		common.ErrValidation,
		common.ErrDuplicateEmail,
		common.ErrInvalidCredentials,
		common.ErrEmailNotVerified,
		common.ErrInvalidOrExpiredToken,
		common.ErrUnauthorized,
		common.ErrForbidden,
		common.ErrorNotFound,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

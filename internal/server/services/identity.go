package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/coursehub/internal/common"
	"github.com/dmitrijs2005/coursehub/internal/cryptox"
	"github.com/dmitrijs2005/coursehub/internal/dbx"
	"github.com/dmitrijs2005/coursehub/internal/logging"
	"github.com/dmitrijs2005/coursehub/internal/server/auth"
	"github.com/dmitrijs2005/coursehub/internal/server/models"
	"github.com/dmitrijs2005/coursehub/internal/server/repositories/accounts"
	"github.com/dmitrijs2005/coursehub/internal/server/repositories/repomanager"
)

// Notifier delivers the emails carrying raw single-use tokens.
type Notifier interface {
	SendVerification(ctx context.Context, to, name, rawToken, validity string) error
	SendPasswordReset(ctx context.Context, to, name, rawToken, validity string) error
}

// TokenIssuer mints access and refresh tokens and verifies refresh tokens.
type TokenIssuer interface {
	IssueAccess(accountID string, role models.Role) (string, error)
	IssueRefresh(accountID string, role models.Role) (string, error)
	VerifyRefresh(token string) (*auth.Claims, error)
}

// IdentityOptions holds the validity windows of emailed tokens.
type IdentityOptions struct {
	VerificationTokenTTL time.Duration
	ResetTokenTTL        time.Duration
}

// IdentityService drives the account lifecycle: registration, email
// verification, login, password reset and access token refresh.
type IdentityService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	creds       *CredentialStore
	tokens      TokenIssuer
	notifier    Notifier
	opts        IdentityOptions
	logger      logging.Logger
	now         func() time.Time

	dummyMu     sync.Mutex
	dummyDigest string
}

// NewIdentityService wires the service. db may be nil when repomanager is
// not backed by SQL; operations then run without a transaction.
func NewIdentityService(db *sql.DB, m repomanager.RepositoryManager, creds *CredentialStore, tokens TokenIssuer, n Notifier, opts IdentityOptions, l logging.Logger) *IdentityService {
	return &IdentityService{
		db:          db,
		repomanager: m,
		creds:       creds,
		tokens:      tokens,
		notifier:    n,
		opts:        opts,
		logger:      l.With("module", "identity"),
		now:         time.Now,
	}
}

// WithClock replaces the time source; used by tests.
func (s *IdentityService) WithClock(now func() time.Time) *IdentityService {
	s.now = now
	return s
}

// RegisterResult is returned by Register. VerificationHandle is the raw
// verification token; it is never stored.
type RegisterResult struct {
	Account            *models.Account
	VerificationHandle string
	// DeliveryErr is set when the account and token were stored but the
	// email could not be sent.
	DeliveryErr error
}

// ResendResult is returned by ResendVerification.
type ResendResult struct {
	AlreadyVerified    bool
	VerificationHandle string
	DeliveryErr        error
}

// LoginResult carries the authenticated account and its token pair.
type LoginResult struct {
	Account      *models.Account
	AccessToken  string
	RefreshToken string
}

// ForgotResult is returned by ForgotPassword.
type ForgotResult struct {
	// ResetHandle is empty when no account matched.
	ResetHandle string
	DeliveryErr error
}

func (s *IdentityService) accounts() accounts.Repository {
	return s.repomanager.Accounts(s.db)
}

func (s *IdentityService) inTx(ctx context.Context, fn func(ctx context.Context, repo accounts.Repository) error) error {
	if s.db == nil {
		return fn(ctx, s.repomanager.Accounts(nil))
	}
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return fn(ctx, s.repomanager.Accounts(tx))
	})
}

// fail passes domain errors through and hides everything else behind
// ErrorInternal after logging it.
func (s *IdentityService) fail(ctx context.Context, op string, err error) error {
	if isDomainError(err) {
		return err
	}
	s.logger.Error(ctx, op+" failed", "error", err)
	return common.ErrorInternal
}

func (s *IdentityService) newPendingToken() (string, models.PendingToken, error) {
	raw, digest, err := cryptox.GenerateOpaqueToken()
	if err != nil {
		return "", models.PendingToken{}, err
	}
	return raw, models.PendingToken{Digest: digest}, nil
}

func humanTTL(d time.Duration) string {
	if d%time.Hour == 0 {
		h := int(d / time.Hour)
		if h == 1 {
			return "1 hour"
		}
		return fmt.Sprintf("%d hours", h)
	}
	return d.String()
}

// Register creates an unverified account and emails a verification link.
// Public registration cannot create admins.
func (s *IdentityService) Register(ctx context.Context, displayName, email, password, role string) (*RegisterResult, error) {
	r, err := models.ParseRole(role)
	if err != nil || r == models.RoleAdmin {
		return nil, fmt.Errorf("%w: %w", common.ErrValidation, common.ErrRoleInvalid)
	}

	raw, token, err := s.newPendingToken()
	if err != nil {
		return nil, s.fail(ctx, "register", err)
	}
	token.ExpiresAt = s.now().Add(s.opts.VerificationTokenTTL)

	var acc *models.Account
	err = s.inTx(ctx, func(ctx context.Context, repo accounts.Repository) error {
		var err error
		acc, err = s.creds.Create(ctx, repo, NewAccount{
			DisplayName: displayName,
			Email:       email,
			Password:    password,
			Role:        r,
		})
		if err != nil {
			return err
		}
		if err := repo.SetVerificationToken(ctx, acc.ID, token); err != nil {
			return err
		}
		acc.EmailVerification = &token
		return nil
	})
	if err != nil {
		return nil, s.fail(ctx, "register", err)
	}

	s.logger.Info(ctx, "account registered", "account_id", acc.ID, "role", acc.Role)

	res := &RegisterResult{Account: acc, VerificationHandle: raw}
	if err := s.notifier.SendVerification(ctx, acc.Email, acc.DisplayName, raw, humanTTL(s.opts.VerificationTokenTTL)); err != nil {
		s.logger.Warn(ctx, "verification email not delivered", "account_id", acc.ID, "error", err)
		res.DeliveryErr = err
	}
	return res, nil
}

// VerifyEmail redeems a verification token and marks the email verified.
// Unknown, used and expired tokens all give ErrInvalidOrExpiredToken.
func (s *IdentityService) VerifyEmail(ctx context.Context, rawToken string) (*models.Account, error) {
	if rawToken == "" {
		return nil, common.ErrInvalidOrExpiredToken
	}

	acc, err := s.accounts().ConsumeVerificationToken(ctx, cryptox.DigestOpaqueToken(rawToken), s.now())
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrInvalidOrExpiredToken
		}
		return nil, s.fail(ctx, "verify email", err)
	}

	s.logger.Info(ctx, "email verified", "account_id", acc.ID)
	return acc, nil
}

// ResendVerification replaces any pending verification token with a new one.
// Unknown addresses get the same answer as a successful resend.
func (s *IdentityService) ResendVerification(ctx context.Context, email string) (*ResendResult, error) {
	email, err := s.creds.CheckEmail(email)
	if err != nil {
		return nil, err
	}

	repo := s.accounts()
	acc, err := repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return &ResendResult{}, nil
		}
		return nil, s.fail(ctx, "resend verification", err)
	}
	if acc.EmailVerified {
		return &ResendResult{AlreadyVerified: true}, nil
	}

	raw, token, err := s.newPendingToken()
	if err != nil {
		return nil, s.fail(ctx, "resend verification", err)
	}
	token.ExpiresAt = s.now().Add(s.opts.VerificationTokenTTL)

	if err := repo.SetVerificationToken(ctx, acc.ID, token); err != nil {
		return nil, s.fail(ctx, "resend verification", err)
	}

	res := &ResendResult{VerificationHandle: raw}
	if err := s.notifier.SendVerification(ctx, acc.Email, acc.DisplayName, raw, humanTTL(s.opts.VerificationTokenTTL)); err != nil {
		s.logger.Warn(ctx, "verification email not delivered", "account_id", acc.ID, "error", err)
		res.DeliveryErr = err
	}
	return res, nil
}

// dummy returns a digest to verify against when the email is unknown, so
// such logins cost as much as a wrong password. It is computed off the
// request's cancellation and cached only once hashing succeeded.
func (s *IdentityService) dummy(ctx context.Context) string {
	s.dummyMu.Lock()
	defer s.dummyMu.Unlock()

	if s.dummyDigest == "" {
		d, err := s.creds.hasher.Hash(context.WithoutCancel(ctx), "coursehub-dummy-password")
		if err != nil {
			s.logger.Error(ctx, "dummy digest", "error", err)
			return ""
		}
		s.dummyDigest = d
	}
	return s.dummyDigest
}

// Login checks credentials and issues an access and a refresh token. Unknown
// email and wrong password produce the same error.
func (s *IdentityService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = models.NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, validationError("email and password are required")
	}

	repo := s.accounts()
	acc, err := repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.creds.dummyVerify(ctx, s.dummy(ctx))
			return nil, common.ErrInvalidCredentials
		}
		return nil, s.fail(ctx, "login", err)
	}

	ok, err := s.creds.Authenticate(ctx, repo, acc, password)
	if err != nil {
		return nil, s.fail(ctx, "login", err)
	}
	if !ok {
		return nil, common.ErrInvalidCredentials
	}
	if !acc.EmailVerified {
		return nil, common.ErrEmailNotVerified
	}

	access, err := s.tokens.IssueAccess(acc.ID, acc.Role)
	if err != nil {
		return nil, s.fail(ctx, "login", err)
	}
	refresh, err := s.tokens.IssueRefresh(acc.ID, acc.Role)
	if err != nil {
		return nil, s.fail(ctx, "login", err)
	}

	s.logger.Info(ctx, "login", "account_id", acc.ID)
	return &LoginResult{Account: acc, AccessToken: access, RefreshToken: refresh}, nil
}

// ForgotPassword issues a reset token when the account exists. The outcome
// looks the same to callers either way.
func (s *IdentityService) ForgotPassword(ctx context.Context, email string) (*ForgotResult, error) {
	email, err := s.creds.CheckEmail(email)
	if err != nil {
		return nil, err
	}

	repo := s.accounts()
	acc, err := repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.logger.Debug(ctx, "password reset requested for unknown email")
			return &ForgotResult{}, nil
		}
		return nil, s.fail(ctx, "forgot password", err)
	}

	raw, token, err := s.newPendingToken()
	if err != nil {
		return nil, s.fail(ctx, "forgot password", err)
	}
	token.ExpiresAt = s.now().Add(s.opts.ResetTokenTTL)

	if err := repo.SetResetToken(ctx, acc.ID, token); err != nil {
		return nil, s.fail(ctx, "forgot password", err)
	}

	res := &ForgotResult{ResetHandle: raw}
	if err := s.notifier.SendPasswordReset(ctx, acc.Email, acc.DisplayName, raw, humanTTL(s.opts.ResetTokenTTL)); err != nil {
		s.logger.Warn(ctx, "reset email not delivered", "account_id", acc.ID, "error", err)
		res.DeliveryErr = err
	}
	return res, nil
}

// ResetPassword redeems a reset token and sets the new password in the same
// conditional update.
func (s *IdentityService) ResetPassword(ctx context.Context, rawToken, newPassword string) error {
	if err := s.creds.CheckPassword(newPassword); err != nil {
		return err
	}
	if rawToken == "" {
		return common.ErrInvalidOrExpiredToken
	}

	digest, err := s.creds.HashPassword(ctx, newPassword)
	if err != nil {
		return s.fail(ctx, "reset password", err)
	}

	acc, err := s.accounts().ConsumeResetToken(ctx, cryptox.DigestOpaqueToken(rawToken), s.now(), digest)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrInvalidOrExpiredToken
		}
		return s.fail(ctx, "reset password", err)
	}

	s.logger.Info(ctx, "password reset", "account_id", acc.ID)
	return nil
}

// RefreshAccessToken mints a new access token carrying the account's current
// role. The refresh token itself is neither rotated nor revoked.
func (s *IdentityService) RefreshAccessToken(ctx context.Context, refreshToken string) (string, *models.Account, error) {
	if refreshToken == "" {
		return "", nil, common.ErrUnauthorized
	}

	claims, err := s.tokens.VerifyRefresh(refreshToken)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", common.ErrUnauthorized, err)
	}

	acc, err := s.accounts().FindByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", nil, common.ErrUnauthorized
		}
		return "", nil, s.fail(ctx, "refresh", err)
	}

	access, err := s.tokens.IssueAccess(acc.ID, acc.Role)
	if err != nil {
		return "", nil, s.fail(ctx, "refresh", err)
	}
	return access, acc, nil
}

// GetProfile returns the account behind an authenticated identity.
func (s *IdentityService) GetProfile(ctx context.Context, accountID string) (*models.Account, error) {
	acc, err := s.accounts().FindByID(ctx, accountID)
	if err != nil {
		return nil, s.fail(ctx, "get profile", err)
	}
	return acc, nil
}

// ChangePassword requires the current password. Any pending reset token is
// dropped.
func (s *IdentityService) ChangePassword(ctx context.Context, accountID, currentPassword, newPassword string) error {
	if err := s.creds.CheckPassword(newPassword); err != nil {
		return err
	}

	repo := s.accounts()
	acc, err := repo.FindByID(ctx, accountID)
	if err != nil {
		return s.fail(ctx, "change password", err)
	}

	ok, err := s.creds.hasher.Verify(ctx, currentPassword, acc.PasswordDigest)
	if err != nil {
		return s.fail(ctx, "change password", err)
	}
	if !ok {
		return common.ErrInvalidCredentials
	}

	if err := s.creds.SetPassword(ctx, repo, acc.ID, newPassword); err != nil {
		return s.fail(ctx, "change password", err)
	}

	s.logger.Info(ctx, "password changed", "account_id", acc.ID)
	return nil
}

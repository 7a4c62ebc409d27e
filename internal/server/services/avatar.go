package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/coursehub/internal/common"
	"github.com/dmitrijs2005/coursehub/internal/logging"
	"github.com/dmitrijs2005/coursehub/internal/server/models"
	"github.com/dmitrijs2005/coursehub/internal/server/objectstore"
	"github.com/dmitrijs2005/coursehub/internal/server/repositories/accounts"
	"github.com/dmitrijs2005/coursehub/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// ObjectStore is the bucket holding uploaded profile images.
type ObjectStore interface {
	PresignPut(ctx context.Context, key, contentType string, ttl time.Duration) (string, error)
	PresignGet(ctx context.Context, key string, ttl time.Duration) (string, error)
	Stat(ctx context.Context, key string) (*objectstore.ObjectInfo, error)
	Delete(ctx context.Context, key string) error
}

type AvatarOptions struct {
	UploadTTL   time.Duration
	DownloadTTL time.Duration
	MaxBytes    int64
}

// avatarTypes maps accepted content types to the key extension.
var avatarTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

// AvatarUpload tells the client where to PUT the image. The Content-Type
// header of the PUT must equal ContentType.
type AvatarUpload struct {
	Key         string
	UploadURL   string
	ContentType string
	ExpiresAt   time.Time
}

type AvatarLink struct {
	URL       string
	ExpiresAt time.Time
}

// AvatarService lets an account attach a profile image. The image goes
// straight to object storage through a presigned URL; the account only
// records the key once the upload is confirmed.
type AvatarService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	store       ObjectStore
	opts        AvatarOptions
	logger      logging.Logger
	now         func() time.Time
}

func NewAvatarService(db *sql.DB, m repomanager.RepositoryManager, store ObjectStore, opts AvatarOptions, l logging.Logger) *AvatarService {
	return &AvatarService{
		db:          db,
		repomanager: m,
		store:       store,
		opts:        opts,
		logger:      l.With("module", "avatar"),
		now:         time.Now,
	}
}

// WithClock replaces the time source; used by tests.
func (s *AvatarService) WithClock(now func() time.Time) *AvatarService {
	s.now = now
	return s
}

func (s *AvatarService) accounts() accounts.Repository {
	return s.repomanager.Accounts(s.db)
}

func (s *AvatarService) fail(ctx context.Context, op string, err error) error {
	if isDomainError(err) {
		return err
	}
	s.logger.Error(ctx, op+" failed", "error", err)
	return common.ErrorInternal
}

func avatarPrefix(accountID string) string {
	return "avatars/" + accountID + "/"
}

func allowedAvatarTypes() string {
	return "image/jpeg, image/png, image/webp"
}

// CreateUpload signs a single PUT for a fresh key under the account's
// prefix.
func (s *AvatarService) CreateUpload(ctx context.Context, accountID, contentType string) (*AvatarUpload, error) {
	ct := strings.ToLower(strings.TrimSpace(contentType))
	ext, ok := avatarTypes[ct]
	if !ok {
		return nil, validationError("content type must be one of %s", allowedAvatarTypes())
	}

	if _, err := s.accounts().FindByID(ctx, accountID); err != nil {
		return nil, s.fail(ctx, "avatar upload", err)
	}

	now := s.now().UTC()
	key := fmt.Sprintf("%s%s/%s%s", avatarPrefix(accountID), now.Format("2006/01/02"), uuid.NewString(), ext)

	u, err := s.store.PresignPut(ctx, key, ct, s.opts.UploadTTL)
	if err != nil {
		return nil, s.fail(ctx, "avatar upload", err)
	}

	s.logger.Debug(ctx, "avatar upload signed", "account_id", accountID, "key", key)
	return &AvatarUpload{
		Key:         key,
		UploadURL:   u,
		ContentType: ct,
		ExpiresAt:   now.Add(s.opts.UploadTTL),
	}, nil
}

// Confirm attaches an uploaded object to the account. The key must have
// been issued to this account, and the object must exist with an accepted
// type and size. A replaced image is removed from the bucket.
func (s *AvatarService) Confirm(ctx context.Context, accountID, key string) (*models.Account, error) {
	if !strings.HasPrefix(key, avatarPrefix(accountID)) || strings.Contains(key, "..") {
		return nil, validationError("key was not issued to this account")
	}

	repo := s.accounts()
	prev, err := repo.FindByID(ctx, accountID)
	if err != nil {
		return nil, s.fail(ctx, "confirm avatar", err)
	}

	info, err := s.store.Stat(ctx, key)
	if errors.Is(err, objectstore.ErrObjectNotFound) {
		return nil, validationError("avatar has not been uploaded")
	}
	if err != nil {
		return nil, s.fail(ctx, "confirm avatar", err)
	}

	if _, ok := avatarTypes[strings.ToLower(info.ContentType)]; !ok {
		s.discard(ctx, key)
		return nil, validationError("content type must be one of %s", allowedAvatarTypes())
	}
	if s.opts.MaxBytes > 0 && info.Size > s.opts.MaxBytes {
		s.discard(ctx, key)
		return nil, validationError("avatar must not exceed %d bytes", s.opts.MaxBytes)
	}

	acc, err := repo.SetAvatar(ctx, accountID, key)
	if err != nil {
		return nil, s.fail(ctx, "confirm avatar", err)
	}

	if prev.AvatarKey != "" && prev.AvatarKey != key {
		s.discard(ctx, prev.AvatarKey)
	}

	s.logger.Info(ctx, "avatar updated", "account_id", accountID, "key", key)
	return acc, nil
}

// DownloadURL signs a GET for the account's current image.
func (s *AvatarService) DownloadURL(ctx context.Context, accountID string) (*AvatarLink, error) {
	acc, err := s.accounts().FindByID(ctx, accountID)
	if err != nil {
		return nil, s.fail(ctx, "avatar url", err)
	}
	if acc.AvatarKey == "" {
		return nil, common.ErrorNotFound
	}

	u, err := s.store.PresignGet(ctx, acc.AvatarKey, s.opts.DownloadTTL)
	if err != nil {
		return nil, s.fail(ctx, "avatar url", err)
	}
	return &AvatarLink{URL: u, ExpiresAt: s.now().UTC().Add(s.opts.DownloadTTL)}, nil
}

// Remove detaches the image. Removing when there is none is not an error.
func (s *AvatarService) Remove(ctx context.Context, accountID string) (*models.Account, error) {
	repo := s.accounts()
	acc, err := repo.FindByID(ctx, accountID)
	if err != nil {
		return nil, s.fail(ctx, "remove avatar", err)
	}
	if acc.AvatarKey == "" {
		return acc, nil
	}

	updated, err := repo.SetAvatar(ctx, accountID, "")
	if err != nil {
		return nil, s.fail(ctx, "remove avatar", err)
	}
	s.discard(ctx, acc.AvatarKey)

	s.logger.Info(ctx, "avatar removed", "account_id", accountID)
	return updated, nil
}

// discard deletes an object the account no longer references. A failure is
// logged and leaves the object orphaned.
func (s *AvatarService) discard(ctx context.Context, key string) {
	if err := s.store.Delete(ctx, key); err != nil {
		s.logger.Warn(ctx, "avatar object not deleted", "key", key, "error", err)
	}
}

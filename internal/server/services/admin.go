package services

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/coursehub/internal/common"
	"github.com/dmitrijs2005/coursehub/internal/logging"
	"github.com/dmitrijs2005/coursehub/internal/server/authz"
	"github.com/dmitrijs2005/coursehub/internal/server/models"
	"github.com/dmitrijs2005/coursehub/internal/server/repositories/repomanager"
)

// AdminService backs the admin console. Callers must already hold the admin
// role; the service only guards against an admin locking themselves out.
type AdminService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	creds       *CredentialStore
	objects     ObjectStore
	logger      logging.Logger
}

// NewAdminService wires the service. db may be nil for the memory store.
func NewAdminService(db *sql.DB, m repomanager.RepositoryManager, creds *CredentialStore, l logging.Logger) *AdminService {
	return &AdminService{
		db:          db,
		repomanager: m,
		creds:       creds,
		logger:      l.With("module", "admin"),
	}
}

// WithAvatarStore makes DeleteAccount also remove the account's avatar
// object.
func (s *AdminService) WithAvatarStore(st ObjectStore) *AdminService {
	s.objects = st
	return s
}

func (s *AdminService) fail(ctx context.Context, op string, err error) error {
	if isDomainError(err) {
		return err
	}
	s.logger.Error(ctx, op+" failed", "error", err)
	return common.ErrorInternal
}

// ListAccounts returns every account, oldest first.
func (s *AdminService) ListAccounts(ctx context.Context) ([]*models.Account, error) {
	list, err := s.repomanager.Accounts(s.db).List(ctx)
	if err != nil {
		return nil, s.fail(ctx, "list accounts", err)
	}
	return list, nil
}

// ChangeRole sets the role of accountID. An admin cannot demote themselves.
func (s *AdminService) ChangeRole(ctx context.Context, actor authz.Identity, accountID, role string) (*models.Account, error) {
	r, err := models.ParseRole(role)
	if err != nil || role == "" {
		return nil, validationError("role must be one of student, instructor, admin")
	}
	if actor.AccountID == accountID && r != models.RoleAdmin {
		return nil, validationError("admins cannot demote themselves")
	}

	acc, err := s.creds.SetRole(ctx, s.repomanager.Accounts(s.db), accountID, r)
	if err != nil {
		return nil, s.fail(ctx, "change role", err)
	}

	s.logger.Info(ctx, "role changed", "account_id", acc.ID, "role", acc.Role, "by", actor.AccountID)
	return acc, nil
}

// DeleteAccount removes accountID. An admin cannot delete themselves.
func (s *AdminService) DeleteAccount(ctx context.Context, actor authz.Identity, accountID string) error {
	if actor.AccountID == accountID {
		return validationError("admins cannot delete themselves")
	}

	repo := s.repomanager.Accounts(s.db)
	acc, err := repo.FindByID(ctx, accountID)
	if err != nil {
		return s.fail(ctx, "delete account", err)
	}
	if err := repo.Delete(ctx, accountID); err != nil {
		return s.fail(ctx, "delete account", err)
	}

	if s.objects != nil && acc.AvatarKey != "" {
		if err := s.objects.Delete(ctx, acc.AvatarKey); err != nil {
			s.logger.Warn(ctx, "avatar object not deleted", "key", acc.AvatarKey, "error", err)
		}
	}

	s.logger.Info(ctx, "account deleted", "account_id", accountID, "by", actor.AccountID)
	return nil
}

// Analytics holds account totals for the admin dashboard.
type Analytics struct {
	TotalUsers       int
	TotalStudents    int
	TotalInstructors int
	TotalAdmins      int
}

func (s *AdminService) Analytics(ctx context.Context) (*Analytics, error) {
	counts, err := s.repomanager.Accounts(s.db).CountByRole(ctx)
	if err != nil {
		return nil, s.fail(ctx, "analytics", err)
	}

	a := &Analytics{
		TotalStudents:    counts[models.RoleStudent],
		TotalInstructors: counts[models.RoleInstructor],
		TotalAdmins:      counts[models.RoleAdmin],
	}
	for _, n := range counts {
		a.TotalUsers += n
	}
	return a, nil
}

package accounts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/coursehub/internal/common"
	"github.com/dmitrijs2005/coursehub/internal/dbx"
	"github.com/dmitrijs2005/coursehub/internal/server/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolation = "23505"

const accountColumns = `id, display_name, email, password_digest, role, email_verified,
		email_verification_digest, email_verification_expires_at,
		password_reset_digest, password_reset_expires_at,
		avatar_key, created_at, updated_at`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccount(row rowScanner) (*models.Account, error) {
	var (
		acc                       models.Account
		role                      string
		verifyDigest, resetDigest sql.NullString
		verifyExpiry, resetExpiry sql.NullTime
		avatar                    sql.NullString
	)

	err := row.Scan(&acc.ID, &acc.DisplayName, &acc.Email, &acc.PasswordDigest, &role, &acc.EmailVerified,
		&verifyDigest, &verifyExpiry, &resetDigest, &resetExpiry, &avatar, &acc.CreatedAt, &acc.UpdatedAt)
	if err != nil {
		return nil, err
	}

	acc.Role = models.Role(role)
	acc.EmailVerification = pendingFromNull(verifyDigest, verifyExpiry)
	acc.PasswordReset = pendingFromNull(resetDigest, resetExpiry)
	acc.AvatarKey = avatar.String

	return &acc, nil
}

func pendingFromNull(d sql.NullString, t sql.NullTime) *models.PendingToken {
	if !d.Valid || !t.Valid {
		return nil
	}
	return &models.PendingToken{Digest: d.String, ExpiresAt: t.Time}
}

func pendingToNull(p *models.PendingToken) (sql.NullString, sql.NullTime) {
	if p == nil {
		return sql.NullString{}, sql.NullTime{}
	}
	return sql.NullString{String: p.Digest, Valid: true}, sql.NullTime{Time: p.ExpiresAt, Valid: true}
}

func mapError(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return common.ErrorNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return common.ErrDuplicateEmail
	}
	return fmt.Errorf("db error: %w", err)
}

func (r *PostgresRepository) Create(ctx context.Context, acc *models.Account) (*models.Account, error) {
	if acc.ID == "" {
		acc.ID = uuid.NewString()
	}
	vd, ve := pendingToNull(acc.EmailVerification)

	query :=
		`INSERT INTO accounts (id, display_name, email, password_digest, role, email_verified,
		     email_verification_digest, email_verification_expires_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING created_at, updated_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		acc.ID, acc.DisplayName, acc.Email, acc.PasswordDigest, string(acc.Role), acc.EmailVerified, vd, ve,
	).Scan(&acc.CreatedAt, &acc.UpdatedAt)
	if err != nil {
		return nil, mapError(err)
	}

	return acc, nil
}

func (r *PostgresRepository) FindByID(ctx context.Context, id string) (*models.Account, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, common.ErrorNotFound
	}
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1`

	acc, err := scanAccount(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, mapError(err)
	}
	return acc, nil
}

func (r *PostgresRepository) FindByEmail(ctx context.Context, email string) (*models.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE lower(email) = lower($1)`

	acc, err := scanAccount(r.db.QueryRowContext(ctx, query, models.NormalizeEmail(email)))
	if err != nil {
		return nil, mapError(err)
	}
	return acc, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]*models.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts ORDER BY created_at, id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Account
	for rows.Next() {
		acc, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, acc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

// exec runs an update touching a single account and reports ErrorNotFound
// when no row matched.
func (r *PostgresRepository) exec(ctx context.Context, query string, args ...any) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *PostgresRepository) SetVerificationToken(ctx context.Context, id string, token models.PendingToken) error {
	query :=
		`UPDATE accounts
		 SET email_verification_digest = $2, email_verification_expires_at = $3, updated_at = now()
		 WHERE id = $1
		 `
	return r.exec(ctx, query, id, token.Digest, token.ExpiresAt)
}

func (r *PostgresRepository) ConsumeVerificationToken(ctx context.Context, digest string, now time.Time) (*models.Account, error) {
	query :=
		`UPDATE accounts
		 SET email_verified = TRUE, email_verification_digest = NULL, email_verification_expires_at = NULL, updated_at = now()
		 WHERE email_verification_digest = $1 AND email_verification_expires_at > $2
		 RETURNING ` + accountColumns

	acc, err := scanAccount(r.db.QueryRowContext(ctx, query, digest, now))
	if err != nil {
		return nil, mapError(err)
	}
	return acc, nil
}

func (r *PostgresRepository) SetResetToken(ctx context.Context, id string, token models.PendingToken) error {
	query :=
		`UPDATE accounts
		 SET password_reset_digest = $2, password_reset_expires_at = $3, updated_at = now()
		 WHERE id = $1
		 `
	return r.exec(ctx, query, id, token.Digest, token.ExpiresAt)
}

func (r *PostgresRepository) ConsumeResetToken(ctx context.Context, digest string, now time.Time, passwordDigest string) (*models.Account, error) {
	query :=
		`UPDATE accounts
		 SET password_digest = $3, password_reset_digest = NULL, password_reset_expires_at = NULL, updated_at = now()
		 WHERE password_reset_digest = $1 AND password_reset_expires_at > $2
		 RETURNING ` + accountColumns

	acc, err := scanAccount(r.db.QueryRowContext(ctx, query, digest, now, passwordDigest))
	if err != nil {
		return nil, mapError(err)
	}
	return acc, nil
}

func (r *PostgresRepository) UpdatePassword(ctx context.Context, id string, passwordDigest string, clearReset bool) error {
	query :=
		`UPDATE accounts
		 SET password_digest = $2, updated_at = now()
		 WHERE id = $1
		 `
	if clearReset {
		query =
			`UPDATE accounts
			 SET password_digest = $2, password_reset_digest = NULL, password_reset_expires_at = NULL, updated_at = now()
			 WHERE id = $1
			 `
	}
	return r.exec(ctx, query, id, passwordDigest)
}

func (r *PostgresRepository) SetRole(ctx context.Context, id string, role models.Role) (*models.Account, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, common.ErrorNotFound
	}
	query :=
		`UPDATE accounts
		 SET role = $2, updated_at = now()
		 WHERE id = $1
		 RETURNING ` + accountColumns

	acc, err := scanAccount(r.db.QueryRowContext(ctx, query, id, string(role)))
	if err != nil {
		return nil, mapError(err)
	}
	return acc, nil
}

func (r *PostgresRepository) SetAvatar(ctx context.Context, id string, key string) (*models.Account, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, common.ErrorNotFound
	}
	query :=
		`UPDATE accounts
		 SET avatar_key = $2, updated_at = now()
		 WHERE id = $1
		 RETURNING ` + accountColumns

	acc, err := scanAccount(r.db.QueryRowContext(ctx, query, id, sql.NullString{String: key, Valid: key != ""}))
	if err != nil {
		return nil, mapError(err)
	}
	return acc, nil
}

func (r *PostgresRepository) CountByRole(ctx context.Context) (map[models.Role]int, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT role, count(*) FROM accounts GROUP BY role`)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make(map[models.Role]int)
	for rows.Next() {
		var (
			role string
			n    int
		)
		if err := rows.Scan(&role, &n); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result[models.Role(role)] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return common.ErrorNotFound
	}
	return r.exec(ctx, `DELETE FROM accounts WHERE id = $1`, id)
}

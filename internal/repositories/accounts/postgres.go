package accounts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/authkeeper/internal/common"
	"github.com/dmitrijs2005/authkeeper/internal/dbx"
	"github.com/dmitrijs2005/authkeeper/internal/models"
	"github.com/jackc/pgx/v5/pgconn"
)

// Unique index names from the accounts migration. The insert relies on these
// constraints for atomic duplicate detection under concurrent creations.
const (
	usernameConstraint = "accounts_username_key"
	emailConstraint    = "accounts_email_key"
)

const pgUniqueViolation = "23505"

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const accountColumns = `id, username, email, password_hash,
		is_active, is_staff, is_superuser,
		first_name, last_name, city, state, country,
		is_official_page, activation_token, created_at, updated_at`

func (r *PostgresRepository) Create(ctx context.Context, account *models.Account) (*models.Account, error) {

	query :=
		`INSERT INTO accounts (username, email, password_hash,
			is_active, is_staff, is_superuser,
			first_name, last_name, city, state, country,
			is_official_page, activation_token)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		 RETURNING id, created_at, updated_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		account.Username, account.Email, account.PasswordHash,
		account.IsActive, account.IsStaff, account.IsSuperuser,
		account.FirstName, account.LastName, account.City, account.State, account.Country,
		account.IsOfficialPage, account.ActivationToken).
		Scan(&account.ID, &account.CreatedAt, &account.UpdatedAt)

	if err != nil {
		if dup := duplicateKeyError(err); dup != nil {
			return nil, dup
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return account, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.Account, error) {
	return r.getByKey(ctx, "id", id)
}

func (r *PostgresRepository) GetByUsername(ctx context.Context, username string) (*models.Account, error) {
	return r.getByKey(ctx, "username", username)
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	return r.getByKey(ctx, "email", email)
}

func (r *PostgresRepository) GetByActivationToken(ctx context.Context, token string) (*models.Account, error) {
	if token == "" {
		return nil, common.ErrorNotFound
	}
	return r.getByKey(ctx, "activation_token", token)
}

func (r *PostgresRepository) getByKey(ctx context.Context, column string, value any) (*models.Account, error) {
	query := fmt.Sprintf(`SELECT %s FROM accounts WHERE %s = $1`, accountColumns, column)

	account := &models.Account{}
	err := r.db.QueryRowContext(ctx, query, value).Scan(
		&account.ID, &account.Username, &account.Email, &account.PasswordHash,
		&account.IsActive, &account.IsStaff, &account.IsSuperuser,
		&account.FirstName, &account.LastName, &account.City, &account.State, &account.Country,
		&account.IsOfficialPage, &account.ActivationToken, &account.CreatedAt, &account.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return account, nil
}

func (r *PostgresRepository) Update(ctx context.Context, account *models.Account) error {
	query :=
		`UPDATE accounts SET
			username = $2, email = $3, password_hash = $4,
			is_active = $5, is_staff = $6, is_superuser = $7,
			first_name = $8, last_name = $9, city = $10, state = $11, country = $12,
			is_official_page = $13, activation_token = $14, updated_at = now()
		 WHERE id = $1
		 RETURNING updated_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		account.ID, account.Username, account.Email, account.PasswordHash,
		account.IsActive, account.IsStaff, account.IsSuperuser,
		account.FirstName, account.LastName, account.City, account.State, account.Country,
		account.IsOfficialPage, account.ActivationToken).
		Scan(&account.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return common.ErrorNotFound
		}
		if dup := duplicateKeyError(err); dup != nil {
			return dup
		}
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

// duplicateKeyError translates a unique-violation reported by Postgres into
// the matching sentinel, or returns nil when err is something else.
func duplicateKeyError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != pgUniqueViolation {
		return nil
	}
	switch pgErr.ConstraintName {
	case usernameConstraint:
		return common.ErrDuplicateUsername
	case emailConstraint:
		return common.ErrDuplicateEmail
	default:
		return nil
	}
}

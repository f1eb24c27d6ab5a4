// Package services contains the business logic of the identity core. This
// file implements AccountService, the gatekeeper for account creation and the
// sole writer of password hashes.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/authkeeper/internal/auth"
	"github.com/dmitrijs2005/authkeeper/internal/common"
	"github.com/dmitrijs2005/authkeeper/internal/config"
	"github.com/dmitrijs2005/authkeeper/internal/cryptox"
	"github.com/dmitrijs2005/authkeeper/internal/dbx"
	"github.com/dmitrijs2005/authkeeper/internal/identity"
	"github.com/dmitrijs2005/authkeeper/internal/models"
	"github.com/dmitrijs2005/authkeeper/internal/repositories/repomanager"
	"github.com/google/uuid"
)

// Advisory length bounds for the optional profile attributes. Values beyond
// these are rejected rather than truncated.
const (
	maxNameLen     = 20
	maxLocationLen = 50
)

// Credentials is the raw input to account creation. Username, email and
// password are the credential triple; the remaining fields are optional
// profile attributes copied verbatim onto the account.
type Credentials struct {
	Username string
	Email    string
	Password string

	FirstName *string
	LastName  *string
	City      *string
	State     *string
	Country   *string

	OfficialPage bool
}

// AccountService provides account-related operations:
//   - CreateAccount / CreateSuperuser: validated creation
//   - Activate: flip the account active after an out-of-band confirmation
//   - Authenticate: verify a username/password pair
//   - UpdatePassword: rehash and store a new password
//
// It never logs and never stores plaintext passwords; failures surface as
// sentinel errors from internal/common.
type AccountService struct {
	db         *sql.DB
	repos      repomanager.RepositoryManager
	issuer     *auth.Issuer
	bcryptCost int
}

// NewAccountService constructs an AccountService using repositories and
// config. Extra issuer options (e.g. auth.WithClock) are applied to the token
// issuer, so tests can pin time.
func NewAccountService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config, opts ...auth.Option) *AccountService {
	return &AccountService{
		db:         db,
		repos:      m,
		issuer:     auth.NewIssuer([]byte(cfg.SecretKey), cfg.TokenValidityDuration, opts...),
		bcryptCost: cfg.BcryptCost,
	}
}

// CreateAccount validates the credentials, hashes the password, and persists
// a new inactive, non-staff, non-superuser account. Email is normalized
// (domain lowercased) before the uniqueness check; uniqueness is enforced
// atomically with the insert, so a losing concurrent creation surfaces as
// ErrDuplicateUsername / ErrDuplicateEmail. Returns the identity session
// wrapping the stored account.
func (s *AccountService) CreateAccount(ctx context.Context, creds Credentials) (*identity.Session, error) {
	if creds.Username == "" {
		return nil, common.ErrMissingUsername
	}
	if creds.Email == "" {
		return nil, common.ErrMissingEmail
	}
	if err := validateProfile(creds); err != nil {
		return nil, err
	}

	hash, err := s.hashPassword(creds.Password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	account := &models.Account{
		Username:        creds.Username,
		Email:           common.NormalizeEmail(creds.Email),
		PasswordHash:    hash,
		FirstName:       creds.FirstName,
		LastName:        creds.LastName,
		City:            creds.City,
		State:           creds.State,
		Country:         creds.Country,
		IsOfficialPage:  creds.OfficialPage,
		ActivationToken: uuid.NewString(),
	}

	repo := s.repos.Accounts(s.db)
	created, err := repo.Create(ctx, account)
	if err != nil {
		if errors.Is(err, common.ErrDuplicateUsername) || errors.Is(err, common.ErrDuplicateEmail) {
			return nil, err
		}
		return nil, fmt.Errorf("error creating account: %w", err)
	}

	return identity.NewSession(created, s.issuer), nil
}

// CreateSuperuser creates an account and elevates it to staff + superuser.
// Unlike CreateAccount, the password must be supplied synchronously. The
// elevation update runs in its own transaction, mirroring the two-step
// create-then-promote flow.
func (s *AccountService) CreateSuperuser(ctx context.Context, creds Credentials) (*identity.Session, error) {
	if creds.Password == "" {
		return nil, common.ErrMissingPassword
	}

	session, err := s.CreateAccount(ctx, creds)
	if err != nil {
		return nil, err
	}

	account := session.Account
	account.IsSuperuser = true
	account.IsStaff = true

	if err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return s.repos.Accounts(tx).Update(ctx, account)
	}); err != nil {
		return nil, fmt.Errorf("error elevating account: %w", err)
	}

	return session, nil
}

// GetByUsername returns the identity session for an existing account.
func (s *AccountService) GetByUsername(ctx context.Context, username string) (*identity.Session, error) {
	account, err := s.repos.Accounts(s.db).GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return identity.NewSession(account, s.issuer), nil
}

// Activate marks the account holding the activation token as active and
// burns the token. Unknown tokens yield common.ErrorNotFound.
func (s *AccountService) Activate(ctx context.Context, token string) (*identity.Session, error) {
	repo := s.repos.Accounts(s.db)

	account, err := repo.GetByActivationToken(ctx, token)
	if err != nil {
		return nil, err
	}

	account.IsActive = true
	account.ActivationToken = ""

	if err := repo.Update(ctx, account); err != nil {
		return nil, fmt.Errorf("error activating account: %w", err)
	}

	return identity.NewSession(account, s.issuer), nil
}

// Authenticate verifies the username/password pair and returns the account's
// session. Unknown usernames, wrong passwords, and accounts without a usable
// password all yield common.ErrorUnauthorized, so callers cannot distinguish
// them.
func (s *AccountService) Authenticate(ctx context.Context, username, password string) (*identity.Session, error) {
	account, err := s.repos.Accounts(s.db).GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, common.ErrorInternal
	}

	if !cryptox.CheckPassword(account.PasswordHash, password) {
		return nil, common.ErrorUnauthorized
	}

	return identity.NewSession(account, s.issuer), nil
}

// UpdatePassword rehashes and stores a new password for the account.
func (s *AccountService) UpdatePassword(ctx context.Context, id int64, password string) error {
	if password == "" {
		return common.ErrMissingPassword
	}

	repo := s.repos.Accounts(s.db)

	account, err := repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	hash, err := cryptox.HashPassword(password, s.bcryptCost)
	if err != nil {
		return fmt.Errorf("error hashing password: %w", err)
	}
	account.PasswordHash = hash

	if err := repo.Update(ctx, account); err != nil {
		return fmt.Errorf("error updating password: %w", err)
	}
	return nil
}

// Session wraps an already-fetched account in an identity session.
func (s *AccountService) Session(account *models.Account) *identity.Session {
	return identity.NewSession(account, s.issuer)
}

// hashPassword hashes the plaintext, or produces an unusable marker when no
// password was supplied. The hash slot is never left empty.
func (s *AccountService) hashPassword(password string) (string, error) {
	if password == "" {
		return cryptox.MakeUnusablePassword()
	}
	return cryptox.HashPassword(password, s.bcryptCost)
}

func validateProfile(creds Credentials) error {
	for field, check := range map[string]struct {
		value *string
		max   int
	}{
		"first_name": {creds.FirstName, maxNameLen},
		"last_name":  {creds.LastName, maxNameLen},
		"city":       {creds.City, maxLocationLen},
		"state":      {creds.State, maxLocationLen},
		"country":    {creds.Country, maxLocationLen},
	} {
		if check.value != nil && len([]rune(*check.value)) > check.max {
			return fmt.Errorf("%w: %s", common.ErrFieldTooLong, field)
		}
	}
	return nil
}

package models

import "time"

// Account is a persisted identity record. Username and email are unique
// across all accounts; email is stored in normalized form (domain lowercased).
// PasswordHash is never empty once the account exists: it holds either a
// bcrypt hash or an unusable marker when no password was supplied.
type Account struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string

	IsActive    bool
	IsStaff     bool
	IsSuperuser bool

	// Optional profile attributes; nil when the caller did not supply them.
	FirstName *string
	LastName  *string
	City      *string
	State     *string
	Country   *string

	// IsOfficialPage marks organizational accounts. Orthogonal to all
	// access-control flags.
	IsOfficialPage bool

	// ActivationToken is assigned at creation and cleared once the account
	// is activated.
	ActivationToken string

	CreatedAt time.Time
	UpdatedAt time.Time
}

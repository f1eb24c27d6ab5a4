// Package identity wraps a persisted account with its derived behaviors:
// display-name composition and bearer-token issuance. Sessions hold no state
// of their own beyond the account reference and the shared token issuer.
package identity

import (
	"strings"

	"github.com/dmitrijs2005/authkeeper/internal/auth"
	"github.com/dmitrijs2005/authkeeper/internal/models"
)

// Session is the behavioral view of a persisted Account. Sessions are
// produced by the account service; constructing one does not touch storage.
type Session struct {
	Account *models.Account

	issuer *auth.Issuer
}

// NewSession binds an account to the token issuer.
func NewSession(account *models.Account, issuer *auth.Issuer) *Session {
	return &Session{Account: account, issuer: issuer}
}

// DisplayName returns "FirstName LastName". Absent fields render as empty
// and the result is space-trimmed, so an account with neither field set
// yields "".
func (s *Session) DisplayName() string {
	first := deref(s.Account.FirstName)
	last := deref(s.Account.LastName)
	return strings.TrimSpace(first + " " + last)
}

// ShortDisplayName returns the first name alone, or "" when unset.
func (s *Session) ShortDisplayName() string {
	return deref(s.Account.FirstName)
}

// IssueToken returns a signed token asserting this account's identity,
// expiring at issuance time plus the configured validity (60 days by
// default). It reads the clock and nothing else.
func (s *Session) IssueToken() (string, error) {
	return s.issuer.IssueToken(s.Account.ID)
}

// String returns the account's email, the conventional console
// representation of an account.
func (s *Session) String() string {
	return s.Account.Email
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

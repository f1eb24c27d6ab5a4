// Package auth issues and verifies the signed bearer tokens that prove an
// account's identity. Tokens are HS256 JWTs carrying the account ID and an
// expiry timestamp; the signing secret is process-wide and immutable.
package auth

import (
	"errors"
	"time"

	"github.com/dmitrijs2005/authkeeper/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims is the token payload: the registered claims (exp) plus the
// account identifier under the "id" key.
type Claims struct {
	jwt.RegisteredClaims
	AccountID int64 `json:"id"`
}

// Issuer signs and verifies account tokens. The zero value is unusable;
// construct with NewIssuer. Issuers are safe for concurrent use: issuance is
// pure computation and never mutates shared state.
type Issuer struct {
	secret   []byte
	validity time.Duration
	now      func() time.Time
}

// Option configures an Issuer.
type Option func(*Issuer)

// WithClock replaces the time source, letting tests pin "now" and assert
// exact expiry timestamps.
func WithClock(now func() time.Time) Option {
	return func(i *Issuer) { i.now = now }
}

// NewIssuer builds an Issuer from the process-wide signing secret and the
// fixed token validity. An empty secret is tolerated here; IssueToken
// reports it as ErrSigningUnavailable.
func NewIssuer(secret []byte, validity time.Duration, opts ...Option) *Issuer {
	i := &Issuer{secret: secret, validity: validity, now: time.Now}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// IssueToken returns a signed token asserting {id, exp} for the account,
// with exp = now + validity.
func (i *Issuer) IssueToken(accountID int64) (string, error) {
	if len(i.secret) == 0 {
		return "", common.ErrSigningUnavailable
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(i.now().Add(i.validity)),
		},
		AccountID: accountID,
	})

	tokenString, err := token.SignedString(i.secret)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// AccountIDFromToken verifies the token's signature and expiry and returns
// the account ID it asserts. Expired tokens yield common.ErrTokenExpired;
// any other verification failure yields common.ErrInvalidToken.
func (i *Issuer) AccountIDFromToken(tokenString string) (int64, error) {
	if len(i.secret) == 0 {
		return 0, common.ErrSigningUnavailable
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return i.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return 0, common.ErrTokenExpired
		}
		return 0, common.ErrInvalidToken
	}

	if !token.Valid {
		return 0, common.ErrInvalidToken
	}

	return claims.AccountID, nil
}

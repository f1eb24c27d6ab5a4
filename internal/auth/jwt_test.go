package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/authkeeper/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

const tokenValidity = 60 * 24 * time.Hour

func TestIssueToken_ClaimsIDAndExpiry(t *testing.T) {
	t.Parallel()

	issuedAt := time.Now()
	issuer := NewIssuer([]byte("super-secret"), tokenValidity, WithClock(func() time.Time { return issuedAt }))

	tok, err := issuer.IssueToken(42)
	if err != nil {
		t.Fatalf("IssueToken error: %v", err)
	}

	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(tok, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte("super-secret"), nil
	})
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if !parsed.Valid {
		t.Fatalf("token must verify with the right secret")
	}
	if claims.AccountID != 42 {
		t.Fatalf("id claim mismatch: got %d want 42", claims.AccountID)
	}
	wantExp := issuedAt.Add(tokenValidity).Unix()
	if got := claims.ExpiresAt.Unix(); got != wantExp {
		t.Fatalf("exp claim mismatch: got %d want %d", got, wantExp)
	}
}

func TestIssueAndVerify_RoundTrip(t *testing.T) {
	t.Parallel()

	issuer := NewIssuer([]byte("super-secret"), time.Hour)

	tok, err := issuer.IssueToken(7)
	if err != nil {
		t.Fatalf("IssueToken error: %v", err)
	}

	id, err := issuer.AccountIDFromToken(tok)
	if err != nil {
		t.Fatalf("AccountIDFromToken error: %v", err)
	}
	if id != 7 {
		t.Fatalf("account ID mismatch: got %d want 7", id)
	}
}

func TestAccountIDFromToken_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := NewIssuer([]byte("right-secret"), time.Hour).IssueToken(7)
	if err != nil {
		t.Fatalf("IssueToken error: %v", err)
	}

	_, err = NewIssuer([]byte("wrong-secret"), time.Hour).AccountIDFromToken(tok)
	if !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("expected common.ErrInvalidToken, got %v", err)
	}
}

func TestAccountIDFromToken_Expired(t *testing.T) {
	t.Parallel()

	issuer := NewIssuer([]byte("secret"), time.Hour)

	past := time.Now().Add(-2 * time.Hour)
	expired, err := NewIssuer([]byte("secret"), time.Hour, WithClock(func() time.Time { return past })).IssueToken(1)
	if err != nil {
		t.Fatalf("IssueToken error: %v", err)
	}

	_, err = issuer.AccountIDFromToken(expired)
	if !errors.Is(err, common.ErrTokenExpired) {
		t.Fatalf("expected common.ErrTokenExpired, got %v", err)
	}
}

func TestIssueToken_MissingSecret(t *testing.T) {
	t.Parallel()

	issuer := NewIssuer(nil, time.Hour)

	_, err := issuer.IssueToken(1)
	if !errors.Is(err, common.ErrSigningUnavailable) {
		t.Fatalf("expected common.ErrSigningUnavailable, got %v", err)
	}
}

func TestAccountIDFromToken_MalformedString(t *testing.T) {
	t.Parallel()

	_, err := NewIssuer([]byte("k"), time.Hour).AccountIDFromToken("not.a.jwt")
	if !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("expected common.ErrInvalidToken, got %v", err)
	}
}

package cryptox

import (
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword_RoundTrip(t *testing.T) {
	hash, err := HashPassword("s3cret", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if hash == "" || hash == "s3cret" {
		t.Fatalf("hash must be non-empty and differ from plaintext, got %q", hash)
	}
	if !CheckPassword(hash, "s3cret") {
		t.Fatalf("CheckPassword must accept the original password")
	}
	if CheckPassword(hash, "wrong") {
		t.Fatalf("CheckPassword must reject a wrong password")
	}
}

func TestHashPassword_DefaultCost(t *testing.T) {
	hash, err := HashPassword("pw", 0)
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	cost, err := bcrypt.Cost([]byte(hash))
	if err != nil {
		t.Fatalf("bcrypt.Cost error: %v", err)
	}
	if cost != bcrypt.DefaultCost {
		t.Fatalf("expected default cost %d, got %d", bcrypt.DefaultCost, cost)
	}
}

func TestMakeUnusablePassword(t *testing.T) {
	m1, err := MakeUnusablePassword()
	if err != nil {
		t.Fatalf("MakeUnusablePassword error: %v", err)
	}
	if !strings.HasPrefix(m1, UnusablePasswordPrefix) {
		t.Fatalf("marker %q must start with %q", m1, UnusablePasswordPrefix)
	}
	if !IsUnusablePassword(m1) {
		t.Fatalf("IsUnusablePassword must report true for %q", m1)
	}
	if CheckPassword(m1, "") || CheckPassword(m1, m1) {
		t.Fatalf("unusable marker must never verify")
	}

	m2, err := MakeUnusablePassword()
	if err != nil {
		t.Fatalf("MakeUnusablePassword error: %v", err)
	}
	if m1 == m2 {
		t.Fatalf("two markers must not compare equal")
	}
}

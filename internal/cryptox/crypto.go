// Package cryptox wraps the password-hashing primitives used by the account
// store. Plaintext passwords exist only transiently inside these functions;
// nothing here logs or retains them.
package cryptox

import (
	"strings"

	"github.com/dmitrijs2005/authkeeper/internal/common"
	"golang.org/x/crypto/bcrypt"
)

// UnusablePasswordPrefix marks hashes that can never verify against any
// password. Accounts created without a password get such a marker instead of
// an empty hash.
const UnusablePasswordPrefix = "!"

// HashPassword derives a salted bcrypt hash from the plaintext password.
// The cost factor is a deployment concern; pass 0 to use bcrypt.DefaultCost.
func HashPassword(password string, cost int) (string, error) {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether candidate matches the stored hash.
// Unusable hashes never match.
func CheckPassword(hash, candidate string) bool {
	if IsUnusablePassword(hash) {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(candidate)) == nil
}

// MakeUnusablePassword returns a marker that occupies the password-hash slot
// without ever verifying. The random suffix keeps markers from comparing
// equal across accounts.
func MakeUnusablePassword() (string, error) {
	suffix, err := common.MakeRandHexString(20)
	if err != nil {
		return "", err
	}
	return UnusablePasswordPrefix + suffix, nil
}

// IsUnusablePassword reports whether the stored hash is an unusable marker.
func IsUnusablePassword(hash string) bool {
	return strings.HasPrefix(hash, UnusablePasswordPrefix)
}

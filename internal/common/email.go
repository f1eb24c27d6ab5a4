package common

import "strings"

// NormalizeEmail lowercases the domain portion of an email address, leaving
// the local part untouched. Addresses without an "@" are returned as-is;
// validation beyond that is not this function's job.
//
// Uniqueness checks and storage both operate on the normalized form, so
// "User@EXAMPLE.com" and "User@example.com" collide while "User@example.com"
// and "user@example.com" do not.
func NormalizeEmail(email string) string {
	email = strings.TrimSpace(email)
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return email
	}
	return email[:at+1] + strings.ToLower(email[at+1:])
}

package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"strings"

	"github.com/alcuin/alcuinch/pkg"
)

// Admin is the single administrator identity of the blog. There are no
// other accounts - the email and password hash come from process
// configuration and never change while the service runs.
type Admin struct {
	Email        string
	PasswordHash string
}

// Verify checks the submitted credentials against the configured identity.
// The password hash is either a hex encoded sha256 digest of the password,
// or a bcrypt hash (recognized by the $2 prefix, see cmd/hashgen).
// Returns false for any mismatch or malformed input, never errors.
func (a Admin) Verify(email, password string) bool {
	if email == "" || password == "" {
		return false
	}

	emailsMatch := subtle.ConstantTimeCompare([]byte(email), []byte(a.Email)) == 1

	var passwordsMatch bool
	if strings.HasPrefix(a.PasswordHash, "$2") {
		passwordsMatch = pkg.CheckPasswordHash(password, a.PasswordHash)
	} else {
		digest := sha256.Sum256([]byte(password))
		passwordsMatch = subtle.ConstantTimeCompare(
			[]byte(hex.EncodeToString(digest[:])),
			[]byte(strings.ToLower(a.PasswordHash)),
		) == 1
	}

	return emailsMatch && passwordsMatch
}

package auth

import (
	"crypto/sha256"
	"encoding/base64"
	"strings"
	"unicode"

	"golang.org/x/crypto/bcrypt"
)

// passwordSalt is the shared fixed salt of the legacy credential scheme.
// Every stored hash depends on it, so it cannot change without invalidating
// all accounts. Known defect: it is one value for all users, not a per-user
// random salt. New deployments should migrate records to bcrypt, which
// VerifyPassword accepts transparently.
const passwordSalt = "transport-company-salt"

// HashPassword produces the legacy credential: base64(SHA-256(password+salt)).
func HashPassword(password string) string {
	sum := sha256.Sum256([]byte(password + passwordSalt))
	return base64.StdEncoding.EncodeToString(sum[:])
}

// VerifyPassword checks password against a stored credential. Bcrypt hashes
// (the migration target) are recognized by prefix; everything else is treated
// as a legacy hash.
func VerifyPassword(password, hash string) bool {
	if strings.HasPrefix(hash, "$2a$") || strings.HasPrefix(hash, "$2b$") || strings.HasPrefix(hash, "$2y$") {
		return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
	}
	return HashPassword(password) == hash
}

// ValidPassword enforces the account password policy: at least 8 characters
// containing at least one letter and one digit.
func ValidPassword(password string) bool {
	if len(password) < 8 {
		return false
	}
	var hasLetter, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	return hasLetter && hasDigit
}

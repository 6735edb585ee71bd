package user

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword hashes a password with bcrypt. New hashes are always bcrypt;
// the legacy format below is never produced, only verified.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword checks a raw password against a stored hash. Hashes with a
// bcrypt prefix are verified with bcrypt; anything else is treated as the
// pre-migration unsalted base64(SHA-256) digest. An unrecognized or corrupted
// hash verifies as false, never as an error.
func VerifyPassword(password, storedHash string) bool {
	if isBcryptHash(storedHash) {
		return bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(password)) == nil
	}
	return verifyLegacyDigest(password, storedHash)
}

func isBcryptHash(hash string) bool {
	return strings.HasPrefix(hash, "$2a$") ||
		strings.HasPrefix(hash, "$2b$") ||
		strings.HasPrefix(hash, "$2y$")
}

// verifyLegacyDigest compares against the old single-pass SHA-256 format.
// Kept only for accounts created before the bcrypt migration.
func verifyLegacyDigest(password, storedHash string) bool {
	sum := sha256.Sum256([]byte(password))
	encoded := base64.StdEncoding.EncodeToString(sum[:])
	return subtle.ConstantTimeCompare([]byte(encoded), []byte(storedHash)) == 1
}

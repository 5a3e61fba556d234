package pkg

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
)

// HashPassword returns the hex encoded SHA-256 digest of the given password.
// The admin_users table stores digests produced by this exact scheme, so the
// scheme must not change without re-hashing the stored credential.
func HashPassword(password string) string {
	digest := sha256.Sum256([]byte(password))
	return hex.EncodeToString(digest[:])
}

// CheckPasswordHash compares the digest of the given password against the
// stored digest in constant time.
func CheckPasswordHash(password, storedDigest string) bool {
	digest := HashPassword(password)
	return subtle.ConstantTimeCompare([]byte(digest), []byte(storedDigest)) == 1
}

package helpers

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
)

// GenerateResetToken returns a random reset token and its sha256 hex digest.
// Only the digest is persisted; the raw token travels in the reset email.
func GenerateResetToken() (raw string, hash string, err error) {
	b := make([]byte, 20)
	if _, err := rand.Read(b); err != nil {
		return "", "", err
	}
	raw = hex.EncodeToString(b)
	return raw, HashResetToken(raw), nil
}

// HashResetToken hashes a presented token the same way it was hashed at
// generation time, so lookups compare digests, never plaintext.
func HashResetToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

package dal

import (
	"crypto/sha256"
	"encoding/hex"
)

// Digest returns the SHA-256 hex fingerprint of s. An absent section is
// hashed as the empty string, so "section disappeared" stays comparable
// against any prior state.
func Digest(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}

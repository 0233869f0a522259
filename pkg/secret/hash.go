// Package secret provides random secret generation and password
// hashing utilities.
package secret

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
)

// Hash computes the SHA-256 hash of a token.
//
// The returned hash is hex encoded for storage; session stores index
// by hash so a dump of the store never reveals usable tokens.
func Hash(token string) string {
	h := sha256.Sum256([]byte(token))
	return hex.EncodeToString(h[:])
}

// Verify verifies a token against an expected hash.
//
// Uses constant-time comparison to prevent timing attacks.
func Verify(token, expectedHash string) bool {
	actualHash := Hash(token)
	return subtle.ConstantTimeCompare([]byte(actualHash), []byte(expectedHash)) == 1
}

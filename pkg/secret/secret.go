// Package secret provides random secret generation and password
// hashing utilities.
package secret

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
)

// TokenPrefix namespaces session tokens so they are recognizable in
// logs and redaction filters.
const TokenPrefix = "atsk_"

// DefaultTokenBytes is the entropy of a session token in bytes.
const DefaultTokenBytes = 32

// Token generates a cryptographically secure session token.
//
// The random payload is Base64 RawURL encoded for safe transmission in
// cookies and headers.
func Token() (string, error) {
	bytes := make([]byte, DefaultTokenBytes)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return TokenPrefix + base64.RawURLEncoding.EncodeToString(bytes), nil
}

// Password generates a random hex password of exactly length
// characters. Used for the generated config file default.
func Password(length int) (string, error) {
	bytes := make([]byte, (length+1)/2)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes)[:length], nil
}

// Bytes generates random bytes.
func Bytes(length int) ([]byte, error) {
	bytes := make([]byte, length)
	if _, err := rand.Read(bytes); err != nil {
		return nil, err
	}
	return bytes, nil
}

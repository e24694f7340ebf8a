// Package auth handles API-key credentials: generation, hashing, and
// allow-list verification.
package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"

	"golang.org/x/crypto/bcrypt"
)

const keyPrefix = "hp_"

// GenerateKey returns a fresh random API key.
func GenerateKey() (string, error) {
	raw := make([]byte, 24)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	return keyPrefix + base64.RawURLEncoding.EncodeToString(raw), nil
}

// HashKey returns a bcrypt hash of the key, suitable for the
// API_KEY_HASHES allow-list so the plaintext never has to live in the
// environment.
func HashKey(key string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(key), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Keyring is the configured allow-list. Plaintext entries are compared
// in constant time; hashed entries via bcrypt.
type Keyring struct {
	plain  []string
	hashes []string
}

// NewKeyring builds a keyring from plaintext keys and bcrypt hashes.
func NewKeyring(plain, hashes []string) *Keyring {
	return &Keyring{plain: plain, hashes: hashes}
}

// Empty reports whether no credentials are configured at all.
func (k *Keyring) Empty() bool {
	return len(k.plain) == 0 && len(k.hashes) == 0
}

// Verify reports whether the candidate matches any allow-list entry.
func (k *Keyring) Verify(candidate string) bool {
	if candidate == "" {
		return false
	}

	ok := false
	for _, key := range k.plain {
		// Check every entry to keep timing independent of position.
		if subtle.ConstantTimeCompare([]byte(key), []byte(candidate)) == 1 {
			ok = true
		}
	}
	if ok {
		return true
	}

	for _, hash := range k.hashes {
		if bcrypt.CompareHashAndPassword([]byte(hash), []byte(candidate)) == nil {
			return true
		}
	}
	return false
}

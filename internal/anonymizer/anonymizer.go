// Package anonymizer derives stable reporter identifiers from network origins
// without retaining the origin itself.
package anonymizer

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

const (
	// DefaultSalt is used when HASH_SALT is not configured. It is not a secret
	// and must not be relied on outside local development.
	DefaultSalt = "default-salt"

	// UnknownOrigin stands in for a request whose origin could not be determined.
	UnknownOrigin = "unknown"
)

// Hasher computes reporter digests for one salt.
type Hasher struct {
	salt string
}

func New(salt string) *Hasher {
	if salt == "" {
		salt = DefaultSalt
	}
	return &Hasher{salt: salt}
}

// UsesDefaultSalt reports whether the hasher fell back to DefaultSalt.
func (h *Hasher) UsesDefaultSalt() bool {
	return h.salt == DefaultSalt
}

// Hash returns the hex encoded SHA-256 of origin+salt (64 characters).
func (h *Hasher) Hash(origin string) string {
	origin = strings.TrimSpace(origin)
	if origin == "" {
		origin = UnknownOrigin
	}
	sum := sha256.Sum256([]byte(origin + h.salt))
	return hex.EncodeToString(sum[:])
}

// Package cardhash turns raw or masked card numbers into a stable one-way
// identifier so that card numbers are never persisted.
package cardhash

import (
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/blake2b"
)

// Hasher produces BLAKE2b-256 digests, keyed when a secret is configured
type Hasher struct {
	key []byte
}

// New creates a hasher. An empty key yields a plain BLAKE2b-256 digest.
// blake2b accepts keys of at most 64 bytes.
func New(key string) (*Hasher, error) {
	if len(key) > blake2b.Size {
		return nil, fmt.Errorf("card hash key longer than %d bytes", blake2b.Size)
	}
	return &Hasher{key: []byte(key)}, nil
}

// Hash returns the hex digest of the normalised card number.
// Spaces and dashes are ignored so "4345 05** **** 9116" and
// "434505******9116" map to the same identifier.
func (h *Hasher) Hash(cardNumber string) string {
	mac, err := blake2b.New256(h.key)
	if err != nil {
		// unreachable: key length is checked in New
		panic(err)
	}
	mac.Write([]byte(Normalize(cardNumber)))
	return hex.EncodeToString(mac.Sum(nil))
}

// Normalize strips separators from a card number. Mask characters stay.
func Normalize(cardNumber string) string {
	return strings.NewReplacer(" ", "", "-", "").Replace(strings.TrimSpace(cardNumber))
}

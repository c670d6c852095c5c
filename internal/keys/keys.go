// Package keys wraps Stellar keypair handling: generation, parsing of
// secret seeds and public identifier validation. Pure functions, no I/O.
package keys

import (
	"errors"
	"fmt"

	"github.com/stellar/go/keypair"
	"github.com/stellar/go/strkey"
)

// ErrInvalidSecret is returned when a supplied secret seed does not decode
// (bad prefix, length or checksum).
var ErrInvalidSecret = errors.New("invalid secret key format")

// Generate creates a new random keypair.
func Generate() (*keypair.Full, error) {
	kp, err := keypair.Random()
	if err != nil {
		return nil, fmt.Errorf("failed to generate keypair: %w", err)
	}
	return kp, nil
}

// FromSecret recreates a keypair from a secret seed ("S..." strkey).
func FromSecret(secret string) (*keypair.Full, error) {
	kp, err := keypair.ParseFull(secret)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSecret, err)
	}
	return kp, nil
}

// IsValidPublicKey reports whether id is a well-formed ed25519 public
// identifier ("G..." strkey).
func IsValidPublicKey(id string) bool {
	return strkey.IsValidEd25519PublicKey(id)
}

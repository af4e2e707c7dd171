package ledger

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

// PINVerifier seals a pin for storage and checks a login attempt against the
// stored form. All credential comparison goes through this interface, so the
// storage scheme can move to salted hashes without touching the ledger or
// its callers.
type PINVerifier interface {
	Seal(pin string) (string, error)
	Verify(pin, stored string) bool
}

// PlainPINVerifier stores the pin verbatim and compares it in constant time.
// This matches the behaviour of the original system; see DESIGN.md for the
// security note.
type PlainPINVerifier struct{}

func (PlainPINVerifier) Seal(pin string) (string, error) {
	return pin, nil
}

func (PlainPINVerifier) Verify(pin, stored string) bool {
	return subtle.ConstantTimeCompare([]byte(pin), []byte(stored)) == 1
}

// HashedPINVerifier stores pins as "salt$hash" using PBKDF2-SHA256 with a
// random 16-byte salt. Enabled via security.hash_pins in config.
type HashedPINVerifier struct{}

const pbkdf2Iterations = 100_000

func (HashedPINVerifier) Seal(pin string) (string, error) {
	salt := make([]byte, 16)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}
	hash := pbkdf2.Key([]byte(pin), salt, pbkdf2Iterations, 32, sha256.New)
	return base64.RawStdEncoding.EncodeToString(salt) + "$" +
		base64.RawStdEncoding.EncodeToString(hash), nil
}

func (HashedPINVerifier) Verify(pin, stored string) bool {
	parts := strings.Split(stored, "$")
	if len(parts) != 2 {
		return false
	}
	salt, err := base64.RawStdEncoding.DecodeString(parts[0])
	if err != nil {
		return false
	}
	expected, err := base64.RawStdEncoding.DecodeString(parts[1])
	if err != nil || len(expected) == 0 {
		return false
	}
	hash := pbkdf2.Key([]byte(pin), salt, pbkdf2Iterations, len(expected), sha256.New)
	return subtle.ConstantTimeCompare(hash, expected) == 1
}

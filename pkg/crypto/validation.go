package crypto

import (
	"errors"
	"fmt"
)

// MaxSharedSecretLength bounds the shared secrets accepted for outbound requests
const MaxSharedSecretLength = 128

var (
	// ErrEmptySecret indicates a missing shared secret
	ErrEmptySecret = errors.New("shared secret is empty")
	// ErrSecretTooLong indicates a shared secret over MaxSharedSecretLength octets
	ErrSecretTooLong = errors.New("shared secret is too long")
)

// ValidateSharedSecret rejects shared secrets that cannot authenticate a RADIUS exchange
func ValidateSharedSecret(secret []byte) error {
	if len(secret) == 0 {
		return ErrEmptySecret
	}
	if len(secret) > MaxSharedSecretLength {
		return fmt.Errorf("%w: %d octets (max %d)", ErrSecretTooLong, len(secret), MaxSharedSecretLength)
	}
	return nil
}

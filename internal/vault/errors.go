package vault

import "errors"

var (
	// ErrVaultUnavailable is returned when the OS credential vault cannot be
	// reached or refuses the operation. There is no plaintext fallback.
	ErrVaultUnavailable = errors.New("os credential vault unavailable")

	// ErrSecretNotFound is returned when no secret exists under the given key.
	ErrSecretNotFound = errors.New("secret not found in vault")
)

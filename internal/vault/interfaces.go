// Package vault stores the client's secret material in the operating system
// credential vault (Keychain on macOS, Secret Service on Linux, Credential
// Manager on Windows). Nothing in this package ever writes plaintext secrets
// to disk itself; if the vault is unavailable the operation fails with
// [ErrVaultUnavailable].
package vault

//go:generate mockgen -source=interfaces.go -destination=../mock/secret_store_mock.go -package=mock

// SecretStore is the raw key-value surface of the OS vault.
//
// All operations are synchronous. A missing key surfaces as
// [ErrSecretNotFound]; any backend failure surfaces as [ErrVaultUnavailable]
// wrapped with the platform error.
type SecretStore interface {
	// Put stores value under key, replacing any previous value.
	Put(key string, value []byte) error
	// Get returns the value stored under key.
	Get(key string) ([]byte, error)
	// Delete removes the value stored under key. Deleting an absent key is
	// not an error.
	Delete(key string) error
}

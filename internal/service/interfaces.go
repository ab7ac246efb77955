package service

import (
	"context"
	"time"

	"github.com/MKhiriev/go-merchant-verify/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// VerificationEngine drives the 2FA exchange for merchants. It owns the
// per-request state machine, the verification socket sessions, the lockout
// policy, and the sealed credential written on approval.
type VerificationEngine interface {
	// Start issues a 2FA challenge for the merchant over the given delivery
	// channel and begins tracking the request. It returns once the server
	// has accepted the challenge; the outcome is delivered later through
	// Subscribe. Returns ErrRequestInFlight if a non-terminal request for
	// the merchant already exists and ErrLockedOut if the merchant
	// accumulated too many failed outcomes inside the lockout window.
	Start(ctx context.Context, merchantID string, method models.DeliveryMethod, deliveryAddress string) (models.VerificationRequest, error)

	// Cancel aborts the request from any state: the session is closed
	// cleanly and in-flight results for the request are discarded. Returns
	// ErrRequestNotFound if the engine is not tracking the request.
	Cancel(requestID string) error

	// ConfirmCode submits a manually entered verification code for a
	// request, used when the out-of-band push approval is unavailable. A
	// terminal outcome reported by the server is applied immediately.
	ConfirmCode(ctx context.Context, requestID, code string) error

	// Subscribe registers an observer for verification events. The returned
	// function removes the subscription and closes the channel; it is safe
	// to call more than once. A slow subscriber does not block the engine:
	// events beyond the channel buffer are dropped.
	Subscribe() (<-chan models.VerificationEvent, func())

	// CachedToken opens the sealed session token stored for the merchant.
	// A missing or expired record surfaces as vault.ErrSecretNotFound; a
	// record that fails authentication is discarded and surfaces as
	// crypto.ErrAuthFailure, forcing re-verification.
	CachedToken(merchantID string) (models.SessionToken, error)

	// MerchantState reports the state of the merchant's live verification
	// request, or StateIdle when none is in flight.
	MerchantState(merchantID string) models.VerificationState

	// Close cancels all tracked requests, closes their sessions, waits for
	// the per-request watchers to exit, and closes all subscriber channels.
	Close()
}

// AuthService manages the client's token pair: it authenticates against the
// server and keeps the pair sealed in the vault between runs.
type AuthService interface {
	// Login authenticates with login and password, stores the issued pair
	// sealed in the vault, and returns it.
	Login(ctx context.Context, login, password string) (models.TokenPair, error)

	// Restore loads the sealed token pair from the vault and installs the
	// access token into the adapter, refreshing first when the token is
	// within the refresh threshold of its expiry. Returns
	// ErrNotAuthenticated when the vault holds no pair.
	Restore(ctx context.Context) error

	// Refresh exchanges the stored refresh token for a new pair and seals
	// the replacement in the vault.
	Refresh(ctx context.Context) (models.TokenPair, error)

	// RefreshIfNeeded refreshes the stored pair only when the access token
	// is within the refresh threshold of its expiry. Holding no pair is not
	// an error; the background refresher calls this on every tick.
	RefreshIfNeeded(ctx context.Context) error

	// Logout revokes the refresh token server-side, clears the adapter's
	// bearer token, and deletes the sealed pair from the vault. Local
	// material is wiped even when the server call fails.
	Logout(ctx context.Context) error
}

// CredentialVault is the slice of the vault session the services need:
// sealed merchant credentials, the sealed token pair, and the derived key
// the records are sealed under. *vault.Session satisfies it.
type CredentialVault interface {
	// Key returns the derived session key used to seal and open records.
	Key() []byte

	// PutCredential stores a sealed merchant credential, replacing any
	// previous record for the same merchant whole.
	PutCredential(cred models.Credential) error

	// GetCredential returns the sealed credential for merchantID, or
	// vault.ErrSecretNotFound if none is stored.
	GetCredential(merchantID string) (models.Credential, error)

	// DeleteCredential removes the sealed credential for merchantID.
	DeleteCredential(merchantID string) error

	// PutTokenPair stores the sealed auth token material.
	PutTokenPair(payload, nonce []byte) error

	// GetTokenPair returns the sealed auth token material, or
	// vault.ErrSecretNotFound if none is stored.
	GetTokenPair() (payload, nonce []byte, err error)

	// DeleteTokenPair removes the sealed auth token material.
	DeleteTokenPair() error
}

// Clock abstracts time for the engine and the auth service so tests can
// drive lockout windows and challenge lifetimes without sleeping.
type Clock interface {
	// Now returns the current instant.
	Now() time.Time

	// After returns a channel that delivers one value once d has elapsed.
	After(d time.Duration) <-chan time.Time
}

// TokenRefreshJob is the background worker that keeps the access token
// fresh by calling AuthService.RefreshIfNeeded on a ticker.
type TokenRefreshJob interface {
	// Start launches the background goroutine. It checks every interval,
	// defaulting to 1 minute if interval is zero or negative. Any
	// previously running job is stopped before the new one begins.
	Start(ctx context.Context, interval time.Duration)

	// Stop signals the background goroutine to exit and blocks until it has
	// fully terminated.
	Stop()
}

// HistoryPruneJob is the background worker that trims the local history
// store down to its configured retention.
type HistoryPruneJob interface {
	// Start launches the background goroutine. It prunes every interval,
	// defaulting to 1 hour if interval is zero or negative, keeping the
	// newest keep rows. Any previously running job is stopped before the
	// new one begins.
	Start(ctx context.Context, interval time.Duration, keep int)

	// Stop signals the background goroutine to exit and blocks until it has
	// fully terminated.
	Stop()
}

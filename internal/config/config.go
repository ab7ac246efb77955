// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container for the
// go-merchant-verify client. It aggregates all sub-configurations and is
// populated by merging values from environment variables, command-line flags,
// and an optional JSON file.
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application-level settings such as the client version.
	App App `envPrefix:"APP_"`

	// Adapter holds the remote verification API endpoint, timeout, and retry
	// settings used by the outbound HTTP client.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Crypto holds key-derivation cost settings.
	Crypto Crypto `envPrefix:"CRYPTO_"`

	// Session holds the verification socket liveness and reconnect settings.
	Session Session `envPrefix:"SESSION_"`

	// Engine holds verification state-machine policy settings: challenge
	// lifetime, lockout window, and concurrency limits.
	Engine Engine `envPrefix:"ENGINE_"`

	// Auth holds access-token refresh policy settings.
	Auth Auth `envPrefix:"AUTH_"`

	// Storage holds configuration for the local history database.
	Storage Storage `envPrefix:"STORAGE_"`

	// Workers holds configuration for background jobs.
	Workers Workers `envPrefix:"WORKERS_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged on top of the values
	// already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values.
type App struct {
	// Version is the semantic version string of the running client
	// (e.g. "1.2.3"). Stamped into logs at startup.
	// Env: APP_VERSION
	Version string `env:"VERSION"`
}

// Adapter holds settings for the outbound HTTP transport to the remote
// verification API.
type Adapter struct {
	// APIBaseURL is the base URL of the verification API
	// (e.g. "https://verify.example.com"). Required.
	// Env: ADAPTER_API_BASE_URL
	APIBaseURL string `env:"API_BASE_URL"`

	// RequestTimeout is the per-request deadline for outbound API calls
	// (e.g. "30s"). Zero selects the adapter default.
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// RetryMaxAttempts caps the total number of delivery attempts for
	// retryable requests, the first attempt included. Zero selects the
	// adapter default.
	// Env: ADAPTER_RETRY_MAX_ATTEMPTS
	RetryMaxAttempts int `env:"RETRY_MAX_ATTEMPTS"`

	// RetryBaseWait is the backoff base delay between retry attempts; the
	// delay doubles per attempt with jitter. Zero selects the adapter
	// default.
	// Env: ADAPTER_RETRY_BASE_WAIT
	RetryBaseWait time.Duration `env:"RETRY_BASE_WAIT"`
}

// Crypto holds key-derivation cost settings.
type Crypto struct {
	// KDFIterations is the Argon2id time parameter used when deriving the
	// local encryption key. Higher is slower and safer. Zero selects the
	// crypto default.
	// Env: CRYPTO_KDF_ITERATIONS
	KDFIterations uint32 `env:"KDF_ITERATIONS"`
}

// Session holds verification socket settings.
type Session struct {
	// HeartbeatInterval is the period between heartbeat pings on an open
	// socket (e.g. "25s"). Zero selects the session default.
	// Env: SESSION_HEARTBEAT_INTERVAL
	HeartbeatInterval time.Duration `env:"HEARTBEAT_INTERVAL"`

	// ReconnectMaxAttempts caps reconnection attempts per outage before the
	// session closes for good. Zero selects the session default.
	// Env: SESSION_RECONNECT_MAX_ATTEMPTS
	ReconnectMaxAttempts int `env:"RECONNECT_MAX_ATTEMPTS"`

	// ReconnectBaseWait is the backoff base delay between reconnection
	// attempts. Zero selects the session default.
	// Env: SESSION_RECONNECT_BASE_WAIT
	ReconnectBaseWait time.Duration `env:"RECONNECT_BASE_WAIT"`
}

// Engine holds verification policy settings.
type Engine struct {
	// ChallengeLifetime is how long a request may sit in awaiting-approval
	// before the engine expires it locally (e.g. "2m"). Zero selects the
	// engine default.
	// Env: ENGINE_CHALLENGE_LIFETIME
	ChallengeLifetime time.Duration `env:"CHALLENGE_LIFETIME"`

	// LockoutWindow is the sliding window within which repeated failures
	// lock a merchant out (e.g. "15m"). Zero selects the engine default.
	// Env: ENGINE_LOCKOUT_WINDOW
	LockoutWindow time.Duration `env:"LOCKOUT_WINDOW"`

	// LockoutThreshold is the number of consecutive failed outcomes within
	// LockoutWindow that triggers a lockout. Zero selects the engine
	// default.
	// Env: ENGINE_LOCKOUT_THRESHOLD
	LockoutThreshold int `env:"LOCKOUT_THRESHOLD"`

	// MaxConcurrent bounds the number of verification requests serviced at
	// once. Zero selects the engine default.
	// Env: ENGINE_MAX_CONCURRENT
	MaxConcurrent int64 `env:"MAX_CONCURRENT"`
}

// Auth holds access-token refresh policy settings.
type Auth struct {
	// RefreshThreshold is how close to expiry the access token may get
	// before the background refresher exchanges it (e.g. "5m"). Zero
	// selects the service default.
	// Env: AUTH_REFRESH_THRESHOLD
	RefreshThreshold time.Duration `env:"REFRESH_THRESHOLD"`
}

// Storage groups the configuration for the local persistence backends.
type Storage struct {
	// DB holds the local history database connection settings.
	DB DB `envPrefix:"DB_"`
}

// DB holds connection settings for the local SQLite history database.
type DB struct {
	// DSN is the SQLite connection string, typically a file path
	// (e.g. "verification-history.db").
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Workers holds configuration for background jobs.
type Workers struct {
	// RefreshCheckInterval is how often the token refresh job inspects the
	// access token expiry. Zero selects the job default.
	// Env: WORKERS_REFRESH_CHECK_INTERVAL
	RefreshCheckInterval time.Duration `env:"REFRESH_CHECK_INTERVAL"`

	// PruneInterval is how often the history pruner runs. Zero selects the
	// job default.
	// Env: WORKERS_PRUNE_INTERVAL
	PruneInterval time.Duration `env:"PRUNE_INTERVAL"`

	// HistoryKeep is the number of newest history rows the pruner retains.
	// Zero selects the job default.
	// Env: WORKERS_HISTORY_KEEP
	HistoryKeep int `env:"HISTORY_KEEP"`
}

// GetStructuredConfig loads, merges, and validates the application
// configuration from all available sources in the following priority order
// (an earlier source wins for every field it sets; later sources fill the
// remaining gaps):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load or the final config fails validation.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		build()
}

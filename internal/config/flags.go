package config

import (
	"flag"
	"time"
)

// ParseFlags parses all configuration flags.
//
// Flags:
//
//	-a verification API base URL
//	-d local history database DSN
//	-c/-config json file path with configs
//	-request-timeout outbound request timeout (e.g., "30s")
//	-retry-attempts max delivery attempts for retryable requests
//	-kdf-iterations Argon2id time parameter
//	-heartbeat-interval socket heartbeat period (e.g., "25s")
//	-reconnect-attempts max socket reconnection attempts per outage
//	-challenge-lifetime local awaiting-approval deadline (e.g., "2m")
//	-lockout-window sliding failure window (e.g., "15m")
//	-lockout-threshold failures within the window that trigger lockout
//	-refresh-threshold access token refresh threshold (e.g., "5m")
func ParseFlags() *StructuredConfig {
	var apiBaseURL string
	var databaseDSN string
	var jsonConfigPath string
	var requestTimeout time.Duration
	var retryMaxAttempts int
	var kdfIterations uint
	var heartbeatInterval time.Duration
	var reconnectMaxAttempts int
	var challengeLifetime time.Duration
	var lockoutWindow time.Duration
	var lockoutThreshold int
	var refreshThreshold time.Duration

	flag.StringVar(&apiBaseURL, "a", "", "Verification API base URL")
	flag.StringVar(&databaseDSN, "d", "", "Local history database DSN")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	flag.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	flag.IntVar(&retryMaxAttempts, "retry-attempts", 0, "Max delivery attempts for retryable requests")
	flag.UintVar(&kdfIterations, "kdf-iterations", 0, "Argon2id time parameter")
	flag.DurationVar(&heartbeatInterval, "heartbeat-interval", 0, "Socket heartbeat period (e.g., 25s)")
	flag.IntVar(&reconnectMaxAttempts, "reconnect-attempts", 0, "Max socket reconnection attempts per outage")
	flag.DurationVar(&challengeLifetime, "challenge-lifetime", 0, "Awaiting-approval deadline (e.g., 2m)")
	flag.DurationVar(&lockoutWindow, "lockout-window", 0, "Sliding failure window (e.g., 15m)")
	flag.IntVar(&lockoutThreshold, "lockout-threshold", 0, "Failures within the window that trigger lockout")
	flag.DurationVar(&refreshThreshold, "refresh-threshold", 0, "Access token refresh threshold (e.g., 5m)")

	flag.Parse()

	return &StructuredConfig{
		Adapter: Adapter{
			APIBaseURL:       apiBaseURL,
			RequestTimeout:   requestTimeout,
			RetryMaxAttempts: retryMaxAttempts,
		},
		Crypto: Crypto{
			KDFIterations: uint32(kdfIterations),
		},
		Session: Session{
			HeartbeatInterval:    heartbeatInterval,
			ReconnectMaxAttempts: reconnectMaxAttempts,
		},
		Engine: Engine{
			ChallengeLifetime: challengeLifetime,
			LockoutWindow:     lockoutWindow,
			LockoutThreshold:  lockoutThreshold,
		},
		Auth: Auth{
			RefreshThreshold: refreshThreshold,
		},
		Storage: Storage{
			DB: DB{
				DSN: databaseDSN,
			},
		},
		JSONFilePath: jsonConfigPath,
	}
}

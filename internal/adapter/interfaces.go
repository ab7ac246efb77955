// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides transport-layer abstractions for communicating
// with the remote merchant verification API.
//
// The package ships two abstractions. [ApiClient] covers the HTTP/REST
// surface: authentication, challenge issuance, status polls, merchant
// search. [SessionDialer] opens a [Session], the persistent WebSocket
// channel that pushes verification events for one request.
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic
// error handling (e.g. [ErrTooManyRequests] for 429, [ErrUnauthorized] for
// 401).
package adapter

import (
	"context"

	"github.com/MKhiriev/go-merchant-verify/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/adapter_mock.go -package=mock

// ApiClient defines the outbound HTTP surface of the verification API.
// Implementations are responsible for serialisation, authentication header
// management, bounded retry of idempotent requests, and mapping
// transport-level errors to the sentinel values defined in this package.
//
// Retry policy: GET requests are retried on connection errors, timeouts,
// HTTP 429 and 5xx; POST requests are retried only when an idempotency key
// accompanies them. Everything else gets exactly one attempt.
type ApiClient interface {
	// SetToken stores the bearer token that will be attached to all
	// subsequent authenticated requests. It should be called after a
	// successful Login or Refresh, and with an empty string after Logout.
	SetToken(token string)

	// Token returns the bearer token currently stored in the adapter, or an
	// empty string if no token has been set yet.
	Token() string

	// Login authenticates with the server and returns the issued token
	// pair. On success the access token is stored via SetToken and the pair
	// is annotated with its parsed expiry.
	Login(ctx context.Context, req models.LoginRequest) (models.TokenPair, error)

	// Refresh exchanges the refresh token for a new token pair. On success
	// the new access token is stored via SetToken.
	Refresh(ctx context.Context, refreshToken string) (models.TokenPair, error)

	// Logout revokes the refresh token server-side and clears the stored
	// bearer token.
	Logout(ctx context.Context, refreshToken string) error

	// IssueChallenge asks the server to start a 2FA exchange for a merchant.
	// idempotencyKey makes the POST safely retryable; the server collapses
	// duplicate deliveries of the same key into one challenge.
	IssueChallenge(ctx context.Context, req models.ChallengeRequest, idempotencyKey string) (models.ChallengeResponse, error)

	// GetStatus polls the server-side state of a verification request.
	// Used to reconcile after socket reconnects and as a push fallback.
	GetStatus(ctx context.Context, requestID string) (models.StatusResponse, error)

	// Confirm submits a manually entered verification code for a request.
	// Never retried automatically: a duplicate submit burns an attempt.
	Confirm(ctx context.Context, requestID, code string) (models.ConfirmResponse, error)

	// SearchMerchants returns merchants matching the free-text query.
	SearchMerchants(ctx context.Context, query string) ([]models.Merchant, error)

	// Ping checks API reachability via the health endpoint.
	Ping(ctx context.Context) error
}

// SessionState enumerates the connection states of a verification session.
type SessionState string

const (
	SessionDisconnected SessionState = "disconnected"
	SessionConnecting   SessionState = "connecting"
	SessionConnected    SessionState = "connected"
	SessionDegraded     SessionState = "degraded"
	SessionReconnecting SessionState = "reconnecting"
	SessionClosed       SessionState = "closed"
)

// StateChangeFunc observes session state transitions. It is invoked from the
// session's own goroutine and must not block.
type StateChangeFunc func(prev, next SessionState)

// SessionDialer opens verification sessions. One session serves one
// verification request.
type SessionDialer interface {
	// OpenSession dials the verification socket for requestID, presenting
	// token for authentication. onStateChange may be nil. The initial dial
	// is attempted once; reconnection after an established session drops is
	// automatic and bounded.
	OpenSession(ctx context.Context, requestID, token string, onStateChange StateChangeFunc) (Session, error)
}

// Session is one live verification socket. Events are pushed on the channel
// returned by Events until the session closes; the channel is then closed
// and nothing more is delivered.
//
// A session that exhausts its reconnection attempts delivers a final
// transport-error event whose Err wraps [ErrSessionClosed], then closes.
type Session interface {
	// Events returns the channel the session delivers verification events
	// on. The same channel is returned on every call.
	Events() <-chan models.VerificationEvent

	// State returns the current connection state.
	State() SessionState

	// Close tears the session down: no events are delivered after Close
	// returns. Closing an already-closed session is a no-op.
	Close() error
}

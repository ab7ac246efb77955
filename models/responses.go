package models

import "time"

// ChallengeResponse is the server acknowledgment of an issued challenge.
type ChallengeResponse struct {
	// RequestID is the identifier assigned to the new verification request.
	RequestID string `json:"request_id"`

	// ChallengeExpiresAt is the server-side deadline for the challenge.
	ChallengeExpiresAt time.Time `json:"challenge_expires_at"`
}

// StatusResponse is the answer of a verification status poll. It mirrors the
// socket frame shape so poll results and pushed events reconcile through the
// same sequence comparison.
type StatusResponse struct {
	// RequestID echoes the polled request.
	RequestID string `json:"request_id"`

	// State is the server-side state of the request.
	State VerificationState `json:"state"`

	// Sequence is the server-assigned position of the latest event for the
	// request.
	Sequence uint64 `json:"sequence"`
}

// ConfirmResponse reports the outcome of a manual code confirmation.
type ConfirmResponse struct {
	State VerificationState `json:"state"`
}

// SocketFrame is one message pushed over the verification socket channel.
type SocketFrame struct {
	RequestID string    `json:"request_id"`
	Event     EventKind `json:"event"`
	Sequence  uint64    `json:"sequence"`
}

package models

import "time"

// VerificationState enumerates the lifecycle states of a single
// verification request as driven by the verification engine.
type VerificationState string

const (
	// StateIdle means no verification is in progress for the merchant.
	StateIdle VerificationState = "idle"

	// StateChallengeRequested means a challenge has been requested from the
	// server but not yet acknowledged.
	StateChallengeRequested VerificationState = "challenge_requested"

	// StateAwaitingApproval means the challenge was issued and the engine is
	// waiting for an out-of-band approval, denial, or expiry.
	StateAwaitingApproval VerificationState = "awaiting_approval"

	// StateApproved is terminal: the merchant approved the challenge and a
	// session token was issued.
	StateApproved VerificationState = "approved"

	// StateDenied is terminal: the merchant (or the server policy) denied
	// the challenge.
	StateDenied VerificationState = "denied"

	// StateExpired is terminal: the challenge lifetime elapsed before an
	// approval or denial arrived.
	StateExpired VerificationState = "expired"
)

// Terminal reports whether the state is one of the three final outcomes
// after which no further transitions are possible for the request.
func (s VerificationState) Terminal() bool {
	return s == StateApproved || s == StateDenied || s == StateExpired
}

// DeliveryMethod selects the out-of-band channel a verification challenge is
// delivered through.
type DeliveryMethod string

const (
	DeliveryEmail DeliveryMethod = "email"
	DeliverySMS   DeliveryMethod = "sms"
)

// VerificationRequest tracks one 2FA exchange for one merchant.
// At most one request per merchant may be in a non-terminal state.
type VerificationRequest struct {
	// RequestID is the unique identifier assigned when the challenge is
	// issued. All socket frames and status polls reference it.
	RequestID string `json:"request_id"`

	// MerchantID identifies the merchant the verification is for.
	MerchantID string `json:"merchant_id"`

	// Method is the delivery channel the challenge was sent through.
	Method DeliveryMethod `json:"method"`

	// CreatedAt is when the engine accepted the Start call.
	CreatedAt time.Time `json:"created_at"`

	// ExpiresAt is the server-reported challenge deadline.
	ExpiresAt time.Time `json:"expires_at"`

	// State is the current engine state for this request.
	State VerificationState `json:"state"`
}

// EventKind tags the variants of [VerificationEvent].
type EventKind string

const (
	EventChallengeIssued EventKind = "challenge_issued"
	EventApproved        EventKind = "approved"
	EventDenied          EventKind = "denied"
	EventExpired         EventKind = "expired"
	EventTransportError  EventKind = "transport_error"
)

// VerificationEvent is one observable fact about a verification request.
// Events arrive from the socket session and from status polls; both carry
// the per-request Sequence so duplicates can be dropped.
type VerificationEvent struct {
	// RequestID links the event to its verification request.
	RequestID string `json:"request_id"`

	// Kind is the event variant.
	Kind EventKind `json:"event"`

	// Sequence is the server-assigned monotonic position of the event within
	// the request. Events at or below the last applied sequence are ignored.
	// Locally synthesized events (timeouts, transport errors) carry zero.
	Sequence uint64 `json:"sequence"`

	// OccurredAt is the local receive time of the event.
	OccurredAt time.Time `json:"occurred_at"`

	// Err carries transport error detail for EventTransportError; nil
	// otherwise.
	Err error `json:"-"`
}

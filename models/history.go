package models

import "time"

// HistoryEntry is one row of the local verification history: a terminal
// outcome of a verification request, kept for display and auditing.
type HistoryEntry struct {
	// ID is the local autoincrement identifier.
	ID int64 `json:"id"`

	// RequestID is the verification request the outcome belongs to.
	RequestID string `json:"request_id"`

	// MerchantID identifies the merchant that was verified.
	MerchantID string `json:"merchant_id"`

	// Method is the delivery channel used for the challenge.
	Method DeliveryMethod `json:"method"`

	// Outcome is the terminal state the request reached.
	Outcome VerificationState `json:"outcome"`

	// OccurredAt is when the terminal transition happened.
	OccurredAt time.Time `json:"occurred_at"`
}

// TableName returns the name of the database table
// associated with the HistoryEntry model.
func (h HistoryEntry) TableName() string {
	return "verification_history"
}

// HistoryFilter narrows a history listing.
type HistoryFilter struct {
	// MerchantID limits results to one merchant when non-empty.
	MerchantID string

	// Limit caps the number of returned rows. Values above MaxHistoryLimit
	// are clamped; zero or negative selects the default page size.
	Limit int
}

const (
	// MaxHistoryLimit is the hard cap on rows returned by a history listing.
	MaxHistoryLimit = 100

	// DefaultHistoryLimit is used when a filter does not specify a limit.
	DefaultHistoryLimit = 20
)

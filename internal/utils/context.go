// Package utils provides general-purpose helper utilities
// used across different parts of the application.
// Includes tools for working with context, type-safe keys, log-safe
// fingerprints, HTTP client initialization, JWT expiry inspection,
// and other common operations.
package utils

import (
	"context"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
// Implements the fmt.Stringer interface.
func (c contextKey) String() string {
	return string(c)
}

// CorrelationIDCtxKey is the key used to store the process correlation
// identifier in the context. Used together with
// GetCorrelationIDFromContext for type-safe retrieval of the correlation
// ID from context.Context.
//
// Example of writing a value to the context:
//
//	ctx := utils.WithCorrelationID(ctx, "0190b5a7-...")
var CorrelationIDCtxKey = contextKey("correlationID")

// WithCorrelationID returns a copy of ctx carrying the correlation
// identifier. Outgoing API requests pick it up and send it in the
// X-Correlation-ID header so client logs and server logs line up.
func WithCorrelationID(ctx context.Context, correlationID string) context.Context {
	return context.WithValue(ctx, CorrelationIDCtxKey, correlationID)
}

// GetCorrelationIDFromContext retrieves the correlation identifier from the
// context.
//
// Returns the correlation ID and an ok flag:
//   - ok == true  — value is found and has the correct string type
//   - ok == false — value is missing or has an unexpected type
//
// Example usage:
//
//	correlationID, ok := utils.GetCorrelationIDFromContext(ctx)
//	if !ok {
//	    // fall back to the client-wide correlation id
//	}
func GetCorrelationIDFromContext(ctx context.Context) (string, bool) {
	correlationID, ok := ctx.Value(CorrelationIDCtxKey).(string)
	return correlationID, ok
}

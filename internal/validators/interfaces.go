// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks verification inputs before they leave the
// client: challenge requests (merchant id, delivery method, delivery
// address) and code confirmations (request id, six-digit code).
//
// The only entry point is the Validator interface; [ChallengeValidator]
// is its request-aware implementation, dispatching on the dynamic type of
// the value. The verification engine validates every Start and ConfirmCode
// argument through it before any network call, so a malformed request
// never consumes an idempotency key.
//
// Validation failures are returned as the package's Err* sentinels and can
// be matched with errors.Is.
package validators

import "context"

// Validator validates arbitrary input values. Implementations may perform
// structural validation, semantic checks, cross-field rules.
type Validator interface {

	// Validate validates the provided input and optionally
	// restricts validation to specific named fields.
	Validate(context.Context, any, ...string) error
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains shared application-layer constants of the
// go-merchant-verify client.
//
// All Msg* constants are the exact human-readable message strings the
// verification API writes into error response bodies. The client matches on
// them when translating transport errors into business errors, so the
// wording here must stay in sync with the server.
package app

const (
	// MsgInvalidDataProvided is returned when the request body cannot be
	// decoded or fails basic validation (e.g. missing required fields).
	MsgInvalidDataProvided = "invalid data provided"

	// MsgUnknownDeliveryMethod is returned when a challenge request names a
	// delivery method the server does not support.
	MsgUnknownDeliveryMethod = "unknown delivery method"

	// MsgInvalidVerificationCode is returned when a submitted verification
	// code does not match the one delivered with the challenge.
	MsgInvalidVerificationCode = "invalid verification code"

	// MsgInvalidLoginPassword is returned when the supplied login/password
	// combination does not match any existing account.
	MsgInvalidLoginPassword = "invalid login/password"

	// MsgTokenIsExpired is returned when a JWT bearer token is syntactically
	// valid but its expiry time has passed.
	MsgTokenIsExpired = "token is expired"

	// MsgTokenIsExpiredOrInvalid is returned when a JWT bearer token is
	// either expired or cannot be verified (e.g. wrong signature).
	MsgTokenIsExpiredOrInvalid = "token is expired or invalid"

	// MsgMerchantNotFound is returned when a challenge or search targets a
	// merchant identifier the server does not know.
	MsgMerchantNotFound = "merchant not found"

	// MsgRequestNotFound is returned when a status poll or confirmation
	// references a verification request that does not exist.
	MsgRequestNotFound = "verification request not found"

	// MsgChallengeAlreadyIssued is returned when a challenge is requested
	// for a merchant that already has a verification in flight.
	MsgChallengeAlreadyIssued = "challenge already issued"

	// MsgVerificationAlreadyResolved is returned when a confirmation arrives
	// for a request that already reached a terminal outcome.
	MsgVerificationAlreadyResolved = "verification already resolved"

	// MsgMerchantLockedOut is returned when the server refuses to issue a
	// challenge because the merchant accumulated too many failed outcomes.
	MsgMerchantLockedOut = "merchant locked out"

	// MsgCodeAttemptsExhausted is returned when the allowed number of code
	// submissions for one challenge has been used up.
	MsgCodeAttemptsExhausted = "code attempts exhausted"

	// MsgInternalServerError is returned when an unexpected server-side
	// failure occurs that the client cannot resolve.
	MsgInternalServerError = "internal server error"

	// MsgLoginFailed is returned when the login handler encounters an
	// unexpected error that prevents issuing a token pair.
	MsgLoginFailed = "login failed"
)

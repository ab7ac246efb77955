// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// LoginRequest carries user credentials to the authentication endpoint.
type LoginRequest struct {
	// Login is the account identifier, typically an email address.
	Login string `json:"login"`

	// Password is the plaintext password. Sent only over TLS; never logged
	// and never persisted on the client.
	Password string `json:"password"`
}

// RefreshRequest exchanges a refresh token for a new token pair.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// LogoutRequest revokes the refresh token server-side.
type LogoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// ChallengeRequest asks the server to issue a 2FA challenge for a merchant.
type ChallengeRequest struct {
	// MerchantID is the merchant to verify.
	MerchantID string `json:"merchant_id"`

	// Method selects the delivery channel for the challenge.
	Method DeliveryMethod `json:"method"`

	// DeliveryAddress is the email address or phone number the challenge is
	// sent to, matching Method.
	DeliveryAddress string `json:"delivery_address"`
}

// ConfirmRequest submits a manually entered verification code for a request,
// used when the out-of-band push approval is unavailable.
type ConfirmRequest struct {
	RequestID string `json:"request_id"`

	// Code is the 6-digit verification code from the challenge message.
	Code string `json:"code"`
}

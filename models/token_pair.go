// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// TokenPair holds the bearer material returned by the authentication
// endpoints. The access token authorizes API calls and the socket channel;
// the refresh token is exchanged for a new pair when the access token nears
// expiry.
type TokenPair struct {
	// AccessToken is the short-lived bearer token in compact JWS form.
	AccessToken string `json:"access_token"`

	// RefreshToken is the long-lived token used to obtain a new pair.
	RefreshToken string `json:"refresh_token"`

	// ExpiresIn is the access token lifetime in seconds as reported by the
	// server at issue time.
	ExpiresIn int64 `json:"expires_in"`

	// AccessExpiresAt is the parsed "exp" claim of AccessToken. Populated
	// client-side after a successful login or refresh; zero when the claim
	// could not be read.
	AccessExpiresAt time.Time `json:"-"`
}

// ShouldRefresh reports whether the access token is within threshold of its
// expiry (or already past it) at the given instant.
func (p TokenPair) ShouldRefresh(now time.Time, threshold time.Duration) bool {
	if p.AccessExpiresAt.IsZero() {
		return false
	}
	return !now.Add(threshold).Before(p.AccessExpiresAt)
}

package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")
	ErrWrongCredentials    = errors.New("wrong login or password")

	// ErrLoginFailed marks a server-side failure while issuing the token
	// pair. The credentials may be fine; a later retry can succeed.
	ErrLoginFailed = errors.New("login failed on server")

	ErrTokenIsExpired          = errors.New("token is expired")
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")
	ErrNotAuthenticated        = errors.New("not authenticated")

	// ErrRequestInFlight rejects a Start while a non-terminal verification
	// request for the same merchant exists.
	ErrRequestInFlight = errors.New("verification request already in flight")

	// ErrLockedOut rejects a Start while the merchant is inside the lockout
	// window after too many failed outcomes.
	ErrLockedOut = errors.New("merchant is locked out")

	// ErrRequestNotFound marks an operation referencing a verification
	// request the engine is not tracking.
	ErrRequestNotFound = errors.New("verification request not found")

	ErrMerchantNotFound      = errors.New("merchant not found")
	ErrAlreadyResolved       = errors.New("verification already resolved")
	ErrInvalidCode           = errors.New("verification code rejected")
	ErrCodeAttemptsExhausted = errors.New("code attempts exhausted")

	// ErrEngineClosed marks operations arriving after the engine shut down.
	ErrEngineClosed = errors.New("verification engine is closed")

	// ErrVerificationUnavailable marks upstream outages (bad gateway,
	// service unavailable) behind the verification API.
	ErrVerificationUnavailable = errors.New("verification service unavailable")
)

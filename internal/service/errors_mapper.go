// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"errors"
	"strings"

	"github.com/MKhiriev/go-merchant-verify/internal/adapter"
	"github.com/MKhiriev/go-merchant-verify/internal/app"
	"github.com/MKhiriev/go-merchant-verify/internal/validators"
)

// mapAdapterError translates the adapter's transport error into a service business error
func mapAdapterError(err error) error {
	if err == nil {
		return nil
	}

	msg := extractBody(err)

	switch {
	case errors.Is(err, adapter.ErrBadRequest):
		switch msg {
		case app.MsgInvalidDataProvided:
			return ErrInvalidDataProvided
		case app.MsgUnknownDeliveryMethod:
			return validators.ErrUnsupportedDeliveryMethod
		case app.MsgInvalidVerificationCode:
			return ErrInvalidCode
		}

	case errors.Is(err, adapter.ErrUnauthorized):
		switch msg {
		case app.MsgInvalidLoginPassword:
			return ErrWrongCredentials
		case app.MsgTokenIsExpired:
			return ErrTokenIsExpired
		case app.MsgTokenIsExpiredOrInvalid:
			return ErrTokenIsExpiredOrInvalid
		}

	case errors.Is(err, adapter.ErrNotFound):
		switch msg {
		case app.MsgMerchantNotFound:
			return ErrMerchantNotFound
		case app.MsgRequestNotFound:
			return ErrRequestNotFound
		}

	case errors.Is(err, adapter.ErrConflict):
		switch msg {
		case app.MsgChallengeAlreadyIssued:
			return ErrRequestInFlight
		case app.MsgVerificationAlreadyResolved:
			return ErrAlreadyResolved
		}

	case errors.Is(err, adapter.ErrTooManyRequests):
		switch msg {
		case app.MsgMerchantLockedOut:
			return ErrLockedOut
		case app.MsgCodeAttemptsExhausted:
			return ErrCodeAttemptsExhausted
		}

	case errors.Is(err, adapter.ErrInternalServerError):
		switch msg {
		case app.MsgLoginFailed:
			return ErrLoginFailed
		case app.MsgInternalServerError:
			return ErrVerificationUnavailable
		}

	case errors.Is(err, adapter.ErrBadGateway), errors.Is(err, adapter.ErrServiceUnavailable):
		return ErrVerificationUnavailable
	}

	return err
}

// extractBody extracts the body from a message of the form "http 400: <body>"
func extractBody(err error) string {
	msg := err.Error()
	if idx := strings.Index(msg, ": "); idx != -1 {
		return msg[idx+2:]
	}
	return msg
}

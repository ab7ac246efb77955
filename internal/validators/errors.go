package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrInvalidMerchantID         = errors.New("invalid merchant ID")
	ErrUnsupportedDeliveryMethod = errors.New("unsupported delivery method")
	ErrInvalidEmail              = errors.New("invalid email address")
	ErrEmailTooLong              = errors.New("email address exceeds maximum length")
	ErrInvalidPhone              = errors.New("invalid phone number")
	ErrInvalidRequestID          = errors.New("invalid request ID")
	ErrInvalidCode               = errors.New("invalid verification code")
)

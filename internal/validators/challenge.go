package validators

import (
	"context"

	"github.com/MKhiriev/go-merchant-verify/models"
)

// Field name constants used to specify which fields should be validated.
// These constants are passed to Validate or internal validation methods
// to restrict validation to a subset of fields (field-level scoping).
const (
	// FieldMerchantID targets the merchant identifier of a challenge request.
	FieldMerchantID = "merchant_id"

	// FieldMethod targets the delivery channel field (email or sms).
	FieldMethod = "method"

	// FieldDeliveryAddress targets the challenge delivery address; the rules
	// applied depend on the request's Method.
	FieldDeliveryAddress = "delivery_address"

	// FieldRequestID targets the verification request identifier of a
	// confirmation.
	FieldRequestID = "request_id"

	// FieldCode targets the manually entered verification code.
	FieldCode = "code"
)

const (
	// emailMaxLen is the RFC 5321 limit on a complete email address.
	emailMaxLen = 254

	phoneMinDigits = 10
	phoneMaxDigits = 15

	codeLength = 6
)

// allowedDeliveryMethods is the exhaustive set of DeliveryMethod values
// accepted by the validator. Any method not present in this slice is
// considered invalid.
var allowedDeliveryMethods = []models.DeliveryMethod{
	models.DeliveryEmail,
	models.DeliverySMS,
}

// ChallengeValidator implements the Validator interface for the verification
// input models: ChallengeRequest and ConfirmRequest.
//
// It supports both value and pointer receivers for every model type
// and allows optional field-level scoping via variadic field name arguments.
type ChallengeValidator struct {
}

// NewChallengeValidator constructs a new ChallengeValidator
// and returns it as the Validator interface.
func NewChallengeValidator() Validator {
	return &ChallengeValidator{}
}

// Validate dispatches validation to the appropriate type-specific method
// based on the dynamic type of obj. Both value and pointer forms of each
// supported model are accepted.
//
// Supported types:
//   - models.ChallengeRequest / *models.ChallengeRequest
//   - models.ConfirmRequest / *models.ConfirmRequest
//
// Returns ErrUnsupportedType if obj does not match any known model.
// Optional fields restrict validation to the named subset; when omitted,
// a sensible default set of fields is validated.
func (v *ChallengeValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.ChallengeRequest:
		return v.validateChallengeRequest(ctx, value, fields...)
	case *models.ChallengeRequest:
		return v.validateChallengeRequest(ctx, *value, fields...)

	case models.ConfirmRequest:
		return v.validateConfirmRequest(ctx, value, fields...)
	case *models.ConfirmRequest:
		return v.validateConfirmRequest(ctx, *value, fields...)

	default:
		return ErrUnsupportedType
	}
}

// isValidDeliveryMethod reports whether m is one of the recognized
// DeliveryMethod values defined in allowedDeliveryMethods.
func isValidDeliveryMethod(m models.DeliveryMethod) bool {
	for _, allowed := range allowedDeliveryMethods {
		if m == allowed {
			return true
		}
	}
	return false
}

// isValidEmail reports whether address is a plausible bare email address:
// exactly one @ separating a non-empty local part from a domain that
// contains an interior dot, with no whitespace anywhere.
func isValidEmail(address string) bool {
	if address == "" {
		return false
	}

	at := -1
	for i := 0; i < len(address); i++ {
		switch address[i] {
		case '@':
			if at >= 0 {
				return false // second @
			}
			at = i
		case ' ', '\t', '\n', '\r':
			return false
		}
	}
	if at <= 0 || at == len(address)-1 {
		return false
	}

	domain := address[at+1:]
	dot := -1
	for i := 0; i < len(domain); i++ {
		if domain[i] == '.' {
			dot = i
		}
	}
	return dot > 0 && dot < len(domain)-1
}

// isValidPhone reports whether number is 10 to 15 digits with an optional
// leading plus sign.
func isValidPhone(number string) bool {
	digits := number
	if len(digits) > 0 && digits[0] == '+' {
		digits = digits[1:]
	}
	if len(digits) < phoneMinDigits || len(digits) > phoneMaxDigits {
		return false
	}
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return false
		}
	}
	return true
}

// isValidCode reports whether code is exactly six decimal digits.
func isValidCode(code string) bool {
	if len(code) != codeLength {
		return false
	}
	for i := 0; i < len(code); i++ {
		if code[i] < '0' || code[i] > '9' {
			return false
		}
	}
	return true
}

// validateChallengeRequest validates a single ChallengeRequest model.
//
// Default validated fields (when none specified):
// MerchantID, Method, DeliveryAddress.
//
// The delivery address rules depend on the request's Method: email addresses
// are capped at 254 characters and must be structurally plausible; phone
// numbers must be 10 to 15 digits with an optional leading plus.
//
// Returns the first encountered validation error or nil.
func (v *ChallengeValidator) validateChallengeRequest(ctx context.Context, request models.ChallengeRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldMerchantID, FieldMethod, FieldDeliveryAddress}
	}

	for _, f := range fields {
		switch f {
		case FieldMerchantID:
			if request.MerchantID == "" {
				return ErrInvalidMerchantID
			}
		case FieldMethod:
			if !isValidDeliveryMethod(request.Method) {
				return ErrUnsupportedDeliveryMethod
			}
		case FieldDeliveryAddress:
			switch request.Method {
			case models.DeliveryEmail:
				if len(request.DeliveryAddress) > emailMaxLen {
					return ErrEmailTooLong
				}
				if !isValidEmail(request.DeliveryAddress) {
					return ErrInvalidEmail
				}
			case models.DeliverySMS:
				if !isValidPhone(request.DeliveryAddress) {
					return ErrInvalidPhone
				}
			default:
				return ErrUnsupportedDeliveryMethod
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// validateConfirmRequest validates a ConfirmRequest, which carries a manually
// entered verification code for an open request.
//
// Default validated fields: RequestID, Code.
func (v *ChallengeValidator) validateConfirmRequest(ctx context.Context, request models.ConfirmRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldRequestID, FieldCode}
	}

	for _, f := range fields {
		switch f {
		case FieldRequestID:
			if request.RequestID == "" {
				return ErrInvalidRequestID
			}
		case FieldCode:
			if !isValidCode(request.Code) {
				return ErrInvalidCode
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenExpiry reads the ExpiresAt (exp) claim from a JWT token string
// without verifying the signature.
//
// The server is the authority on token validity; the client only needs the
// expiry to schedule background refreshes, so an unverified parse is
// sufficient and avoids shipping the signing key to the client.
//
// Parameters:
//
//	tokenString - the raw JWT string as received from the auth endpoints
//
// Returns:
//
//	time.Time - the expiry instant from the exp claim
//	error     - non-nil if the string is not a JWT or carries no exp claim
//
// Example usage:
//
//	expiresAt, err := utils.TokenExpiry(pair.AccessToken)
func TokenExpiry(tokenString string) (time.Time, error) {
	token, _, err := jwt.NewParser().ParseUnverified(tokenString, jwt.MapClaims{})
	if err != nil {
		return time.Time{}, fmt.Errorf("error occurred parsing token: %w", err)
	}

	exp, err := token.Claims.GetExpirationTime()
	if err != nil {
		return time.Time{}, fmt.Errorf("error occurred reading exp claim: %w", err)
	}
	if exp == nil {
		return time.Time{}, errors.New("token has no exp claim")
	}

	return exp.Time, nil
}

package utils

import (
	"crypto/sha256"
	"encoding/hex"
)

// fingerprintLen is the number of digest bytes kept in a fingerprint.
// Eight bytes (sixteen hex characters) is enough to correlate log entries
// without being reversible in practice.
const fingerprintLen = 8

// Fingerprint computes a short stable SHA-256 digest of the given string,
// hex-encoded.
//
// Raw delivery addresses (emails, phone numbers) must never reach the logs;
// the fingerprint is logged instead, which is enough to tell whether two
// entries refer to the same address.
//
// Parameters:
//
//	data - the sensitive string to be fingerprinted
//
// Returns:
//
//	string - 16-character hex fingerprint; empty input yields an empty string
//
// Example usage:
//
//	log.Info().Str("address", utils.Fingerprint(addr)).Msg("challenge sent")
func Fingerprint(data string) string {
	if data == "" {
		return ""
	}

	sum := sha256.Sum256([]byte(data))
	return hex.EncodeToString(sum[:fingerprintLen])
}

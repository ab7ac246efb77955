package models

import "time"

// Credential is the sealed authentication material cached for one merchant.
// The payload is encrypted with the key derived from the vault master secret;
// it is only ever replaced whole, never patched in place.
type Credential struct {
	// MerchantID identifies the merchant the credential belongs to.
	MerchantID string `json:"merchant_id"`

	// EncryptedPayload is the AEAD ciphertext of the serialized
	// [SessionToken].
	EncryptedPayload []byte `json:"encrypted_payload"`

	// Nonce is the unique value the payload was sealed with. Stored next to
	// the ciphertext; required to open it.
	Nonce []byte `json:"nonce"`
}

// SessionToken is the server-issued proof of a completed verification.
// It is persisted only in sealed form inside a [Credential].
type SessionToken struct {
	// Value is the opaque token material issued by the server.
	Value []byte `json:"value"`

	// IssuedAt is when the token was issued.
	IssuedAt time.Time `json:"issued_at"`

	// ExpiresAt is when the token stops being valid. A token at or past
	// this instant is treated as absent.
	ExpiresAt time.Time `json:"expires_at"`
}

// Valid reports whether the token is usable at the given instant.
func (t SessionToken) Valid(now time.Time) bool {
	return len(t.Value) > 0 && t.ExpiresAt.After(now)
}

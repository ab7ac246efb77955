package vault

import (
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/MKhiriev/go-merchant-verify/internal/crypto"
	"github.com/MKhiriev/go-merchant-verify/models"
)

// Well-known vault keys. Credentials get one key per merchant under
// credentialKeyPrefix; everything else is a single slot.
const (
	masterSecretKey     = "master-secret"
	kdfSaltKey          = "kdf-salt"
	tokenPairKey        = "token-pair"
	credentialKeyPrefix = "credential/"
)

const masterSecretLen = 32

// Session owns the process copy of the master secret and the key derived
// from it. Open it once at startup, pass it to the services that seal and
// open records, and Close it on shutdown to zero the key material.
//
// Session methods are safe for concurrent use as long as Close is called
// only after all other callers are done, which the application lifecycle
// guarantees.
type Session struct {
	store  SecretStore
	secret []byte
	salt   []byte
	key    []byte
}

// Open loads the master secret and KDF salt from the vault, generating and
// persisting both on first run, and derives the session key. kdfIterations
// is the Argon2id time cost; zero selects the default.
//
// Open never invents a degraded mode: if the vault cannot be reached the
// error carries [ErrVaultUnavailable] and the client must not proceed.
func Open(store SecretStore, box crypto.CipherService, kdfIterations uint32) (*Session, error) {
	secret, err := store.Get(masterSecretKey)
	switch {
	case errors.Is(err, ErrSecretNotFound):
		secret = make([]byte, masterSecretLen)
		if _, err := io.ReadFull(rand.Reader, secret); err != nil {
			return nil, fmt.Errorf("generate master secret: %w", err)
		}
		if err := store.Put(masterSecretKey, secret); err != nil {
			return nil, err
		}
	case err != nil:
		return nil, err
	}

	salt, err := store.Get(kdfSaltKey)
	switch {
	case errors.Is(err, ErrSecretNotFound):
		salt, err = box.GenerateSalt()
		if err != nil {
			zeroBytes(secret)
			return nil, fmt.Errorf("generate kdf salt: %w", err)
		}
		if err := store.Put(kdfSaltKey, salt); err != nil {
			zeroBytes(secret)
			return nil, err
		}
	case err != nil:
		zeroBytes(secret)
		return nil, err
	}

	return &Session{
		store:  store,
		secret: secret,
		salt:   salt,
		key:    box.DeriveKey(secret, salt, kdfIterations),
	}, nil
}

// Key returns the derived 256-bit session key. Nil after Close.
func (s *Session) Key() []byte {
	return s.key
}

// sealedRecord is the vault value format for encrypted records. The payload
// is ciphertext; the nonce travels next to it so the record is
// self-contained.
type sealedRecord struct {
	Payload []byte `json:"payload"`
	Nonce   []byte `json:"nonce"`
}

// PutCredential stores a sealed merchant credential, replacing any previous
// record for the same merchant whole.
func (s *Session) PutCredential(cred models.Credential) error {
	raw, err := json.Marshal(sealedRecord{Payload: cred.EncryptedPayload, Nonce: cred.Nonce})
	if err != nil {
		return fmt.Errorf("marshal credential: %w", err)
	}

	return s.store.Put(credentialKeyPrefix+cred.MerchantID, raw)
}

// GetCredential returns the sealed credential for merchantID, or
// [ErrSecretNotFound] if none is stored.
func (s *Session) GetCredential(merchantID string) (models.Credential, error) {
	raw, err := s.store.Get(credentialKeyPrefix + merchantID)
	if err != nil {
		return models.Credential{}, err
	}

	var rec sealedRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return models.Credential{}, fmt.Errorf("unmarshal credential: %w", err)
	}

	return models.Credential{
		MerchantID:       merchantID,
		EncryptedPayload: rec.Payload,
		Nonce:            rec.Nonce,
	}, nil
}

// DeleteCredential removes the sealed credential for merchantID. Removing
// an absent credential is not an error.
func (s *Session) DeleteCredential(merchantID string) error {
	return s.store.Delete(credentialKeyPrefix + merchantID)
}

// PutTokenPair stores the sealed auth token material.
func (s *Session) PutTokenPair(payload, nonce []byte) error {
	raw, err := json.Marshal(sealedRecord{Payload: payload, Nonce: nonce})
	if err != nil {
		return fmt.Errorf("marshal token pair: %w", err)
	}

	return s.store.Put(tokenPairKey, raw)
}

// GetTokenPair returns the sealed auth token material, or
// [ErrSecretNotFound] if none is stored.
func (s *Session) GetTokenPair() (payload, nonce []byte, err error) {
	raw, err := s.store.Get(tokenPairKey)
	if err != nil {
		return nil, nil, err
	}

	var rec sealedRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, nil, fmt.Errorf("unmarshal token pair: %w", err)
	}

	return rec.Payload, rec.Nonce, nil
}

// DeleteTokenPair removes the sealed auth token material.
func (s *Session) DeleteTokenPair() error {
	return s.store.Delete(tokenPairKey)
}

// Close zeroes the in-memory master secret, salt and derived key. The vault
// copies stay intact for the next run.
func (s *Session) Close() {
	zeroBytes(s.secret)
	zeroBytes(s.salt)
	zeroBytes(s.key)
	s.secret, s.salt, s.key = nil, nil, nil
}

func zeroBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

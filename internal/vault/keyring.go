// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package vault

import (
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"
)

// serviceName is the service identifier all secrets are filed under in the
// OS vault. Changing it orphans previously stored secrets.
const serviceName = "merchant-verify"

// keyringStore is a [SecretStore] backed by the OS credential vault through
// zalando/go-keyring. The keyring API is string-typed, so values are
// base64-encoded on the way in and decoded on the way out.
type keyringStore struct {
	service string
}

// NewKeyringStore returns a [SecretStore] backed by the OS credential vault.
func NewKeyringStore() SecretStore {
	return &keyringStore{service: serviceName}
}

func (k *keyringStore) Put(key string, value []byte) error {
	encoded := base64.StdEncoding.EncodeToString(value)
	if err := keyring.Set(k.service, key, encoded); err != nil {
		return fmt.Errorf("%w: set %s: %v", ErrVaultUnavailable, key, err)
	}

	return nil
}

func (k *keyringStore) Get(key string) ([]byte, error) {
	encoded, err := keyring.Get(k.service, key)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrSecretNotFound, key)
		}
		return nil, fmt.Errorf("%w: get %s: %v", ErrVaultUnavailable, key, err)
	}

	value, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("decode secret %s: %w", key, err)
	}

	return value, nil
}

func (k *keyringStore) Delete(key string) error {
	if err := keyring.Delete(k.service, key); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("%w: delete %s: %v", ErrVaultUnavailable, key, err)
	}

	return nil
}

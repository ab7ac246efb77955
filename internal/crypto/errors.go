package crypto

import "errors"

// ErrAuthFailure is returned by Open when the ciphertext fails GCM
// authentication: the data was tampered with, truncated, or sealed under a
// different key. Callers must treat the payload as corrupted or foreign and
// never receive partial plaintext.
var ErrAuthFailure = errors.New("ciphertext authentication failed")

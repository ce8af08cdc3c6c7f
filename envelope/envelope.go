/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package envelope

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"

	"github.com/suparena/configstore/errors"
	"github.com/suparena/configstore/values"
)

// dataKeyBytes is the length of the data key requested from the key service.
// The first 32 bytes key AES-256-CTR, the last 32 bytes key HMAC-SHA256.
const dataKeyBytes = 64

// KeyService wraps and unwraps per-value data keys. Implementations must
// return a freshly generated key on every GenerateDataKey call; the whole
// scheme depends on data keys never being reused.
type KeyService interface {
	// GenerateDataKey returns a new data key of numBytes bytes in both its
	// plaintext form and a wrapped form that only the key service can open
	// again. The encryption context is bound to the wrapped key and must be
	// presented unchanged on Decrypt.
	GenerateDataKey(ctx context.Context, keyID string, encryptionContext map[string]string, numBytes int32) (plaintextKey, wrappedKey []byte, err error)

	// Decrypt unwraps a previously wrapped data key.
	Decrypt(ctx context.Context, wrappedKey []byte, encryptionContext map[string]string) (plaintextKey []byte, err error)
}

// Crypter envelope-encrypts individual configuration values under a master
// key held by a KeyService.
type Crypter struct {
	keys    KeyService
	keyID   string
	context map[string]string
}

// Option configures a Crypter.
type Option func(*Crypter)

// WithEncryptionContext attaches an authenticated context to every key
// service call. A value encrypted with a context can only be decrypted by a
// Crypter carrying the same context.
func WithEncryptionContext(ec map[string]string) Option {
	return func(c *Crypter) { c.context = ec }
}

// New returns a Crypter that wraps data keys under the given master key.
func New(keys KeyService, keyID string, opts ...Option) *Crypter {
	c := &Crypter{keys: keys, keyID: keyID}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Encrypt envelope-encrypts plaintext into an Encrypted value.
//
// Each call requests a fresh 64-byte data key from the key service and splits
// it into an AES-256 encryption key and an HMAC-SHA256 authentication key.
// The CTR counter block is all zeros for every message; that is safe only
// because each data key encrypts exactly one message and is never reused.
// The integrity tag is the hex HMAC-SHA256 of the raw ciphertext bytes.
func (c *Crypter) Encrypt(ctx context.Context, plaintext string) (values.Encrypted, error) {
	dataKey, wrappedKey, err := c.keys.GenerateDataKey(ctx, c.keyID, c.context, dataKeyBytes)
	if err != nil {
		return values.Encrypted{}, errors.NewKeyServiceError("GenerateDataKey", err)
	}
	if len(dataKey) != dataKeyBytes {
		return values.Encrypted{}, errors.NewKeyServiceError("GenerateDataKey",
			fmt.Errorf("expected a %d byte data key, got %d bytes", dataKeyBytes, len(dataKey)))
	}
	encKey, hmacKey := dataKey[:32], dataKey[32:]

	ciphertext, err := ctrCrypt(encKey, []byte(plaintext))
	if err != nil {
		return values.Encrypted{}, err
	}

	mac := hmac.New(sha256.New, hmacKey)
	mac.Write(ciphertext)

	return values.Encrypted{
		WrappedKey:   base64.StdEncoding.EncodeToString(wrappedKey),
		Ciphertext:   base64.StdEncoding.EncodeToString(ciphertext),
		IntegrityTag: hex.EncodeToString(mac.Sum(nil)),
	}, nil
}

// Decrypt verifies and decrypts an Encrypted value.
//
// The stored tag is recomputed with the unwrapped authentication key and
// compared in constant time before any decryption happens; the comparison
// runs over the tag's hex text, so a tag differing only in letter case is
// rejected. A value that fails verification never produces plaintext.
func (c *Crypter) Decrypt(ctx context.Context, v values.Encrypted) (string, error) {
	wrappedKey, err := base64.StdEncoding.Strict().DecodeString(v.WrappedKey)
	if err != nil {
		return "", errors.NewIntegrityError("wrapped key is not valid base64")
	}
	ciphertext, err := base64.StdEncoding.Strict().DecodeString(v.Ciphertext)
	if err != nil {
		return "", errors.NewIntegrityError("ciphertext is not valid base64")
	}
	if _, err := hex.DecodeString(v.IntegrityTag); err != nil {
		return "", errors.NewIntegrityError("integrity tag is not valid hex")
	}

	dataKey, err := c.keys.Decrypt(ctx, wrappedKey, c.context)
	if err != nil {
		return "", errors.NewKeyServiceError("Decrypt", err)
	}
	if len(dataKey) != dataKeyBytes {
		return "", errors.NewKeyServiceError("Decrypt",
			fmt.Errorf("expected a %d byte data key, got %d bytes", dataKeyBytes, len(dataKey)))
	}
	encKey, hmacKey := dataKey[:32], dataKey[32:]

	mac := hmac.New(sha256.New, hmacKey)
	mac.Write(ciphertext)
	if !hmac.Equal([]byte(hex.EncodeToString(mac.Sum(nil))), []byte(v.IntegrityTag)) {
		return "", errors.NewIntegrityError("computed HMAC does not match stored tag")
	}

	plaintext, err := ctrCrypt(encKey, ciphertext)
	if err != nil {
		return "", err
	}
	return string(plaintext), nil
}

// ctrCrypt runs AES-CTR over src with the counter block starting at zero.
// CTR is symmetric, so the same function encrypts and decrypts.
func ctrCrypt(key, src []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cipher: %w", err)
	}
	stream := cipher.NewCTR(block, make([]byte, aes.BlockSize))
	dst := make([]byte, len(src))
	stream.XORKeyStream(dst, src)
	return dst, nil
}

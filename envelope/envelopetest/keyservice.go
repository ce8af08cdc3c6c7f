/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package envelopetest provides an in-memory key service for testing
// envelope encryption without AWS KMS.
package envelopetest

import (
	"context"
	"crypto/rand"
	"errors"
	"maps"
	"sync"

	"github.com/google/uuid"

	"github.com/suparena/configstore/envelope"
)

var _ envelope.KeyService = (*KeyService)(nil)

type entry struct {
	key     []byte
	context map[string]string
}

// KeyService is an in-memory implementation of envelope.KeyService. Data
// keys are random; the wrapped form is an opaque token resolved against an
// internal table, so wrapped keys never leak key material and tampered
// tokens fail to unwrap, just like KMS ciphertext blobs.
type KeyService struct {
	mu        sync.Mutex
	wrapped   map[string]entry
	generated int

	generateErr error
	decryptErr  error
}

// New creates a new in-memory KeyService.
func New() *KeyService {
	return &KeyService{
		wrapped: make(map[string]entry),
	}
}

// WithGenerateError makes GenerateDataKey return an error
func (s *KeyService) WithGenerateError(err error) *KeyService {
	s.generateErr = err
	return s
}

// WithDecryptError makes Decrypt return an error
func (s *KeyService) WithDecryptError(err error) *KeyService {
	s.decryptErr = err
	return s
}

// Generated reports how many data keys have been issued.
func (s *KeyService) Generated() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generated
}

// GenerateDataKey implements envelope.KeyService.
func (s *KeyService) GenerateDataKey(ctx context.Context, keyID string, encryptionContext map[string]string, numBytes int32) ([]byte, []byte, error) {
	if s.generateErr != nil {
		return nil, nil, s.generateErr
	}

	key := make([]byte, numBytes)
	if _, err := rand.Read(key); err != nil {
		return nil, nil, err
	}

	token := uuid.NewString()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.wrapped[token] = entry{key: key, context: maps.Clone(encryptionContext)}
	s.generated++

	return key, []byte(token), nil
}

// Decrypt implements envelope.KeyService.
func (s *KeyService) Decrypt(ctx context.Context, wrappedKey []byte, encryptionContext map[string]string) ([]byte, error) {
	if s.decryptErr != nil {
		return nil, s.decryptErr
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.wrapped[string(wrappedKey)]
	if !ok {
		return nil, errors.New("invalid wrapped key")
	}
	if !maps.Equal(e.context, encryptionContext) {
		return nil, errors.New("encryption context mismatch")
	}
	return e.key, nil
}

/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Common sentinel errors
var (
	// ErrNotFound is returned when a config item is not found
	ErrNotFound = errors.New("config item not found")

	// ErrMalformedRow is returned when a stored row lacks the attributes its value type declares
	ErrMalformedRow = errors.New("malformed config row")

	// ErrTypeMismatch is returned when a value of the wrong type is written through a loader
	ErrTypeMismatch = errors.New("value type mismatch")

	// ErrIntegrity is returned when stored ciphertext fails its authenticity check
	ErrIntegrity = errors.New("integrity check failed")

	// ErrKeyService is returned when a key service round trip fails
	ErrKeyService = errors.New("key service request failed")

	// ErrTransport is returned when a table round trip fails
	ErrTransport = errors.New("table request failed")
)

// NotFoundError represents an error when a config item is not found
type NotFoundError struct {
	Namespace string
	Name      string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("config item %q not found in namespace %q", e.Name, e.Namespace)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// MalformedRowError represents a stored row missing attributes required by the
// active value type
type MalformedRowError struct {
	Namespace string
	Name      string
	Missing   []string
}

func (e *MalformedRowError) Error() string {
	if e.Namespace == "" && e.Name == "" {
		return fmt.Sprintf("config row is missing attributes: %s", strings.Join(e.Missing, ", "))
	}
	return fmt.Sprintf("config row %q in namespace %q is missing attributes: %s",
		e.Name, e.Namespace, strings.Join(e.Missing, ", "))
}

func (e *MalformedRowError) Is(target error) bool {
	return target == ErrMalformedRow
}

// TypeMismatchError represents a write of a value whose type differs from the
// loader's configured value type
type TypeMismatchError struct {
	Want string
	Got  string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("value type mismatch: loader stores %s values, got %s", e.Want, e.Got)
}

func (e *TypeMismatchError) Is(target error) bool {
	return target == ErrTypeMismatch
}

// IntegrityError represents ciphertext that failed verification before decryption
type IntegrityError struct {
	Reason string
}

func (e *IntegrityError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("integrity check failed: %s", e.Reason)
	}
	return "integrity check failed"
}

func (e *IntegrityError) Is(target error) bool {
	return target == ErrIntegrity
}

// KeyServiceError represents a failed key service operation
type KeyServiceError struct {
	Op  string
	Err error
}

func (e *KeyServiceError) Error() string {
	return fmt.Sprintf("key service %s failed: %v", e.Op, e.Err)
}

func (e *KeyServiceError) Is(target error) bool {
	return target == ErrKeyService
}

func (e *KeyServiceError) Unwrap() error {
	return e.Err
}

// TransportError represents a failed table operation
type TransportError struct {
	Op    string
	Table string
	Err   error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s on table %q failed: %v", e.Op, e.Table, e.Err)
}

func (e *TransportError) Is(target error) bool {
	return target == ErrTransport
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Helper functions for creating errors

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(namespace, name string) error {
	return &NotFoundError{Namespace: namespace, Name: name}
}

// NewMalformedRowError creates a new MalformedRowError
func NewMalformedRowError(namespace, name string, missing []string) error {
	return &MalformedRowError{Namespace: namespace, Name: name, Missing: missing}
}

// NewTypeMismatchError creates a new TypeMismatchError
func NewTypeMismatchError(want, got string) error {
	return &TypeMismatchError{Want: want, Got: got}
}

// NewIntegrityError creates a new IntegrityError
func NewIntegrityError(reason string) error {
	return &IntegrityError{Reason: reason}
}

// NewKeyServiceError creates a new KeyServiceError wrapping the underlying cause
func NewKeyServiceError(op string, err error) error {
	return &KeyServiceError{Op: op, Err: err}
}

// NewTransportError creates a new TransportError wrapping the underlying cause
func NewTransportError(op, table string, err error) error {
	return &TransportError{Op: op, Table: table, Err: err}
}

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsMalformedRow checks if an error is a malformed row error
func IsMalformedRow(err error) bool {
	return errors.Is(err, ErrMalformedRow)
}

// IsTypeMismatch checks if an error is a type mismatch error
func IsTypeMismatch(err error) bool {
	return errors.Is(err, ErrTypeMismatch)
}

// IsIntegrity checks if an error is an integrity error
func IsIntegrity(err error) bool {
	return errors.Is(err, ErrIntegrity)
}

// IsKeyService checks if an error is a key service error
func IsKeyService(err error) bool {
	return errors.Is(err, ErrKeyService)
}

// IsTransport checks if an error is a transport error
func IsTransport(err error) bool {
	return errors.Is(err, ErrTransport)
}

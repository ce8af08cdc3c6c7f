/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package values

import (
	"github.com/suparena/configstore/errors"
)

// Attribute names used by the value variants. These must never collide with
// the table's key attribute names; the loader enforces that at construction.
const (
	FieldPlaintext    = "plaintext"
	FieldWrappedKey   = "wrapped_key"
	FieldCiphertext   = "ciphertext"
	FieldIntegrityTag = "integrity_tag"
)

// Row is the flat string-attribute map persisted for one config item.
// Rows never carry non-string attributes.
type Row map[string]string

// Value is one stored configuration value.
type Value interface {
	// Type returns the variant descriptor this value belongs to.
	Type() Type

	// ToRow serializes the value into its attribute mapping.
	ToRow() Row
}

// Type describes one value variant. A loader is bound to exactly one Type at
// construction; the Type decides which attributes are projected from the
// table and how stored rows become values again.
type Type interface {
	// Name identifies the variant in error messages.
	Name() string

	// Fields returns the attribute names the variant owns.
	Fields() []string

	// FromRow reconstructs a value from a stored row. Attributes the variant
	// does not declare are ignored; a declared attribute absent from the row
	// makes the row malformed.
	FromRow(row Row) (Value, error)
}

// Plaintext is a value stored as-is.
type Plaintext struct {
	Plaintext string
}

// Type implements Value.
func (v Plaintext) Type() Type { return TypePlaintext }

// ToRow implements Value.
func (v Plaintext) ToRow() Row {
	return Row{FieldPlaintext: v.Plaintext}
}

// Encrypted is a value stored as an envelope-encrypted triple: the data key
// wrapped by the key service (base64), the AES-CTR ciphertext (base64), and
// the hex HMAC-SHA256 tag computed over the raw ciphertext bytes.
type Encrypted struct {
	WrappedKey   string
	Ciphertext   string
	IntegrityTag string
}

// Type implements Value.
func (v Encrypted) Type() Type { return TypeEncrypted }

// ToRow implements Value.
func (v Encrypted) ToRow() Row {
	return Row{
		FieldWrappedKey:   v.WrappedKey,
		FieldCiphertext:   v.Ciphertext,
		FieldIntegrityTag: v.IntegrityTag,
	}
}

// TypePlaintext is the variant descriptor for Plaintext values.
var TypePlaintext Type = plaintextType{}

// TypeEncrypted is the variant descriptor for Encrypted values.
var TypeEncrypted Type = encryptedType{}

type plaintextType struct{}

func (plaintextType) Name() string { return "plaintext" }

func (plaintextType) Fields() []string {
	return []string{FieldPlaintext}
}

func (plaintextType) FromRow(row Row) (Value, error) {
	text, ok := row[FieldPlaintext]
	if !ok {
		return nil, errors.NewMalformedRowError("", "", []string{FieldPlaintext})
	}
	return Plaintext{Plaintext: text}, nil
}

type encryptedType struct{}

func (encryptedType) Name() string { return "encrypted" }

func (encryptedType) Fields() []string {
	return []string{FieldWrappedKey, FieldCiphertext, FieldIntegrityTag}
}

func (t encryptedType) FromRow(row Row) (Value, error) {
	if missing := missingFields(row, t.Fields()); len(missing) > 0 {
		return nil, errors.NewMalformedRowError("", "", missing)
	}
	return Encrypted{
		WrappedKey:   row[FieldWrappedKey],
		Ciphertext:   row[FieldCiphertext],
		IntegrityTag: row[FieldIntegrityTag],
	}, nil
}

func missingFields(row Row, fields []string) []string {
	var missing []string
	for _, f := range fields {
		if _, ok := row[f]; !ok {
			missing = append(missing, f)
		}
	}
	return missing
}

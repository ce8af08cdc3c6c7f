/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package configstore

import (
	"context"
	stderrors "errors"
	"reflect"
	"testing"

	"github.com/suparena/configstore/configtable/mock"
	"github.com/suparena/configstore/envelope"
	"github.com/suparena/configstore/envelope/envelopetest"
	"github.com/suparena/configstore/errors"
	"github.com/suparena/configstore/values"
)

func TestLoadNestsItemNames(t *testing.T) {
	table := mock.New()
	loader := New(table)
	ctx := context.Background()

	if err := loader.Put(ctx, "test", "foo", values.Plaintext{Plaintext: "bar"}); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if err := loader.Put(ctx, "test", "bar.baz", values.Plaintext{Plaintext: "foo"}); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	cfg, err := loader.Load(ctx, "test")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	want := Config{
		"foo": "bar",
		"bar": Config{"baz": "foo"},
	}
	if !reflect.DeepEqual(cfg, want) {
		t.Errorf("Expected %v, got %v", want, cfg)
	}
}

func TestLoadEmptyNamespace(t *testing.T) {
	loader := New(mock.New())

	cfg, err := loader.Load(context.Background(), "empty")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg == nil {
		t.Fatal("Expected an empty config, got nil")
	}
	if len(cfg) != 0 {
		t.Errorf("Expected an empty config, got %v", cfg)
	}
}

func TestLoadWithCustomSeparator(t *testing.T) {
	table := mock.New()
	loader := New(table, WithSeparator("/"))
	ctx := context.Background()

	if err := loader.Put(ctx, "test", "db/primary/host", values.Plaintext{Plaintext: "db.internal"}); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	cfg, err := loader.Load(ctx, "test")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	want := Config{
		"db": Config{"primary": Config{"host": "db.internal"}},
	}
	if !reflect.DeepEqual(cfg, want) {
		t.Errorf("Expected %v, got %v", want, cfg)
	}
}

func TestPutGetDeleteRoundTrip(t *testing.T) {
	loader := New(mock.New())
	ctx := context.Background()

	if err := loader.Put(ctx, "test", "foo", values.Plaintext{Plaintext: "bar"}); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	got, err := loader.Get(ctx, "test", "foo")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got == nil || *got != "bar" {
		t.Fatalf("Expected bar, got %v", got)
	}

	if err := loader.Delete(ctx, "test", "foo"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	got, err = loader.Get(ctx, "test", "foo")
	if err != nil {
		t.Fatalf("Get after delete failed: %v", err)
	}
	if got != nil {
		t.Errorf("Expected nil after delete, got %q", *got)
	}
}

func TestPutRejectsWrongValueType(t *testing.T) {
	table := mock.New()
	loader := New(table)
	ctx := context.Background()

	enc := values.Encrypted{WrappedKey: "k", Ciphertext: "c", IntegrityTag: "t"}
	err := loader.Put(ctx, "test", "foo", enc)
	if !errors.IsTypeMismatch(err) {
		t.Fatalf("Expected type mismatch error, got %v", err)
	}

	// The rejected write must not reach the table.
	if table.Len() != 0 {
		t.Errorf("Expected no items written, found %d", table.Len())
	}

	secure := NewEncrypted(table, envelope.New(envelopetest.New(), "alias/test"))
	err = secure.Put(ctx, "test", "foo", values.Plaintext{Plaintext: "bar"})
	if !errors.IsTypeMismatch(err) {
		t.Fatalf("Expected type mismatch error, got %v", err)
	}
	if table.Len() != 0 {
		t.Errorf("Expected no items written, found %d", table.Len())
	}
}

func TestDeleteIsIdempotent(t *testing.T) {
	loader := New(mock.New())
	ctx := context.Background()

	if err := loader.Delete(ctx, "test", "ghost"); err != nil {
		t.Fatalf("Deleting an absent item should succeed, got %v", err)
	}

	if err := loader.Put(ctx, "test", "foo", values.Plaintext{Plaintext: "bar"}); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if err := loader.Delete(ctx, "test", "foo"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if err := loader.Delete(ctx, "test", "foo"); err != nil {
		t.Fatalf("Second delete should succeed, got %v", err)
	}
}

func TestLoadFailsOnMalformedRow(t *testing.T) {
	table := mock.New()
	loader := New(table)
	ctx := context.Background()

	if err := loader.Put(ctx, "test", "good", values.Plaintext{Plaintext: "ok"}); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	// Write a row missing the plaintext attribute behind the loader's back.
	if err := table.Put(ctx, "test", "bad", values.Row{"stray": "x"}); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	cfg, err := loader.Load(ctx, "test")
	if !errors.IsMalformedRow(err) {
		t.Fatalf("Expected malformed row error, got %v", err)
	}
	if cfg != nil {
		t.Errorf("Expected no partial result, got %v", cfg)
	}

	// The error names the offending row.
	var malformed *errors.MalformedRowError
	if !stderrors.As(err, &malformed) {
		t.Fatalf("Expected *MalformedRowError, got %T", err)
	}
	if malformed.Namespace != "test" || malformed.Name != "bad" {
		t.Errorf("Expected row identity test/bad, got %s/%s", malformed.Namespace, malformed.Name)
	}
}

func TestNestedItemOverridesShorterPrefix(t *testing.T) {
	// "a" and "a.b" collide; the row scanned later wins. The mock scans in
	// item name order, so the nested item lands after the leaf.
	table := mock.New()
	loader := New(table)
	ctx := context.Background()

	if err := loader.Put(ctx, "test", "a", values.Plaintext{Plaintext: "scalar"}); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if err := loader.Put(ctx, "test", "a.b", values.Plaintext{Plaintext: "nested"}); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	cfg, err := loader.Load(ctx, "test")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	want := Config{"a": Config{"b": "nested"}}
	if !reflect.DeepEqual(cfg, want) {
		t.Errorf("Expected %v, got %v", want, cfg)
	}
}

func TestEncryptedLoaderRoundTrip(t *testing.T) {
	table := mock.New()
	loader := NewEncrypted(table, envelope.New(envelopetest.New(), "alias/test"))
	ctx := context.Background()

	enc, err := loader.Encrypt(ctx, "hunter2")
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}
	if err := loader.Put(ctx, "test", "db.password", enc); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	// The stored row holds ciphertext, not the secret.
	fields := append(values.TypeEncrypted.Fields(), values.FieldPlaintext)
	row, err := table.Get(ctx, "test", "db.password", fields)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if _, ok := row[values.FieldPlaintext]; ok {
		t.Error("Encrypted row must not carry a plaintext attribute")
	}
	if row[values.FieldCiphertext] == "" {
		t.Error("Expected ciphertext in the stored row")
	}

	got, err := loader.Get(ctx, "test", "db.password")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got == nil || *got != "hunter2" {
		t.Fatalf("Expected hunter2, got %v", got)
	}

	cfg, err := loader.Load(ctx, "test")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	want := Config{"db": Config{"password": "hunter2"}}
	if !reflect.DeepEqual(cfg, want) {
		t.Errorf("Expected %v, got %v", want, cfg)
	}
}

func TestEncryptOnPlaintextLoaderFails(t *testing.T) {
	loader := New(mock.New())

	_, err := loader.Encrypt(context.Background(), "secret")
	if !errors.IsTypeMismatch(err) {
		t.Fatalf("Expected a type mismatch error from Encrypt on a plaintext loader, got %v", err)
	}
}

func TestItems(t *testing.T) {
	table := mock.New()
	loader := New(table)
	ctx := context.Background()

	if err := loader.Put(ctx, "test", "b", values.Plaintext{Plaintext: "2"}); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if err := loader.Put(ctx, "test", "a", values.Plaintext{Plaintext: "1"}); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	items, err := loader.Items(ctx, "test")
	if err != nil {
		t.Fatalf("Items failed: %v", err)
	}

	want := []Item{{Name: "a", Plaintext: "1"}, {Name: "b", Plaintext: "2"}}
	if !reflect.DeepEqual(items, want) {
		t.Errorf("Expected %v, got %v", want, items)
	}
}

func TestTransportErrorsAreNotAbsence(t *testing.T) {
	cause := errors.NewTransportError("GetItem", "config", stderrors.New("connection refused"))
	table := mock.New().WithGetError(cause)
	loader := New(table)

	got, err := loader.Get(context.Background(), "test", "foo")
	if !errors.IsTransport(err) {
		t.Fatalf("Expected transport error, got %v", err)
	}
	if got != nil {
		t.Errorf("Expected no value alongside an error, got %q", *got)
	}

	scanTable := mock.New().WithScanError(cause)
	if _, err := New(scanTable).Load(context.Background(), "test"); !errors.IsTransport(err) {
		t.Fatalf("Expected transport error from Load, got %v", err)
	}
}

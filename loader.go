/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package configstore

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/suparena/configstore/configtable"
	"github.com/suparena/configstore/envelope"
	"github.com/suparena/configstore/errors"
	"github.com/suparena/configstore/values"
)

// DefaultSeparator splits flattened item names into config sections.
const DefaultSeparator = "."

// Config is the nested mapping assembled from a namespace. Leaves are
// plaintext strings; sections are nested Config maps.
type Config = map[string]any

// Item is one flattened config entry of a namespace.
type Item struct {
	Name      string
	Plaintext string
}

// Loader reads and writes namespaced configuration through a config table.
// A loader is bound to exactly one value type: New builds plaintext loaders,
// NewEncrypted builds loaders that envelope-encrypt at rest.
type Loader struct {
	table     configtable.Table
	valueType values.Type
	crypter   *envelope.Crypter
	separator string
}

// Option configures a Loader.
type Option func(*Loader)

// WithSeparator overrides the separator used to split item names into
// nested sections. Empty separators are ignored.
func WithSeparator(sep string) Option {
	return func(l *Loader) {
		if sep != "" {
			l.separator = sep
		}
	}
}

// New returns a Loader that stores plaintext values.
func New(table configtable.Table, opts ...Option) *Loader {
	return newLoader(table, values.TypePlaintext, nil, opts)
}

// NewEncrypted returns a Loader that stores envelope-encrypted values,
// decrypting transparently on reads.
func NewEncrypted(table configtable.Table, crypter *envelope.Crypter, opts ...Option) *Loader {
	if crypter == nil {
		panic("configstore: NewEncrypted requires a crypter")
	}
	return newLoader(table, values.TypeEncrypted, crypter, opts)
}

func newLoader(table configtable.Table, valueType values.Type, crypter *envelope.Crypter, opts []Option) *Loader {
	for _, f := range valueType.Fields() {
		if f == configtable.AttrNamespace || f == configtable.AttrItemName {
			panic(fmt.Sprintf("configstore: value type %q declares reserved attribute %q", valueType.Name(), f))
		}
	}

	l := &Loader{
		table:     table,
		valueType: valueType,
		crypter:   crypter,
		separator: DefaultSeparator,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load assembles the whole namespace into a nested Config, splitting item
// names on the separator. An empty namespace yields an empty Config; a
// single undecodable row fails the whole call, never a partial result.
func (l *Loader) Load(ctx context.Context, namespace string) (Config, error) {
	items, err := l.Items(ctx, namespace)
	if err != nil {
		return nil, err
	}

	config := make(Config)
	for _, item := range items {
		insert(config, strings.Split(item.Name, l.separator), item.Plaintext)
	}
	return config, nil
}

// Items returns the flattened entries of a namespace in table scan order.
func (l *Loader) Items(ctx context.Context, namespace string) ([]Item, error) {
	rows, err := l.table.Scan(ctx, namespace, l.valueType.Fields())
	if err != nil {
		return nil, err
	}

	items := make([]Item, 0, len(rows))
	for _, row := range rows {
		name := row[configtable.AttrItemName]
		plaintext, err := l.decode(ctx, namespace, name, row)
		if err != nil {
			return nil, err
		}
		items = append(items, Item{Name: name, Plaintext: plaintext})
	}
	return items, nil
}

// Get returns the plaintext of a single item using a consistent read, or
// nil if no item is stored under (namespace, itemName).
func (l *Loader) Get(ctx context.Context, namespace, itemName string) (*string, error) {
	row, err := l.table.Get(ctx, namespace, itemName, l.valueType.Fields())
	if err != nil {
		return nil, err
	}
	if row == nil {
		// Not found: return nil, nil
		return nil, nil
	}

	plaintext, err := l.decode(ctx, namespace, itemName, row)
	if err != nil {
		return nil, err
	}
	return &plaintext, nil
}

// Put upserts a value under (namespace, itemName). The value must belong to
// the loader's value type; nothing is written otherwise.
func (l *Loader) Put(ctx context.Context, namespace, itemName string, value values.Value) error {
	if value.Type().Name() != l.valueType.Name() {
		return errors.NewTypeMismatchError(l.valueType.Name(), value.Type().Name())
	}
	return l.table.Put(ctx, namespace, itemName, value.ToRow())
}

// Delete removes an item. Deleting an absent item succeeds.
func (l *Loader) Delete(ctx context.Context, namespace, itemName string) error {
	return l.table.Delete(ctx, namespace, itemName)
}

// Encrypt envelope-encrypts plaintext into a value this loader's Put
// accepts. Loaders built without encryption reject the call with a type
// mismatch error.
func (l *Loader) Encrypt(ctx context.Context, plaintext string) (values.Encrypted, error) {
	if l.crypter == nil {
		return values.Encrypted{}, errors.NewTypeMismatchError(l.valueType.Name(), values.TypeEncrypted.Name())
	}
	return l.crypter.Encrypt(ctx, plaintext)
}

// decode turns a stored row into plaintext, attributing malformed rows to
// the item they came from.
func (l *Loader) decode(ctx context.Context, namespace, name string, row values.Row) (string, error) {
	val, err := l.valueType.FromRow(row)
	if err != nil {
		var malformed *errors.MalformedRowError
		if stderrors.As(err, &malformed) {
			return "", errors.NewMalformedRowError(namespace, name, malformed.Missing)
		}
		return "", err
	}

	switch v := val.(type) {
	case values.Plaintext:
		return v.Plaintext, nil
	case values.Encrypted:
		return l.crypter.Decrypt(ctx, v)
	default:
		return "", fmt.Errorf("unsupported value type %q", val.Type().Name())
	}
}

// insert writes plaintext into config under the given path, creating nested
// sections as needed. When an item name prefixes another, whichever row the
// scan yields later wins: a leaf landing on a section replaces it and a
// section climbing through a leaf replaces the leaf.
func insert(config Config, path []string, plaintext string) {
	node := config
	for _, segment := range path[:len(path)-1] {
		child, ok := node[segment].(Config)
		if !ok {
			child = make(Config)
			node[segment] = child
		}
		node = child
	}
	node[path[len(path)-1]] = plaintext
}

/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package configtable

import (
	"context"

	"github.com/suparena/configstore/values"
)

// Key attribute names of the config table schema. Value variants must not
// declare fields with these names.
const (
	AttrNamespace = "namespace"
	AttrItemName  = "item_name"
)

// TableDefinition describes a config table: its name and the provisioned
// throughput used when the table is created.
type TableDefinition struct {
	Name          string `yaml:"name"`
	ReadCapacity  int64  `yaml:"read_capacity"`
	WriteCapacity int64  `yaml:"write_capacity"`
}

// DefaultTableDefinition returns the conventional definition: a table named
// "config" provisioned with one read and one write capacity unit.
func DefaultTableDefinition() TableDefinition {
	return TableDefinition{
		Name:          "config",
		ReadCapacity:  1,
		WriteCapacity: 1,
	}
}

// Table is the key-value surface the loader operates on. Items live under a
// composite key of namespace (partition) and item name (sort); everything
// else in a row is string attributes owned by the value codec.
//
// Absence is not an error at this level: Get returns (nil, nil) for a
// missing item and Delete of a missing item succeeds. Failed round trips are
// reported as TransportError, never conflated with absence.
type Table interface {
	// Get returns the row stored under (namespace, itemName) using a
	// consistent read, projected to the item name plus the given fields.
	// An absent item returns (nil, nil).
	Get(ctx context.Context, namespace, itemName string, fields []string) (values.Row, error)

	// Put upserts the row stored under (namespace, itemName).
	Put(ctx context.Context, namespace, itemName string, row values.Row) error

	// Delete removes the item identified by (namespace, itemName).
	Delete(ctx context.Context, namespace, itemName string) error

	// Scan returns every row of a namespace using consistent reads,
	// projected to the item name plus the given fields. A namespace with no
	// items yields no rows and no error.
	Scan(ctx context.Context, namespace string, fields []string) ([]values.Row, error)
}

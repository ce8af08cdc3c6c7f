/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package mock provides an in-memory implementation of the Table interface for testing
package mock

import (
	"context"
	"maps"
	"sort"
	"sync"

	"github.com/suparena/configstore/configtable"
	"github.com/suparena/configstore/values"
)

// Table is an in-memory implementation of configtable.Table for testing.
// Scan returns rows in item name order, matching the sort key order a real
// table would produce.
type Table struct {
	mu   sync.RWMutex
	data map[string]map[string]values.Row

	getError    error
	putError    error
	deleteError error
	scanError   error
}

var _ configtable.Table = (*Table)(nil)

// New creates a new mock Table
func New() *Table {
	return &Table{
		data: make(map[string]map[string]values.Row),
	}
}

// WithGetError makes Get operations return an error
func (m *Table) WithGetError(err error) *Table {
	m.getError = err
	return m
}

// WithPutError makes Put operations return an error
func (m *Table) WithPutError(err error) *Table {
	m.putError = err
	return m
}

// WithDeleteError makes Delete operations return an error
func (m *Table) WithDeleteError(err error) *Table {
	m.deleteError = err
	return m
}

// WithScanError makes Scan operations return an error
func (m *Table) WithScanError(err error) *Table {
	m.scanError = err
	return m
}

// Len reports how many items are stored across all namespaces.
func (m *Table) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	n := 0
	for _, items := range m.data {
		n += len(items)
	}
	return n
}

// Get retrieves a single row
func (m *Table) Get(ctx context.Context, namespace, itemName string, fields []string) (values.Row, error) {
	if m.getError != nil {
		return nil, m.getError
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	row, ok := m.data[namespace][itemName]
	if !ok {
		return nil, nil
	}
	return project(itemName, row, fields), nil
}

// Put stores a row
func (m *Table) Put(ctx context.Context, namespace, itemName string, row values.Row) error {
	if m.putError != nil {
		return m.putError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	items, ok := m.data[namespace]
	if !ok {
		items = make(map[string]values.Row)
		m.data[namespace] = items
	}
	items[itemName] = maps.Clone(row)
	return nil
}

// Delete removes a row; removing an absent row succeeds
func (m *Table) Delete(ctx context.Context, namespace, itemName string) error {
	if m.deleteError != nil {
		return m.deleteError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.data[namespace], itemName)
	return nil
}

// Scan returns all rows of a namespace in item name order
func (m *Table) Scan(ctx context.Context, namespace string, fields []string) ([]values.Row, error) {
	if m.scanError != nil {
		return nil, m.scanError
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	items := m.data[namespace]
	names := make([]string, 0, len(items))
	for name := range items {
		names = append(names, name)
	}
	sort.Strings(names)

	rows := make([]values.Row, 0, len(names))
	for _, name := range names {
		rows = append(rows, project(name, items[name], fields))
	}
	return rows, nil
}

// project mimics a DynamoDB projection: the result carries the item name
// attribute plus those requested fields present in the stored row.
func project(itemName string, row values.Row, fields []string) values.Row {
	out := values.Row{configtable.AttrItemName: itemName}
	for _, f := range fields {
		if v, ok := row[f]; ok {
			out[f] = v
		}
	}
	return out
}

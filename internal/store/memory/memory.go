//-------------------------------------------------------------------------
//
// pgEdge Trade Seeder
//
// Portions copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package memory implements an in-process backend that records every batch
// it receives. It backs dry runs and the seeder's tests.
package memory

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pgEdge/pgedge-tradeseed/internal/logging"
	"github.com/pgEdge/pgedge-tradeseed/internal/store"
	"github.com/pgEdge/pgedge-tradeseed/internal/timeuuid"
)

// Driver opens memory backends.
type Driver struct{}

// Name returns the backend name.
func (Driver) Name() string {
	return "memory"
}

// Description returns a human-readable description.
func (Driver) Description() string {
	return "In-process recorder; nothing is persisted (dry runs and tests)"
}

// Open returns a fresh, empty backend.
func (Driver) Open(_ context.Context, opts store.Options) (store.Backend, error) {
	return New(opts.Keyspace), nil
}

// Backend keeps batches in memory.
type Backend struct {
	mu                sync.Mutex
	keyspace          string
	replicationFactor int
	schemaCreated     bool
	batches           map[string][][][]any
	metadata          map[string]string
	closed            bool

	// FailAfter, when positive, makes the FailAfter+1-th ExecuteBatch call
	// and every later one return an error.
	FailAfter int
	calls     int
}

// New creates an empty memory backend for the keyspace.
func New(keyspace string) *Backend {
	return &Backend{
		keyspace: keyspace,
		batches:  make(map[string][][][]any),
		metadata: make(map[string]string),
	}
}

// CreateKeyspace records the keyspace replication factor.
func (b *Backend) CreateKeyspace(_ context.Context, replicationFactor int) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.replicationFactor == 0 {
		b.replicationFactor = replicationFactor
	}
	return nil
}

// CreateSchema marks the schema as created.
func (b *Backend) CreateSchema(_ context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.schemaCreated = true
	return nil
}

// DropSchema forgets every recorded batch and the metadata.
func (b *Backend) DropSchema(_ context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.schemaCreated = false
	b.batches = make(map[string][][][]any)
	b.metadata = make(map[string]string)
	return nil
}

// ExecuteBatch records a copy of the rows as one batch.
func (b *Backend) ExecuteBatch(_ context.Context, stmt store.Statement, rows [][]any) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return fmt.Errorf("memory backend is closed")
	}
	if !b.schemaCreated {
		return fmt.Errorf("table %s.%s does not exist", b.keyspace, stmt.Table)
	}
	b.calls++
	if b.FailAfter > 0 && b.calls > b.FailAfter {
		return fmt.Errorf("injected failure on batch %d", b.calls)
	}
	if len(rows) == 0 {
		return fmt.Errorf("empty batch for %s", stmt.Table)
	}
	if err := stmt.CheckRows(rows); err != nil {
		return err
	}

	batch := make([][]any, len(rows))
	for i, row := range rows {
		batch[i] = slices.Clone(row)
	}
	b.batches[stmt.Table] = append(b.batches[stmt.Table], batch)

	logging.Debug().
		Str("table", stmt.Table).
		Int("rows", len(rows)).
		Msg("Recorded batch")
	return nil
}

// AccountsByUser scans the recorded account rows for the username, ordered
// by account number like the clustering key.
func (b *Backend) AccountsByUser(_ context.Context, username string) ([]store.AccountRecord, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	var records []store.AccountRecord
	for _, row := range b.rowsLocked(store.TableAccounts) {
		if row[0].(string) != username {
			continue
		}
		records = append(records, store.AccountRecord{
			Username:      row[0].(string),
			AccountNumber: row[1].(string),
			CashBalance:   row[2].(decimal.Decimal),
			Name:          row[3].(string),
		})
	}
	slices.SortFunc(records, func(a, c store.AccountRecord) int {
		return strings.Compare(a.AccountNumber, c.AccountNumber)
	})
	return records, nil
}

// SaveMetadata upserts metadata entries.
func (b *Backend) SaveMetadata(_ context.Context, metadata map[string]string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	maps.Copy(b.metadata, metadata)
	return nil
}

// Metadata returns a copy of the metadata.
func (b *Backend) Metadata(_ context.Context) (map[string]string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.metadata) == 0 {
		return nil, store.ErrNotSeeded
	}
	return maps.Clone(b.metadata), nil
}

// Close marks the backend closed.
func (b *Backend) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
	return nil
}

// Keyspace returns the keyspace name.
func (b *Backend) Keyspace() string {
	return b.keyspace
}

// ReplicationFactor returns the replication factor of the first
// CreateKeyspace call.
func (b *Backend) ReplicationFactor() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.replicationFactor
}

// Batches returns the batches recorded for a table in submission order.
func (b *Backend) Batches(table string) [][][]any {
	b.mu.Lock()
	defer b.mu.Unlock()
	return slices.Clone(b.batches[table])
}

// Rows returns the concatenation of every batch recorded for a table.
func (b *Backend) Rows(table string) [][]any {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.rowsLocked(table)
}

// TradesByAccount returns the trade rows of one account in clustering
// order: most recent trade_id first.
func (b *Backend) TradesByAccount(account string) [][]any {
	b.mu.Lock()
	defer b.mu.Unlock()

	var rows [][]any
	for _, row := range b.rowsLocked(store.TableTrades) {
		if row[0].(string) == account {
			rows = append(rows, row)
		}
	}
	slices.SortStableFunc(rows, func(a, c []any) int {
		return timeuuid.Compare(c[1].(uuid.UUID), a[1].(uuid.UUID))
	})
	return rows
}

func (b *Backend) rowsLocked(table string) [][]any {
	var rows [][]any
	for _, batch := range b.batches[table] {
		rows = append(rows, batch...)
	}
	return rows
}

func init() {
	store.Register(Driver{})
}

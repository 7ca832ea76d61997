//-------------------------------------------------------------------------
//
// pgEdge Trade Seeder
//
// Portions copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package store defines the storage backend interface the seeder writes
// through, and the registry backends add themselves to.
package store

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/shopspring/decimal"
)

// Table names of the seeded schema.
const (
	TableAccounts  = "accounts_by_user"
	TablePositions = "positions_by_account"
	TableTrades    = "trades_by_a_d"
	TableMetadata  = "seed_metadata"
)

// ErrNotSeeded is returned by Backend.Metadata when the keyspace holds no
// seeding metadata.
var ErrNotSeeded = errors.New("keyspace has not been seeded")

var keyspaceRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]{0,47}$`)

// ValidateKeyspace checks that name can be templated into DDL unquoted.
func ValidateKeyspace(name string) error {
	if !keyspaceRe.MatchString(name) {
		return fmt.Errorf("invalid keyspace name %q: use letters, digits and underscores", name)
	}
	return nil
}

// Statement describes a parameterized insert: the target table, the ordered
// columns each row binds and the leading primary key columns.
type Statement struct {
	Table   string
	Columns []string
	Key     []string
}

// Insert statements for the three seeded tables.
var (
	InsertAccount = Statement{
		Table:   TableAccounts,
		Columns: []string{"username", "account_number", "cash_balance", "name"},
		Key:     []string{"username", "account_number"},
	}
	InsertPosition = Statement{
		Table:   TablePositions,
		Columns: []string{"account", "symbol", "quantity"},
		Key:     []string{"account", "symbol"},
	}
	InsertTrade = Statement{
		Table:   TableTrades,
		Columns: []string{"account", "trade_id", "type", "symbol", "shares", "price", "amount"},
		Key:     []string{"account", "trade_id"},
	}
)

// Arity returns the number of parameters one row binds.
func (s Statement) Arity() int {
	return len(s.Columns)
}

// ColumnList returns the comma separated column names.
func (s Statement) ColumnList() string {
	return strings.Join(s.Columns, ", ")
}

// InsertQuery renders an INSERT for the qualified table name using the
// placeholder function to produce the n-th (1-based) bind marker.
func (s Statement) InsertQuery(qualifiedTable string, placeholder func(n int) string) string {
	marks := make([]string, len(s.Columns))
	for i := range s.Columns {
		marks[i] = placeholder(i + 1)
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		qualifiedTable, s.ColumnList(), strings.Join(marks, ", "))
}

// NonKey returns the columns that are not part of the primary key.
func (s Statement) NonKey() []string {
	var cols []string
	for _, c := range s.Columns {
		if !slices.Contains(s.Key, c) {
			cols = append(cols, c)
		}
	}
	return cols
}

// CheckRows verifies every row matches the statement's arity.
func (s Statement) CheckRows(rows [][]any) error {
	for i, row := range rows {
		if len(row) != len(s.Columns) {
			return fmt.Errorf("%s row %d has %d values, want %d",
				s.Table, i, len(row), len(s.Columns))
		}
	}
	return nil
}

// AccountRecord is one row of the account lookup.
type AccountRecord struct {
	Username      string          `json:"username" yaml:"username"`
	AccountNumber string          `json:"account_number" yaml:"account_number"`
	Name          string          `json:"name" yaml:"name"`
	CashBalance   decimal.Decimal `json:"cash_balance" yaml:"cash_balance"`
}

// Options configures how a backend is opened.
type Options struct {
	// Connection is the backend specific connection string.
	Connection string

	// Keyspace is the keyspace (schema, database) that holds the tables.
	Keyspace string
}

// Validate checks the options every backend relies on.
func (o Options) Validate() error {
	return ValidateKeyspace(o.Keyspace)
}

// Backend is the storage collaborator the seeder drives. Implementations
// must make CreateKeyspace and CreateSchema idempotent.
type Backend interface {
	// CreateKeyspace ensures the keyspace exists.
	CreateKeyspace(ctx context.Context, replicationFactor int) error

	// CreateSchema ensures the seeded tables and the metadata table exist.
	CreateSchema(ctx context.Context) error

	// DropSchema drops the seeded tables and the metadata table.
	DropSchema(ctx context.Context) error

	// ExecuteBatch submits the rows as one unit of work.
	ExecuteBatch(ctx context.Context, stmt Statement, rows [][]any) error

	// AccountsByUser returns the accounts stored under a username.
	AccountsByUser(ctx context.Context, username string) ([]AccountRecord, error)

	// SaveMetadata upserts seeding metadata entries.
	SaveMetadata(ctx context.Context, metadata map[string]string) error

	// Metadata returns all seeding metadata, or ErrNotSeeded.
	Metadata(ctx context.Context) (map[string]string, error)

	// Close releases the backend's connections.
	Close() error
}

// Driver opens backends of one kind.
type Driver interface {
	// Name returns the backend name used in configuration.
	Name() string

	// Description returns a human-readable description.
	Description() string

	// Open connects to the backend.
	Open(ctx context.Context, opts Options) (Backend, error)
}

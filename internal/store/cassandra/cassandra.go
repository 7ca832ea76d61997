//-------------------------------------------------------------------------
//
// pgEdge Trade Seeder
//
// Portions copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package cassandra implements the storage backend for Apache Cassandra and
// compatible wide-column stores using gocql.
package cassandra

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gocql/gocql"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gopkg.in/inf.v0"

	"github.com/pgEdge/pgedge-tradeseed/internal/logging"
	"github.com/pgEdge/pgedge-tradeseed/internal/store"
)

// Driver opens Cassandra backends.
type Driver struct{}

// Name returns the backend name.
func (Driver) Name() string {
	return "cassandra"
}

// Description returns a human-readable description.
func (Driver) Description() string {
	return "Apache Cassandra and CQL-compatible stores (logged batches)"
}

// Open parses the connection string and opens a session.
func (Driver) Open(ctx context.Context, opts store.Options) (store.Backend, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	cfg, err := ParseConnString(opts.Connection)
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection string: %w", err)
	}

	logging.Debug().
		Strs("hosts", cfg.Hosts).
		Int("port", cfg.Port).
		Str("consistency", cfg.Consistency.String()).
		Msg("Connecting to cluster")

	session, err := cfg.ClusterConfig().CreateSession()
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	logging.Info().
		Strs("hosts", cfg.Hosts).
		Str("keyspace", opts.Keyspace).
		Msg("Connected to cluster")

	return &Backend{session: session, keyspace: opts.Keyspace}, nil
}

// Backend writes to a Cassandra keyspace.
type Backend struct {
	session  *gocql.Session
	keyspace string
}

func (b *Backend) table(name string) string {
	return b.keyspace + "." + name
}

// CreateKeyspace creates the keyspace with SimpleStrategy replication if it
// does not exist.
func (b *Backend) CreateKeyspace(ctx context.Context, replicationFactor int) error {
	logging.Info().
		Str("keyspace", b.keyspace).
		Int("replication_factor", replicationFactor).
		Msg("Creating keyspace")

	if err := b.session.Query(createKeyspaceCQL(b.keyspace, replicationFactor)).
		WithContext(ctx).Exec(); err != nil {
		return fmt.Errorf("failed to create keyspace %s: %w", b.keyspace, err)
	}
	return nil
}

// CreateSchema creates the seeded tables and the metadata table.
func (b *Backend) CreateSchema(ctx context.Context) error {
	logging.Info().Str("keyspace", b.keyspace).Msg("Creating schema")

	for _, ddl := range schemaCQL(b.keyspace) {
		if err := b.session.Query(ddl).WithContext(ctx).Exec(); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}
	return nil
}

// DropSchema drops the seeded tables and the metadata table.
func (b *Backend) DropSchema(ctx context.Context) error {
	for _, t := range dropOrder {
		logging.Debug().Str("table", t).Msg("Dropping table")
		if err := b.session.Query("DROP TABLE IF EXISTS " + b.table(t)).
			WithContext(ctx).Exec(); err != nil {
			return fmt.Errorf("failed to drop table %s: %w", t, err)
		}
	}
	return nil
}

// ExecuteBatch submits the rows as one logged batch.
func (b *Backend) ExecuteBatch(ctx context.Context, stmt store.Statement, rows [][]any) error {
	if err := stmt.CheckRows(rows); err != nil {
		return err
	}

	query := stmt.InsertQuery(b.table(stmt.Table), func(int) string { return "?" })
	batch := b.session.NewBatch(gocql.LoggedBatch).WithContext(ctx)
	for _, row := range rows {
		batch.Query(query, bindValues(row)...)
	}

	if err := b.session.ExecuteBatch(batch); err != nil {
		return fmt.Errorf("failed to execute batch on %s: %w", stmt.Table, err)
	}
	return nil
}

// AccountsByUser reads one accounts_by_user partition.
func (b *Backend) AccountsByUser(ctx context.Context, username string) ([]store.AccountRecord, error) {
	iter := b.session.Query(
		"SELECT username, account_number, name, cash_balance FROM "+b.table(store.TableAccounts)+
			" WHERE username = ?", username).
		WithContext(ctx).Iter()

	var records []store.AccountRecord
	var (
		user, number, name string
		cash               inf.Dec
	)
	for iter.Scan(&user, &number, &name, &cash) {
		records = append(records, store.AccountRecord{
			Username:      user,
			AccountNumber: number,
			Name:          name,
			CashBalance:   fromInf(&cash),
		})
	}
	if err := iter.Close(); err != nil {
		return nil, fmt.Errorf("failed to query accounts for %s: %w", username, err)
	}
	return records, nil
}

// SaveMetadata upserts metadata entries in one logged batch.
func (b *Backend) SaveMetadata(ctx context.Context, metadata map[string]string) error {
	if len(metadata) == 0 {
		return nil
	}
	query := fmt.Sprintf("INSERT INTO %s (key, value) VALUES (?, ?)", b.table(store.TableMetadata))
	batch := b.session.NewBatch(gocql.LoggedBatch).WithContext(ctx)
	for key, value := range metadata {
		batch.Query(query, key, value)
	}
	if err := b.session.ExecuteBatch(batch); err != nil {
		return fmt.Errorf("failed to save metadata: %w", err)
	}

	logging.Debug().Int("entries", len(metadata)).Msg("Saved metadata")
	return nil
}

// Metadata returns all metadata entries.
func (b *Backend) Metadata(ctx context.Context) (map[string]string, error) {
	exists, err := b.tableExists(ctx, store.TableMetadata)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, store.ErrNotSeeded
	}

	iter := b.session.Query("SELECT key, value FROM " + b.table(store.TableMetadata)).
		WithContext(ctx).Iter()
	metadata := make(map[string]string)
	var key, value string
	for iter.Scan(&key, &value) {
		metadata[key] = value
	}
	if err := iter.Close(); err != nil {
		return nil, fmt.Errorf("failed to read metadata: %w", err)
	}
	if len(metadata) == 0 {
		return nil, store.ErrNotSeeded
	}
	return metadata, nil
}

func (b *Backend) tableExists(ctx context.Context, table string) (bool, error) {
	var name string
	err := b.session.Query(
		"SELECT table_name FROM system_schema.tables WHERE keyspace_name = ? AND table_name = ?",
		strings.ToLower(b.keyspace), table).
		WithContext(ctx).Scan(&name)
	if errors.Is(err, gocql.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check table %s: %w", table, err)
	}
	return true, nil
}

// Close closes the session.
func (b *Backend) Close() error {
	b.session.Close()
	return nil
}

// bindValues converts row values to the types gocql marshals for the
// DECIMAL and TIMEUUID columns.
func bindValues(row []any) []any {
	out := make([]any, len(row))
	for i, v := range row {
		switch v := v.(type) {
		case decimal.Decimal:
			out[i] = toInf(v)
		case uuid.UUID:
			out[i] = gocql.UUID(v)
		default:
			out[i] = v
		}
	}
	return out
}

func toInf(d decimal.Decimal) *inf.Dec {
	return inf.NewDecBig(d.Coefficient(), inf.Scale(-d.Exponent()))
}

func fromInf(d *inf.Dec) decimal.Decimal {
	return decimal.NewFromBigInt(d.UnscaledBig(), -int32(d.Scale()))
}

func init() {
	store.Register(Driver{})
}

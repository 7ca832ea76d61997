//-------------------------------------------------------------------------
//
// pgEdge Trade Seeder
//
// Portions copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package clickhouse implements the storage backend for ClickHouse. The
// keyspace maps to a database of ReplacingMergeTree tables, so a re-inserted
// key replaces the earlier row once parts merge; reads use FINAL.
package clickhouse

import (
	"context"
	"fmt"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"github.com/shopspring/decimal"

	"github.com/pgEdge/pgedge-tradeseed/internal/logging"
	"github.com/pgEdge/pgedge-tradeseed/internal/store"
)

// Driver opens ClickHouse backends.
type Driver struct{}

// Name returns the backend name.
func (Driver) Name() string {
	return "clickhouse"
}

// Description returns a human-readable description.
func (Driver) Description() string {
	return "ClickHouse; keyspace becomes a database of ReplacingMergeTree tables"
}

// Open connects to the server.
func (Driver) Open(ctx context.Context, opts store.Options) (store.Backend, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	conn, err := Connect(ctx, opts.Connection)
	if err != nil {
		return nil, err
	}
	return &Backend{conn: conn, database: opts.Keyspace}, nil
}

// Backend writes to one ClickHouse database.
type Backend struct {
	conn     driver.Conn
	database string
}

func (b *Backend) table(name string) string {
	return b.database + "." + name
}

// CreateKeyspace creates the database. Replication is configured per
// cluster in ClickHouse, so the factor is only logged.
func (b *Backend) CreateKeyspace(ctx context.Context, replicationFactor int) error {
	logging.Info().
		Str("database", b.database).
		Int("replication_factor", replicationFactor).
		Msg("Creating database (replication factor is not applicable)")

	if err := b.conn.Exec(ctx, "CREATE DATABASE IF NOT EXISTS "+b.database); err != nil {
		return fmt.Errorf("failed to create database %s: %w", b.database, err)
	}
	return nil
}

// CreateSchema creates the seeded tables and the metadata table.
func (b *Backend) CreateSchema(ctx context.Context) error {
	logging.Info().Str("database", b.database).Msg("Creating tables")

	// The native protocol accepts one statement per Exec.
	for _, ddl := range schemaSQL(b.database) {
		if err := b.conn.Exec(ctx, ddl); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}
	return nil
}

// DropSchema drops the seeded tables and the metadata table.
func (b *Backend) DropSchema(ctx context.Context) error {
	for _, t := range dropOrder {
		logging.Debug().Str("table", t).Msg("Dropping table")
		if err := b.conn.Exec(ctx, "DROP TABLE IF EXISTS "+b.table(t)); err != nil {
			return fmt.Errorf("failed to drop table %s: %w", t, err)
		}
	}
	return nil
}

// ExecuteBatch sends the rows as one native insert block.
func (b *Backend) ExecuteBatch(ctx context.Context, stmt store.Statement, rows [][]any) error {
	if err := stmt.CheckRows(rows); err != nil {
		return err
	}

	batch, err := b.conn.PrepareBatch(ctx,
		fmt.Sprintf("INSERT INTO %s (%s)", b.table(stmt.Table), stmt.ColumnList()))
	if err != nil {
		return fmt.Errorf("prepare batch for %s: %w", stmt.Table, err)
	}

	for _, row := range rows {
		if err := batch.Append(row...); err != nil {
			_ = batch.Abort()
			return fmt.Errorf("append to batch for %s: %w", stmt.Table, err)
		}
	}

	if err := batch.Send(); err != nil {
		return fmt.Errorf("send batch for %s: %w", stmt.Table, err)
	}
	return nil
}

// AccountsByUser returns the accounts of a username ordered by account
// number.
func (b *Backend) AccountsByUser(ctx context.Context, username string) ([]store.AccountRecord, error) {
	rows, err := b.conn.Query(ctx, fmt.Sprintf(`
        SELECT username, account_number, name, cash_balance
        FROM %s FINAL
        WHERE username = ?
        ORDER BY account_number`, b.table(store.TableAccounts)), username)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts for %s: %w", username, err)
	}
	defer rows.Close()

	var records []store.AccountRecord
	for rows.Next() {
		var (
			r    store.AccountRecord
			cash decimal.Decimal
		)
		if err := rows.Scan(&r.Username, &r.AccountNumber, &r.Name, &cash); err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		r.CashBalance = cash
		records = append(records, r)
	}
	return records, rows.Err()
}

// SaveMetadata upserts metadata entries.
func (b *Backend) SaveMetadata(ctx context.Context, metadata map[string]string) error {
	if len(metadata) == 0 {
		return nil
	}
	batch, err := b.conn.PrepareBatch(ctx, "INSERT INTO "+b.table(store.TableMetadata)+" (key, value)")
	if err != nil {
		return fmt.Errorf("prepare metadata batch: %w", err)
	}
	for key, value := range metadata {
		if err := batch.Append(key, value); err != nil {
			_ = batch.Abort()
			return fmt.Errorf("append metadata %s: %w", key, err)
		}
	}
	if err := batch.Send(); err != nil {
		return fmt.Errorf("failed to save metadata: %w", err)
	}

	logging.Debug().Int("entries", len(metadata)).Msg("Saved metadata")
	return nil
}

// Metadata returns all metadata entries.
func (b *Backend) Metadata(ctx context.Context) (map[string]string, error) {
	var exists uint8
	if err := b.conn.QueryRow(ctx, "EXISTS TABLE "+b.table(store.TableMetadata)).Scan(&exists); err != nil {
		return nil, fmt.Errorf("failed to check metadata table: %w", err)
	}
	if exists == 0 {
		return nil, store.ErrNotSeeded
	}

	rows, err := b.conn.Query(ctx, "SELECT key, value FROM "+b.table(store.TableMetadata)+" FINAL")
	if err != nil {
		return nil, fmt.Errorf("failed to read metadata: %w", err)
	}
	defer rows.Close()

	metadata := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, err
		}
		metadata[key] = value
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(metadata) == 0 {
		return nil, store.ErrNotSeeded
	}
	return metadata, nil
}

// Close closes the connection.
func (b *Backend) Close() error {
	return b.conn.Close()
}

func init() {
	store.Register(Driver{})
}

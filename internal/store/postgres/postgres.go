//-------------------------------------------------------------------------
//
// pgEdge Trade Seeder
//
// Portions copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package postgres implements the storage backend for PostgreSQL using pgx.
// The keyspace maps to a schema; each batch runs in one transaction.
package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/pgEdge/pgedge-tradeseed/internal/logging"
	"github.com/pgEdge/pgedge-tradeseed/internal/store"
)

// Driver opens PostgreSQL backends.
type Driver struct{}

// Name returns the backend name.
func (Driver) Name() string {
	return "postgres"
}

// Description returns a human-readable description.
func (Driver) Description() string {
	return "PostgreSQL; keyspace becomes a schema, one transaction per batch"
}

// Open connects a pool to the database.
func (Driver) Open(ctx context.Context, opts store.Options) (store.Backend, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	pool, err := Connect(ctx, opts.Connection)
	if err != nil {
		return nil, err
	}
	return New(pool, opts.Keyspace), nil
}

// Backend writes to one schema of a PostgreSQL database.
type Backend struct {
	pool   *pgxpool.Pool
	schema string
}

// New wraps an existing pool.
func New(pool *pgxpool.Pool, schema string) *Backend {
	return &Backend{pool: pool, schema: schema}
}

func (b *Backend) table(name string) string {
	return pgx.Identifier{b.schema, name}.Sanitize()
}

// CreateKeyspace creates the schema. PostgreSQL has no per-schema
// replication, so the replication factor is only logged.
func (b *Backend) CreateKeyspace(ctx context.Context, replicationFactor int) error {
	logging.Info().
		Str("schema", b.schema).
		Int("replication_factor", replicationFactor).
		Msg("Creating schema namespace (replication factor is not applicable)")

	_, err := b.pool.Exec(ctx, "CREATE SCHEMA IF NOT EXISTS "+pgx.Identifier{b.schema}.Sanitize())
	if err != nil {
		return fmt.Errorf("failed to create schema %s: %w", b.schema, err)
	}
	return nil
}

// CreateSchema creates the seeded tables and the metadata table.
func (b *Backend) CreateSchema(ctx context.Context) error {
	logging.Info().Str("schema", b.schema).Msg("Creating tables")

	for _, ddl := range schemaSQL(b.table) {
		if _, err := b.pool.Exec(ctx, ddl); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}
	return nil
}

// DropSchema drops the seeded tables and the metadata table.
func (b *Backend) DropSchema(ctx context.Context) error {
	for _, t := range dropOrder {
		logging.Debug().Str("table", t).Msg("Dropping table")
		if _, err := b.pool.Exec(ctx, "DROP TABLE IF EXISTS "+b.table(t)); err != nil {
			return fmt.Errorf("failed to drop table %s: %w", t, err)
		}
	}
	return nil
}

// ExecuteBatch upserts the rows in a single transaction.
func (b *Backend) ExecuteBatch(ctx context.Context, stmt store.Statement, rows [][]any) error {
	if err := stmt.CheckRows(rows); err != nil {
		return err
	}

	query := upsertQuery(b.table(stmt.Table), stmt)
	err := pgx.BeginFunc(ctx, b.pool, func(tx pgx.Tx) error {
		batch := &pgx.Batch{}
		for _, row := range rows {
			batch.Queue(query, bindValues(row)...)
		}
		return tx.SendBatch(ctx, batch).Close()
	})
	if err != nil {
		return fmt.Errorf("failed to execute batch on %s: %w", stmt.Table, err)
	}
	return nil
}

// AccountsByUser returns the accounts of a username ordered by account
// number.
func (b *Backend) AccountsByUser(ctx context.Context, username string) ([]store.AccountRecord, error) {
	rows, err := b.pool.Query(ctx, fmt.Sprintf(`
        SELECT username, account_number, name, cash_balance
        FROM %s
        WHERE username = $1
        ORDER BY account_number`, b.table(store.TableAccounts)), username)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts for %s: %w", username, err)
	}
	defer rows.Close()

	var records []store.AccountRecord
	for rows.Next() {
		var (
			r    store.AccountRecord
			name pgtype.Text
			cash pgtype.Numeric
		)
		if err := rows.Scan(&r.Username, &r.AccountNumber, &name, &cash); err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		r.Name = name.String
		r.CashBalance = fromNumeric(cash)
		records = append(records, r)
	}
	return records, rows.Err()
}

// Close closes the pool.
func (b *Backend) Close() error {
	b.pool.Close()
	return nil
}

// upsertQuery renders an insert that overwrites the non-key columns of an
// existing row, matching CQL insert semantics.
func upsertQuery(table string, stmt store.Statement) string {
	query := stmt.InsertQuery(table, func(n int) string { return fmt.Sprintf("$%d", n) })

	sets := make([]string, 0, len(stmt.Columns))
	for _, c := range stmt.NonKey() {
		sets = append(sets, fmt.Sprintf("%s = EXCLUDED.%s", c, c))
	}
	if len(sets) == 0 {
		return query + fmt.Sprintf(" ON CONFLICT (%s) DO NOTHING", strings.Join(stmt.Key, ", "))
	}
	return query + fmt.Sprintf(" ON CONFLICT (%s) DO UPDATE SET %s",
		strings.Join(stmt.Key, ", "), strings.Join(sets, ", "))
}

// bindValues converts row values to pgtype values for the NUMERIC and UUID
// columns.
func bindValues(row []any) []any {
	out := make([]any, len(row))
	for i, v := range row {
		switch v := v.(type) {
		case decimal.Decimal:
			out[i] = toNumeric(v)
		case uuid.UUID:
			out[i] = pgtype.UUID{Bytes: v, Valid: true}
		default:
			out[i] = v
		}
	}
	return out
}

func toNumeric(d decimal.Decimal) pgtype.Numeric {
	return pgtype.Numeric{Int: d.Coefficient(), Exp: d.Exponent(), Valid: true}
}

func fromNumeric(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid || n.Int == nil {
		return decimal.Zero
	}
	return decimal.NewFromBigInt(n.Int, n.Exp)
}

func init() {
	store.Register(Driver{})
}

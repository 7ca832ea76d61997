//-------------------------------------------------------------------------
//
// pgEdge Trade Seeder
//
// Portions copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/pgEdge/pgedge-tradeseed/internal/logging"
	"github.com/pgEdge/pgedge-tradeseed/internal/store"
)

// SaveMetadata upserts metadata entries in one transaction.
func (b *Backend) SaveMetadata(ctx context.Context, metadata map[string]string) error {
	query := fmt.Sprintf(`
        INSERT INTO %s (key, value) VALUES ($1, $2)
        ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`, b.table(store.TableMetadata))

	err := pgx.BeginFunc(ctx, b.pool, func(tx pgx.Tx) error {
		batch := &pgx.Batch{}
		for key, value := range metadata {
			batch.Queue(query, key, value)
		}
		return tx.SendBatch(ctx, batch).Close()
	})
	if err != nil {
		return fmt.Errorf("failed to save metadata: %w", err)
	}

	logging.Debug().Int("entries", len(metadata)).Msg("Saved metadata")
	return nil
}

// Metadata retrieves all metadata as a map.
func (b *Backend) Metadata(ctx context.Context) (map[string]string, error) {
	exists, err := b.metadataExists(ctx)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, store.ErrNotSeeded
	}

	rows, err := b.pool.Query(ctx, "SELECT key, value FROM "+b.table(store.TableMetadata))
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

// metadataExists checks if the metadata table exists in the schema.
func (b *Backend) metadataExists(ctx context.Context) (bool, error) {
	var exists bool
	err := b.pool.QueryRow(ctx, `
        SELECT EXISTS (
            SELECT FROM information_schema.tables
            WHERE table_schema = $1 AND table_name = $2
        )
    `, b.schema, store.TableMetadata).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check metadata table: %w", err)
	}
	return exists, nil
}

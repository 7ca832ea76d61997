package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pgEdge/pgedge-tradeseed/internal/logging"
	"github.com/pgEdge/pgedge-tradeseed/internal/store"
)

var schemaReplicationFactor int

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Create the keyspace and tables without seeding data",
	Long: `Create the keyspace and the accounts_by_user, positions_by_account,
trades_by_a_d and seed_metadata tables if they do not exist.

Example:
  pgedge-tradeseed schema --backend cassandra --connection "cassandra://127.0.0.1"`,
	RunE: runSchema,
}

func init() {
	schemaCmd.Flags().IntVar(&schemaReplicationFactor, "replication-factor", 0,
		"keyspace replication factor (default: 1)")
}

func runSchema(cmd *cobra.Command, args []string) error {
	if cmd.Flags().Changed("replication-factor") {
		cfg.Schema.ReplicationFactor = schemaReplicationFactor
	}
	if err := cfg.ValidateSchema(); err != nil {
		return err
	}

	ctx, stop := signalContext()
	defer stop()

	b, err := openBackend(ctx)
	if err != nil {
		return err
	}
	defer closeBackend(b)

	if err := ensureSchema(ctx, b); err != nil {
		return err
	}

	logging.Info().
		Str("backend", cfg.Backend).
		Str("keyspace", cfg.Keyspace).
		Msg("Schema ready")
	return nil
}

// ensureSchema creates the keyspace and the tables.
func ensureSchema(ctx context.Context, b store.Backend) error {
	if err := b.CreateKeyspace(ctx, cfg.Schema.ReplicationFactor); err != nil {
		return fmt.Errorf("failed to create keyspace: %w", err)
	}
	if err := b.CreateSchema(ctx); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/pgEdge/pgedge-tradeseed/internal/config"
	"github.com/pgEdge/pgedge-tradeseed/internal/datagen"
	"github.com/pgEdge/pgedge-tradeseed/internal/logging"
	"github.com/pgEdge/pgedge-tradeseed/internal/seed"
	"github.com/pgEdge/pgedge-tradeseed/internal/store"
	"github.com/pgEdge/pgedge-tradeseed/pkg/version"
)

var (
	initAccounts          int
	initPositions         int
	initTrades            int
	initBatchSize         int
	initRandomSeed        uint64
	initWindowStart       string
	initWindowEnd         string
	initReplicationFactor int
	initDropExisting      bool
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the schema and seed it with synthetic data",
	Long: `Create the keyspace and tables, then generate accounts, positions and
trades and insert them in batches. A keyspace that was already seeded is
left alone unless --drop-existing is given.

Example:
  pgedge-tradeseed init --connection "cassandra://127.0.0.1" --keyspace trading
  pgedge-tradeseed init --backend postgres --connection "postgres://..." --trades 50000 --seed 42`,
	RunE: runInit,
}

func init() {
	initCmd.Flags().IntVar(&initAccounts, "accounts", 0,
		"number of accounts (default: 10)")
	initCmd.Flags().IntVar(&initPositions, "positions", 0,
		"number of distinct (account, symbol) positions (default: 100)")
	initCmd.Flags().IntVar(&initTrades, "trades", 0,
		"number of trades (default: 1000)")
	initCmd.Flags().IntVar(&initBatchSize, "batch-size", 0,
		"rows per batch (default: 10)")
	initCmd.Flags().Uint64Var(&initRandomSeed, "seed", 0,
		"random seed for a reproducible run (default: time based)")
	initCmd.Flags().StringVar(&initWindowStart, "window-start", "",
		"first trade day, YYYY-MM-DD (default: 2013-01-01)")
	initCmd.Flags().StringVar(&initWindowEnd, "window-end", "",
		"end of the trade window, exclusive, YYYY-MM-DD (default: 2022-08-31)")
	initCmd.Flags().IntVar(&initReplicationFactor, "replication-factor", 0,
		"keyspace replication factor (default: 1)")
	initCmd.Flags().BoolVar(&initDropExisting, "drop-existing", false,
		"drop the seeded tables before initialization")
}

func runInit(cmd *cobra.Command, args []string) error {
	// Override config with CLI flags
	if cmd.Flags().Changed("accounts") {
		cfg.Seed.Accounts = initAccounts
	}
	if cmd.Flags().Changed("positions") {
		cfg.Seed.Positions = initPositions
	}
	if cmd.Flags().Changed("trades") {
		cfg.Seed.Trades = initTrades
	}
	if cmd.Flags().Changed("batch-size") {
		cfg.Seed.BatchSize = initBatchSize
	}
	if cmd.Flags().Changed("seed") {
		cfg.Seed.RandomSeed = initRandomSeed
	}
	if initWindowStart != "" {
		cfg.Seed.WindowStart = initWindowStart
	}
	if initWindowEnd != "" {
		cfg.Seed.WindowEnd = initWindowEnd
	}
	if cmd.Flags().Changed("replication-factor") {
		cfg.Schema.ReplicationFactor = initReplicationFactor
	}
	if initDropExisting {
		cfg.Seed.DropExisting = true
	}

	// Validate configuration
	if err := cfg.ValidateSeed(); err != nil {
		return err
	}

	seedCfg, err := seedConfig(cfg.Seed)
	if err != nil {
		return err
	}

	faker := datagen.NewFaker()
	if cfg.Seed.RandomSeed != 0 {
		faker = datagen.NewFakerWithSeed(cfg.Seed.RandomSeed)
	}

	// Checks the pair space before anything touches the backend.
	generator, err := seed.NewGenerator(seedCfg, faker)
	if err != nil {
		return err
	}

	logging.Info().
		Str("backend", cfg.Backend).
		Str("keyspace", cfg.Keyspace).
		Msg("Initializing keyspace")

	ctx, stop := signalContext()
	defer stop()

	b, err := openBackend(ctx)
	if err != nil {
		return err
	}
	defer closeBackend(b)

	if err := prepareKeyspace(ctx, b); err != nil {
		return err
	}

	runID := seed.NewRunID(time.Now())
	started := time.Now()

	summary, err := generator.Run(ctx, b)
	if err != nil {
		var batchErr *seed.BatchError
		if errors.As(err, &batchErr) {
			logging.Error().
				Str("table", batchErr.Table).
				Int("failed_batch", batchErr.Index).
				Int("committed_rows", batchErr.CommittedRows).
				Int("committed_batches", summary.Batches).
				Msg("Seeding aborted; earlier batches remain committed")
		}
		return fmt.Errorf("failed to seed data: %w", err)
	}

	metadata := runMetadata(runID, faker.Seed(), summary)
	if err := b.SaveMetadata(ctx, metadata); err != nil {
		return fmt.Errorf("failed to save metadata: %w", err)
	}

	logging.Info().
		Str("run_id", runID).
		Int("accounts", summary.Accounts).
		Int("positions", summary.Positions).
		Int("trades", summary.Trades).
		Int("batches", summary.Batches).
		Dur("elapsed", time.Since(started)).
		Msg("Keyspace initialization complete")

	return nil
}

// prepareKeyspace creates the keyspace and tables, dropping the tables first
// when requested, and refuses a keyspace that already holds a seeded run.
func prepareKeyspace(ctx context.Context, b store.Backend) error {
	if err := b.CreateKeyspace(ctx, cfg.Schema.ReplicationFactor); err != nil {
		return fmt.Errorf("failed to create keyspace: %w", err)
	}

	if cfg.Seed.DropExisting {
		logging.Info().Str("keyspace", cfg.Keyspace).Msg("Dropping existing tables")
		if err := b.DropSchema(ctx); err != nil {
			return fmt.Errorf("failed to drop schema: %w", err)
		}
	} else {
		existing, err := b.Metadata(ctx)
		switch {
		case err == nil:
			return fmt.Errorf("keyspace %s was already seeded (run %s at %s); use --drop-existing to reseed",
				cfg.Keyspace, existing["run_id"], existing["seeded_at"])
		case !errors.Is(err, store.ErrNotSeeded):
			return fmt.Errorf("failed to read metadata: %w", err)
		}
	}

	if err := b.CreateSchema(ctx); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// seedConfig converts the file and flag configuration into generator
// parameters.
func seedConfig(sc config.SeedConfig) (seed.Config, error) {
	start, end, err := sc.Window()
	if err != nil {
		return seed.Config{}, err
	}

	out := seed.DefaultConfig()
	out.Accounts = sc.Accounts
	out.Positions = sc.Positions
	out.Trades = sc.Trades
	out.BatchSize = sc.BatchSize
	out.WindowStart = start
	out.WindowEnd = end
	out.Instruments = sc.Instruments
	out.Users = make([]seed.User, len(sc.Users))
	for i, u := range sc.Users {
		out.Users[i] = seed.User{Username: u.Username, Name: u.Name}
	}
	return out, nil
}

func runMetadata(runID string, randomSeed uint64, summary *seed.Summary) map[string]string {
	return map[string]string{
		"run_id":       runID,
		"version":      version.Short(),
		"seeded_at":    time.Now().UTC().Format(time.RFC3339),
		"backend":      cfg.Backend,
		"random_seed":  strconv.FormatUint(randomSeed, 10),
		"accounts":     strconv.Itoa(summary.Accounts),
		"positions":    strconv.Itoa(summary.Positions),
		"trades":       strconv.Itoa(summary.Trades),
		"batch_size":   strconv.Itoa(cfg.Seed.BatchSize),
		"batches":      strconv.Itoa(summary.Batches),
		"window_start": cfg.Seed.WindowStart,
		"window_end":   cfg.Seed.WindowEnd,
	}
}

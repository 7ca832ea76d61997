//-------------------------------------------------------------------------
//
// pgEdge Trade Seeder
//
// Portions copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package cli implements the command-line interface for pgedge-tradeseed.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pgEdge/pgedge-tradeseed/internal/config"
	"github.com/pgEdge/pgedge-tradeseed/internal/logging"
	"github.com/pgEdge/pgedge-tradeseed/internal/store"
	"github.com/pgEdge/pgedge-tradeseed/pkg/version"
)

var (
	// Global flags
	cfgFile    string
	backend    string
	connection string
	keyspace   string
	logLevel   string
	logJSON    bool

	// Global config
	cfg *config.Config

	rootCmd = &cobra.Command{
		Use:   "pgedge-tradeseed",
		Short: "Seed a wide-column store with synthetic brokerage data",
		Long: `pgedge-tradeseed creates a small brokerage schema (accounts by user,
positions by account, trades by account and date) and fills it with
randomized accounts, positions and trades, submitted in fixed-size batches.

Positions are unique per (account, symbol) pair and every trade is keyed by
a time-ordered UUID, so trades cluster newest first within an account.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default: ./pgedge-tradeseed.yaml)")
	rootCmd.PersistentFlags().StringVar(&backend, "backend", "",
		"storage backend (see 'pgedge-tradeseed backends')")
	rootCmd.PersistentFlags().StringVar(&connection, "connection", "",
		"backend connection string")
	rootCmd.PersistentFlags().StringVar(&keyspace, "keyspace", "",
		"keyspace holding the seeded tables (default: trading)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&logJSON, "log-json", false,
		"log JSON lines instead of console output")

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(backendsCmd)
	rootCmd.AddCommand(schemaCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(accountsCmd)
	rootCmd.AddCommand(statusCmd)
}

func initConfig() error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return err
	}

	// Override with CLI flags
	if backend != "" {
		cfg.Backend = backend
	}
	if connection != "" {
		cfg.Connection = connection
	}
	if keyspace != "" {
		cfg.Keyspace = keyspace
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if logJSON {
		cfg.LogJSON = true
	}

	// Reinitialize logger with config
	logging.Init(logging.Config{
		Level:  cfg.LogLevel,
		Pretty: !cfg.LogJSON,
	})

	return nil
}

// signalContext returns a context cancelled by SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

// openBackend opens the configured backend.
func openBackend(ctx context.Context) (store.Backend, error) {
	driver, err := store.Get(cfg.Backend)
	if err != nil {
		return nil, err
	}

	b, err := driver.Open(ctx, store.Options{
		Connection: cfg.Connection,
		Keyspace:   cfg.Keyspace,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", cfg.Backend, err)
	}
	return b, nil
}

func closeBackend(b store.Backend) {
	if err := b.Close(); err != nil {
		logging.Warn().Err(err).Msg("Failed to close backend")
	}
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Println(version.Info())
	},
}

var backendsCmd = &cobra.Command{
	Use:   "backends",
	Short: "List available storage backends",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Println("Available backends:")
		cmd.Println()
		for _, d := range store.All() {
			cmd.Printf("  %-11s - %s\n", d.Name(), d.Description())
		}
	},
}

package cli

import (
	"errors"
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/pgEdge/pgedge-tradeseed/internal/logging"
	"github.com/pgEdge/pgedge-tradeseed/internal/report"
	"github.com/pgEdge/pgedge-tradeseed/internal/store"
)

var outputFormat string

var accountsCmd = &cobra.Command{
	Use:   "accounts USERNAME",
	Short: "Show the accounts of a user",
	Long: `Look up the accounts_by_user partition of USERNAME and print each
account number with its cash balance.

Example:
  pgedge-tradeseed accounts mike --connection "cassandra://127.0.0.1"
  pgedge-tradeseed accounts stacy --format yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runAccounts,
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show how a keyspace was seeded",
	Long: `Print the seeding metadata recorded by the last init run: run id,
version, random seed, row counts and trade window.`,
	Args: cobra.NoArgs,
	RunE: runStatus,
}

func init() {
	for _, cmd := range []*cobra.Command{accountsCmd, statusCmd} {
		cmd.Flags().StringVar(&outputFormat, "format", report.FormatText,
			"output format: text, yaml, json")
	}
}

func checkFormat() error {
	if !slices.Contains(report.Formats, outputFormat) {
		return fmt.Errorf("unknown format %q (want one of %v)", outputFormat, report.Formats)
	}
	return nil
}

func runAccounts(cmd *cobra.Command, args []string) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := checkFormat(); err != nil {
		return err
	}
	username := args[0]

	ctx, stop := signalContext()
	defer stop()

	b, err := openBackend(ctx)
	if err != nil {
		return err
	}
	defer closeBackend(b)

	logging.Info().Str("username", username).Msg("Retrieving accounts")

	records, err := b.AccountsByUser(ctx, username)
	if err != nil {
		return err
	}
	return report.WriteAccounts(cmd.OutOrStdout(), username, records, outputFormat)
}

func runStatus(cmd *cobra.Command, args []string) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := checkFormat(); err != nil {
		return err
	}

	ctx, stop := signalContext()
	defer stop()

	b, err := openBackend(ctx)
	if err != nil {
		return err
	}
	defer closeBackend(b)

	metadata, err := b.Metadata(ctx)
	if errors.Is(err, store.ErrNotSeeded) {
		return fmt.Errorf("keyspace %s: %w", cfg.Keyspace, err)
	}
	if err != nil {
		return err
	}
	return report.WriteMetadata(cmd.OutOrStdout(), metadata, outputFormat)
}

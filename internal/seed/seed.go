//-------------------------------------------------------------------------
//
// pgEdge Trade Seeder
//
// Portions copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package seed generates the synthetic accounts, positions and trades and
// submits them to a storage backend in fixed-size batches.
package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/pgEdge/pgedge-tradeseed/internal/datagen"
	"github.com/pgEdge/pgedge-tradeseed/internal/logging"
	"github.com/pgEdge/pgedge-tradeseed/internal/store"
	"github.com/pgEdge/pgedge-tradeseed/internal/timeuuid"
)

// Value ranges of the generated columns.
const (
	minCashBalance = 0.10
	maxCashBalance = 100000.00

	minPositionQuantity = 1
	maxPositionQuantity = 500

	minTradeShares = 1
	maxTradeShares = 5000

	minTradePrice = 0.10
	maxTradePrice = 100000.00
)

// User is a roster entry accounts are drawn from.
type User struct {
	Username string
	Name     string
}

// Config controls one seeding run.
type Config struct {
	Accounts  int
	Positions int
	Trades    int
	BatchSize int

	Users       []User
	Instruments []string

	// WindowStart (inclusive) and WindowEnd (exclusive) bound the trade
	// dates. Both are expected to be midnight UTC.
	WindowStart time.Time
	WindowEnd   time.Time

	// ProgressInterval is how often to log insert progress (in rows).
	ProgressInterval int64
}

// DefaultConfig returns the stock run: 10 accounts, 100 positions and
// 1000 trades between 2013-01-01 and 2022-08-31, in batches of 10.
// Rosters are left empty.
func DefaultConfig() Config {
	batch := datagen.DefaultBatchConfig()
	return Config{
		Accounts:         10,
		Positions:        100,
		Trades:           1000,
		BatchSize:        batch.BatchSize,
		WindowStart:      time.Date(2013, 1, 1, 0, 0, 0, 0, time.UTC),
		WindowEnd:        time.Date(2022, 8, 31, 0, 0, 0, 0, time.UTC),
		ProgressInterval: batch.ProgressInterval,
	}
}

// Summary describes a completed run.
type Summary struct {
	Accounts  int
	Positions int
	Trades    int
	Batches   int

	// AccountNumbers lists the generated account numbers in insert order.
	AccountNumbers []string
}

// Generator produces the rows of one seeding run. It is not safe for
// concurrent use.
type Generator struct {
	faker       *datagen.Faker
	cfg         Config
	instruments []string
	windowDays  int
}

// NewGenerator validates the configuration and returns a generator drawing
// all randomness from faker.
func NewGenerator(cfg Config, faker *datagen.Faker) (*Generator, error) {
	if faker == nil {
		return nil, invalidf("a random source is required")
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	instruments := distinct(cfg.Instruments)
	if space := cfg.Accounts * len(instruments); cfg.Positions > space {
		return nil, unsatisfiable(cfg.Positions, cfg.Accounts, len(instruments))
	}

	// Trades spill over to the next day once a day's ids are used up, so
	// the window as a whole bounds the trade count.
	days := windowDays(cfg.WindowStart, cfg.WindowEnd)
	if cfg.Trades > days*timeuuid.ClockSequences {
		return nil, fmt.Errorf("%w: %d trades requested but a %d day window holds at most %d distinct trade ids",
			ErrConstraintUnsatisfiable, cfg.Trades, days, days*timeuuid.ClockSequences)
	}

	return &Generator{
		faker:       faker,
		cfg:         cfg,
		instruments: instruments,
		windowDays:  days,
	}, nil
}

func (c Config) validate() error {
	if c.Accounts < 0 || c.Positions < 0 || c.Trades < 0 {
		return invalidf("counts must be non-negative (accounts=%d positions=%d trades=%d)",
			c.Accounts, c.Positions, c.Trades)
	}
	if c.BatchSize < 1 {
		return invalidf("batch size must be at least 1, got %d", c.BatchSize)
	}
	if len(c.Users) == 0 {
		return invalidf("user roster is empty")
	}
	for i, u := range c.Users {
		if u.Username == "" {
			return invalidf("user %d has no username", i)
		}
	}
	if len(c.Instruments) == 0 {
		return invalidf("instrument roster is empty")
	}
	for i, s := range c.Instruments {
		if s == "" {
			return invalidf("instrument %d is empty", i)
		}
	}
	if c.Accounts == 0 && (c.Positions > 0 || c.Trades > 0) {
		return invalidf("positions and trades need at least one account")
	}
	if windowDays(c.WindowStart, c.WindowEnd) < 1 {
		return invalidf("trade window [%s, %s) is shorter than one day",
			c.WindowStart.Format(time.DateOnly), c.WindowEnd.Format(time.DateOnly))
	}
	return nil
}

// Run generates accounts, positions and trades in that order, submitting
// each phase in batches before the next one starts. A failed batch aborts
// the run; batches already acknowledged stay committed.
func (g *Generator) Run(ctx context.Context, w BatchWriter) (*Summary, error) {
	logging.Info().
		Int("accounts", g.cfg.Accounts).
		Int("positions", g.cfg.Positions).
		Int("trades", g.cfg.Trades).
		Int("batch_size", g.cfg.BatchSize).
		Uint64("random_seed", g.faker.Seed()).
		Msg("Generating seed data")

	summary := &Summary{}

	accounts := g.GenerateAccounts()
	n, err := g.submit(ctx, w, store.InsertAccount, toRows(accounts))
	summary.Batches += n
	if err != nil {
		return summary, fmt.Errorf("failed to insert accounts: %w", err)
	}
	summary.Accounts = len(accounts)
	summary.AccountNumbers = AccountNumbers(accounts)

	positions, err := g.GeneratePositions(summary.AccountNumbers)
	if err != nil {
		return summary, fmt.Errorf("failed to generate positions: %w", err)
	}
	n, err = g.submit(ctx, w, store.InsertPosition, toRows(positions))
	summary.Batches += n
	if err != nil {
		return summary, fmt.Errorf("failed to insert positions: %w", err)
	}
	summary.Positions = len(positions)

	trades, err := g.GenerateTrades(summary.AccountNumbers)
	if err != nil {
		return summary, fmt.Errorf("failed to generate trades: %w", err)
	}
	n, err = g.submit(ctx, w, store.InsertTrade, toRows(trades))
	summary.Batches += n
	if err != nil {
		return summary, fmt.Errorf("failed to insert trades: %w", err)
	}
	summary.Trades = len(trades)

	return summary, nil
}

func (g *Generator) submit(ctx context.Context, w BatchWriter, stmt store.Statement, rows [][]any) (int, error) {
	progress := datagen.NewProgressReporter(stmt.Table, int64(len(rows)), g.cfg.ProgressInterval)
	n, err := executeBatch(ctx, w, stmt, rows, g.cfg.BatchSize, func(r int) {
		progress.Update(int64(r))
	})
	if err != nil {
		return n, err
	}
	progress.Done()
	return n, nil
}

func windowDays(start, end time.Time) int {
	if !end.After(start) {
		return 0
	}
	return int(end.Sub(start) / (24 * time.Hour))
}

func distinct(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, s := range items {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

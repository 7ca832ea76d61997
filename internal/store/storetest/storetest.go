//-------------------------------------------------------------------------
//
// pgEdge Trade Seeder
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package storetest holds the behavior every storage backend must share.
// Backend packages run it from their own tests.
package storetest

import (
	"context"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pgEdge/pgedge-tradeseed/internal/datagen"
	"github.com/pgEdge/pgedge-tradeseed/internal/seed"
	"github.com/pgEdge/pgedge-tradeseed/internal/store"
	"github.com/pgEdge/pgedge-tradeseed/internal/timeuuid"
)

// Run exercises a freshly opened backend whose keyspace does not exist yet.
// The backend is dropped and closed when Run returns.
func Run(t *testing.T, b store.Backend) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	t.Cleanup(func() {
		_ = b.DropSchema(context.Background())
		_ = b.Close()
	})

	t.Run("schema is idempotent", func(t *testing.T) {
		require.NoError(t, b.CreateKeyspace(ctx, 1))
		require.NoError(t, b.CreateKeyspace(ctx, 1))
		require.NoError(t, b.CreateSchema(ctx))
		require.NoError(t, b.CreateSchema(ctx))
	})

	t.Run("metadata before seeding", func(t *testing.T) {
		_, err := b.Metadata(ctx)
		require.ErrorIs(t, err, store.ErrNotSeeded)
	})

	t.Run("batch round trip", func(t *testing.T) {
		rows := [][]any{
			{"ada", "00000000-0000-4000-8000-000000000002", decimal.RequireFromString("12.50"), "Ada Lovelace"},
			{"ada", "00000000-0000-4000-8000-000000000001", decimal.RequireFromString("0.10"), "Ada Lovelace"},
			{"alan", "00000000-0000-4000-8000-000000000003", decimal.RequireFromString("100000.00"), "Alan Turing"},
		}
		require.NoError(t, b.ExecuteBatch(ctx, store.InsertAccount, rows))

		records, err := b.AccountsByUser(ctx, "ada")
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, "00000000-0000-4000-8000-000000000001", records[0].AccountNumber)
		assert.Equal(t, "Ada Lovelace", records[0].Name)
		assert.True(t, decimal.RequireFromString("0.10").Equal(records[0].CashBalance),
			"cash balance %s", records[0].CashBalance)
		assert.True(t, decimal.RequireFromString("12.50").Equal(records[1].CashBalance))

		none, err := b.AccountsByUser(ctx, "nobody")
		require.NoError(t, err)
		assert.Empty(t, none)

		trade := []any{
			"00000000-0000-4000-8000-000000000001",
			timeuuid.FromTime(time.Date(2014, 7, 1, 0, 0, 0, 0, time.UTC)),
			seed.TradeBuy, "SPY",
			decimal.NewFromInt(3), decimal.RequireFromString("10.25"), decimal.RequireFromString("30.75"),
		}
		require.NoError(t, b.ExecuteBatch(ctx, store.InsertTrade, [][]any{trade}))
		require.NoError(t, b.ExecuteBatch(ctx, store.InsertPosition, [][]any{
			{"00000000-0000-4000-8000-000000000001", "SPY", decimal.NewFromInt(3)},
		}))
	})

	t.Run("arity mismatch", func(t *testing.T) {
		err := b.ExecuteBatch(ctx, store.InsertPosition, [][]any{{"acct", "SPY"}})
		require.Error(t, err)
	})

	t.Run("metadata round trip", func(t *testing.T) {
		require.NoError(t, b.SaveMetadata(ctx, map[string]string{"run_id": "first", "accounts": "3"}))
		require.NoError(t, b.SaveMetadata(ctx, map[string]string{"run_id": "second"}))

		md, err := b.Metadata(ctx)
		require.NoError(t, err)
		assert.Equal(t, "second", md["run_id"])
		assert.Equal(t, "3", md["accounts"])
	})

	t.Run("generated run", func(t *testing.T) {
		require.NoError(t, b.DropSchema(ctx))
		require.NoError(t, b.CreateSchema(ctx))

		users := []seed.User{{Username: "mike", Name: "Michael Jones"}, {Username: "stacy", Name: "Stacy Malibu"}}
		cfg := seed.DefaultConfig()
		cfg.Accounts, cfg.Positions, cfg.Trades = 3, 5, 20
		cfg.Users = users
		cfg.Instruments = []string{"SPY", "QQQ", "VOO", "BND"}

		g, err := seed.NewGenerator(cfg, datagen.NewFakerWithSeed(2024))
		require.NoError(t, err)
		summary, err := g.Run(ctx, b)
		require.NoError(t, err)

		var found []string
		for _, u := range users {
			records, err := b.AccountsByUser(ctx, u.Username)
			require.NoError(t, err)
			for _, r := range records {
				assert.Equal(t, u.Name, r.Name)
				found = append(found, r.AccountNumber)
			}
		}
		slices.SortFunc(found, strings.Compare)
		want := slices.Clone(summary.AccountNumbers)
		slices.SortFunc(want, strings.Compare)
		assert.Equal(t, want, found)

		_, err = b.Metadata(ctx)
		require.ErrorIs(t, err, store.ErrNotSeeded)
	})
}

//go:build integration

//-------------------------------------------------------------------------
//
// pgEdge Trade Seeder
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package cassandra_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pgEdge/pgedge-tradeseed/internal/store"
	_ "github.com/pgEdge/pgedge-tradeseed/internal/store/cassandra"
	"github.com/pgEdge/pgedge-tradeseed/internal/store/storetest"
	"github.com/pgEdge/pgedge-tradeseed/internal/testutil"
)

func TestBackendIntegration(t *testing.T) {
	connStr := testutil.StartCassandra(t)

	d, err := store.Get("cassandra")
	require.NoError(t, err)

	b, err := d.Open(context.Background(), store.Options{
		Connection: connStr,
		Keyspace:   testutil.RandomKeyspace(t),
	})
	require.NoError(t, err)

	storetest.Run(t, b)
}

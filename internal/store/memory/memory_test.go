package memory_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pgEdge/pgedge-tradeseed/internal/store"
	"github.com/pgEdge/pgedge-tradeseed/internal/store/memory"
	"github.com/pgEdge/pgedge-tradeseed/internal/store/storetest"
)

func TestBackendContract(t *testing.T) {
	d, err := store.Get("memory")
	require.NoError(t, err)

	b, err := d.Open(context.Background(), store.Options{Keyspace: "trading"})
	require.NoError(t, err)
	storetest.Run(t, b)
}

func TestReplicationFactor(t *testing.T) {
	b := memory.New("trading")
	require.NoError(t, b.CreateKeyspace(context.Background(), 3))
	require.NoError(t, b.CreateKeyspace(context.Background(), 1))
	assert.Equal(t, 3, b.ReplicationFactor())
	assert.Equal(t, "trading", b.Keyspace())
}

func TestRejectsEmptyBatch(t *testing.T) {
	b := memory.New("trading")
	require.NoError(t, b.CreateSchema(context.Background()))
	err := b.ExecuteBatch(context.Background(), store.InsertAccount, nil)
	require.Error(t, err)
	assert.Empty(t, b.Batches(store.TableAccounts))
}

func TestClosed(t *testing.T) {
	b := memory.New("trading")
	require.NoError(t, b.CreateSchema(context.Background()))
	require.NoError(t, b.Close())

	err := b.ExecuteBatch(context.Background(), store.InsertPosition,
		[][]any{{"acct", "SPY", decimal.NewFromInt(1)}})
	require.Error(t, err)
}

func TestFailAfter(t *testing.T) {
	b := memory.New("trading")
	b.FailAfter = 1
	require.NoError(t, b.CreateSchema(context.Background()))

	row := [][]any{{"acct", "SPY", decimal.NewFromInt(1)}}
	require.NoError(t, b.ExecuteBatch(context.Background(), store.InsertPosition, row))
	require.Error(t, b.ExecuteBatch(context.Background(), store.InsertPosition, row))
	assert.Len(t, b.Rows(store.TablePositions), 1)
}

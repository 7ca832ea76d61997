package seed

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pgEdge/pgedge-tradeseed/internal/store"
)

type recordingWriter struct {
	batches [][][]any
	failOn  int // 1-based call number to fail on, 0 never
	calls   int
}

func (w *recordingWriter) ExecuteBatch(_ context.Context, _ store.Statement, rows [][]any) error {
	w.calls++
	if w.failOn > 0 && w.calls == w.failOn {
		return errors.New("write timeout")
	}
	w.batches = append(w.batches, rows)
	return nil
}

func numberedRows(n int) [][]any {
	rows := make([][]any, n)
	for i := range rows {
		rows[i] = []any{fmt.Sprintf("acct-%d", i), "SPY", i}
	}
	return rows
}

func TestExecuteBatchChunking(t *testing.T) {
	tests := []struct {
		rows, size, want int
	}{
		{rows: 0, size: 10, want: 0},
		{rows: 1, size: 10, want: 1},
		{rows: 10, size: 10, want: 1},
		{rows: 11, size: 10, want: 2},
		{rows: 20, size: 10, want: 2},
		{rows: 25, size: 10, want: 3},
		{rows: 7, size: 1, want: 7},
		{rows: 5, size: 100, want: 1},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d_rows_by_%d", tt.rows, tt.size), func(t *testing.T) {
			w := &recordingWriter{}
			input := numberedRows(tt.rows)

			n, err := ExecuteBatch(context.Background(), w, store.InsertPosition, input, tt.size)
			require.NoError(t, err)
			assert.Equal(t, tt.want, n)
			require.Len(t, w.batches, tt.want)

			var joined [][]any
			for i, b := range w.batches {
				require.NotEmpty(t, b, "batch %d is empty", i)
				assert.LessOrEqual(t, len(b), tt.size)
				joined = append(joined, b...)
			}
			if tt.rows == 0 {
				assert.Empty(t, joined)
			} else {
				assert.Equal(t, input, joined)
			}
		})
	}
}

func TestExecuteBatchInvalidSize(t *testing.T) {
	w := &recordingWriter{}
	_, err := ExecuteBatch(context.Background(), w, store.InsertPosition, numberedRows(3), 0)
	require.ErrorIs(t, err, ErrInvalidConfig)
	assert.Zero(t, w.calls)
}

func TestExecuteBatchStopsOnError(t *testing.T) {
	w := &recordingWriter{failOn: 3}

	n, err := ExecuteBatch(context.Background(), w, store.InsertPosition, numberedRows(45), 10)
	require.Error(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, 3, w.calls, "no batch may be sent after a failure")

	var batchErr *BatchError
	require.ErrorAs(t, err, &batchErr)
	assert.Equal(t, store.TablePositions, batchErr.Table)
	assert.Equal(t, 2, batchErr.Index)
	assert.Equal(t, 20, batchErr.CommittedRows)
	assert.Contains(t, err.Error(), "write timeout")
}

func TestExecuteBatchCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	w := &recordingWriter{}
	n, err := ExecuteBatch(ctx, w, store.InsertPosition, numberedRows(5), 2)
	require.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, n)
	assert.Zero(t, w.calls)
}

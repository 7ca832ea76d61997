package seed

import (
	"context"

	"github.com/pgEdge/pgedge-tradeseed/internal/store"
)

// BatchWriter submits one batch of rows as a single unit of work.
// store.Backend satisfies it.
type BatchWriter interface {
	ExecuteBatch(ctx context.Context, stmt store.Statement, rows [][]any) error
}

// ExecuteBatch splits rows into consecutive chunks of batchSize and submits
// each chunk, in order, as one batch. Only non-empty chunks are submitted, so
// L rows produce ceil(L/batchSize) batches. It returns the number of batches
// acknowledged; on failure the error is a *BatchError and no further chunks
// are sent.
func ExecuteBatch(ctx context.Context, w BatchWriter, stmt store.Statement, rows [][]any, batchSize int) (int, error) {
	return executeBatch(ctx, w, stmt, rows, batchSize, nil)
}

func executeBatch(ctx context.Context, w BatchWriter, stmt store.Statement, rows [][]any, batchSize int, onBatch func(rows int)) (int, error) {
	if batchSize < 1 {
		return 0, invalidf("batch size must be at least 1, got %d", batchSize)
	}

	batches := 0
	for start := 0; start < len(rows); start += batchSize {
		end := min(start+batchSize, len(rows))

		err := ctx.Err()
		if err == nil {
			err = w.ExecuteBatch(ctx, stmt, rows[start:end])
		}
		if err != nil {
			return batches, &BatchError{
				Table:         stmt.Table,
				Index:         batches,
				CommittedRows: start,
				Err:           err,
			}
		}

		batches++
		if onBatch != nil {
			onBatch(end - start)
		}
	}
	return batches, nil
}

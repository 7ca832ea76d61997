package seed

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConfig reports parameters the generator cannot work with,
	// such as an empty roster or a negative count.
	ErrInvalidConfig = errors.New("invalid seed configuration")

	// ErrConstraintUnsatisfiable reports a request for more distinct
	// (account, symbol) positions than the pair space holds.
	ErrConstraintUnsatisfiable = errors.New("constraint unsatisfiable")
)

// BatchError reports a failed batch submission. Batches before Index were
// acknowledged by the backend and stay committed; later ones were not sent.
type BatchError struct {
	Table string

	// Index is the zero-based index of the failed batch.
	Index int

	// CommittedRows is the number of rows acknowledged before the failure.
	CommittedRows int

	Err error
}

func (e *BatchError) Error() string {
	return fmt.Sprintf("batch %d of %s failed after %d committed rows: %v",
		e.Index, e.Table, e.CommittedRows, e.Err)
}

func (e *BatchError) Unwrap() error {
	return e.Err
}

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))
}

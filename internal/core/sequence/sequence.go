// Package sequence provides domain contracts for durable counters and
// unique human-readable identifiers. Implementations live in pkg/sequence.
package sequence

import (
	"context"
)

// Counter is a named, durable, monotonically increasing integer.
// Next must be an atomic increment-and-fetch: two concurrent callers
// can never observe the same value for the same name.
type Counter interface {
	// Next increments the counter for name by 1 and returns the new
	// value. A missing counter is created starting from 1; the
	// create-if-absent and increment are a single indivisible operation.
	Next(ctx context.Context, name string) (int64, error)
}

// ExistsFunc reports whether a candidate identifier is already taken
// in the target collection.
type ExistsFunc func(ctx context.Context, candidate string) (bool, error)

// NumberGenerator mints collision-free human-readable identifiers
// such as sale and order numbers.
type NumberGenerator interface {
	// Generate returns prefix + zero-padded counter value of the given
	// width, verified free via exists. Retries on collision up to the
	// implementation's limit and fails with ExhaustedRetries after that.
	Generate(ctx context.Context, prefix string, width int, exists ExistsFunc) (string, error)
}

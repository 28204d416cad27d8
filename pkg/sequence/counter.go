// Package sequence implements durable named counters and the unique
// number generator on top of them.
//
// Counter state lives exclusively in the sys_sequences table and is
// mutated through a single upsert-increment statement, never cached in
// process memory, so any number of application instances stay correct.
package sequence

import (
	"context"

	"github.com/jackc/pgx/v5"

	"dukapos/internal/core/apperror"
	"dukapos/internal/core/sequence"
)

// Querier is the minimal database surface the counter needs.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Counter is the durable implementation of sequence.Counter.
type Counter struct {
	querier Querier
}

// NewCounter creates a counter backed by the given querier
// (a pool or an open transaction).
func NewCounter(querier Querier) *Counter {
	return &Counter{querier: querier}
}

// Next atomically increments the named sequence and returns the new
// value. A missing row is created starting from 1; the upsert and the
// increment are one indivisible statement, so concurrent callers can
// never receive the same value.
func (c *Counter) Next(ctx context.Context, name string) (int64, error) {
	var val int64
	err := c.querier.QueryRow(ctx, `
        INSERT INTO sys_sequences (name, current_val)
        VALUES ($1, 1)
        ON CONFLICT (name) DO UPDATE SET current_val = sys_sequences.current_val + 1
        RETURNING current_val
	`, name).Scan(&val)
	if err != nil {
		return 0, apperror.NewStorageUnavailable(err).WithDetail("sequence", name)
	}
	return val, nil
}

var _ sequence.Counter = (*Counter)(nil)

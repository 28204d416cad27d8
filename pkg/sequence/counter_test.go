package sequence

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"

	"dukapos/internal/core/apperror"
)

type mockRow struct {
	val int64
	err error
}

func (m *mockRow) Scan(dest ...any) error {
	if m.err != nil {
		return m.err
	}
	if len(dest) > 0 {
		if ptr, ok := dest[0].(*int64); ok {
			*ptr = m.val
		}
	}
	return nil
}

// mockQuerier simulates the upsert-increment statement: every call
// bumps the per-name value by one under a lock, like the database does.
type mockQuerier struct {
	mu     sync.Mutex
	values map[string]int64
	err    error
}

func (m *mockQuerier) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if m.err != nil {
		return &mockRow{err: m.err}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.values == nil {
		m.values = make(map[string]int64)
	}
	name := args[0].(string)
	m.values[name]++
	return &mockRow{val: m.values[name]}
}

func TestCounter_Next(t *testing.T) {
	q := &mockQuerier{}
	c := NewCounter(q)
	ctx := context.Background()

	first, err := c.Next(ctx, "sale_number")
	require.NoError(t, err)
	require.Equal(t, int64(1), first)

	second, err := c.Next(ctx, "sale_number")
	require.NoError(t, err)
	require.Equal(t, int64(2), second)

	// Independent sequences do not interfere
	other, err := c.Next(ctx, "order_number")
	require.NoError(t, err)
	require.Equal(t, int64(1), other)
}

func TestCounter_Next_Concurrent(t *testing.T) {
	q := &mockQuerier{}
	c := NewCounter(q)
	ctx := context.Background()

	const n = 100
	results := make([]int64, n)

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			v, err := c.Next(ctx, "sale_number")
			require.NoError(t, err)
			results[i] = v
		}(i)
	}
	wg.Wait()

	// Exactly {1..n}, no duplicates
	sort.Slice(results, func(i, j int) bool { return results[i] < results[j] })
	for i := 0; i < n; i++ {
		require.Equal(t, int64(i+1), results[i])
	}
}

func TestCounter_Next_StorageUnavailable(t *testing.T) {
	q := &mockQuerier{err: errors.New("connection refused")}
	c := NewCounter(q)

	_, err := c.Next(context.Background(), "sale_number")
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	require.Equal(t, apperror.CodeStorageUnavailable, appErr.Code)
}

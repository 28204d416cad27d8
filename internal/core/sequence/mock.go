package sequence

import (
	"context"
	"fmt"
	"sync/atomic"
)

// MockCounter is a test implementation of Counter backed by an atomic
// in-memory value. Use in unit tests to avoid database dependencies.
type MockCounter struct {
	NextFunc func(ctx context.Context, name string) (int64, error)

	value int64
}

// Next implements Counter.
func (m *MockCounter) Next(ctx context.Context, name string) (int64, error) {
	if m.NextFunc != nil {
		return m.NextFunc(ctx, name)
	}
	return atomic.AddInt64(&m.value, 1), nil
}

// MockNumberGenerator is a test implementation of NumberGenerator.
type MockNumberGenerator struct {
	GenerateFunc func(ctx context.Context, prefix string, width int, exists ExistsFunc) (string, error)

	counter int64
}

// Generate implements NumberGenerator.
func (m *MockNumberGenerator) Generate(ctx context.Context, prefix string, width int, exists ExistsFunc) (string, error) {
	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, prefix, width, exists)
	}
	n := atomic.AddInt64(&m.counter, 1)
	return fmt.Sprintf("%s%0*d", prefix, width, n), nil
}

// Ensure compile-time interface compliance.
var (
	_ Counter         = (*MockCounter)(nil)
	_ NumberGenerator = (*MockNumberGenerator)(nil)
)

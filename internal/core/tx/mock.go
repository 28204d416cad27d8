package tx

import (
	"context"
)

// MockManager is a test implementation of Manager. It runs fn directly
// and can simulate commit failures.
type MockManager struct {
	// BeginErr is returned before fn runs, if set.
	BeginErr error

	// CommitErr is returned after fn succeeds, simulating a failed commit.
	CommitErr error

	// Calls counts RunInTransaction invocations.
	Calls int
}

// RunInTransaction implements Manager.
func (m *MockManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	m.Calls++
	if m.BeginErr != nil {
		return m.BeginErr
	}
	if err := fn(ctx); err != nil {
		return err
	}
	return m.CommitErr
}

// ReadOnly implements ReadOnlyManager.
func (m *MockManager) ReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.RunInTransaction(ctx, fn)
}

var _ ReadOnlyManager = (*MockManager)(nil)

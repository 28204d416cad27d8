package sequence

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"dukapos/internal/core/apperror"
	"dukapos/internal/core/sequence"
)

func neverExists(ctx context.Context, candidate string) (bool, error) {
	return false, nil
}

func TestGenerator_Generate(t *testing.T) {
	gen := NewGenerator(&sequence.MockCounter{})
	ctx := context.Background()

	num, err := gen.Generate(ctx, "SALE-", 6, neverExists)
	require.NoError(t, err)
	require.Equal(t, "SALE-000001", num)

	num, err = gen.Generate(ctx, "SALE-", 6, neverExists)
	require.NoError(t, err)
	require.Equal(t, "SALE-000002", num)
}

func TestGenerator_Generate_RetriesOnCollision(t *testing.T) {
	// Numbers 1 and 2 were already inserted by hand; the generator
	// must skip past them.
	taken := map[string]bool{
		"ORD-00001": true,
		"ORD-00002": true,
	}
	exists := func(ctx context.Context, candidate string) (bool, error) {
		return taken[candidate], nil
	}

	gen := NewGenerator(&sequence.MockCounter{})
	num, err := gen.Generate(context.Background(), "ORD-", 5, exists)
	require.NoError(t, err)
	require.Equal(t, "ORD-00003", num)
}

func TestGenerator_Generate_ExhaustedRetries(t *testing.T) {
	everything := func(ctx context.Context, candidate string) (bool, error) {
		return true, nil
	}

	gen := NewGeneratorWithRetries(&sequence.MockCounter{}, 3)
	_, err := gen.Generate(context.Background(), "SALE-", 6, everything)
	require.Error(t, err)
	require.True(t, apperror.IsExhaustedRetries(err))

	appErr, _ := apperror.AsAppError(err)
	require.Equal(t, 3, appErr.Details["attempts"])
}

func TestGenerator_Generate_CounterError(t *testing.T) {
	counter := &sequence.MockCounter{
		NextFunc: func(ctx context.Context, name string) (int64, error) {
			return 0, apperror.NewStorageUnavailable(errors.New("down"))
		},
	}

	gen := NewGenerator(counter)
	_, err := gen.Generate(context.Background(), "SALE-", 6, neverExists)
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	require.Equal(t, apperror.CodeStorageUnavailable, appErr.Code)
}

func TestGenerator_Generate_ExistsError(t *testing.T) {
	exists := func(ctx context.Context, candidate string) (bool, error) {
		return false, errors.New("query failed")
	}

	gen := NewGenerator(&sequence.MockCounter{})
	_, err := gen.Generate(context.Background(), "SALE-", 6, exists)
	require.Error(t, err)
	require.False(t, apperror.IsExhaustedRetries(err))
}

func TestSequenceName(t *testing.T) {
	require.Equal(t, "sale_number", sequenceName("SALE-"))
	require.Equal(t, "ord_number", sequenceName("ORD-"))
	require.Equal(t, "exp_number", sequenceName("exp"))
}

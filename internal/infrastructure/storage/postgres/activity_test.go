package postgres

import (
	"bytes"
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/require"

	appctx "dukapos/internal/core/context"
	"dukapos/internal/core/id"
)

// captureQuerier records the arguments of the last Exec call.
type captureQuerier struct {
	sql  string
	args []any
}

func (q *captureQuerier) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	q.sql = sql
	q.args = arguments
	return pgconn.CommandTag{}, nil
}

func (q *captureQuerier) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}

func (q *captureQuerier) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return nil
}

type fixedSource struct {
	querier *captureQuerier
}

func (s *fixedSource) GetQuerier(ctx context.Context) Querier {
	return s.querier
}

func newTestActivityLog(t *testing.T) (*ActivityLog, *captureQuerier) {
	t.Helper()
	log, err := NewActivityLog(nil)
	require.NoError(t, err)

	querier := &captureQuerier{}
	log.db = &fixedSource{querier: querier}
	return log, querier
}

func TestActivityLog_RecordSmallPayloadStoredRaw(t *testing.T) {
	log, querier := newTestActivityLog(t)

	entityID := id.New()
	err := log.RecordChange(context.Background(), "sale", entityID, ActivitySale,
		map[string]string{"number": "SALE-000001"})
	require.NoError(t, err)

	require.Len(t, querier.args, 9)
	require.Equal(t, entityID, querier.args[2])
	require.Equal(t, ActivitySale, querier.args[3])

	payload, ok := querier.args[6].([]byte)
	require.True(t, ok)
	require.JSONEq(t, `{"number":"SALE-000001"}`, string(payload))
	require.Equal(t, CompressionNone, querier.args[7])
}

func TestActivityLog_RecordLargePayloadCompressed(t *testing.T) {
	log, querier := newTestActivityLog(t)

	big := bytes.Repeat([]byte(`{"k":"v"},`), 4096)
	err := log.Record(context.Background(), ActivityEntry{
		EntityType: "expense",
		EntityID:   id.New(),
		Action:     ActivityRestock,
		Payload:    big,
	})
	require.NoError(t, err)

	require.Len(t, querier.args, 9)
	require.Equal(t, CompressionZstd, querier.args[7])

	stored, ok := querier.args[6].([]byte)
	require.True(t, ok)
	require.Less(t, len(stored), len(big))

	decoder, err := zstd.NewReader(nil)
	require.NoError(t, err)
	defer decoder.Close()

	restored, err := decoder.DecodeAll(stored, nil)
	require.NoError(t, err)
	require.Equal(t, big, restored)
}

func TestActivityLog_RecordTakesUserFromContext(t *testing.T) {
	log, querier := newTestActivityLog(t)

	ctx := appctx.WithUser(context.Background(), &appctx.UserContext{
		UserID: "u1",
		Email:  "owner@duka.co.ke",
	})
	err := log.RecordChange(ctx, "user", id.New(), ActivityLogin, map[string]string{"email": "owner@duka.co.ke"})
	require.NoError(t, err)

	require.Equal(t, "u1", querier.args[4])
	require.Equal(t, "owner@duka.co.ke", querier.args[5])
}

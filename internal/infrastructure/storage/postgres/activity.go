package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/klauspost/compress/zstd"

	appctx "dukapos/internal/core/context"
	"dukapos/internal/core/id"
)

// ActivityAction represents the type of recorded operation.
type ActivityAction string

const (
	ActivityCreate  ActivityAction = "create"
	ActivityUpdate  ActivityAction = "update"
	ActivityDelete  ActivityAction = "delete"
	ActivityRestock ActivityAction = "restock"
	ActivitySale    ActivityAction = "sale"
	ActivityLogin   ActivityAction = "login"
)

// CompressionAlgo specifies the payload compression used.
type CompressionAlgo string

const (
	CompressionNone CompressionAlgo = "none"
	CompressionZstd CompressionAlgo = "zstd"
)

// ActivityEntry is one row of the activity log. Payload holds JSON in
// memory; in storage it holds the raw or zstd-compressed bytes, with
// CompressionAlgo saying which.
type ActivityEntry struct {
	ID              id.ID           `db:"id"`
	EntityType      string          `db:"entity_type"`
	EntityID        id.ID           `db:"entity_id"`
	Action          ActivityAction  `db:"action"`
	UserID          string          `db:"user_id"`
	UserEmail       string          `db:"user_email"`
	Payload         []byte          `db:"payload"`
	CompressionAlgo CompressionAlgo `db:"compression_algo"`
	CreatedAt       time.Time       `db:"created_at"`
}

// querierSource yields the querier bound to the current transaction.
type querierSource interface {
	GetQuerier(ctx context.Context) Querier
}

// ActivityLog records who did what. Large payloads (full restock and
// sale bodies) are zstd-compressed before storage.
type ActivityLog struct {
	db                querierSource
	encoder           *zstd.Encoder
	decoder           *zstd.Decoder
	compressThreshold int
}

// NewActivityLog creates a new activity log writer.
func NewActivityLog(txManager *TxManager) (*ActivityLog, error) {
	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("create zstd encoder: %w", err)
	}

	decoder, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("create zstd decoder: %w", err)
	}

	return &ActivityLog{
		db:                txManager,
		encoder:           encoder,
		decoder:           decoder,
		compressThreshold: 10 * 1024,
	}, nil
}

// Record writes an activity entry. User identity is taken from ctx
// when not set on the entry.
func (l *ActivityLog) Record(ctx context.Context, entry ActivityEntry) error {
	if user := appctx.GetUser(ctx); user != nil {
		if entry.UserID == "" {
			entry.UserID = user.UserID
		}
		if entry.UserEmail == "" {
			entry.UserEmail = user.Email
		}
	}
	if id.IsNil(entry.ID) {
		entry.ID = id.New()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	entry.CompressionAlgo = CompressionNone
	if len(entry.Payload) > l.compressThreshold {
		entry.Payload = l.encoder.EncodeAll(entry.Payload, nil)
		entry.CompressionAlgo = CompressionZstd
	}

	sql := `
		INSERT INTO sys_activity_log (
			id, entity_type, entity_id, action, user_id, user_email,
			payload, compression_algo, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := l.db.GetQuerier(ctx).Exec(ctx, sql,
		entry.ID, entry.EntityType, entry.EntityID, entry.Action,
		entry.UserID, entry.UserEmail,
		entry.Payload, entry.CompressionAlgo,
		entry.CreatedAt,
	)
	return err
}

// RecordChange is a convenience wrapper marshalling the payload.
func (l *ActivityLog) RecordChange(
	ctx context.Context,
	entityType string,
	entityID id.ID,
	action ActivityAction,
	payload any,
) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	return l.Record(ctx, ActivityEntry{
		EntityType: entityType,
		EntityID:   entityID,
		Action:     action,
		Payload:    body,
	})
}

// EntityHistory retrieves recent activity for an entity, newest first,
// with compressed payloads expanded.
func (l *ActivityLog) EntityHistory(ctx context.Context, entityType string, entityID id.ID, limit int) ([]ActivityEntry, error) {
	sql := `
		SELECT id, entity_type, entity_id, action, user_id, user_email,
			   payload, compression_algo, created_at
		FROM sys_activity_log
		WHERE entity_type = $1 AND entity_id = $2
		ORDER BY created_at DESC
		LIMIT $3
	`

	rows, err := l.db.GetQuerier(ctx).Query(ctx, sql, entityType, entityID, limit)
	if err != nil {
		return nil, fmt.Errorf("query activity: %w", err)
	}
	defer rows.Close()

	var entries []ActivityEntry
	for rows.Next() {
		var e ActivityEntry
		err := rows.Scan(
			&e.ID, &e.EntityType, &e.EntityID, &e.Action, &e.UserID, &e.UserEmail,
			&e.Payload, &e.CompressionAlgo, &e.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}

		if e.CompressionAlgo == CompressionZstd && len(e.Payload) > 0 {
			payload, err := l.decoder.DecodeAll(e.Payload, nil)
			if err != nil {
				return nil, fmt.Errorf("decompress payload: %w", err)
			}
			e.Payload = payload
			e.CompressionAlgo = CompressionNone
		}

		entries = append(entries, e)
	}
	return entries, rows.Err()
}

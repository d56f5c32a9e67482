package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/klauspost/compress/zstd"

	"retailcore/internal/core/id"
	"retailcore/internal/domain/audit"
)

// Payloads above this size are stored zstd-compressed.
const auditCompressThreshold = 10 * 1024

// AuditLog persists audit entries to the audit_log table. Large payloads
// are compressed with zstd before storage.
type AuditLog struct {
	txm     *TxManager
	builder sq.StatementBuilderType
	encoder *zstd.Encoder
	decoder *zstd.Decoder
}

var _ audit.Recorder = (*AuditLog)(nil)

func NewAuditLog(txm *TxManager) (*AuditLog, error) {
	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("create zstd encoder: %w", err)
	}
	decoder, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("create zstd decoder: %w", err)
	}
	return &AuditLog{
		txm:     txm,
		builder: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
		encoder: encoder,
		decoder: decoder,
	}, nil
}

// Record inserts a single audit entry.
func (a *AuditLog) Record(ctx context.Context, entry audit.Entry) error {
	if id.IsNil(entry.ID) {
		entry.ID = id.New()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	payload, compressed, err := a.encodePayload(entry.Payload)
	if err != nil {
		return fmt.Errorf("encode audit payload: %w", err)
	}

	query, args, err := a.builder.
		Insert("audit_log").
		Columns("id", "action", "entity_type", "entity_id", "actor_id", "payload", "compressed", "created_at").
		Values(entry.ID, entry.Action, entry.EntityType, entry.EntityID, nilIfZero(entry.ActorID), payload, compressed, entry.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build audit insert: %w", err)
	}

	if _, err := a.txm.GetQuerier(ctx).Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("insert audit entry: %w", err)
	}
	return nil
}

func (a *AuditLog) encodePayload(payload map[string]any) ([]byte, bool, error) {
	if len(payload) == 0 {
		return nil, false, nil
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, false, err
	}
	if len(raw) < auditCompressThreshold {
		return raw, false, nil
	}
	return a.encoder.EncodeAll(raw, nil), true, nil
}

// Recent returns the newest audit entries, most recent first.
func (a *AuditLog) Recent(ctx context.Context, limit int) ([]audit.Entry, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	query, args, err := a.builder.
		Select("id", "action", "entity_type", "entity_id", "actor_id", "payload", "compressed", "created_at").
		From("audit_log").
		OrderBy("created_at DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build audit select: %w", err)
	}

	rows, err := a.txm.GetQuerier(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query audit entries: %w", err)
	}
	defer rows.Close()

	var entries []audit.Entry
	for rows.Next() {
		var (
			entry      audit.Entry
			actorID    *id.ID
			raw        []byte
			compressed bool
		)
		if err := rows.Scan(&entry.ID, &entry.Action, &entry.EntityType, &entry.EntityID, &actorID, &raw, &compressed, &entry.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan audit entry: %w", err)
		}
		if actorID != nil {
			entry.ActorID = *actorID
		}
		entry.Payload, err = a.decodePayload(raw, compressed)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func (a *AuditLog) decodePayload(raw []byte, compressed bool) (map[string]any, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	if compressed {
		var err error
		raw, err = a.decoder.DecodeAll(raw, nil)
		if err != nil {
			return nil, fmt.Errorf("decompress audit payload: %w", err)
		}
	}
	var payload map[string]any
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("unmarshal audit payload: %w", err)
	}
	return payload, nil
}

func nilIfZero(v id.ID) any {
	if id.IsNil(v) {
		return nil
	}
	return v
}

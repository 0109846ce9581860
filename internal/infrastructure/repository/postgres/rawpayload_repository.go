package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/matchpulse/sofasync/internal/domain/rawpayload"
	qb "github.com/matchpulse/sofasync/internal/platform/querybuilder"
)

const rawPayloadBatchSize = 100

type RawPayloadRepository struct {
	db *sqlx.DB
}

func NewRawPayloadRepository(db *sqlx.DB) *RawPayloadRepository {
	return &RawPayloadRepository{db: db}
}

// UpsertMany inserts batches and dedupes on content hash, so replayed
// runs do not grow the archive.
func (r *RawPayloadRepository) UpsertMany(ctx context.Context, items []rawpayload.Payload) error {
	for start := 0; start < len(items); start += rawPayloadBatchSize {
		end := start + rawPayloadBatchSize
		if end > len(items) {
			end = len(items)
		}
		if err := r.insertBatch(ctx, items[start:end]); err != nil {
			return err
		}
	}

	return nil
}

func (r *RawPayloadRepository) insertBatch(ctx context.Context, items []rawpayload.Payload) error {
	builder := qb.InsertInto("raw_payloads").
		Columns("source", "entity_type", "entity_key", "request_path", "payload_json", "payload_hash").
		Suffix("ON CONFLICT (payload_hash) DO NOTHING")
	for _, item := range items {
		builder.Values(item.Source, item.EntityType, item.EntityKey, item.RequestPath, item.PayloadJSON, item.PayloadHash)
	}

	query, args, err := builder.ToSQL()
	if err != nil {
		return fmt.Errorf("build insert raw payloads query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert raw payloads: %w", err)
	}

	return nil
}

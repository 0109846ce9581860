package memory

import (
	"context"
	"sync"

	"github.com/matchpulse/sofasync/internal/domain/rawpayload"
)

type RawPayloadRepository struct {
	mu   sync.RWMutex
	rows map[string]rawpayload.Payload
}

func NewRawPayloadRepository() *RawPayloadRepository {
	return &RawPayloadRepository{rows: make(map[string]rawpayload.Payload)}
}

// UpsertMany dedupes on content hash so replayed runs do not grow the
// archive.
func (r *RawPayloadRepository) UpsertMany(_ context.Context, items []rawpayload.Payload) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, item := range items {
		if item.PayloadHash == "" {
			continue
		}
		r.rows[item.PayloadHash] = item
	}

	return nil
}

func (r *RawPayloadRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.rows)
}

package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/matchpulse/sofasync/internal/domain/event"
)

type EventRepository struct {
	mu   sync.RWMutex
	rows map[int64]event.Event
}

func NewEventRepository() *EventRepository {
	return &EventRepository{rows: make(map[int64]event.Event)}
}

func (r *EventRepository) GetByExternalID(_ context.Context, externalID int64) (event.Event, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	row, ok := r.rows[externalID]
	return row, ok, nil
}

func (r *EventRepository) Insert(_ context.Context, item event.Event) (event.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.rows[item.ExternalID]; ok {
		return event.Event{}, fmt.Errorf("event external_id=%d already exists", item.ExternalID)
	}
	r.rows[item.ExternalID] = item

	return item, nil
}

func (r *EventRepository) ListByGroup(_ context.Context, groupExternalID int64) ([]event.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]event.Event, 0)
	for _, row := range r.rows {
		if row.GroupExternalID == groupExternalID {
			out = append(out, row)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ExternalID < out[j].ExternalID })

	return out, nil
}

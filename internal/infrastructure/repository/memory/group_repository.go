package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/matchpulse/sofasync/internal/domain/group"
)

type GroupRepository struct {
	mu   sync.RWMutex
	rows map[int64]group.Group
}

func NewGroupRepository() *GroupRepository {
	return &GroupRepository{rows: make(map[int64]group.Group)}
}

func (r *GroupRepository) GetByExternalID(_ context.Context, externalID int64) (group.Group, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	row, ok := r.rows[externalID]
	return row, ok, nil
}

func (r *GroupRepository) Insert(_ context.Context, item group.Group) (group.Group, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.rows[item.ExternalID]; ok {
		return group.Group{}, fmt.Errorf("group external_id=%d already exists", item.ExternalID)
	}
	r.rows[item.ExternalID] = item

	return item, nil
}

func (r *GroupRepository) ListBySeason(_ context.Context, seasonExternalID int64) ([]group.Group, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]group.Group, 0)
	for _, row := range r.rows {
		if row.SeasonExternalID == seasonExternalID {
			out = append(out, row)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ExternalID < out[j].ExternalID })

	return out, nil
}

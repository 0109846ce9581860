package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/matchpulse/sofasync/internal/domain/category"
)

type CategoryRepository struct {
	mu   sync.RWMutex
	rows map[int64]category.Category
}

func NewCategoryRepository() *CategoryRepository {
	return &CategoryRepository{rows: make(map[int64]category.Category)}
}

func (r *CategoryRepository) GetByExternalID(_ context.Context, externalID int64) (category.Category, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	row, ok := r.rows[externalID]
	return row, ok, nil
}

func (r *CategoryRepository) Insert(_ context.Context, item category.Category) (category.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.rows[item.ExternalID]; ok {
		return category.Category{}, fmt.Errorf("category external_id=%d already exists", item.ExternalID)
	}
	r.rows[item.ExternalID] = item

	return item, nil
}

func (r *CategoryRepository) List(_ context.Context) ([]category.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]category.Category, 0, len(r.rows))
	for _, row := range r.rows {
		out = append(out, row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ExternalID < out[j].ExternalID })

	return out, nil
}

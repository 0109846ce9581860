package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/matchpulse/sofasync/internal/domain/season"
)

type SeasonRepository struct {
	mu   sync.RWMutex
	rows map[int64]season.Season
}

func NewSeasonRepository() *SeasonRepository {
	return &SeasonRepository{rows: make(map[int64]season.Season)}
}

func (r *SeasonRepository) GetByExternalID(_ context.Context, externalID int64) (season.Season, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	row, ok := r.rows[externalID]
	return row, ok, nil
}

func (r *SeasonRepository) Insert(_ context.Context, item season.Season) (season.Season, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.rows[item.ExternalID]; ok {
		return season.Season{}, fmt.Errorf("season external_id=%d already exists", item.ExternalID)
	}
	r.rows[item.ExternalID] = item

	return item, nil
}

func (r *SeasonRepository) ListByTournament(_ context.Context, tournamentExternalID int64) ([]season.Season, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]season.Season, 0)
	for _, row := range r.rows {
		if row.TournamentExternalID == tournamentExternalID {
			out = append(out, row)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ExternalID < out[j].ExternalID })

	return out, nil
}

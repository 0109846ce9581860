package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/matchpulse/sofasync/internal/domain/tournament"
)

type TournamentRepository struct {
	mu   sync.RWMutex
	rows map[int64]tournament.Tournament
}

func NewTournamentRepository() *TournamentRepository {
	return &TournamentRepository{rows: make(map[int64]tournament.Tournament)}
}

func (r *TournamentRepository) GetByExternalID(_ context.Context, externalID int64) (tournament.Tournament, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	row, ok := r.rows[externalID]
	return row, ok, nil
}

func (r *TournamentRepository) Insert(_ context.Context, item tournament.Tournament) (tournament.Tournament, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.rows[item.ExternalID]; ok {
		return tournament.Tournament{}, fmt.Errorf("tournament external_id=%d already exists", item.ExternalID)
	}
	r.rows[item.ExternalID] = item

	return item, nil
}

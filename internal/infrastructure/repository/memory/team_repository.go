package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/matchpulse/sofasync/internal/domain/team"
)

type TeamRepository struct {
	mu   sync.RWMutex
	rows map[int64]team.Team
}

func NewTeamRepository() *TeamRepository {
	return &TeamRepository{rows: make(map[int64]team.Team)}
}

func (r *TeamRepository) GetByExternalID(_ context.Context, externalID int64) (team.Team, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	row, ok := r.rows[externalID]
	return row, ok, nil
}

func (r *TeamRepository) Insert(_ context.Context, item team.Team) (team.Team, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.rows[item.ExternalID]; ok {
		return team.Team{}, fmt.Errorf("team external_id=%d already exists", item.ExternalID)
	}
	r.rows[item.ExternalID] = item

	return item, nil
}

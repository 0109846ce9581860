package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/matchpulse/sofasync/internal/domain/team"
	qb "github.com/matchpulse/sofasync/internal/platform/querybuilder"
)

type TeamRepository struct {
	db *sqlx.DB
}

func NewTeamRepository(db *sqlx.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) GetByExternalID(ctx context.Context, externalID int64) (team.Team, bool, error) {
	query, args, err := qb.Select("*").From("teams").
		Where(qb.Eq("external_id", externalID)).
		Limit(1).
		ToSQL()
	if err != nil {
		return team.Team{}, false, fmt.Errorf("build select team query: %w", err)
	}

	var row teamTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return team.Team{}, false, nil
		}
		return team.Team{}, false, fmt.Errorf("select team: %w", err)
	}

	return row.toDomain(), true, nil
}

func (r *TeamRepository) Insert(ctx context.Context, item team.Team) (team.Team, error) {
	query, args, err := qb.InsertModel("teams", teamToModel(item), conflictIgnoreExternalID)
	if err != nil {
		return team.Team{}, fmt.Errorf("build insert team query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return team.Team{}, fmt.Errorf("insert team: %w", err)
	}

	stored, found, err := r.GetByExternalID(ctx, item.ExternalID)
	if err != nil {
		return team.Team{}, err
	}
	if !found {
		return team.Team{}, fmt.Errorf("team external_id=%d missing after insert", item.ExternalID)
	}

	return stored, nil
}

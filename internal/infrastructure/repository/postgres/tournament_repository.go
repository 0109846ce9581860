package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/matchpulse/sofasync/internal/domain/tournament"
	qb "github.com/matchpulse/sofasync/internal/platform/querybuilder"
)

type TournamentRepository struct {
	db *sqlx.DB
}

func NewTournamentRepository(db *sqlx.DB) *TournamentRepository {
	return &TournamentRepository{db: db}
}

func (r *TournamentRepository) GetByExternalID(ctx context.Context, externalID int64) (tournament.Tournament, bool, error) {
	query, args, err := qb.Select("*").From("tournaments").
		Where(qb.Eq("external_id", externalID)).
		Limit(1).
		ToSQL()
	if err != nil {
		return tournament.Tournament{}, false, fmt.Errorf("build select tournament query: %w", err)
	}

	var row tournamentTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return tournament.Tournament{}, false, nil
		}
		return tournament.Tournament{}, false, fmt.Errorf("select tournament: %w", err)
	}

	return row.toDomain(), true, nil
}

func (r *TournamentRepository) Insert(ctx context.Context, item tournament.Tournament) (tournament.Tournament, error) {
	query, args, err := qb.InsertModel("tournaments", tournamentToModel(item), conflictIgnoreExternalID)
	if err != nil {
		return tournament.Tournament{}, fmt.Errorf("build insert tournament query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return tournament.Tournament{}, fmt.Errorf("insert tournament: %w", err)
	}

	stored, found, err := r.GetByExternalID(ctx, item.ExternalID)
	if err != nil {
		return tournament.Tournament{}, err
	}
	if !found {
		return tournament.Tournament{}, fmt.Errorf("tournament external_id=%d missing after insert", item.ExternalID)
	}

	return stored, nil
}

package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/matchpulse/sofasync/internal/domain/season"
	qb "github.com/matchpulse/sofasync/internal/platform/querybuilder"
)

type SeasonRepository struct {
	db *sqlx.DB
}

func NewSeasonRepository(db *sqlx.DB) *SeasonRepository {
	return &SeasonRepository{db: db}
}

func (r *SeasonRepository) GetByExternalID(ctx context.Context, externalID int64) (season.Season, bool, error) {
	query, args, err := qb.Select("*").From("seasons").
		Where(qb.Eq("external_id", externalID)).
		Limit(1).
		ToSQL()
	if err != nil {
		return season.Season{}, false, fmt.Errorf("build select season query: %w", err)
	}

	var row seasonTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return season.Season{}, false, nil
		}
		return season.Season{}, false, fmt.Errorf("select season: %w", err)
	}

	return row.toDomain(), true, nil
}

func (r *SeasonRepository) Insert(ctx context.Context, item season.Season) (season.Season, error) {
	query, args, err := qb.InsertModel("seasons", seasonToModel(item), conflictIgnoreExternalID)
	if err != nil {
		return season.Season{}, fmt.Errorf("build insert season query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return season.Season{}, fmt.Errorf("insert season: %w", err)
	}

	stored, found, err := r.GetByExternalID(ctx, item.ExternalID)
	if err != nil {
		return season.Season{}, err
	}
	if !found {
		return season.Season{}, fmt.Errorf("season external_id=%d missing after insert", item.ExternalID)
	}

	return stored, nil
}

func (r *SeasonRepository) ListByTournament(ctx context.Context, tournamentExternalID int64) ([]season.Season, error) {
	query, args, err := qb.Select("*").From("seasons").
		Where(qb.Eq("tournament_external_id", tournamentExternalID)).
		OrderBy("external_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select seasons query: %w", err)
	}

	var rows []seasonTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select seasons: %w", err)
	}

	out := make([]season.Season, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}

	return out, nil
}

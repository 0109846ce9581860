package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/matchpulse/sofasync/internal/domain/group"
	qb "github.com/matchpulse/sofasync/internal/platform/querybuilder"
)

type GroupRepository struct {
	db *sqlx.DB
}

func NewGroupRepository(db *sqlx.DB) *GroupRepository {
	return &GroupRepository{db: db}
}

func (r *GroupRepository) GetByExternalID(ctx context.Context, externalID int64) (group.Group, bool, error) {
	query, args, err := qb.Select("*").From("groups").
		Where(qb.Eq("external_id", externalID)).
		Limit(1).
		ToSQL()
	if err != nil {
		return group.Group{}, false, fmt.Errorf("build select group query: %w", err)
	}

	var row groupTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return group.Group{}, false, nil
		}
		return group.Group{}, false, fmt.Errorf("select group: %w", err)
	}

	return row.toDomain(), true, nil
}

func (r *GroupRepository) Insert(ctx context.Context, item group.Group) (group.Group, error) {
	query, args, err := qb.InsertModel("groups", groupToModel(item), conflictIgnoreExternalID)
	if err != nil {
		return group.Group{}, fmt.Errorf("build insert group query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return group.Group{}, fmt.Errorf("insert group: %w", err)
	}

	stored, found, err := r.GetByExternalID(ctx, item.ExternalID)
	if err != nil {
		return group.Group{}, err
	}
	if !found {
		return group.Group{}, fmt.Errorf("group external_id=%d missing after insert", item.ExternalID)
	}

	return stored, nil
}

func (r *GroupRepository) ListBySeason(ctx context.Context, seasonExternalID int64) ([]group.Group, error) {
	query, args, err := qb.Select("*").From("groups").
		Where(qb.Eq("season_external_id", seasonExternalID)).
		OrderBy("external_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select groups query: %w", err)
	}

	var rows []groupTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select groups: %w", err)
	}

	out := make([]group.Group, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}

	return out, nil
}

package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/matchpulse/sofasync/internal/domain/event"
	qb "github.com/matchpulse/sofasync/internal/platform/querybuilder"
)

type EventRepository struct {
	db *sqlx.DB
}

func NewEventRepository(db *sqlx.DB) *EventRepository {
	return &EventRepository{db: db}
}

func (r *EventRepository) GetByExternalID(ctx context.Context, externalID int64) (event.Event, bool, error) {
	query, args, err := qb.Select("*").From("events").
		Where(qb.Eq("external_id", externalID)).
		Limit(1).
		ToSQL()
	if err != nil {
		return event.Event{}, false, fmt.Errorf("build select event query: %w", err)
	}

	var row eventTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return event.Event{}, false, nil
		}
		return event.Event{}, false, fmt.Errorf("select event: %w", err)
	}

	return row.toDomain(), true, nil
}

func (r *EventRepository) Insert(ctx context.Context, item event.Event) (event.Event, error) {
	query, args, err := qb.InsertModel("events", eventToModel(item), conflictIgnoreExternalID)
	if err != nil {
		return event.Event{}, fmt.Errorf("build insert event query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return event.Event{}, fmt.Errorf("insert event: %w", err)
	}

	stored, found, err := r.GetByExternalID(ctx, item.ExternalID)
	if err != nil {
		return event.Event{}, err
	}
	if !found {
		return event.Event{}, fmt.Errorf("event external_id=%d missing after insert", item.ExternalID)
	}

	return stored, nil
}

func (r *EventRepository) ListByGroup(ctx context.Context, groupExternalID int64) ([]event.Event, error) {
	query, args, err := qb.Select("*").From("events").
		Where(qb.Eq("group_external_id", groupExternalID)).
		OrderBy("external_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select events query: %w", err)
	}

	var rows []eventTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select events: %w", err)
	}

	out := make([]event.Event, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}

	return out, nil
}

package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/matchpulse/sofasync/internal/domain/category"
	qb "github.com/matchpulse/sofasync/internal/platform/querybuilder"
)

type CategoryRepository struct {
	db *sqlx.DB
}

func NewCategoryRepository(db *sqlx.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) GetByExternalID(ctx context.Context, externalID int64) (category.Category, bool, error) {
	query, args, err := qb.Select("*").From("categories").
		Where(qb.Eq("external_id", externalID)).
		Limit(1).
		ToSQL()
	if err != nil {
		return category.Category{}, false, fmt.Errorf("build select category query: %w", err)
	}

	var row categoryTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return category.Category{}, false, nil
		}
		return category.Category{}, false, fmt.Errorf("select category: %w", err)
	}

	return row.toDomain(), true, nil
}

// Insert ignores an external-id conflict and re-reads, so two processes
// racing on the same category both end up with the stored row.
func (r *CategoryRepository) Insert(ctx context.Context, item category.Category) (category.Category, error) {
	query, args, err := qb.InsertModel("categories", categoryToModel(item), conflictIgnoreExternalID)
	if err != nil {
		return category.Category{}, fmt.Errorf("build insert category query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return category.Category{}, fmt.Errorf("insert category: %w", err)
	}

	stored, found, err := r.GetByExternalID(ctx, item.ExternalID)
	if err != nil {
		return category.Category{}, err
	}
	if !found {
		return category.Category{}, fmt.Errorf("category external_id=%d missing after insert", item.ExternalID)
	}

	return stored, nil
}

func (r *CategoryRepository) List(ctx context.Context) ([]category.Category, error) {
	query, args, err := qb.Select("*").From("categories").
		OrderBy("external_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select categories query: %w", err)
	}

	var rows []categoryTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select categories: %w", err)
	}

	out := make([]category.Category, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}

	return out, nil
}

package postgres

import (
	"time"

	"github.com/matchpulse/sofasync/internal/domain/category"
)

type categoryTableModel struct {
	ID         string    `db:"id"`
	ExternalID int64     `db:"external_id"`
	Name       string    `db:"name"`
	Slug       string    `db:"slug"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}

func categoryToModel(item category.Category) categoryTableModel {
	return categoryTableModel{
		ID:         item.ID,
		ExternalID: item.ExternalID,
		Name:       item.Name,
		Slug:       item.Slug,
		CreatedAt:  item.CreatedAt,
		UpdatedAt:  item.UpdatedAt,
	}
}

func (m categoryTableModel) toDomain() category.Category {
	return category.Category{
		ID:         m.ID,
		ExternalID: m.ExternalID,
		Name:       m.Name,
		Slug:       m.Slug,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

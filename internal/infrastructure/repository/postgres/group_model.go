package postgres

import (
	"time"

	"github.com/matchpulse/sofasync/internal/domain/group"
)

type groupTableModel struct {
	ID               string    `db:"id"`
	ExternalID       int64     `db:"external_id"`
	Name             string    `db:"name"`
	SeasonExternalID int64     `db:"season_external_id"`
	CreatedAt        time.Time `db:"created_at"`
	UpdatedAt        time.Time `db:"updated_at"`
}

func groupToModel(item group.Group) groupTableModel {
	return groupTableModel{
		ID:               item.ID,
		ExternalID:       item.ExternalID,
		Name:             item.Name,
		SeasonExternalID: item.SeasonExternalID,
		CreatedAt:        item.CreatedAt,
		UpdatedAt:        item.UpdatedAt,
	}
}

func (m groupTableModel) toDomain() group.Group {
	return group.Group{
		ID:               m.ID,
		ExternalID:       m.ExternalID,
		Name:             m.Name,
		SeasonExternalID: m.SeasonExternalID,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}

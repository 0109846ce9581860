package postgres

import (
	"time"

	"github.com/matchpulse/sofasync/internal/domain/season"
)

type seasonTableModel struct {
	ID                   string    `db:"id"`
	ExternalID           int64     `db:"external_id"`
	Name                 string    `db:"name"`
	Year                 string    `db:"year"`
	TournamentExternalID int64     `db:"tournament_external_id"`
	CreatedAt            time.Time `db:"created_at"`
	UpdatedAt            time.Time `db:"updated_at"`
}

func seasonToModel(item season.Season) seasonTableModel {
	return seasonTableModel{
		ID:                   item.ID,
		ExternalID:           item.ExternalID,
		Name:                 item.Name,
		Year:                 item.Year,
		TournamentExternalID: item.TournamentExternalID,
		CreatedAt:            item.CreatedAt,
		UpdatedAt:            item.UpdatedAt,
	}
}

func (m seasonTableModel) toDomain() season.Season {
	return season.Season{
		ID:                   m.ID,
		ExternalID:           m.ExternalID,
		Name:                 m.Name,
		Year:                 m.Year,
		TournamentExternalID: m.TournamentExternalID,
		CreatedAt:            m.CreatedAt,
		UpdatedAt:            m.UpdatedAt,
	}
}

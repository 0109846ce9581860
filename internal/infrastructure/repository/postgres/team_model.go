package postgres

import (
	"time"

	"github.com/matchpulse/sofasync/internal/domain/team"
)

type teamTableModel struct {
	ID         string    `db:"id"`
	ExternalID int64     `db:"external_id"`
	Name       string    `db:"name"`
	ShortCode  string    `db:"short_code"`
	Country    string    `db:"country"`
	Ranking    int       `db:"ranking"`
	Slug       string    `db:"slug"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}

func teamToModel(item team.Team) teamTableModel {
	return teamTableModel{
		ID:         item.ID,
		ExternalID: item.ExternalID,
		Name:       item.Name,
		ShortCode:  item.ShortCode,
		Country:    item.Country,
		Ranking:    item.Ranking,
		Slug:       item.Slug,
		CreatedAt:  item.CreatedAt,
		UpdatedAt:  item.UpdatedAt,
	}
}

func (m teamTableModel) toDomain() team.Team {
	return team.Team{
		ID:         m.ID,
		ExternalID: m.ExternalID,
		Name:       m.Name,
		ShortCode:  m.ShortCode,
		Country:    m.Country,
		Ranking:    m.Ranking,
		Slug:       m.Slug,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

package postgres

import (
	"time"

	"github.com/matchpulse/sofasync/internal/domain/tournament"
)

type tournamentTableModel struct {
	ID                 string     `db:"id"`
	ExternalID         int64      `db:"external_id"`
	Name               string     `db:"name"`
	Slug               string     `db:"slug"`
	CategoryExternalID int64      `db:"category_external_id"`
	HasRounds          bool       `db:"has_rounds"`
	HasGroups          bool       `db:"has_groups"`
	HasStandingsGroups bool       `db:"has_standings_groups"`
	HasPlayoffSeries   bool       `db:"has_playoff_series"`
	StartAt            *time.Time `db:"start_at"`
	EndAt              *time.Time `db:"end_at"`
	CreatedAt          time.Time  `db:"created_at"`
	UpdatedAt          time.Time  `db:"updated_at"`
}

func tournamentToModel(item tournament.Tournament) tournamentTableModel {
	return tournamentTableModel{
		ID:                 item.ID,
		ExternalID:         item.ExternalID,
		Name:               item.Name,
		Slug:               item.Slug,
		CategoryExternalID: item.CategoryExternalID,
		HasRounds:          item.HasRounds,
		HasGroups:          item.HasGroups,
		HasStandingsGroups: item.HasStandingsGroups,
		HasPlayoffSeries:   item.HasPlayoffSeries,
		StartAt:            item.StartAt,
		EndAt:              item.EndAt,
		CreatedAt:          item.CreatedAt,
		UpdatedAt:          item.UpdatedAt,
	}
}

func (m tournamentTableModel) toDomain() tournament.Tournament {
	return tournament.Tournament{
		ID:                 m.ID,
		ExternalID:         m.ExternalID,
		Name:               m.Name,
		Slug:               m.Slug,
		CategoryExternalID: m.CategoryExternalID,
		HasRounds:          m.HasRounds,
		HasGroups:          m.HasGroups,
		HasStandingsGroups: m.HasStandingsGroups,
		HasPlayoffSeries:   m.HasPlayoffSeries,
		StartAt:            m.StartAt,
		EndAt:              m.EndAt,
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}
}

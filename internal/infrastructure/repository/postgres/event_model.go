package postgres

import (
	"time"

	"github.com/matchpulse/sofasync/internal/domain/event"
)

type eventTableModel struct {
	ID                   string     `db:"id"`
	ExternalID           int64      `db:"external_id"`
	Slug                 string     `db:"slug"`
	DetailID             int64      `db:"detail_id"`
	StatusCode           int        `db:"status_code"`
	StatusDescription    string     `db:"status_description"`
	StatusType           string     `db:"status_type"`
	HomeTeamExternalID   int64      `db:"home_team_external_id"`
	AwayTeamExternalID   int64      `db:"away_team_external_id"`
	HomeScoreCurrent     int        `db:"home_score_current"`
	HomeScorePeriod1     int        `db:"home_score_period1"`
	HomeScorePeriod2     int        `db:"home_score_period2"`
	HomeScoreNormalTime  int        `db:"home_score_normal_time"`
	HomeScoreExtraTime   int        `db:"home_score_extra_time"`
	HomeScorePenalties   int        `db:"home_score_penalties"`
	AwayScoreCurrent     int        `db:"away_score_current"`
	AwayScorePeriod1     int        `db:"away_score_period1"`
	AwayScorePeriod2     int        `db:"away_score_period2"`
	AwayScoreNormalTime  int        `db:"away_score_normal_time"`
	AwayScoreExtraTime   int        `db:"away_score_extra_time"`
	AwayScorePenalties   int        `db:"away_score_penalties"`
	WinnerCode           int        `db:"winner_code"`
	Round                int        `db:"round"`
	HasXG                bool       `db:"has_xg"`
	HasPlayerStatistics  bool       `db:"has_player_statistics"`
	HasPlayerHeatmap     bool       `db:"has_player_heatmap"`
	StartAt              time.Time  `db:"start_at"`
	EndAt                *time.Time `db:"end_at"`
	GroupExternalID      int64      `db:"group_external_id"`
	TournamentExternalID int64      `db:"tournament_external_id"`
	CreatedAt            time.Time  `db:"created_at"`
	UpdatedAt            time.Time  `db:"updated_at"`
}

func eventToModel(item event.Event) eventTableModel {
	return eventTableModel{
		ID:                   item.ID,
		ExternalID:           item.ExternalID,
		Slug:                 item.Slug,
		DetailID:             item.DetailID,
		StatusCode:           item.StatusCode,
		StatusDescription:    item.StatusDescription,
		StatusType:           item.StatusType,
		HomeTeamExternalID:   item.HomeTeamExternalID,
		AwayTeamExternalID:   item.AwayTeamExternalID,
		HomeScoreCurrent:     item.HomeScore.Current,
		HomeScorePeriod1:     item.HomeScore.Period1,
		HomeScorePeriod2:     item.HomeScore.Period2,
		HomeScoreNormalTime:  item.HomeScore.NormalTime,
		HomeScoreExtraTime:   item.HomeScore.ExtraTime,
		HomeScorePenalties:   item.HomeScore.Penalties,
		AwayScoreCurrent:     item.AwayScore.Current,
		AwayScorePeriod1:     item.AwayScore.Period1,
		AwayScorePeriod2:     item.AwayScore.Period2,
		AwayScoreNormalTime:  item.AwayScore.NormalTime,
		AwayScoreExtraTime:   item.AwayScore.ExtraTime,
		AwayScorePenalties:   item.AwayScore.Penalties,
		WinnerCode:           item.WinnerCode,
		Round:                item.Round,
		HasXG:                item.HasXG,
		HasPlayerStatistics:  item.HasPlayerStatistics,
		HasPlayerHeatmap:     item.HasPlayerHeatmap,
		StartAt:              item.StartAt,
		EndAt:                item.EndAt,
		GroupExternalID:      item.GroupExternalID,
		TournamentExternalID: item.TournamentExternalID,
		CreatedAt:            item.CreatedAt,
		UpdatedAt:            item.UpdatedAt,
	}
}

func (m eventTableModel) toDomain() event.Event {
	return event.Event{
		ID:                 m.ID,
		ExternalID:         m.ExternalID,
		Slug:               m.Slug,
		DetailID:           m.DetailID,
		StatusCode:         m.StatusCode,
		StatusDescription:  m.StatusDescription,
		StatusType:         m.StatusType,
		HomeTeamExternalID: m.HomeTeamExternalID,
		AwayTeamExternalID: m.AwayTeamExternalID,
		HomeScore: event.Score{
			Current:    m.HomeScoreCurrent,
			Period1:    m.HomeScorePeriod1,
			Period2:    m.HomeScorePeriod2,
			NormalTime: m.HomeScoreNormalTime,
			ExtraTime:  m.HomeScoreExtraTime,
			Penalties:  m.HomeScorePenalties,
		},
		AwayScore: event.Score{
			Current:    m.AwayScoreCurrent,
			Period1:    m.AwayScorePeriod1,
			Period2:    m.AwayScorePeriod2,
			NormalTime: m.AwayScoreNormalTime,
			ExtraTime:  m.AwayScoreExtraTime,
			Penalties:  m.AwayScorePenalties,
		},
		WinnerCode:           m.WinnerCode,
		Round:                m.Round,
		HasXG:                m.HasXG,
		HasPlayerStatistics:  m.HasPlayerStatistics,
		HasPlayerHeatmap:     m.HasPlayerHeatmap,
		StartAt:              m.StartAt,
		EndAt:                m.EndAt,
		GroupExternalID:      m.GroupExternalID,
		TournamentExternalID: m.TournamentExternalID,
		CreatedAt:            m.CreatedAt,
		UpdatedAt:            m.UpdatedAt,
	}
}

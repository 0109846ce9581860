package sofascore

import (
	"fmt"
	"strings"
	"time"

	"github.com/matchpulse/sofasync/internal/usecase"
)

func mapTournamentPayload(envelope tournamentEnvelope) (usecase.ExternalTournament, error) {
	item := envelope.UniqueTournament
	if item == nil {
		return usecase.ExternalTournament{}, fmt.Errorf("%w: uniqueTournament key is missing", usecase.ErrSchema)
	}
	if item.ID <= 0 {
		return usecase.ExternalTournament{}, fmt.Errorf("%w: uniqueTournament.id is missing", usecase.ErrSchema)
	}
	if item.Category == nil {
		return usecase.ExternalTournament{}, fmt.Errorf("%w: uniqueTournament.category is missing", usecase.ErrSchema)
	}
	if item.Category.ID <= 0 {
		return usecase.ExternalTournament{}, fmt.Errorf("%w: uniqueTournament.category.id is missing", usecase.ErrSchema)
	}

	return usecase.ExternalTournament{
		ExternalID: item.ID,
		Name:       strings.TrimSpace(item.Name),
		Slug:       strings.TrimSpace(item.Slug),
		Category: usecase.ExternalCategory{
			ExternalID: item.Category.ID,
			Name:       strings.TrimSpace(item.Category.Name),
			Slug:       strings.TrimSpace(item.Category.Slug),
		},
		HasRounds:          item.HasRounds,
		HasGroups:          item.HasGroups,
		HasStandingsGroups: item.HasStandingsGroups,
		HasPlayoffSeries:   item.HasPlayoffSeries,
		StartAt:            epochToTime(item.StartDateTimestamp),
		EndAt:              epochToTime(item.EndDateTimestamp),
	}, nil
}

func mapSeasonPayloads(envelope seasonsEnvelope) ([]usecase.ExternalSeason, error) {
	out := make([]usecase.ExternalSeason, 0, len(envelope.Seasons))
	for _, item := range envelope.Seasons {
		if item.ID <= 0 {
			return nil, fmt.Errorf("%w: seasons[].id is missing", usecase.ErrSchema)
		}
		out = append(out, usecase.ExternalSeason{
			ExternalID: item.ID,
			Name:       strings.TrimSpace(item.Name),
			Year:       strings.TrimSpace(item.Year),
		})
	}
	return out, nil
}

func mapGroupPayloads(envelope groupsEnvelope) ([]usecase.ExternalGroup, error) {
	out := make([]usecase.ExternalGroup, 0, len(envelope.Groups))
	for _, item := range envelope.Groups {
		if item.TournamentID <= 0 {
			return nil, fmt.Errorf("%w: groups[].tournamentId is missing", usecase.ErrSchema)
		}
		out = append(out, usecase.ExternalGroup{
			ExternalID: item.TournamentID,
			Name:       strings.TrimSpace(item.GroupName),
		})
	}
	return out, nil
}

func mapEventPayloads(envelope eventsEnvelope) ([]usecase.ExternalEvent, error) {
	out := make([]usecase.ExternalEvent, 0, len(envelope.Events))
	for _, item := range envelope.Events {
		if item.ID <= 0 {
			return nil, fmt.Errorf("%w: events[].id is missing", usecase.ErrSchema)
		}
		if item.HomeTeam == nil || item.HomeTeam.ID <= 0 {
			return nil, fmt.Errorf("%w: events[].homeTeam is missing for event %d", usecase.ErrSchema, item.ID)
		}
		if item.AwayTeam == nil || item.AwayTeam.ID <= 0 {
			return nil, fmt.Errorf("%w: events[].awayTeam is missing for event %d", usecase.ErrSchema, item.ID)
		}

		row := usecase.ExternalEvent{
			ExternalID:          item.ID,
			Slug:                strings.TrimSpace(item.Slug),
			DetailID:            item.DetailID,
			StatusCode:          item.Status.Code,
			StatusDescription:   strings.TrimSpace(item.Status.Description),
			StatusType:          strings.TrimSpace(item.Status.Type),
			HomeTeam:            mapTeamPayload(*item.HomeTeam),
			AwayTeam:            mapTeamPayload(*item.AwayTeam),
			HomeScore:           mapScorePayload(item.HomeScore),
			AwayScore:           mapScorePayload(item.AwayScore),
			WinnerCode:          item.WinnerCode,
			Round:               item.RoundInfo.Round,
			HasXG:               item.HasXg,
			HasPlayerStatistics: item.HasEventPlayerStatistics,
			HasPlayerHeatmap:    item.HasEventPlayerHeatMap,
		}
		if start := epochToTime(item.StartTimestamp); start != nil {
			row.StartAt = *start
		}
		row.EndAt = epochToTime(item.EndTimestamp)
		out = append(out, row)
	}
	return out, nil
}

func mapTeamPayload(item teamPayload) usecase.ExternalTeam {
	country := ""
	if item.Country != nil {
		country = strings.TrimSpace(item.Country.Name)
	}
	return usecase.ExternalTeam{
		ExternalID: item.ID,
		Name:       strings.TrimSpace(item.Name),
		ShortCode:  strings.TrimSpace(item.NameCode),
		Country:    country,
		Ranking:    item.Ranking,
		Slug:       strings.TrimSpace(item.Slug),
	}
}

func mapScorePayload(item scorePayload) usecase.ExternalScore {
	return usecase.ExternalScore{
		Current:    int(item.Current),
		Period1:    int(item.Period1),
		Period2:    int(item.Period2),
		NormalTime: int(item.NormalTime),
		ExtraTime:  int(item.ExtraTime),
		Penalties:  int(item.Penalties),
	}
}

// epochToTime converts epoch seconds to UTC; zero and negative values
// mean the source omitted the field.
func epochToTime(epoch int64) *time.Time {
	if epoch <= 0 {
		return nil
	}
	t := time.Unix(epoch, 0).UTC()
	return &t
}

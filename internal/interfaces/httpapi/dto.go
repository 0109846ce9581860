package httpapi

import (
	"github.com/matchpulse/sofasync/internal/domain/category"
	"github.com/matchpulse/sofasync/internal/domain/event"
	"github.com/matchpulse/sofasync/internal/domain/group"
	"github.com/matchpulse/sofasync/internal/usecase"
)

func newCategoryDTO(row category.Category) categoryDTO {
	return categoryDTO{
		ExternalID: row.ExternalID,
		Name:       row.Name,
		Slug:       row.Slug,
	}
}

func newTournamentDetailDTO(detail usecase.TournamentDetail) tournamentDetailDTO {
	seasons := make([]seasonDTO, 0, len(detail.Seasons))
	for _, row := range detail.Seasons {
		seasons = append(seasons, seasonDTO{
			ExternalID: row.ExternalID,
			Name:       row.Name,
			Year:       row.Year,
		})
	}

	return tournamentDetailDTO{
		ExternalID:         detail.Tournament.ExternalID,
		Name:               detail.Tournament.Name,
		Slug:               detail.Tournament.Slug,
		CategoryExternalID: detail.Tournament.CategoryExternalID,
		HasGroups:          detail.Tournament.HasGroups,
		StartAt:            detail.Tournament.StartAt,
		EndAt:              detail.Tournament.EndAt,
		Seasons:            seasons,
	}
}

func newGroupDTO(row group.Group) groupDTO {
	return groupDTO{
		ExternalID:       row.ExternalID,
		Name:             row.Name,
		SeasonExternalID: row.SeasonExternalID,
	}
}

func newEventDTO(row event.Event) eventDTO {
	return eventDTO{
		ExternalID:           row.ExternalID,
		Slug:                 row.Slug,
		StatusCode:           row.StatusCode,
		StatusType:           row.StatusType,
		HomeTeamExternalID:   row.HomeTeamExternalID,
		AwayTeamExternalID:   row.AwayTeamExternalID,
		HomeScore:            newScoreDTO(row.HomeScore),
		AwayScore:            newScoreDTO(row.AwayScore),
		WinnerCode:           row.WinnerCode,
		Round:                row.Round,
		GroupExternalID:      row.GroupExternalID,
		TournamentExternalID: row.TournamentExternalID,
		StartAt:              row.StartAt,
		EndAt:                row.EndAt,
	}
}

func newScoreDTO(score event.Score) scoreDTO {
	return scoreDTO{
		Current:    score.Current,
		Period1:    score.Period1,
		Period2:    score.Period2,
		NormalTime: score.NormalTime,
		ExtraTime:  score.ExtraTime,
		Penalties:  score.Penalties,
	}
}

func newRunSummaryDTO(summary usecase.RunSummary) runSummaryDTO {
	created := make(map[string]int, len(summary.Created))
	for kind, count := range summary.Created {
		created[string(kind)] = count
	}
	found := make(map[string]int, len(summary.Found))
	for kind, count := range summary.Found {
		found[string(kind)] = count
	}

	failed := make([]failedBranchDTO, 0, len(summary.FailedBranches))
	for _, branch := range summary.FailedBranches {
		failed = append(failed, failedBranchDTO{
			BranchKind:       string(branch.BranchKind),
			ParentExternalID: branch.ParentExternalID,
			Error:            branch.Error,
		})
	}

	return runSummaryDTO{
		TournamentExternalID: summary.TournamentExternalID,
		Created:              created,
		Found:                found,
		FailedBranches:       failed,
		StartedAt:            summary.StartedAt,
		FinishedAt:           summary.FinishedAt,
	}
}

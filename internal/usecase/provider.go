package usecase

import (
	"context"
	"time"

	"github.com/matchpulse/sofasync/internal/domain/rawpayload"
)

// TournamentDataProvider is the upstream read surface the ingestion walker
// depends on. Each fetch returns the normalized rows plus the raw response
// payload for archiving.
type TournamentDataProvider interface {
	FetchTournament(ctx context.Context, tournamentID int64) (ExternalTournament, rawpayload.Payload, error)
	FetchSeasons(ctx context.Context, tournamentID int64) ([]ExternalSeason, rawpayload.Payload, error)
	FetchGroups(ctx context.Context, tournamentID, seasonID int64) ([]ExternalGroup, rawpayload.Payload, error)
	FetchEvents(ctx context.Context, groupExternalID, seasonID int64) ([]ExternalEvent, rawpayload.Payload, error)
}

type ExternalCategory struct {
	ExternalID int64
	Name       string
	Slug       string
}

type ExternalTournament struct {
	ExternalID         int64
	Name               string
	Slug               string
	Category           ExternalCategory
	HasRounds          bool
	HasGroups          bool
	HasStandingsGroups bool
	HasPlayoffSeries   bool
	StartAt            *time.Time
	EndAt              *time.Time
}

type ExternalSeason struct {
	ExternalID int64
	Name       string
	Year       string
}

type ExternalGroup struct {
	ExternalID int64
	Name       string
}

type ExternalTeam struct {
	ExternalID int64
	Name       string
	ShortCode  string
	Country    string
	Ranking    int
	Slug       string
}

type ExternalScore struct {
	Current    int
	Period1    int
	Period2    int
	NormalTime int
	ExtraTime  int
	Penalties  int
}

type ExternalEvent struct {
	ExternalID          int64
	Slug                string
	DetailID            int64
	StatusCode          int
	StatusDescription   string
	StatusType          string
	HomeTeam            ExternalTeam
	AwayTeam            ExternalTeam
	HomeScore           ExternalScore
	AwayScore           ExternalScore
	WinnerCode          int
	Round               int
	HasXG               bool
	HasPlayerStatistics bool
	HasPlayerHeatmap    bool
	StartAt             time.Time
	EndAt               *time.Time
}

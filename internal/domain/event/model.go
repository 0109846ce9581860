package event

import (
	"fmt"
	"time"
)

// Score is one side's score breakdown for an event. Components the
// upstream did not send stay zero.
type Score struct {
	Current    int
	Period1    int
	Period2    int
	NormalTime int
	ExtraTime  int
	Penalties  int
}

// Event is one match inside a group. It references its group, tournament
// and both teams by external id; the ingestion pipeline guarantees all
// four exist before the event is created.
type Event struct {
	ID                   string
	ExternalID           int64
	Slug                 string
	DetailID             int64
	StatusCode           int
	StatusDescription    string
	StatusType           string
	HomeTeamExternalID   int64
	AwayTeamExternalID   int64
	HomeScore            Score
	AwayScore            Score
	WinnerCode           int
	Round                int
	HasXG                bool
	HasPlayerStatistics  bool
	HasPlayerHeatmap     bool
	StartAt              time.Time
	EndAt                *time.Time
	GroupExternalID      int64
	TournamentExternalID int64
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

func (e Event) Validate() error {
	if e.ExternalID <= 0 {
		return fmt.Errorf("event external id must be greater than zero")
	}
	if e.HomeTeamExternalID <= 0 || e.AwayTeamExternalID <= 0 {
		return fmt.Errorf("event home and away team external ids are required")
	}
	if e.GroupExternalID <= 0 {
		return fmt.Errorf("event group external id is required")
	}
	if e.TournamentExternalID <= 0 {
		return fmt.Errorf("event tournament external id is required")
	}

	return nil
}

package sofascore

import (
	"fmt"

	sonic "github.com/bytedance/sonic"
)

// flexInt decodes an upstream numeric field that arrives either as a
// plain number or as a single-element array wrapping the number.
type flexInt int

func (v *flexInt) UnmarshalJSON(data []byte) error {
	var scalar int
	if err := sonic.Unmarshal(data, &scalar); err == nil {
		*v = flexInt(scalar)
		return nil
	}

	var list []int
	if err := sonic.Unmarshal(data, &list); err != nil {
		return fmt.Errorf("value %s is neither number nor number array", string(data))
	}
	if len(list) == 0 {
		*v = 0
		return nil
	}
	*v = flexInt(list[0])
	return nil
}

type tournamentEnvelope struct {
	UniqueTournament *tournamentPayload `json:"uniqueTournament"`
}

type tournamentPayload struct {
	ID                 int64            `json:"id"`
	Name               string           `json:"name"`
	Slug               string           `json:"slug"`
	Category           *categoryPayload `json:"category"`
	HasRounds          bool             `json:"hasRounds"`
	HasGroups          bool             `json:"hasGroups"`
	HasStandingsGroups bool             `json:"hasStandingsGroups"`
	HasPlayoffSeries   bool             `json:"hasPlayoffSeries"`
	StartDateTimestamp int64            `json:"startDateTimestamp"`
	EndDateTimestamp   int64            `json:"endDateTimestamp"`
}

type categoryPayload struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type seasonsEnvelope struct {
	Seasons []seasonPayload `json:"seasons"`
}

type seasonPayload struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Year string `json:"year"`
}

type groupsEnvelope struct {
	Groups []groupPayload `json:"groups"`
}

// Group rows expose the per-group tournament id; that id is the path
// segment used to list the group's events.
type groupPayload struct {
	TournamentID int64  `json:"tournamentId"`
	GroupName    string `json:"groupName"`
}

type eventsEnvelope struct {
	Events []eventPayload `json:"events"`
}

type eventPayload struct {
	ID                       int64         `json:"id"`
	Slug                     string        `json:"slug"`
	DetailID                 int64         `json:"detailId"`
	Status                   statusPayload `json:"status"`
	WinnerCode               int           `json:"winnerCode"`
	RoundInfo                roundPayload  `json:"roundInfo"`
	HomeTeam                 *teamPayload  `json:"homeTeam"`
	AwayTeam                 *teamPayload  `json:"awayTeam"`
	HomeScore                scorePayload  `json:"homeScore"`
	AwayScore                scorePayload  `json:"awayScore"`
	HasXg                    bool          `json:"hasXg"`
	HasEventPlayerStatistics bool          `json:"hasEventPlayerStatistics"`
	HasEventPlayerHeatMap    bool          `json:"hasEventPlayerHeatMap"`
	StartTimestamp           int64         `json:"startTimestamp"`
	EndTimestamp             int64         `json:"endTimestamp"`
}

type statusPayload struct {
	Code        int    `json:"code"`
	Description string `json:"description"`
	Type        string `json:"type"`
}

type roundPayload struct {
	Round int `json:"round"`
}

type teamPayload struct {
	ID       int64           `json:"id"`
	Name     string          `json:"name"`
	Slug     string          `json:"slug"`
	NameCode string          `json:"nameCode"`
	Ranking  int             `json:"ranking"`
	Country  *countryPayload `json:"country"`
}

type countryPayload struct {
	Name string `json:"name"`
}

type scorePayload struct {
	Current    flexInt `json:"current"`
	Period1    flexInt `json:"period1"`
	Period2    flexInt `json:"period2"`
	NormalTime flexInt `json:"normaltime"`
	ExtraTime  flexInt `json:"extratime"`
	Penalties  flexInt `json:"penalties"`
}

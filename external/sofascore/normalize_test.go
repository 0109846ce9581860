package sofascore

import (
	"errors"
	"testing"

	sonic "github.com/bytedance/sonic"

	"github.com/matchpulse/sofasync/internal/usecase"
)

func TestMapTournamentPayload(t *testing.T) {
	t.Parallel()

	raw := []byte(`{
		"uniqueTournament": {
			"id": 7,
			"name": "UEFA Champions League",
			"slug": "uefa-champions-league",
			"category": {"id": 3, "name": "Europe", "slug": "europe"},
			"hasRounds": true,
			"hasGroups": true,
			"startDateTimestamp": 1725321600,
			"endDateTimestamp": 1748131200
		}
	}`)

	var envelope tournamentEnvelope
	if err := sonic.Unmarshal(raw, &envelope); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	out, err := mapTournamentPayload(envelope)
	if err != nil {
		t.Fatalf("map tournament: %v", err)
	}
	if out.ExternalID != 7 {
		t.Fatalf("expected external_id=7, got=%d", out.ExternalID)
	}
	if out.Category.ExternalID != 3 || out.Category.Name != "Europe" {
		t.Fatalf("unexpected category: %+v", out.Category)
	}
	if !out.HasRounds || !out.HasGroups || out.HasPlayoffSeries {
		t.Fatalf("unexpected flags: %+v", out)
	}
	if out.StartAt == nil || out.StartAt.Unix() != 1725321600 {
		t.Fatalf("unexpected start: %v", out.StartAt)
	}
}

func TestMapTournamentPayload_MissingEnvelopeKey(t *testing.T) {
	t.Parallel()

	_, err := mapTournamentPayload(tournamentEnvelope{})
	if !errors.Is(err, usecase.ErrSchema) {
		t.Fatalf("expected schema error, got=%v", err)
	}
}

func TestMapTournamentPayload_MissingCategory(t *testing.T) {
	t.Parallel()

	envelope := tournamentEnvelope{UniqueTournament: &tournamentPayload{ID: 7, Name: "x"}}
	_, err := mapTournamentPayload(envelope)
	if !errors.Is(err, usecase.ErrSchema) {
		t.Fatalf("expected schema error, got=%v", err)
	}
}

func TestMapGroupPayloads_UsesTournamentIDAsExternalID(t *testing.T) {
	t.Parallel()

	out, err := mapGroupPayloads(groupsEnvelope{Groups: []groupPayload{
		{TournamentID: 200, GroupName: "Group A"},
		{TournamentID: 201, GroupName: "Group B"},
	}})
	if err != nil {
		t.Fatalf("map groups: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 groups, got=%d", len(out))
	}
	if out[0].ExternalID != 200 || out[0].Name != "Group A" {
		t.Fatalf("unexpected group: %+v", out[0])
	}
}

func TestMapEventPayloads_ScoreScalarAndSequence(t *testing.T) {
	t.Parallel()

	raw := []byte(`{
		"events": [{
			"id": 9000,
			"slug": "alpha-beta",
			"homeTeam": {"id": 1, "name": "Alpha", "nameCode": "ALP"},
			"awayTeam": {"id": 2, "name": "Beta", "nameCode": "BET"},
			"homeScore": {"current": [2], "period1": 1},
			"awayScore": {"current": 1},
			"status": {"code": 100, "description": "Ended", "type": "finished"},
			"startTimestamp": 1726400000,
			"endTimestamp": 1726407000
		}]
	}`)

	var envelope eventsEnvelope
	if err := sonic.Unmarshal(raw, &envelope); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	out, err := mapEventPayloads(envelope)
	if err != nil {
		t.Fatalf("map events: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("expected one event, got=%d", len(out))
	}

	row := out[0]
	if row.HomeScore.Current != 2 {
		t.Fatalf("expected home score 2 from sequence, got=%d", row.HomeScore.Current)
	}
	if row.AwayScore.Current != 1 {
		t.Fatalf("expected away score 1 from scalar, got=%d", row.AwayScore.Current)
	}
	if row.HomeScore.Period1 != 1 {
		t.Fatalf("expected period1=1, got=%d", row.HomeScore.Period1)
	}
	if row.HomeTeam.ExternalID != 1 || row.AwayTeam.ExternalID != 2 {
		t.Fatalf("unexpected teams: %+v %+v", row.HomeTeam, row.AwayTeam)
	}
	if row.StatusCode != 100 || row.StatusType != "finished" {
		t.Fatalf("unexpected status: %+v", row)
	}
	if row.StartAt.Unix() != 1726400000 {
		t.Fatalf("unexpected start: %v", row.StartAt)
	}
	if row.EndAt == nil || row.EndAt.Unix() != 1726407000 {
		t.Fatalf("unexpected end: %v", row.EndAt)
	}
}

func TestMapEventPayloads_MissingEndTimestampIsOpenEnded(t *testing.T) {
	t.Parallel()

	envelope := eventsEnvelope{Events: []eventPayload{{
		ID:             9001,
		HomeTeam:       &teamPayload{ID: 1, Name: "Alpha"},
		AwayTeam:       &teamPayload{ID: 2, Name: "Beta"},
		StartTimestamp: 1726400000,
	}}}

	out, err := mapEventPayloads(envelope)
	if err != nil {
		t.Fatalf("map events: %v", err)
	}
	if out[0].EndAt != nil {
		t.Fatalf("expected nil end for open-ended event, got=%v", out[0].EndAt)
	}
}

func TestMapEventPayloads_MissingTeamIsSchemaError(t *testing.T) {
	t.Parallel()

	envelope := eventsEnvelope{Events: []eventPayload{{
		ID:       9002,
		HomeTeam: &teamPayload{ID: 1, Name: "Alpha"},
	}}}

	_, err := mapEventPayloads(envelope)
	if !errors.Is(err, usecase.ErrSchema) {
		t.Fatalf("expected schema error for missing away team, got=%v", err)
	}
}

func TestFlexIntUnmarshal(t *testing.T) {
	t.Parallel()

	var score scorePayload
	if err := sonic.Unmarshal([]byte(`{"current": [3], "period1": 2, "penalties": []}`), &score); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if score.Current != 3 {
		t.Fatalf("expected current=3, got=%d", score.Current)
	}
	if score.Period1 != 2 {
		t.Fatalf("expected period1=2, got=%d", score.Period1)
	}
	if score.Penalties != 0 {
		t.Fatalf("expected penalties=0 for empty sequence, got=%d", score.Penalties)
	}

	if err := sonic.Unmarshal([]byte(`{"current": "bad"}`), &score); err == nil {
		t.Fatalf("expected error for non-numeric score")
	}
}

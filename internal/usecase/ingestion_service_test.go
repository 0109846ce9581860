package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/matchpulse/sofasync/internal/domain/rawpayload"
	"github.com/matchpulse/sofasync/internal/domain/team"
	"github.com/matchpulse/sofasync/internal/infrastructure/repository/memory"
	"github.com/matchpulse/sofasync/internal/platform/logging"
)

type fakeProvider struct {
	mu         sync.Mutex
	tournament ExternalTournament
	seasons    []ExternalSeason
	groups     map[int64][]ExternalGroup
	events     map[int64][]ExternalEvent

	groupErrs map[int64][]error
	eventErrs map[int64][]error

	groupCalls map[int64]int
	eventCalls map[int64]int
}

func newFakeProvider() *fakeProvider {
	start := time.Date(2024, time.June, 14, 19, 0, 0, 0, time.UTC)
	return &fakeProvider{
		tournament: ExternalTournament{
			ExternalID: 7,
			Name:       "EURO 2024",
			Slug:       "euro-2024",
			Category:   ExternalCategory{ExternalID: 3, Name: "Europe", Slug: "europe"},
			HasGroups:  true,
			StartAt:    &start,
		},
		seasons: []ExternalSeason{{ExternalID: 100, Name: "2024", Year: "24"}},
		groups: map[int64][]ExternalGroup{
			100: {{ExternalID: 200, Name: "Group A"}},
		},
		events: map[int64][]ExternalEvent{
			200: {{
				ExternalID: 9000,
				Slug:       "germany-scotland",
				StatusCode: 100,
				StatusType: "finished",
				HomeTeam:   ExternalTeam{ExternalID: 1, Name: "Germany", ShortCode: "GER", Country: "Germany"},
				AwayTeam:   ExternalTeam{ExternalID: 2, Name: "Scotland", ShortCode: "SCO", Country: "Scotland"},
				HomeScore:  ExternalScore{Current: 2, Period1: 1, Period2: 1},
				AwayScore:  ExternalScore{Current: 1},
				WinnerCode: 1,
				Round:      1,
				StartAt:    start,
			}},
		},
		groupErrs:  make(map[int64][]error),
		eventErrs:  make(map[int64][]error),
		groupCalls: make(map[int64]int),
		eventCalls: make(map[int64]int),
	}
}

func (p *fakeProvider) payload(entityType, path string) rawpayload.Payload {
	return rawpayload.Payload{
		Source:      "sofascore",
		EntityType:  entityType,
		EntityKey:   "sofascore:" + path,
		RequestPath: path,
		PayloadJSON: "{}",
		PayloadHash: entityType + ":" + path,
	}
}

func (p *fakeProvider) FetchTournament(_ context.Context, tournamentID int64) (ExternalTournament, rawpayload.Payload, error) {
	if tournamentID != p.tournament.ExternalID {
		return ExternalTournament{}, rawpayload.Payload{}, fmt.Errorf("%w: unknown tournament %d", ErrTransport, tournamentID)
	}
	return p.tournament, p.payload("tournament", fmt.Sprintf("/unique-tournament/%d", tournamentID)), nil
}

func (p *fakeProvider) FetchSeasons(_ context.Context, tournamentID int64) ([]ExternalSeason, rawpayload.Payload, error) {
	return p.seasons, p.payload("seasons", fmt.Sprintf("/unique-tournament/%d/seasons", tournamentID)), nil
}

func (p *fakeProvider) FetchGroups(_ context.Context, tournamentID, seasonID int64) ([]ExternalGroup, rawpayload.Payload, error) {
	p.mu.Lock()
	p.groupCalls[seasonID]++
	var err error
	if pending := p.groupErrs[seasonID]; len(pending) > 0 {
		err = pending[0]
		p.groupErrs[seasonID] = pending[1:]
	}
	p.mu.Unlock()

	if err != nil {
		return nil, rawpayload.Payload{}, err
	}
	path := fmt.Sprintf("/unique-tournament/%d/season/%d/groups", tournamentID, seasonID)
	return p.groups[seasonID], p.payload("groups", path), nil
}

func (p *fakeProvider) FetchEvents(_ context.Context, groupExternalID, seasonID int64) ([]ExternalEvent, rawpayload.Payload, error) {
	p.mu.Lock()
	p.eventCalls[groupExternalID]++
	var err error
	if pending := p.eventErrs[groupExternalID]; len(pending) > 0 {
		err = pending[0]
		p.eventErrs[groupExternalID] = pending[1:]
	}
	p.mu.Unlock()

	if err != nil {
		return nil, rawpayload.Payload{}, err
	}
	path := fmt.Sprintf("/tournament/%d/season/%d/events", groupExternalID, seasonID)
	return p.events[groupExternalID], p.payload("events", path), nil
}

func (p *fakeProvider) groupCallCount(seasonID int64) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.groupCalls[seasonID]
}

type ingestionHarness struct {
	provider    *fakeProvider
	categories  *memory.CategoryRepository
	tournaments *memory.TournamentRepository
	seasons     *memory.SeasonRepository
	groups      *memory.GroupRepository
	teams       *memory.TeamRepository
	events      *memory.EventRepository
	payloads    *memory.RawPayloadRepository
	service     *IngestionService
}

func newIngestionHarness() *ingestionHarness {
	h := &ingestionHarness{
		provider:    newFakeProvider(),
		categories:  memory.NewCategoryRepository(),
		tournaments: memory.NewTournamentRepository(),
		seasons:     memory.NewSeasonRepository(),
		groups:      memory.NewGroupRepository(),
		teams:       memory.NewTeamRepository(),
		events:      memory.NewEventRepository(),
		payloads:    memory.NewRawPayloadRepository(),
	}
	resolver := NewResolver(h.categories, h.tournaments, h.seasons, h.groups, h.teams, h.events, nil)
	h.service = NewIngestionService(h.provider, resolver, h.payloads, logging.NewNop())
	return h
}

func fastRunOptions() RunOptions {
	return RunOptions{
		MaxConcurrentBranches: 4,
		BranchMaxRetries:      2,
		RetryBaseDelay:        time.Millisecond,
		RetryMaxDelay:         5 * time.Millisecond,
	}
}

func TestIngestionService_RunIngestion_FullTree(t *testing.T) {
	t.Parallel()

	h := newIngestionHarness()
	summary, err := h.service.RunIngestion(context.Background(), 7, fastRunOptions())
	if err != nil {
		t.Fatalf("run ingestion: %v", err)
	}

	wantCreated := map[Kind]int{
		KindCategory:   1,
		KindTournament: 1,
		KindSeason:     1,
		KindGroup:      1,
		KindTeam:       2,
		KindEvent:      1,
	}
	for kind, want := range wantCreated {
		if got := summary.Created[kind]; got != want {
			t.Fatalf("created[%s]: got=%d want=%d", kind, got, want)
		}
	}
	if len(summary.FailedBranches) != 0 {
		t.Fatalf("unexpected failed branches: %+v", summary.FailedBranches)
	}
	if summary.TournamentExternalID != 7 {
		t.Fatalf("unexpected tournament id in summary: %d", summary.TournamentExternalID)
	}
	if summary.FinishedAt.Before(summary.StartedAt) {
		t.Fatalf("summary finished before it started")
	}

	row, found, err := h.events.GetByExternalID(context.Background(), 9000)
	if err != nil || !found {
		t.Fatalf("stored event not found: found=%v err=%v", found, err)
	}
	if row.HomeScore.Current != 2 || row.AwayScore.Current != 1 {
		t.Fatalf("unexpected scores: home=%d away=%d", row.HomeScore.Current, row.AwayScore.Current)
	}
	if row.GroupExternalID != 200 || row.TournamentExternalID != 7 {
		t.Fatalf("unexpected event references: group=%d tournament=%d", row.GroupExternalID, row.TournamentExternalID)
	}
	if row.HomeTeamExternalID != 1 || row.AwayTeamExternalID != 2 {
		t.Fatalf("unexpected team references: home=%d away=%d", row.HomeTeamExternalID, row.AwayTeamExternalID)
	}

	cat, found, err := h.categories.GetByExternalID(context.Background(), 3)
	if err != nil || !found {
		t.Fatalf("stored category not found: found=%v err=%v", found, err)
	}
	if cat.Name != "Europe" || cat.Slug != "europe" {
		t.Fatalf("unexpected category: %+v", cat)
	}

	if h.payloads.Count() != 4 {
		t.Fatalf("unexpected archived payload count: got=%d want=4", h.payloads.Count())
	}
}

func TestIngestionService_RunIngestion_SecondRunCreatesNothing(t *testing.T) {
	t.Parallel()

	h := newIngestionHarness()
	ctx := context.Background()

	first, err := h.service.RunIngestion(ctx, 7, fastRunOptions())
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	second, err := h.service.RunIngestion(ctx, 7, fastRunOptions())
	if err != nil {
		t.Fatalf("second run: %v", err)
	}

	for kind, count := range second.Created {
		if count != 0 {
			t.Fatalf("second run created %d %s records", count, kind)
		}
	}
	for kind, want := range first.Created {
		if got := second.Found[kind]; got != want {
			t.Fatalf("second run found[%s]: got=%d want=%d", kind, got, want)
		}
	}
}

func TestIngestionService_RunIngestion_SharedTeamCountedOnce(t *testing.T) {
	t.Parallel()

	h := newIngestionHarness()
	ctx := context.Background()
	start := time.Date(2024, time.June, 19, 19, 0, 0, 0, time.UTC)
	h.provider.events[200] = append(h.provider.events[200], ExternalEvent{
		ExternalID: 9001,
		Slug:       "germany-hungary",
		StatusCode: 100,
		StatusType: "finished",
		HomeTeam:   ExternalTeam{ExternalID: 1, Name: "Germany", ShortCode: "GER", Country: "Germany"},
		AwayTeam:   ExternalTeam{ExternalID: 3, Name: "Hungary", ShortCode: "HUN", Country: "Hungary"},
		HomeScore:  ExternalScore{Current: 2},
		AwayScore:  ExternalScore{},
		WinnerCode: 1,
		Round:      2,
		StartAt:    start,
	})

	first, err := h.service.RunIngestion(ctx, 7, fastRunOptions())
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	if got := first.Created[KindTeam]; got != 3 {
		t.Fatalf("first run created[%s]: got=%d want=3", KindTeam, got)
	}
	if got := first.Found[KindTeam]; got != 0 {
		t.Fatalf("first run found[%s]: got=%d want=0", KindTeam, got)
	}

	second, err := h.service.RunIngestion(ctx, 7, fastRunOptions())
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if got := second.Found[KindTeam]; got != 3 {
		t.Fatalf("second run found[%s]: got=%d want=3", KindTeam, got)
	}
	if got := second.Created[KindTeam]; got != 0 {
		t.Fatalf("second run created[%s]: got=%d want=0", KindTeam, got)
	}
}

func TestIngestionService_RunIngestion_NeverOverwritesExisting(t *testing.T) {
	t.Parallel()

	h := newIngestionHarness()
	ctx := context.Background()

	seeded := team.Team{
		ID:         "seeded-team",
		ExternalID: 1,
		Name:       "Deutschland",
		ShortCode:  "DEU",
		CreatedAt:  time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
	}
	if _, err := h.teams.Insert(ctx, seeded); err != nil {
		t.Fatalf("seed team: %v", err)
	}

	summary, err := h.service.RunIngestion(ctx, 7, fastRunOptions())
	if err != nil {
		t.Fatalf("run ingestion: %v", err)
	}

	if summary.Created[KindTeam] != 1 || summary.Found[KindTeam] != 1 {
		t.Fatalf("team tallies: created=%d found=%d", summary.Created[KindTeam], summary.Found[KindTeam])
	}

	row, found, err := h.teams.GetByExternalID(ctx, 1)
	if err != nil || !found {
		t.Fatalf("seeded team not found: found=%v err=%v", found, err)
	}
	if row.Name != "Deutschland" || row.ShortCode != "DEU" || row.ID != "seeded-team" {
		t.Fatalf("seeded team was overwritten: %+v", row)
	}
}

func TestIngestionService_RunIngestion_FailedSeasonDoesNotAbortSiblings(t *testing.T) {
	t.Parallel()

	h := newIngestionHarness()
	h.provider.seasons = []ExternalSeason{
		{ExternalID: 100, Name: "2024", Year: "24"},
		{ExternalID: 101, Name: "2020", Year: "20"},
	}
	// Season 101 keeps failing past the retry budget.
	h.provider.groupErrs[101] = []error{
		fmt.Errorf("%w: boom", ErrTransport),
		fmt.Errorf("%w: boom", ErrTransport),
		fmt.Errorf("%w: boom", ErrTransport),
	}

	summary, err := h.service.RunIngestion(context.Background(), 7, fastRunOptions())
	if err != nil {
		t.Fatalf("run ingestion: %v", err)
	}

	if len(summary.FailedBranches) != 1 {
		t.Fatalf("failed branches: got=%d want=1 (%+v)", len(summary.FailedBranches), summary.FailedBranches)
	}
	failed := summary.FailedBranches[0]
	if failed.BranchKind != KindGroup || failed.ParentExternalID != 101 {
		t.Fatalf("unexpected failed branch: %+v", failed)
	}
	if failed.Error == "" {
		t.Fatalf("failed branch carries no error message")
	}

	// Season 100's branch completed normally.
	if summary.Created[KindGroup] != 1 || summary.Created[KindEvent] != 1 {
		t.Fatalf("sibling branch incomplete: groups=%d events=%d", summary.Created[KindGroup], summary.Created[KindEvent])
	}
	if summary.Created[KindSeason] != 2 {
		t.Fatalf("seasons created: got=%d want=2", summary.Created[KindSeason])
	}
}

func TestIngestionService_RunIngestion_RetriesTransientFetch(t *testing.T) {
	t.Parallel()

	h := newIngestionHarness()
	h.provider.groupErrs[100] = []error{fmt.Errorf("%w: flaky", ErrTransport)}

	summary, err := h.service.RunIngestion(context.Background(), 7, fastRunOptions())
	if err != nil {
		t.Fatalf("run ingestion: %v", err)
	}

	if len(summary.FailedBranches) != 0 {
		t.Fatalf("unexpected failed branches: %+v", summary.FailedBranches)
	}
	if got := h.provider.groupCallCount(100); got != 2 {
		t.Fatalf("group fetch calls: got=%d want=2", got)
	}
	if summary.Created[KindEvent] != 1 {
		t.Fatalf("event not created after retry")
	}
}

func TestIngestionService_RunIngestion_SchemaErrorIsNotRetried(t *testing.T) {
	t.Parallel()

	h := newIngestionHarness()
	h.provider.groupErrs[100] = []error{fmt.Errorf("%w: missing field", ErrSchema)}

	summary, err := h.service.RunIngestion(context.Background(), 7, fastRunOptions())
	if err != nil {
		t.Fatalf("run ingestion: %v", err)
	}

	if got := h.provider.groupCallCount(100); got != 1 {
		t.Fatalf("group fetch calls: got=%d want=1", got)
	}
	if len(summary.FailedBranches) != 1 {
		t.Fatalf("failed branches: got=%d want=1", len(summary.FailedBranches))
	}
}

func TestIngestionService_RunIngestion_TrunkFailureIsFatal(t *testing.T) {
	t.Parallel()

	h := newIngestionHarness()
	summary, err := h.service.RunIngestion(context.Background(), 404, fastRunOptions())
	if err == nil {
		t.Fatalf("expected error for unknown tournament")
	}
	if !errors.Is(err, ErrTransport) {
		t.Fatalf("unexpected error class: %v", err)
	}
	if summary.TournamentExternalID != 404 {
		t.Fatalf("summary missing tournament id: %+v", summary)
	}
}

func TestIngestionService_RunIngestion_RejectsInvalidID(t *testing.T) {
	t.Parallel()

	h := newIngestionHarness()
	if _, err := h.service.RunIngestion(context.Background(), 0, RunOptions{}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid input error, got %v", err)
	}
}

func TestIngestionService_RunIngestion_CancellationKeepsPartialState(t *testing.T) {
	t.Parallel()

	h := newIngestionHarness()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	summary, err := h.service.RunIngestion(ctx, 7, fastRunOptions())
	if err == nil {
		t.Fatalf("expected cancellation error")
	}
	if summary.TournamentExternalID != 7 {
		t.Fatalf("summary missing tournament id: %+v", summary)
	}
}

type failingPayloadRepo struct{}

func (failingPayloadRepo) UpsertMany(context.Context, []rawpayload.Payload) error {
	return errors.New("archive unavailable")
}

func TestIngestionService_RunIngestion_ArchiveFailureDoesNotFailRun(t *testing.T) {
	t.Parallel()

	h := newIngestionHarness()
	resolver := NewResolver(h.categories, h.tournaments, h.seasons, h.groups, h.teams, h.events, nil)
	service := NewIngestionService(h.provider, resolver, failingPayloadRepo{}, logging.NewNop())

	summary, err := service.RunIngestion(context.Background(), 7, fastRunOptions())
	if err != nil {
		t.Fatalf("run ingestion: %v", err)
	}
	if summary.Created[KindEvent] != 1 {
		t.Fatalf("event not created: %+v", summary.Created)
	}
}

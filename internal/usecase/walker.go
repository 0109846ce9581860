package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/matchpulse/sofasync/internal/domain/group"
	"github.com/matchpulse/sofasync/internal/domain/rawpayload"
	"github.com/matchpulse/sofasync/internal/domain/season"
	"github.com/matchpulse/sofasync/internal/platform/logging"
)

// RunOptions tunes one ingestion run. Zero values fall back to defaults.
type RunOptions struct {
	MaxConcurrentBranches int
	RequestPacing         time.Duration
	BranchMaxRetries      int
	RetryBaseDelay        time.Duration
	RetryMaxDelay         time.Duration
}

func (o RunOptions) normalized() RunOptions {
	if o.MaxConcurrentBranches < 1 {
		o.MaxConcurrentBranches = 8
	}
	if o.RequestPacing < 0 {
		o.RequestPacing = 0
	}
	if o.BranchMaxRetries < 0 {
		o.BranchMaxRetries = 0
	}
	if o.RetryBaseDelay <= 0 {
		o.RetryBaseDelay = 200 * time.Millisecond
	}
	if o.RetryMaxDelay < o.RetryBaseDelay {
		o.RetryMaxDelay = o.RetryBaseDelay
	}
	return o
}

// FailedBranch records one fan-out branch that exhausted its retries.
type FailedBranch struct {
	BranchKind       Kind
	ParentExternalID int64
	Error            string
}

// RunSummary is the sole signal of an ingestion run's outcome. A run
// always produces one, even when every branch failed.
type RunSummary struct {
	TournamentExternalID int64
	Created              map[Kind]int
	Found                map[Kind]int
	FailedBranches       []FailedBranch
	StartedAt            time.Time
	FinishedAt           time.Time
}

func newRunSummary(tournamentID int64) RunSummary {
	return RunSummary{
		TournamentExternalID: tournamentID,
		Created:              make(map[Kind]int),
		Found:                make(map[Kind]int),
	}
}

type runTally struct {
	mu       sync.Mutex
	created  map[Kind]int
	found    map[Kind]int
	seen     map[Kind]map[int64]struct{}
	failed   []FailedBranch
	payloads []rawpayload.Payload
}

func newRunTally() *runTally {
	return &runTally{
		created: make(map[Kind]int),
		found:   make(map[Kind]int),
		seen:    make(map[Kind]map[int64]struct{}),
	}
}

// record counts each (kind, external id) once per run; later resolutions
// of the same entity, such as a team shared by two events, are not
// re-counted.
func (t *runTally) record(kind Kind, externalID int64, created bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	ids, ok := t.seen[kind]
	if !ok {
		ids = make(map[int64]struct{})
		t.seen[kind] = ids
	}
	if _, dup := ids[externalID]; dup {
		return
	}
	ids[externalID] = struct{}{}

	if created {
		t.created[kind]++
		return
	}
	t.found[kind]++
}

func (t *runTally) addPayload(item rawpayload.Payload) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.payloads = append(t.payloads, item)
}

func (t *runTally) addFailure(branch Kind, parentExternalID int64, err error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.failed = append(t.failed, FailedBranch{
		BranchKind:       branch,
		ParentExternalID: parentExternalID,
		Error:            err.Error(),
	})
}

// walker drives one tournament's traversal: tournament and category
// first, then seasons sequentially, then group branches per season and
// event branches per group concurrently. It holds no state shared across
// runs; callers construct one per invocation.
type walker struct {
	provider TournamentDataProvider
	resolver *Resolver
	logger   *logging.Logger
	opts     RunOptions
	tally    *runTally
}

func newWalker(provider TournamentDataProvider, resolver *Resolver, logger *logging.Logger, opts RunOptions) *walker {
	if logger == nil {
		logger = logging.Default()
	}
	return &walker{
		provider: provider,
		resolver: resolver,
		logger:   logger,
		opts:     opts.normalized(),
		tally:    newRunTally(),
	}
}

type groupBranch struct {
	group            group.Group
	seasonExternalID int64
}

func (w *walker) run(ctx context.Context, tournamentID int64) (RunSummary, []rawpayload.Payload, error) {
	summary := newRunSummary(tournamentID)
	summary.StartedAt = time.Now().UTC()

	seasons, err := w.resolveTrunk(ctx, tournamentID)
	if err == nil {
		var branches []groupBranch
		branches, err = w.fanOutGroups(ctx, tournamentID, seasons)
		if err == nil {
			err = w.fanOutEvents(ctx, tournamentID, branches)
		}
	}

	w.fold(&summary)
	summary.FinishedAt = time.Now().UTC()
	return summary, w.tally.payloads, err
}

// resolveTrunk covers the strictly sequential states: any error here is
// fatal to the whole run since every later step depends on it.
func (w *walker) resolveTrunk(ctx context.Context, tournamentID int64) ([]season.Season, error) {
	ext, payload, err := w.fetchTournament(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("fetch tournament external_id=%d: %w", tournamentID, err)
	}
	w.tally.addPayload(payload)

	created, err := w.resolveWithRetry(ctx, func(ctx context.Context) (bool, error) {
		_, created, err := w.resolver.ResolveCategory(ctx, ext.Category)
		return created, err
	})
	if err != nil {
		return nil, fmt.Errorf("resolve category external_id=%d: %w", ext.Category.ExternalID, err)
	}
	w.tally.record(KindCategory, ext.Category.ExternalID, created)

	created, err = w.resolveWithRetry(ctx, func(ctx context.Context) (bool, error) {
		_, created, err := w.resolver.ResolveTournament(ctx, ext)
		return created, err
	})
	if err != nil {
		return nil, fmt.Errorf("resolve tournament external_id=%d: %w", tournamentID, err)
	}
	w.tally.record(KindTournament, ext.ExternalID, created)

	externalSeasons, payload, err := w.fetchSeasons(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("fetch seasons tournament_external_id=%d: %w", tournamentID, err)
	}
	w.tally.addPayload(payload)

	out := make([]season.Season, 0, len(externalSeasons))
	for _, extSeason := range externalSeasons {
		var row season.Season
		created, err := w.resolveWithRetry(ctx, func(ctx context.Context) (bool, error) {
			var err error
			var created bool
			row, created, err = w.resolver.ResolveSeason(ctx, extSeason, tournamentID)
			return created, err
		})
		if err != nil {
			return nil, fmt.Errorf("resolve season external_id=%d: %w", extSeason.ExternalID, err)
		}
		w.tally.record(KindSeason, extSeason.ExternalID, created)
		out = append(out, row)
	}

	return out, nil
}

func (w *walker) fanOutGroups(ctx context.Context, tournamentID int64, seasons []season.Season) ([]groupBranch, error) {
	if len(seasons) == 0 {
		return nil, ctx.Err()
	}

	pool, err := ants.NewPool(w.opts.MaxConcurrentBranches)
	if err != nil {
		return nil, fmt.Errorf("create group worker pool: %w", err)
	}
	defer pool.Release()

	results := make(chan []groupBranch, len(seasons))
	var workers sync.WaitGroup

	for _, item := range seasons {
		if ctx.Err() != nil {
			break
		}
		item := item
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()
			results <- w.runGroupBranch(ctx, tournamentID, item)
		}); err != nil {
			workers.Done()
			return nil, fmt.Errorf("submit group branch to worker pool: %w", err)
		}
	}

	workers.Wait()
	close(results)

	out := make([]groupBranch, 0, len(seasons))
	for rows := range results {
		out = append(out, rows...)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].group.ExternalID < out[j].group.ExternalID
	})

	return out, ctx.Err()
}

// runGroupBranch is one season's independent branch: a failure here is
// recorded in the tally and never aborts sibling seasons. Groups already
// resolved before the failure are still returned so their events can run.
func (w *walker) runGroupBranch(ctx context.Context, tournamentID int64, item season.Season) []groupBranch {
	groups, payload, err := w.fetchGroups(ctx, tournamentID, item.ExternalID)
	if err != nil {
		w.failBranch(ctx, KindGroup, item.ExternalID, err)
		return nil
	}
	w.tally.addPayload(payload)

	out := make([]groupBranch, 0, len(groups))
	for _, extGroup := range groups {
		var row group.Group
		created, err := w.resolveWithRetry(ctx, func(ctx context.Context) (bool, error) {
			var err error
			var created bool
			row, created, err = w.resolver.ResolveGroup(ctx, extGroup, item.ExternalID)
			return created, err
		})
		if err != nil {
			w.failBranch(ctx, KindGroup, item.ExternalID, err)
			return out
		}
		w.tally.record(KindGroup, row.ExternalID, created)
		out = append(out, groupBranch{group: row, seasonExternalID: item.ExternalID})
	}

	return out
}

func (w *walker) fanOutEvents(ctx context.Context, tournamentID int64, branches []groupBranch) error {
	if len(branches) == 0 {
		return ctx.Err()
	}

	pool, err := ants.NewPool(w.opts.MaxConcurrentBranches)
	if err != nil {
		return fmt.Errorf("create event worker pool: %w", err)
	}
	defer pool.Release()

	var workers sync.WaitGroup
	for _, item := range branches {
		if ctx.Err() != nil {
			break
		}
		item := item
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()
			w.runEventBranch(ctx, tournamentID, item)
		}); err != nil {
			workers.Done()
			return fmt.Errorf("submit event branch to worker pool: %w", err)
		}
	}

	workers.Wait()
	return ctx.Err()
}

// runEventBranch is one group's independent branch. Both teams are
// resolved before the event that references them.
func (w *walker) runEventBranch(ctx context.Context, tournamentID int64, branch groupBranch) {
	groupID := branch.group.ExternalID

	events, payload, err := w.fetchEvents(ctx, groupID, branch.seasonExternalID)
	if err != nil {
		w.failBranch(ctx, KindEvent, groupID, err)
		return
	}
	w.tally.addPayload(payload)

	for _, extEvent := range events {
		created, err := w.resolveWithRetry(ctx, func(ctx context.Context) (bool, error) {
			_, created, err := w.resolver.ResolveTeam(ctx, extEvent.HomeTeam)
			return created, err
		})
		if err != nil {
			w.failBranch(ctx, KindEvent, groupID, err)
			return
		}
		w.tally.record(KindTeam, extEvent.HomeTeam.ExternalID, created)

		created, err = w.resolveWithRetry(ctx, func(ctx context.Context) (bool, error) {
			_, created, err := w.resolver.ResolveTeam(ctx, extEvent.AwayTeam)
			return created, err
		})
		if err != nil {
			w.failBranch(ctx, KindEvent, groupID, err)
			return
		}
		w.tally.record(KindTeam, extEvent.AwayTeam.ExternalID, created)

		created, err = w.resolveWithRetry(ctx, func(ctx context.Context) (bool, error) {
			_, created, err := w.resolver.ResolveEvent(ctx, extEvent, groupID, tournamentID)
			return created, err
		})
		if err != nil {
			w.failBranch(ctx, KindEvent, groupID, err)
			return
		}
		w.tally.record(KindEvent, extEvent.ExternalID, created)
	}
}

func (w *walker) failBranch(ctx context.Context, branch Kind, parentExternalID int64, err error) {
	w.tally.addFailure(branch, parentExternalID, err)
	w.logger.WarnContext(ctx, "ingestion branch failed",
		"branch_kind", string(branch),
		"parent_external_id", parentExternalID,
		"error", err,
	)
}

func (w *walker) fetchTournament(ctx context.Context, tournamentID int64) (ExternalTournament, rawpayload.Payload, error) {
	var out ExternalTournament
	var payload rawpayload.Payload
	err := w.retry(ctx, func(ctx context.Context) error {
		if err := w.pace(ctx); err != nil {
			return err
		}
		var err error
		out, payload, err = w.provider.FetchTournament(ctx, tournamentID)
		return err
	})
	return out, payload, err
}

func (w *walker) fetchSeasons(ctx context.Context, tournamentID int64) ([]ExternalSeason, rawpayload.Payload, error) {
	var out []ExternalSeason
	var payload rawpayload.Payload
	err := w.retry(ctx, func(ctx context.Context) error {
		if err := w.pace(ctx); err != nil {
			return err
		}
		var err error
		out, payload, err = w.provider.FetchSeasons(ctx, tournamentID)
		return err
	})
	return out, payload, err
}

func (w *walker) fetchGroups(ctx context.Context, tournamentID, seasonID int64) ([]ExternalGroup, rawpayload.Payload, error) {
	var out []ExternalGroup
	var payload rawpayload.Payload
	err := w.retry(ctx, func(ctx context.Context) error {
		if err := w.pace(ctx); err != nil {
			return err
		}
		var err error
		out, payload, err = w.provider.FetchGroups(ctx, tournamentID, seasonID)
		return err
	})
	return out, payload, err
}

func (w *walker) fetchEvents(ctx context.Context, groupExternalID, seasonID int64) ([]ExternalEvent, rawpayload.Payload, error) {
	var out []ExternalEvent
	var payload rawpayload.Payload
	err := w.retry(ctx, func(ctx context.Context) error {
		if err := w.pace(ctx); err != nil {
			return err
		}
		var err error
		out, payload, err = w.provider.FetchEvents(ctx, groupExternalID, seasonID)
		return err
	})
	return out, payload, err
}

func (w *walker) resolveWithRetry(ctx context.Context, op func(context.Context) (bool, error)) (bool, error) {
	var created bool
	err := w.retry(ctx, func(ctx context.Context) error {
		var err error
		created, err = op(ctx)
		return err
	})
	return created, err
}

func (w *walker) fold(summary *RunSummary) {
	w.tally.mu.Lock()
	defer w.tally.mu.Unlock()

	for kind, count := range w.tally.created {
		summary.Created[kind] = count
	}
	for kind, count := range w.tally.found {
		summary.Found[kind] = count
	}
	summary.FailedBranches = append(summary.FailedBranches, w.tally.failed...)
	sort.SliceStable(summary.FailedBranches, func(i, j int) bool {
		if summary.FailedBranches[i].BranchKind != summary.FailedBranches[j].BranchKind {
			return summary.FailedBranches[i].BranchKind < summary.FailedBranches[j].BranchKind
		}
		return summary.FailedBranches[i].ParentExternalID < summary.FailedBranches[j].ParentExternalID
	})
}

func (w *walker) pace(ctx context.Context) error {
	if w.opts.RequestPacing <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(w.opts.RequestPacing)
	select {
	case <-ctx.Done():
		timer.Stop()
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// retry re-runs op with bounded exponential backoff; only transport and
// storage failures are retried.
func (w *walker) retry(ctx context.Context, op func(context.Context) error) error {
	delay := w.opts.RetryBaseDelay
	for attempt := 0; ; attempt++ {
		err := op(ctx)
		if err == nil {
			return nil
		}
		if !IsRetryableIngestError(err) || attempt >= w.opts.BranchMaxRetries {
			return err
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
		delay *= 2
		if delay > w.opts.RetryMaxDelay {
			delay = w.opts.RetryMaxDelay
		}
	}
}

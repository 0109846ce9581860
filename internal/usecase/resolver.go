package usecase

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/matchpulse/sofasync/internal/domain/category"
	"github.com/matchpulse/sofasync/internal/domain/event"
	"github.com/matchpulse/sofasync/internal/domain/group"
	"github.com/matchpulse/sofasync/internal/domain/season"
	"github.com/matchpulse/sofasync/internal/domain/team"
	"github.com/matchpulse/sofasync/internal/domain/tournament"
	"github.com/matchpulse/sofasync/internal/platform/id"
)

// Kind names one entity family for dedup keys, counters and summaries.
type Kind string

const (
	KindCategory   Kind = "category"
	KindTournament Kind = "tournament"
	KindSeason     Kind = "season"
	KindGroup      Kind = "group"
	KindTeam       Kind = "team"
	KindEvent      Kind = "event"
)

// keyedMutex serializes work per string key. Held across the
// lookup+insert pair so two branches resolving the same external id
// cannot both insert.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{locks: make(map[string]*sync.Mutex)}
}

func (k *keyedMutex) lock(key string) func() {
	k.mu.Lock()
	m, ok := k.locks[key]
	if !ok {
		m = &sync.Mutex{}
		k.locks[key] = m
	}
	k.mu.Unlock()

	m.Lock()
	return m.Unlock
}

func resolveKey(kind Kind, externalID int64) string {
	return string(kind) + ":" + strconv.FormatInt(externalID, 10)
}

// Resolver is the get-or-create primitive for every entity kind. It
// returns the stored record untouched when one already exists; payload
// fields are only used when the record is first created.
type Resolver struct {
	categories  category.Repository
	tournaments tournament.Repository
	seasons     season.Repository
	groups      group.Repository
	teams       team.Repository
	events      event.Repository
	ids         id.Generator
	locks       *keyedMutex
	now         func() time.Time
}

func NewResolver(
	categories category.Repository,
	tournaments tournament.Repository,
	seasons season.Repository,
	groups group.Repository,
	teams team.Repository,
	events event.Repository,
	ids id.Generator,
) *Resolver {
	if ids == nil {
		ids = id.NewRandomGenerator()
	}

	return &Resolver{
		categories:  categories,
		tournaments: tournaments,
		seasons:     seasons,
		groups:      groups,
		teams:       teams,
		events:      events,
		ids:         ids,
		locks:       newKeyedMutex(),
		now:         time.Now,
	}
}

func (r *Resolver) ResolveCategory(ctx context.Context, ext ExternalCategory) (category.Category, bool, error) {
	unlock := r.locks.lock(resolveKey(KindCategory, ext.ExternalID))
	defer unlock()

	existing, found, err := r.categories.GetByExternalID(ctx, ext.ExternalID)
	if err != nil {
		return category.Category{}, false, fmt.Errorf("%w: lookup category external_id=%d: %v", ErrStorage, ext.ExternalID, err)
	}
	if found {
		return existing, false, nil
	}

	row := category.Category{
		ExternalID: ext.ExternalID,
		Name:       ext.Name,
		Slug:       ext.Slug,
	}
	if err := row.Validate(); err != nil {
		return category.Category{}, false, fmt.Errorf("%w: %v", ErrNormalization, err)
	}
	if err := r.stamp(&row.ID, &row.CreatedAt, &row.UpdatedAt); err != nil {
		return category.Category{}, false, err
	}

	inserted, err := r.categories.Insert(ctx, row)
	if err != nil {
		return category.Category{}, false, fmt.Errorf("%w: insert category external_id=%d: %v", ErrStorage, ext.ExternalID, err)
	}
	return inserted, true, nil
}

func (r *Resolver) ResolveTournament(ctx context.Context, ext ExternalTournament) (tournament.Tournament, bool, error) {
	unlock := r.locks.lock(resolveKey(KindTournament, ext.ExternalID))
	defer unlock()

	existing, found, err := r.tournaments.GetByExternalID(ctx, ext.ExternalID)
	if err != nil {
		return tournament.Tournament{}, false, fmt.Errorf("%w: lookup tournament external_id=%d: %v", ErrStorage, ext.ExternalID, err)
	}
	if found {
		return existing, false, nil
	}

	row := tournament.Tournament{
		ExternalID:         ext.ExternalID,
		Name:               ext.Name,
		Slug:               ext.Slug,
		CategoryExternalID: ext.Category.ExternalID,
		HasRounds:          ext.HasRounds,
		HasGroups:          ext.HasGroups,
		HasStandingsGroups: ext.HasStandingsGroups,
		HasPlayoffSeries:   ext.HasPlayoffSeries,
		StartAt:            cloneTimePtr(ext.StartAt),
		EndAt:              cloneTimePtr(ext.EndAt),
	}
	if err := row.Validate(); err != nil {
		return tournament.Tournament{}, false, fmt.Errorf("%w: %v", ErrNormalization, err)
	}
	if err := r.stamp(&row.ID, &row.CreatedAt, &row.UpdatedAt); err != nil {
		return tournament.Tournament{}, false, err
	}

	inserted, err := r.tournaments.Insert(ctx, row)
	if err != nil {
		return tournament.Tournament{}, false, fmt.Errorf("%w: insert tournament external_id=%d: %v", ErrStorage, ext.ExternalID, err)
	}
	return inserted, true, nil
}

func (r *Resolver) ResolveSeason(ctx context.Context, ext ExternalSeason, tournamentExternalID int64) (season.Season, bool, error) {
	unlock := r.locks.lock(resolveKey(KindSeason, ext.ExternalID))
	defer unlock()

	existing, found, err := r.seasons.GetByExternalID(ctx, ext.ExternalID)
	if err != nil {
		return season.Season{}, false, fmt.Errorf("%w: lookup season external_id=%d: %v", ErrStorage, ext.ExternalID, err)
	}
	if found {
		return existing, false, nil
	}

	row := season.Season{
		ExternalID:           ext.ExternalID,
		Name:                 ext.Name,
		Year:                 ext.Year,
		TournamentExternalID: tournamentExternalID,
	}
	if err := row.Validate(); err != nil {
		return season.Season{}, false, fmt.Errorf("%w: %v", ErrNormalization, err)
	}
	if err := r.stamp(&row.ID, &row.CreatedAt, &row.UpdatedAt); err != nil {
		return season.Season{}, false, err
	}

	inserted, err := r.seasons.Insert(ctx, row)
	if err != nil {
		return season.Season{}, false, fmt.Errorf("%w: insert season external_id=%d: %v", ErrStorage, ext.ExternalID, err)
	}
	return inserted, true, nil
}

func (r *Resolver) ResolveGroup(ctx context.Context, ext ExternalGroup, seasonExternalID int64) (group.Group, bool, error) {
	unlock := r.locks.lock(resolveKey(KindGroup, ext.ExternalID))
	defer unlock()

	existing, found, err := r.groups.GetByExternalID(ctx, ext.ExternalID)
	if err != nil {
		return group.Group{}, false, fmt.Errorf("%w: lookup group external_id=%d: %v", ErrStorage, ext.ExternalID, err)
	}
	if found {
		return existing, false, nil
	}

	row := group.Group{
		ExternalID:       ext.ExternalID,
		Name:             ext.Name,
		SeasonExternalID: seasonExternalID,
	}
	if err := row.Validate(); err != nil {
		return group.Group{}, false, fmt.Errorf("%w: %v", ErrNormalization, err)
	}
	if err := r.stamp(&row.ID, &row.CreatedAt, &row.UpdatedAt); err != nil {
		return group.Group{}, false, err
	}

	inserted, err := r.groups.Insert(ctx, row)
	if err != nil {
		return group.Group{}, false, fmt.Errorf("%w: insert group external_id=%d: %v", ErrStorage, ext.ExternalID, err)
	}
	return inserted, true, nil
}

func (r *Resolver) ResolveTeam(ctx context.Context, ext ExternalTeam) (team.Team, bool, error) {
	unlock := r.locks.lock(resolveKey(KindTeam, ext.ExternalID))
	defer unlock()

	existing, found, err := r.teams.GetByExternalID(ctx, ext.ExternalID)
	if err != nil {
		return team.Team{}, false, fmt.Errorf("%w: lookup team external_id=%d: %v", ErrStorage, ext.ExternalID, err)
	}
	if found {
		return existing, false, nil
	}

	row := team.Team{
		ExternalID: ext.ExternalID,
		Name:       ext.Name,
		ShortCode:  ext.ShortCode,
		Country:    ext.Country,
		Ranking:    ext.Ranking,
		Slug:       ext.Slug,
	}
	if err := row.Validate(); err != nil {
		return team.Team{}, false, fmt.Errorf("%w: %v", ErrNormalization, err)
	}
	if err := r.stamp(&row.ID, &row.CreatedAt, &row.UpdatedAt); err != nil {
		return team.Team{}, false, err
	}

	inserted, err := r.teams.Insert(ctx, row)
	if err != nil {
		return team.Team{}, false, fmt.Errorf("%w: insert team external_id=%d: %v", ErrStorage, ext.ExternalID, err)
	}
	return inserted, true, nil
}

func (r *Resolver) ResolveEvent(ctx context.Context, ext ExternalEvent, groupExternalID, tournamentExternalID int64) (event.Event, bool, error) {
	unlock := r.locks.lock(resolveKey(KindEvent, ext.ExternalID))
	defer unlock()

	existing, found, err := r.events.GetByExternalID(ctx, ext.ExternalID)
	if err != nil {
		return event.Event{}, false, fmt.Errorf("%w: lookup event external_id=%d: %v", ErrStorage, ext.ExternalID, err)
	}
	if found {
		return existing, false, nil
	}

	row := event.Event{
		ExternalID:           ext.ExternalID,
		Slug:                 ext.Slug,
		DetailID:             ext.DetailID,
		StatusCode:           ext.StatusCode,
		StatusDescription:    ext.StatusDescription,
		StatusType:           ext.StatusType,
		HomeTeamExternalID:   ext.HomeTeam.ExternalID,
		AwayTeamExternalID:   ext.AwayTeam.ExternalID,
		HomeScore:            mapExternalScore(ext.HomeScore),
		AwayScore:            mapExternalScore(ext.AwayScore),
		WinnerCode:           ext.WinnerCode,
		Round:                ext.Round,
		HasXG:                ext.HasXG,
		HasPlayerStatistics:  ext.HasPlayerStatistics,
		HasPlayerHeatmap:     ext.HasPlayerHeatmap,
		StartAt:              ext.StartAt.UTC(),
		EndAt:                cloneTimePtr(ext.EndAt),
		GroupExternalID:      groupExternalID,
		TournamentExternalID: tournamentExternalID,
	}
	if err := row.Validate(); err != nil {
		return event.Event{}, false, fmt.Errorf("%w: %v", ErrNormalization, err)
	}
	if err := r.stamp(&row.ID, &row.CreatedAt, &row.UpdatedAt); err != nil {
		return event.Event{}, false, err
	}

	inserted, err := r.events.Insert(ctx, row)
	if err != nil {
		return event.Event{}, false, fmt.Errorf("%w: insert event external_id=%d: %v", ErrStorage, ext.ExternalID, err)
	}
	return inserted, true, nil
}

func (r *Resolver) stamp(recordID *string, createdAt, updatedAt *time.Time) error {
	newID, err := r.ids.NewID()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStorage, err)
	}
	now := r.now().UTC()
	*recordID = newID
	*createdAt = now
	*updatedAt = now
	return nil
}

func mapExternalScore(s ExternalScore) event.Score {
	return event.Score{
		Current:    s.Current,
		Period1:    s.Period1,
		Period2:    s.Period2,
		NormalTime: s.NormalTime,
		ExtraTime:  s.ExtraTime,
		Penalties:  s.Penalties,
	}
}

func cloneTimePtr(value *time.Time) *time.Time {
	if value == nil {
		return nil
	}
	v := value.UTC()
	return &v
}

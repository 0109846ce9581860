package usecase

import (
	"context"
	"fmt"

	"github.com/matchpulse/sofasync/internal/domain/category"
	"github.com/matchpulse/sofasync/internal/domain/event"
	"github.com/matchpulse/sofasync/internal/domain/group"
	"github.com/matchpulse/sofasync/internal/domain/season"
	"github.com/matchpulse/sofasync/internal/domain/tournament"
)

// TournamentDetail is a tournament together with its ingested seasons.
type TournamentDetail struct {
	Tournament tournament.Tournament
	Seasons    []season.Season
}

// CatalogService serves read queries over ingested competition data.
type CatalogService struct {
	categories  category.Repository
	tournaments tournament.Repository
	seasons     season.Repository
	groups      group.Repository
	events      event.Repository
}

func NewCatalogService(
	categories category.Repository,
	tournaments tournament.Repository,
	seasons season.Repository,
	groups group.Repository,
	events event.Repository,
) *CatalogService {
	return &CatalogService{
		categories:  categories,
		tournaments: tournaments,
		seasons:     seasons,
		groups:      groups,
		events:      events,
	}
}

func (s *CatalogService) ListCategories(ctx context.Context) ([]category.Category, error) {
	ctx, span := startUsecaseSpan(ctx, "CatalogService.ListCategories")
	defer span.End()

	rows, err := s.categories.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}

	return rows, nil
}

func (s *CatalogService) GetTournamentByExternalID(ctx context.Context, externalID int64) (TournamentDetail, error) {
	ctx, span := startUsecaseSpan(ctx, "CatalogService.GetTournamentByExternalID")
	defer span.End()

	if externalID <= 0 {
		return TournamentDetail{}, fmt.Errorf("%w: tournament external id must be positive", ErrInvalidInput)
	}

	row, found, err := s.tournaments.GetByExternalID(ctx, externalID)
	if err != nil {
		return TournamentDetail{}, fmt.Errorf("get tournament external_id=%d: %w", externalID, err)
	}
	if !found {
		return TournamentDetail{}, fmt.Errorf("%w: tournament external_id=%d", ErrNotFound, externalID)
	}

	seasons, err := s.seasons.ListByTournament(ctx, externalID)
	if err != nil {
		return TournamentDetail{}, fmt.Errorf("list seasons tournament_external_id=%d: %w", externalID, err)
	}

	return TournamentDetail{Tournament: row, Seasons: seasons}, nil
}

func (s *CatalogService) ListSeasonGroups(ctx context.Context, seasonExternalID int64) ([]group.Group, error) {
	ctx, span := startUsecaseSpan(ctx, "CatalogService.ListSeasonGroups")
	defer span.End()

	if seasonExternalID <= 0 {
		return nil, fmt.Errorf("%w: season external id must be positive", ErrInvalidInput)
	}

	_, found, err := s.seasons.GetByExternalID(ctx, seasonExternalID)
	if err != nil {
		return nil, fmt.Errorf("get season external_id=%d: %w", seasonExternalID, err)
	}
	if !found {
		return nil, fmt.Errorf("%w: season external_id=%d", ErrNotFound, seasonExternalID)
	}

	rows, err := s.groups.ListBySeason(ctx, seasonExternalID)
	if err != nil {
		return nil, fmt.Errorf("list groups season_external_id=%d: %w", seasonExternalID, err)
	}

	return rows, nil
}

func (s *CatalogService) ListGroupEvents(ctx context.Context, groupExternalID int64) ([]event.Event, error) {
	ctx, span := startUsecaseSpan(ctx, "CatalogService.ListGroupEvents")
	defer span.End()

	if groupExternalID <= 0 {
		return nil, fmt.Errorf("%w: group external id must be positive", ErrInvalidInput)
	}

	_, found, err := s.groups.GetByExternalID(ctx, groupExternalID)
	if err != nil {
		return nil, fmt.Errorf("get group external_id=%d: %w", groupExternalID, err)
	}
	if !found {
		return nil, fmt.Errorf("%w: group external_id=%d", ErrNotFound, groupExternalID)
	}

	rows, err := s.events.ListByGroup(ctx, groupExternalID)
	if err != nil {
		return nil, fmt.Errorf("list events group_external_id=%d: %w", groupExternalID, err)
	}

	return rows, nil
}

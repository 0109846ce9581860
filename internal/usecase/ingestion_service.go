package usecase

import (
	"context"
	"fmt"

	"github.com/matchpulse/sofasync/internal/domain/rawpayload"
	"github.com/matchpulse/sofasync/internal/platform/logging"
)

// IngestionService runs the full traversal for one tournament: the
// tournament and its category, every season, every group, and every
// event with both teams, dependency-ordered and idempotent.
type IngestionService struct {
	provider TournamentDataProvider
	resolver *Resolver
	payloads rawpayload.Repository
	logger   *logging.Logger
}

func NewIngestionService(
	provider TournamentDataProvider,
	resolver *Resolver,
	payloads rawpayload.Repository,
	logger *logging.Logger,
) *IngestionService {
	if logger == nil {
		logger = logging.Default()
	}
	return &IngestionService{
		provider: provider,
		resolver: resolver,
		payloads: payloads,
		logger:   logger,
	}
}

// RunIngestion ingests one tournament tree. Trunk failures abort the run
// with a partial summary; branch failures are collected in the summary
// and never propagated as the run error. Re-running against an already
// populated store creates nothing and counts every record as found.
func (s *IngestionService) RunIngestion(ctx context.Context, tournamentExternalID int64, opts RunOptions) (RunSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "IngestionService.RunIngestion")
	defer span.End()

	if tournamentExternalID <= 0 {
		return newRunSummary(tournamentExternalID), fmt.Errorf("%w: tournament external id must be positive", ErrInvalidInput)
	}

	w := newWalker(s.provider, s.resolver, s.logger, opts)
	summary, payloads, runErr := w.run(ctx, tournamentExternalID)

	s.archivePayloads(ctx, payloads)

	s.logger.InfoContext(ctx, "ingestion run finished",
		"tournament_external_id", tournamentExternalID,
		"created", summary.Created,
		"found", summary.Found,
		"failed_branches", len(summary.FailedBranches),
		"duration", summary.FinishedAt.Sub(summary.StartedAt),
	)

	return summary, runErr
}

// archivePayloads best-effort stores the raw upstream bodies collected
// during the run. The archive is diagnostic; a write failure is logged
// and never fails the run.
func (s *IngestionService) archivePayloads(ctx context.Context, payloads []rawpayload.Payload) {
	if s.payloads == nil || len(payloads) == 0 {
		return
	}
	if err := s.payloads.UpsertMany(ctx, payloads); err != nil {
		s.logger.WarnContext(ctx, "archive raw payloads failed",
			"count", len(payloads),
			"error", err,
		)
	}
}

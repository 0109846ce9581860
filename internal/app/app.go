package app

import (
	"fmt"
	"net/http"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"

	"github.com/matchpulse/sofasync/external/sofascore"
	"github.com/matchpulse/sofasync/internal/config"
	"github.com/matchpulse/sofasync/internal/infrastructure/repository/postgres"
	"github.com/matchpulse/sofasync/internal/interfaces/httpapi"
	idgen "github.com/matchpulse/sofasync/internal/platform/id"
	"github.com/matchpulse/sofasync/internal/platform/logging"
	"github.com/matchpulse/sofasync/internal/platform/resilience"
	"github.com/matchpulse/sofasync/internal/usecase"
)

// Components holds the wired services shared by the API server and the
// ingestion command.
type Components struct {
	DB         *sqlx.DB
	Ingestion  *usecase.IngestionService
	Catalog    *usecase.CatalogService
	RunOptions usecase.RunOptions
}

func BuildComponents(cfg config.Config, logger *logging.Logger) (*Components, error) {
	if logger == nil {
		logger = logging.Default()
	}

	db, err := openDB(cfg)
	if err != nil {
		return nil, err
	}

	categories := postgres.NewCategoryRepository(db)
	tournaments := postgres.NewTournamentRepository(db)
	seasons := postgres.NewSeasonRepository(db)
	groups := postgres.NewGroupRepository(db)
	teams := postgres.NewTeamRepository(db)
	events := postgres.NewEventRepository(db)
	payloads := postgres.NewRawPayloadRepository(db)

	client := sofascore.NewClient(sofascore.ClientConfig{
		BaseURL:    cfg.SofaScoreBaseURL,
		UserAgent:  cfg.SofaScoreUserAgent,
		Timeout:    cfg.SofaScoreTimeout,
		MaxRetries: cfg.SofaScoreMaxRetries,
		Logger:     logger,
		CircuitBreaker: resilience.BreakerConfig{
			Enabled:          cfg.SofaScoreCircuitEnabled,
			FailureThreshold: cfg.SofaScoreCircuitFailureCount,
			Cooldown:         cfg.SofaScoreCircuitOpenTimeout,
			HalfOpenProbes:   cfg.SofaScoreCircuitHalfOpenReq,
		},
	})

	resolver := usecase.NewResolver(categories, tournaments, seasons, groups, teams, events, idgen.NewRandomGenerator())

	return &Components{
		DB:        db,
		Ingestion: usecase.NewIngestionService(client, resolver, payloads, logger),
		Catalog:   usecase.NewCatalogService(categories, tournaments, seasons, groups, events),
		RunOptions: usecase.RunOptions{
			MaxConcurrentBranches: cfg.IngestMaxConcurrentBranches,
			RequestPacing:         cfg.IngestRequestPacing,
			BranchMaxRetries:      cfg.IngestBranchMaxRetries,
			RetryBaseDelay:        cfg.IngestRetryBaseDelay,
			RetryMaxDelay:         cfg.IngestRetryMaxDelay,
		},
	}, nil
}

func (c *Components) Close() error {
	if c == nil || c.DB == nil {
		return nil
	}
	return c.DB.Close()
}

func NewHTTPServer(cfg config.Config, logger *logging.Logger, components *Components) (*http.Server, error) {
	if components == nil {
		return nil, fmt.Errorf("components are required")
	}
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	handler := httpapi.NewHandler(components.Ingestion, components.Catalog, components.RunOptions, logger)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins)

	return &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}, nil
}

func openDB(cfg config.Config) (*sqlx.DB, error) {
	dsn := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)

	db, err := otelsqlx.Connect("postgres", dsn,
		otelsql.WithDBName(dbNameFromURL(dsn)),
	)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	return db, nil
}

package httpapi

import (
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"

	"github.com/matchpulse/sofasync/internal/platform/logging"
	"github.com/matchpulse/sofasync/internal/usecase"
)

const maxRequestBodyBytes = 1 << 20

type Handler struct {
	ingestionService *usecase.IngestionService
	catalogService   *usecase.CatalogService
	runOptions       usecase.RunOptions
	logger           *logging.Logger
	validator        *validator.Validate
}

func NewHandler(
	ingestionService *usecase.IngestionService,
	catalogService *usecase.CatalogService,
	runOptions usecase.RunOptions,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		ingestionService: ingestionService,
		catalogService:   catalogService,
		runOptions:       runOptions,
		logger:           logger,
		validator:        validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListCategories")
	defer span.End()

	rows, err := h.catalogService.ListCategories(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list categories failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]categoryDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, newCategoryDTO(row))
	}

	writeSuccess(ctx, w, http.StatusOK, categoryListDTO{Items: out})
}

func (h *Handler) GetTournament(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTournament")
	defer span.End()

	externalID, err := strconv.ParseInt(r.PathValue("externalID"), 10, 64)
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: tournament external id must be an integer", usecase.ErrInvalidInput))
		return
	}

	detail, err := h.catalogService.GetTournamentByExternalID(ctx, externalID)
	if err != nil {
		h.logger.ErrorContext(ctx, "get tournament failed", "external_id", externalID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, newTournamentDetailDTO(detail))
}

func (h *Handler) ListSeasonGroups(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListSeasonGroups")
	defer span.End()

	externalID, err := strconv.ParseInt(r.PathValue("externalID"), 10, 64)
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: season external id must be an integer", usecase.ErrInvalidInput))
		return
	}

	rows, err := h.catalogService.ListSeasonGroups(ctx, externalID)
	if err != nil {
		h.logger.ErrorContext(ctx, "list season groups failed", "external_id", externalID, "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]groupDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, newGroupDTO(row))
	}

	writeSuccess(ctx, w, http.StatusOK, groupListDTO{Items: out})
}

func (h *Handler) ListGroupEvents(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListGroupEvents")
	defer span.End()

	externalID, err := strconv.ParseInt(r.PathValue("externalID"), 10, 64)
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: group external id must be an integer", usecase.ErrInvalidInput))
		return
	}

	rows, err := h.catalogService.ListGroupEvents(ctx, externalID)
	if err != nil {
		h.logger.ErrorContext(ctx, "list group events failed", "external_id", externalID, "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]eventDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, newEventDTO(row))
	}

	writeSuccess(ctx, w, http.StatusOK, eventListDTO{Items: out})
}

type ingestTournamentRequest struct {
	TournamentID          int64 `json:"tournamentId" validate:"required,gt=0"`
	MaxConcurrentBranches int   `json:"maxConcurrentBranches" validate:"gte=0,lte=64"`
	BranchMaxRetries      int   `json:"branchMaxRetries" validate:"gte=0,lte=10"`
	RequestPacingMs       int64 `json:"requestPacingMs" validate:"gte=0,lte=60000"`
}

func (h *Handler) IngestTournament(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.IngestTournament")
	defer span.End()

	body, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBodyBytes))
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: read request body: %v", usecase.ErrInvalidInput, err))
		return
	}

	var req ingestTournamentRequest
	if err := sonic.Unmarshal(body, &req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: decode request body: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validator.Struct(req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err))
		return
	}

	opts := h.runOptions
	if req.MaxConcurrentBranches > 0 {
		opts.MaxConcurrentBranches = req.MaxConcurrentBranches
	}
	if req.BranchMaxRetries > 0 {
		opts.BranchMaxRetries = req.BranchMaxRetries
	}
	if req.RequestPacingMs > 0 {
		opts.RequestPacing = time.Duration(req.RequestPacingMs) * time.Millisecond
	}

	summary, err := h.ingestionService.RunIngestion(ctx, req.TournamentID, opts)
	if err != nil {
		h.logger.ErrorContext(ctx, "ingestion run failed", "tournament_external_id", req.TournamentID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, newRunSummaryDTO(summary))
}

type categoryListDTO struct {
	Items []categoryDTO `json:"items"`
}

type categoryDTO struct {
	ExternalID int64  `json:"externalId"`
	Name       string `json:"name"`
	Slug       string `json:"slug"`
}

type tournamentDetailDTO struct {
	ExternalID         int64       `json:"externalId"`
	Name               string      `json:"name"`
	Slug               string      `json:"slug"`
	CategoryExternalID int64       `json:"categoryExternalId"`
	HasGroups          bool        `json:"hasGroups"`
	StartAt            *time.Time  `json:"startAt,omitempty"`
	EndAt              *time.Time  `json:"endAt,omitempty"`
	Seasons            []seasonDTO `json:"seasons"`
}

type seasonDTO struct {
	ExternalID int64  `json:"externalId"`
	Name       string `json:"name"`
	Year       string `json:"year"`
}

type groupListDTO struct {
	Items []groupDTO `json:"items"`
}

type groupDTO struct {
	ExternalID       int64  `json:"externalId"`
	Name             string `json:"name"`
	SeasonExternalID int64  `json:"seasonExternalId"`
}

type eventListDTO struct {
	Items []eventDTO `json:"items"`
}

type eventDTO struct {
	ExternalID           int64      `json:"externalId"`
	Slug                 string     `json:"slug"`
	StatusCode           int        `json:"statusCode"`
	StatusType           string     `json:"statusType"`
	HomeTeamExternalID   int64      `json:"homeTeamExternalId"`
	AwayTeamExternalID   int64      `json:"awayTeamExternalId"`
	HomeScore            scoreDTO   `json:"homeScore"`
	AwayScore            scoreDTO   `json:"awayScore"`
	WinnerCode           int        `json:"winnerCode"`
	Round                int        `json:"round"`
	GroupExternalID      int64      `json:"groupExternalId"`
	TournamentExternalID int64      `json:"tournamentExternalId"`
	StartAt              time.Time  `json:"startAt"`
	EndAt                *time.Time `json:"endAt,omitempty"`
}

type scoreDTO struct {
	Current    int `json:"current"`
	Period1    int `json:"period1"`
	Period2    int `json:"period2"`
	NormalTime int `json:"normalTime"`
	ExtraTime  int `json:"extraTime"`
	Penalties  int `json:"penalties"`
}

type runSummaryDTO struct {
	TournamentExternalID int64             `json:"tournamentExternalId"`
	Created              map[string]int    `json:"created"`
	Found                map[string]int    `json:"found"`
	FailedBranches       []failedBranchDTO `json:"failedBranches"`
	StartedAt            time.Time         `json:"startedAt"`
	FinishedAt           time.Time         `json:"finishedAt"`
}

type failedBranchDTO struct {
	BranchKind       string `json:"branchKind"`
	ParentExternalID int64  `json:"parentExternalId"`
	Error            string `json:"error"`
}

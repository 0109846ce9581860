package httpapi

import (
	"net/http"

	"github.com/matchpulse/sofasync/internal/platform/logging"
)

func NewRouter(handler *Handler, logger *logging.Logger, corsAllowedOrigins []string) http.Handler {
	if logger == nil {
		logger = logging.Default()
	}

	mux := http.NewServeMux()
	registerSystemRoutes(mux, handler)
	registerCatalogRoutes(mux, handler)
	registerIngestionRoutes(mux, handler)

	return RequestTracing(RequestLogging(logger, CORS(corsAllowedOrigins, recoverPanic(logger, mux))))
}

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerCatalogRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/categories", handler.ListCategories)
	mux.HandleFunc("GET /v1/tournaments/{externalID}", handler.GetTournament)
	mux.HandleFunc("GET /v1/seasons/{externalID}/groups", handler.ListSeasonGroups)
	mux.HandleFunc("GET /v1/groups/{externalID}/events", handler.ListGroupEvents)
}

func registerIngestionRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("POST /v1/ingest/tournaments", handler.IngestTournament)
}

func recoverPanic(logger *logging.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		defer func() {
			if rec := recover(); rec != nil {
				logger.ErrorContext(ctx, "panic recovered", "panic", rec)
				writeInternalError(ctx, w)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/matchpulse/sofasync/internal/domain/rawpayload"
	"github.com/matchpulse/sofasync/internal/infrastructure/repository/memory"
	"github.com/matchpulse/sofasync/internal/platform/logging"
	"github.com/matchpulse/sofasync/internal/usecase"
)

type stubProvider struct{}

func (stubProvider) payload(entityType, path string) rawpayload.Payload {
	return rawpayload.Payload{
		Source:      "sofascore",
		EntityType:  entityType,
		EntityKey:   "sofascore:" + path,
		RequestPath: path,
		PayloadJSON: "{}",
		PayloadHash: entityType + ":" + path,
	}
}

func (p stubProvider) FetchTournament(_ context.Context, tournamentID int64) (usecase.ExternalTournament, rawpayload.Payload, error) {
	if tournamentID != 7 {
		return usecase.ExternalTournament{}, rawpayload.Payload{}, fmt.Errorf("%w: unknown tournament %d", usecase.ErrTransport, tournamentID)
	}
	return usecase.ExternalTournament{
		ExternalID: 7,
		Name:       "EURO 2024",
		Slug:       "euro-2024",
		Category:   usecase.ExternalCategory{ExternalID: 3, Name: "Europe", Slug: "europe"},
		HasGroups:  true,
	}, p.payload("tournament", "/unique-tournament/7"), nil
}

func (p stubProvider) FetchSeasons(_ context.Context, tournamentID int64) ([]usecase.ExternalSeason, rawpayload.Payload, error) {
	return []usecase.ExternalSeason{{ExternalID: 100, Name: "2024", Year: "24"}},
		p.payload("seasons", fmt.Sprintf("/unique-tournament/%d/seasons", tournamentID)), nil
}

func (p stubProvider) FetchGroups(_ context.Context, tournamentID, seasonID int64) ([]usecase.ExternalGroup, rawpayload.Payload, error) {
	return []usecase.ExternalGroup{{ExternalID: 200, Name: "Group A"}},
		p.payload("groups", fmt.Sprintf("/unique-tournament/%d/season/%d/groups", tournamentID, seasonID)), nil
}

func (p stubProvider) FetchEvents(_ context.Context, groupExternalID, seasonID int64) ([]usecase.ExternalEvent, rawpayload.Payload, error) {
	return []usecase.ExternalEvent{{
			ExternalID: 9000,
			HomeTeam:   usecase.ExternalTeam{ExternalID: 1, Name: "Germany"},
			AwayTeam:   usecase.ExternalTeam{ExternalID: 2, Name: "Scotland"},
			HomeScore:  usecase.ExternalScore{Current: 2},
			AwayScore:  usecase.ExternalScore{Current: 1},
			StartAt:    time.Date(2024, time.June, 14, 19, 0, 0, 0, time.UTC),
		}},
		p.payload("events", fmt.Sprintf("/tournament/%d/season/%d/events", groupExternalID, seasonID)), nil
}

func newTestRouter() http.Handler {
	categories := memory.NewCategoryRepository()
	tournaments := memory.NewTournamentRepository()
	seasons := memory.NewSeasonRepository()
	groups := memory.NewGroupRepository()
	events := memory.NewEventRepository()

	resolver := usecase.NewResolver(
		categories,
		tournaments,
		seasons,
		groups,
		memory.NewTeamRepository(),
		events,
		nil,
	)
	ingestion := usecase.NewIngestionService(stubProvider{}, resolver, memory.NewRawPayloadRepository(), logging.NewNop())
	catalog := usecase.NewCatalogService(categories, tournaments, seasons, groups, events)

	opts := usecase.RunOptions{
		MaxConcurrentBranches: 2,
		BranchMaxRetries:      1,
		RetryBaseDelay:        time.Millisecond,
		RetryMaxDelay:         2 * time.Millisecond,
	}
	handler := NewHandler(ingestion, catalog, opts, logging.NewNop())

	return NewRouter(handler, logging.NewNop(), []string{"*"})
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) responseEnvelope {
	t.Helper()

	var envelope responseEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode response: %v (body=%s)", err, rec.Body.String())
	}
	return envelope
}

func TestHandler_Healthz(t *testing.T) {
	t.Parallel()

	router := newTestRouter()
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got=%d want=%d", rec.Code, http.StatusOK)
	}
	if !strings.Contains(rec.Body.String(), `"status":"ok"`) {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestHandler_IngestTournament(t *testing.T) {
	t.Parallel()

	router := newTestRouter()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/ingest/tournaments", strings.NewReader(`{"tournamentId":7}`))
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got=%d want=%d (body=%s)", rec.Code, http.StatusOK, rec.Body.String())
	}

	body := rec.Body.String()
	if !strings.Contains(body, `"tournamentExternalId":7`) {
		t.Fatalf("summary missing tournament id: %s", body)
	}
	if !strings.Contains(body, `"event":1`) {
		t.Fatalf("summary missing created event count: %s", body)
	}

	// The ingested tournament is now readable.
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/tournaments/7", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("get tournament status: got=%d (body=%s)", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"name":"EURO 2024"`) {
		t.Fatalf("unexpected tournament body: %s", rec.Body.String())
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/categories", nil))
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"slug":"europe"`) {
		t.Fatalf("unexpected categories response: code=%d body=%s", rec.Code, rec.Body.String())
	}
}

func TestHandler_IngestTournament_AcceptsRequestPacing(t *testing.T) {
	t.Parallel()

	router := newTestRouter()
	rec := httptest.NewRecorder()
	body := `{"tournamentId":7,"requestPacingMs":1}`
	req := httptest.NewRequest(http.MethodPost, "/v1/ingest/tournaments", strings.NewReader(body))
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got=%d want=%d (body=%s)", rec.Code, http.StatusOK, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"event":1`) {
		t.Fatalf("summary missing created event count: %s", rec.Body.String())
	}
}

func TestHandler_ListSeasonGroupsAndGroupEvents(t *testing.T) {
	t.Parallel()

	router := newTestRouter()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/ingest/tournaments", strings.NewReader(`{"tournamentId":7}`))
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("seed ingestion status: got=%d (body=%s)", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/seasons/100/groups", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("list season groups status: got=%d (body=%s)", rec.Code, rec.Body.String())
	}
	body := rec.Body.String()
	if !strings.Contains(body, `"externalId":200`) || !strings.Contains(body, `"name":"Group A"`) {
		t.Fatalf("unexpected groups body: %s", body)
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/groups/200/events", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("list group events status: got=%d (body=%s)", rec.Code, rec.Body.String())
	}
	body = rec.Body.String()
	if !strings.Contains(body, `"externalId":9000`) {
		t.Fatalf("unexpected events body: %s", body)
	}
	if !strings.Contains(body, `"homeScore":{"current":2`) {
		t.Fatalf("events body missing home score: %s", body)
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/seasons/999/groups", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unknown season status: got=%d want=%d", rec.Code, http.StatusNotFound)
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/groups/abc/events", nil))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("non-numeric group id status: got=%d want=%d", rec.Code, http.StatusBadRequest)
	}
}

func TestHandler_IngestTournament_InvalidRequests(t *testing.T) {
	t.Parallel()

	router := newTestRouter()
	cases := []struct {
		name string
		body string
	}{
		{"missing id", `{}`},
		{"negative id", `{"tournamentId":-1}`},
		{"malformed json", `{"tournamentId":`},
		{"too many branches", `{"tournamentId":7,"maxConcurrentBranches":1000}`},
		{"negative pacing", `{"tournamentId":7,"requestPacingMs":-5}`},
		{"excessive pacing", `{"tournamentId":7,"requestPacingMs":120000}`},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/v1/ingest/tournaments", strings.NewReader(tc.body))
			router.ServeHTTP(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status: got=%d want=%d (body=%s)", rec.Code, http.StatusBadRequest, rec.Body.String())
			}
			envelope := decodeEnvelope(t, rec)
			if envelope.Error == nil || envelope.Error.Status != "INVALID_ARGUMENT" {
				t.Fatalf("unexpected error envelope: %+v", envelope.Error)
			}
		})
	}
}

func TestHandler_IngestTournament_UpstreamFailure(t *testing.T) {
	t.Parallel()

	router := newTestRouter()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/ingest/tournaments", strings.NewReader(`{"tournamentId":404}`))
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status: got=%d want=%d (body=%s)", rec.Code, http.StatusBadGateway, rec.Body.String())
	}
}

func TestHandler_GetTournament_NotFound(t *testing.T) {
	t.Parallel()

	router := newTestRouter()
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/tournaments/9999", nil))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status: got=%d want=%d", rec.Code, http.StatusNotFound)
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/tournaments/abc", nil))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status for non-numeric id: got=%d want=%d", rec.Code, http.StatusBadRequest)
	}
}

func TestCORS_AllowsConfiguredOrigin(t *testing.T) {
	t.Parallel()

	router := newTestRouter()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/v1/categories", nil)
	req.Header.Set("Origin", "https://matchpulse.dev")
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("preflight status: got=%d want=%d", rec.Code, http.StatusNoContent)
	}
	if rec.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Fatalf("missing allow-origin header: %+v", rec.Header())
	}
}

package sofascore

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"

	"github.com/matchpulse/sofasync/internal/domain/rawpayload"
	"github.com/matchpulse/sofasync/internal/platform/logging"
	"github.com/matchpulse/sofasync/internal/platform/resilience"
	"github.com/matchpulse/sofasync/internal/usecase"
)

const (
	defaultBaseURL   = "https://api.sofascore.com/api/v1"
	defaultUserAgent = "sofasync/1.0"
	sourceName       = "sofascore"
	maxResponseBytes = 6 << 20
)

var errSofaScoreTransient = crerr.New("sofascore transient failure")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	UserAgent      string
	Timeout        time.Duration
	MaxRetries     int
	Logger         *logging.Logger
	CircuitBreaker resilience.BreakerConfig
}

type Client struct {
	httpClient     *http.Client
	baseURL        string
	userAgent      string
	maxRetries     int
	logger         *logging.Logger
	breaker        *resilience.Breaker
	circuitEnabled bool
	flight         *resilience.SingleFlight
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 20 * time.Second
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	userAgent := strings.TrimSpace(cfg.UserAgent)
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	breakerCfg := resilience.NormalizeBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		httpClient:     httpClient,
		baseURL:        baseURL,
		userAgent:      userAgent,
		maxRetries:     maxInt(cfg.MaxRetries, 0),
		logger:         logger,
		breaker:        resilience.NewBreaker(breakerCfg),
		circuitEnabled: breakerCfg.Enabled,
		flight:         resilience.NewSingleFlight(),
	}
}

func (c *Client) FetchTournament(ctx context.Context, tournamentID int64) (usecase.ExternalTournament, rawpayload.Payload, error) {
	if tournamentID <= 0 {
		return usecase.ExternalTournament{}, rawpayload.Payload{}, fmt.Errorf("%w: tournament id must be greater than zero", usecase.ErrInvalidInput)
	}

	path := buildPath("/unique-tournament/", tournamentID)
	var envelope tournamentEnvelope
	raw, err := c.doJSON(ctx, path, &envelope)
	if err != nil {
		return usecase.ExternalTournament{}, rawpayload.Payload{}, fmt.Errorf("fetch tournament id=%d: %w", tournamentID, err)
	}

	out, err := mapTournamentPayload(envelope)
	if err != nil {
		return usecase.ExternalTournament{}, rawpayload.Payload{}, fmt.Errorf("map tournament id=%d: %w", tournamentID, err)
	}
	return out, buildAPIPayload("tournament", path, raw), nil
}

func (c *Client) FetchSeasons(ctx context.Context, tournamentID int64) ([]usecase.ExternalSeason, rawpayload.Payload, error) {
	if tournamentID <= 0 {
		return nil, rawpayload.Payload{}, fmt.Errorf("%w: tournament id must be greater than zero", usecase.ErrInvalidInput)
	}

	path := buildPath("/unique-tournament/", tournamentID) + "/seasons"
	var envelope seasonsEnvelope
	raw, err := c.doJSON(ctx, path, &envelope)
	if err != nil {
		return nil, rawpayload.Payload{}, fmt.Errorf("fetch seasons tournament_id=%d: %w", tournamentID, err)
	}

	out, err := mapSeasonPayloads(envelope)
	if err != nil {
		return nil, rawpayload.Payload{}, fmt.Errorf("map seasons tournament_id=%d: %w", tournamentID, err)
	}
	return out, buildAPIPayload("seasons", path, raw), nil
}

func (c *Client) FetchGroups(ctx context.Context, tournamentID, seasonID int64) ([]usecase.ExternalGroup, rawpayload.Payload, error) {
	if tournamentID <= 0 || seasonID <= 0 {
		return nil, rawpayload.Payload{}, fmt.Errorf("%w: tournament and season ids must be greater than zero", usecase.ErrInvalidInput)
	}

	path := buildPath("/unique-tournament/", tournamentID) + buildPath("/season/", seasonID) + "/groups"
	var envelope groupsEnvelope
	raw, err := c.doJSON(ctx, path, &envelope)
	if err != nil {
		return nil, rawpayload.Payload{}, fmt.Errorf("fetch groups tournament_id=%d season_id=%d: %w", tournamentID, seasonID, err)
	}

	out, err := mapGroupPayloads(envelope)
	if err != nil {
		return nil, rawpayload.Payload{}, fmt.Errorf("map groups tournament_id=%d season_id=%d: %w", tournamentID, seasonID, err)
	}
	return out, buildAPIPayload("groups", path, raw), nil
}

func (c *Client) FetchEvents(ctx context.Context, groupExternalID, seasonID int64) ([]usecase.ExternalEvent, rawpayload.Payload, error) {
	if groupExternalID <= 0 || seasonID <= 0 {
		return nil, rawpayload.Payload{}, fmt.Errorf("%w: group and season ids must be greater than zero", usecase.ErrInvalidInput)
	}

	path := buildPath("/tournament/", groupExternalID) + buildPath("/season/", seasonID) + "/events"
	var envelope eventsEnvelope
	raw, err := c.doJSON(ctx, path, &envelope)
	if err != nil {
		return nil, rawpayload.Payload{}, fmt.Errorf("fetch events group_id=%d season_id=%d: %w", groupExternalID, seasonID, err)
	}

	out, err := mapEventPayloads(envelope)
	if err != nil {
		return nil, rawpayload.Payload{}, fmt.Errorf("map events group_id=%d season_id=%d: %w", groupExternalID, seasonID, err)
	}
	return out, buildAPIPayload("events", path, raw), nil
}

func (c *Client) doJSON(ctx context.Context, path string, target any) ([]byte, error) {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "sofascore circuit breaker rejected request", "state", c.breaker.State().String())
			return nil, fmt.Errorf("%w: data source is temporarily unavailable", usecase.ErrTransport)
		}
	}

	fullURL := c.baseURL + path
	out, err := c.flight.Do(path, func() (any, error) {
		raw, reqErr := c.executeRequest(ctx, fullURL)
		if c.circuitEnabled {
			if reqErr != nil && isCircuitFailure(reqErr) {
				c.breaker.RecordFailure()
			} else {
				c.breaker.RecordSuccess()
			}
		}
		return raw, reqErr
	})
	if err != nil {
		return nil, err
	}

	raw, ok := out.([]byte)
	if !ok {
		return nil, fmt.Errorf("unexpected response payload type %T", out)
	}

	if err := sonic.Unmarshal(raw, target); err != nil {
		return nil, fmt.Errorf("%w: decode response body: %v", usecase.ErrSchema, err)
	}

	return raw, nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("accept", "application/json")
		req.Header.Set("user-agent", c.userAgent)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("%w: %w: send request: %v", usecase.ErrTransport, errSofaScoreTransient, err)
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
			_ = resp.Body.Close()
			if readErr != nil {
				lastErr = fmt.Errorf("%w: %w: read response body: %v", usecase.ErrTransport, errSofaScoreTransient, readErr)
			} else if resp.StatusCode >= 200 && resp.StatusCode < 300 {
				return raw, nil
			} else if isRetryableStatus(resp.StatusCode) {
				lastErr = fmt.Errorf("%w: %w: source status=%d body=%s", usecase.ErrTransport, errSofaScoreTransient, resp.StatusCode, abbreviateBody(raw))
			} else {
				return nil, fmt.Errorf("%w: source status=%d body=%s", usecase.ErrTransport, resp.StatusCode, abbreviateBody(raw))
			}
		}

		if attempt == c.maxRetries {
			break
		}
		backoff := time.Duration(attempt+1) * time.Second
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("%w: source request failed", usecase.ErrTransport)
	}
	c.logger.WarnContext(ctx, "sofascore request failed", "url", fullURL, "error", lastErr)
	return nil, lastErr
}

func buildAPIPayload(entityType, path string, raw []byte) rawpayload.Payload {
	sum := sha256.Sum256(raw)

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)
	_, _ = buf.WriteString(sourceName)
	_ = buf.WriteByte(':')
	_, _ = buf.WriteString(path)

	return rawpayload.Payload{
		Source:      sourceName,
		EntityType:  entityType,
		EntityKey:   buf.String(),
		RequestPath: path,
		PayloadJSON: string(raw),
		PayloadHash: hex.EncodeToString(sum[:]),
	}
}

func buildPath(prefix string, id int64) string {
	return prefix + strconv.FormatInt(id, 10)
}

func isCircuitFailure(err error) bool {
	if err == nil {
		return false
	}
	return stderrors.Is(err, errSofaScoreTransient)
}

func isRetryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}

func maxInt(left, right int) int {
	if left > right {
		return left
	}
	return right
}

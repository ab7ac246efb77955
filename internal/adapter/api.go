package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/go-merchant-verify/internal/config"
	"github.com/MKhiriev/go-merchant-verify/internal/logger"
	"github.com/MKhiriev/go-merchant-verify/internal/utils"
	"github.com/MKhiriev/go-merchant-verify/models"
)

const (
	defaultRequestTimeout = 15 * time.Second
	defaultRetryAttempts  = 5 // total attempts, the first one included
	defaultRetryBaseWait  = 500 * time.Millisecond

	// retryMaxWait caps the exponential backoff between attempts.
	retryMaxWait = 8 * time.Second

	headerIdempotencyKey = "Idempotency-Key"
	headerCorrelationID  = "X-Correlation-ID"
)

type apiClient struct {
	client *utils.HTTPClient

	// correlationID is the per-process identifier stamped on every outbound
	// request so client and server logs can be joined.
	correlationID string

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// NewApiClient constructs the HTTP/REST implementation of [ApiClient].
// It normalises and validates the base URL from cfg.APIBaseURL and
// configures the underlying HTTP client with the resolved base URL, request
// timeout, and the bounded retry policy for idempotent requests.
//
// Returns an error if cfg.APIBaseURL is empty or cannot be parsed as a
// valid URL.
func NewApiClient(cfg config.Adapter, correlationID string, logger *logger.Logger) (ApiClient, error) {
	baseURL, err := normalizeBaseURL(cfg.APIBaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter api base url: %w", err)
	}

	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}
	attempts := cfg.RetryMaxAttempts
	if attempts <= 0 {
		attempts = defaultRetryAttempts
	}
	baseWait := cfg.RetryBaseWait
	if baseWait <= 0 {
		baseWait = defaultRetryBaseWait
	}

	a := &apiClient{
		client:        utils.NewHTTPClient(),
		correlationID: correlationID,
		logger:        logger,
	}

	a.client.
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetRetryCount(attempts - 1).
		SetRetryWaitTime(baseWait).
		SetRetryMaxWaitTime(retryMaxWait).
		AddRetryCondition(a.shouldRetry).
		AddRetryHook(a.logRetry).
		OnBeforeRequest(a.stampCorrelationID)

	return a, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// shouldRetry is the single retry condition of the client. A request is
// eligible when it is idempotent (GET, or POST carrying an idempotency key)
// and the failure is transient: a transport error, HTTP 429, or HTTP 5xx.
func (a *apiClient) shouldRetry(resp *resty.Response, err error) bool {
	if resp == nil || resp.Request == nil {
		return false
	}
	if !retryableRequest(resp.Request) {
		return false
	}
	if err != nil {
		// Connection failure or per-attempt timeout. Caller cancellation is
		// filtered out earlier by the retry loop's context check.
		return true
	}

	code := resp.StatusCode()
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

func retryableRequest(req *resty.Request) bool {
	switch req.Method {
	case http.MethodGet, http.MethodHead:
		return true
	case http.MethodPost:
		return req.Header.Get(headerIdempotencyKey) != ""
	default:
		return false
	}
}

func (a *apiClient) logRetry(resp *resty.Response, err error) {
	if resp == nil || resp.Request == nil {
		return
	}

	event := a.logger.Warn().
		Str("func", "logRetry").
		Str("method", resp.Request.Method).
		Str("url", resp.Request.URL).
		Str("correlation_id", resp.Request.Header.Get(headerCorrelationID)).
		Int("attempt", resp.Request.Attempt)
	if err != nil {
		event = event.Err(err)
	} else {
		event = event.Int("status", resp.StatusCode())
	}
	event.Msg("retrying api request")
}

// stampCorrelationID attaches the correlation identifier to every outbound
// request. A caller-scoped id from the context wins over the process-wide
// one.
func (a *apiClient) stampCorrelationID(_ *resty.Client, req *resty.Request) error {
	id := a.correlationID
	if ctxID, ok := utils.GetCorrelationIDFromContext(req.Context()); ok && ctxID != "" {
		id = ctxID
	}
	if id != "" {
		req.SetHeader(headerCorrelationID, id)
	}
	return nil
}

// SetToken implements [ApiClient]. It stores token (whitespace-trimmed) for
// use in the Authorization header of all subsequent authenticated requests.
func (a *apiClient) SetToken(token string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.token = strings.TrimSpace(token)
}

// Token implements [ApiClient]. It returns the bearer token currently held
// by the adapter, or an empty string if none has been set.
func (a *apiClient) Token() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.token
}

// Login implements [ApiClient]. It POSTs the credentials to
// POST /api/auth/login and decodes the issued token pair. On success the
// access token is stored via SetToken and the pair is annotated with the
// parsed expiry of its access token. Returns an error if the request fails
// or the server returns a non-2xx status.
func (a *apiClient) Login(ctx context.Context, req models.LoginRequest) (models.TokenPair, error) {
	var pair models.TokenPair

	resp, err := a.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		SetResult(&pair).
		Post("/api/auth/login")
	if err != nil {
		return models.TokenPair{}, fmt.Errorf("login request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.TokenPair{}, err
	}

	a.SetToken(pair.AccessToken)
	return withAccessExpiry(pair), nil
}

// Refresh implements [ApiClient]. It POSTs the refresh token to
// POST /api/auth/refresh and decodes the replacement token pair. On success
// the new access token is stored via SetToken. Returns an error if the
// request fails or the server returns a non-2xx status.
func (a *apiClient) Refresh(ctx context.Context, refreshToken string) (models.TokenPair, error) {
	var pair models.TokenPair

	resp, err := a.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(models.RefreshRequest{RefreshToken: refreshToken}).
		SetResult(&pair).
		Post("/api/auth/refresh")
	if err != nil {
		return models.TokenPair{}, fmt.Errorf("refresh request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.TokenPair{}, err
	}

	a.SetToken(pair.AccessToken)
	return withAccessExpiry(pair), nil
}

// Logout implements [ApiClient]. It POSTs the refresh token to
// POST /api/auth/logout for server-side revocation and clears the stored
// bearer token regardless of the response, so a half-failed logout cannot
// leave the client authenticated.
func (a *apiClient) Logout(ctx context.Context, refreshToken string) error {
	resp, err := a.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(models.LogoutRequest{RefreshToken: refreshToken}).
		Post("/api/auth/logout")

	a.SetToken("")

	if err != nil {
		return fmt.Errorf("logout request: %w", err)
	}
	return mapHTTPError(resp)
}

// IssueChallenge implements [ApiClient]. It POSTs the challenge parameters
// to POST /api/verification/challenge with the Idempotency-Key header set,
// which makes the request safely retryable under the transient-failure
// policy. Returns the assigned request id and server-side challenge
// deadline.
func (a *apiClient) IssueChallenge(ctx context.Context, req models.ChallengeRequest, idempotencyKey string) (models.ChallengeResponse, error) {
	var challenge models.ChallengeResponse

	resp, err := a.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetHeader(headerIdempotencyKey, idempotencyKey).
		SetBody(req).
		SetResult(&challenge).
		Post("/api/verification/challenge")
	if err != nil {
		return models.ChallengeResponse{}, fmt.Errorf("issue challenge request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.ChallengeResponse{}, err
	}

	return challenge, nil
}

// GetStatus implements [ApiClient]. It GETs
// GET /api/verification/status/{request_id} and decodes the server-side
// state and latest event sequence for the request.
func (a *apiClient) GetStatus(ctx context.Context, requestID string) (models.StatusResponse, error) {
	resp, err := a.authedRequest(ctx).
		Get("/api/verification/status/" + url.PathEscape(requestID))
	if err != nil {
		return models.StatusResponse{}, fmt.Errorf("get status request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.StatusResponse{}, err
	}

	var status models.StatusResponse
	if err = json.Unmarshal(resp.Body(), &status); err != nil {
		return models.StatusResponse{}, fmt.Errorf("decode status response: %w", err)
	}

	return status, nil
}

// Confirm implements [ApiClient]. It POSTs the manually entered code to
// POST /api/verification/confirm. The request carries no idempotency key on
// purpose: an automatic retry could burn a second confirmation attempt, so
// transient failures surface to the caller instead.
func (a *apiClient) Confirm(ctx context.Context, requestID, code string) (models.ConfirmResponse, error) {
	var confirm models.ConfirmResponse

	resp, err := a.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(models.ConfirmRequest{RequestID: requestID, Code: code}).
		SetResult(&confirm).
		Post("/api/verification/confirm")
	if err != nil {
		return models.ConfirmResponse{}, fmt.Errorf("confirm request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.ConfirmResponse{}, err
	}

	return confirm, nil
}

// SearchMerchants implements [ApiClient]. It GETs GET /api/merchants?q= and
// decodes the matching merchant list.
func (a *apiClient) SearchMerchants(ctx context.Context, query string) ([]models.Merchant, error) {
	resp, err := a.authedRequest(ctx).
		SetQueryParam("q", query).
		Get("/api/merchants")
	if err != nil {
		return nil, fmt.Errorf("search merchants request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	var merchants []models.Merchant
	if err = json.Unmarshal(resp.Body(), &merchants); err != nil {
		return nil, fmt.Errorf("decode merchants response: %w", err)
	}

	return merchants, nil
}

// Ping implements [ApiClient]. It GETs GET /api/health and reports whether
// the API answered with a 2xx status.
func (a *apiClient) Ping(ctx context.Context) error {
	resp, err := a.client.R().
		SetContext(ctx).
		Get("/api/health")
	if err != nil {
		return fmt.Errorf("health request: %w", err)
	}

	return mapHTTPError(resp)
}

func (a *apiClient) authedRequest(ctx context.Context) *resty.Request {
	req := a.client.R().SetContext(ctx)
	if token := a.Token(); token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}
	return req
}

// withAccessExpiry annotates the pair with the parsed exp claim of its
// access token. A token whose expiry cannot be read keeps a zero
// AccessExpiresAt; the refresh job then leaves scheduling to the server's
// 401 responses.
func withAccessExpiry(pair models.TokenPair) models.TokenPair {
	if expiresAt, err := utils.TokenExpiry(pair.AccessToken); err == nil {
		pair.AccessExpiresAt = expiresAt
	}
	return pair
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-merchant-verify/internal/config"
	"github.com/MKhiriev/go-merchant-verify/internal/logger"
	"github.com/MKhiriev/go-merchant-verify/internal/utils"
	"github.com/MKhiriev/go-merchant-verify/models"
)

// newTestClient builds an apiClient aimed at the test server with fast
// retry timing.
func newTestClient(t *testing.T, serverURL string) *apiClient {
	t.Helper()

	cfg := config.Adapter{
		APIBaseURL:       serverURL,
		RequestTimeout:   2 * time.Second,
		RetryMaxAttempts: 3,
		RetryBaseWait:    time.Millisecond,
	}

	a, err := NewApiClient(cfg, "corr-test", logger.Nop())
	require.NoError(t, err)
	return a.(*apiClient)
}

// signedAccessToken returns a compact JWS with the given expiry.
func signedAccessToken(t *testing.T, expiresAt time.Time) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"exp": expiresAt.Unix()})
	signed, err := token.SignedString([]byte("server-side-key"))
	require.NoError(t, err)
	return signed
}

// ── Login ────────────────────────────────────────────────────────────────────

func TestLogin_Success(t *testing.T) {
	expiresAt := time.Now().Add(time.Hour).Truncate(time.Second)
	accessToken := signedAccessToken(t, expiresAt)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/auth/login", r.URL.Path)
		assert.Equal(t, "corr-test", r.Header.Get("X-Correlation-ID"))

		var req models.LoginRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "alice@example.com", req.Login)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(models.TokenPair{
			AccessToken:  accessToken,
			RefreshToken: "refresh-1",
			ExpiresIn:    3600,
		})
	}))
	defer srv.Close()

	a := newTestClient(t, srv.URL)
	pair, err := a.Login(context.Background(), models.LoginRequest{Login: "alice@example.com", Password: "pw"})

	require.NoError(t, err)
	assert.Equal(t, accessToken, pair.AccessToken)
	assert.Equal(t, "refresh-1", pair.RefreshToken)
	assert.True(t, pair.AccessExpiresAt.Equal(expiresAt), "access expiry must be parsed from the token")
	assert.Equal(t, accessToken, a.Token())
}

func TestLogin_Unauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte("invalid login/password"))
	}))
	defer srv.Close()

	a := newTestClient(t, srv.URL)
	_, err := a.Login(context.Background(), models.LoginRequest{Login: "alice@example.com"})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnauthorized)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, "invalid login/password", apiErr.Body)
}

// ── Refresh ──────────────────────────────────────────────────────────────────

func TestRefresh_Success(t *testing.T) {
	accessToken := signedAccessToken(t, time.Now().Add(time.Hour))

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/auth/refresh", r.URL.Path)

		var req models.RefreshRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "refresh-old", req.RefreshToken)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(models.TokenPair{
			AccessToken:  accessToken,
			RefreshToken: "refresh-new",
		})
	}))
	defer srv.Close()

	a := newTestClient(t, srv.URL)
	pair, err := a.Refresh(context.Background(), "refresh-old")

	require.NoError(t, err)
	assert.Equal(t, "refresh-new", pair.RefreshToken)
	assert.Equal(t, accessToken, a.Token())
	assert.False(t, pair.AccessExpiresAt.IsZero())
}

func TestRefresh_Unauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte("refresh token revoked"))
	}))
	defer srv.Close()

	a := newTestClient(t, srv.URL)
	_, err := a.Refresh(context.Background(), "refresh-old")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

// ── Logout ───────────────────────────────────────────────────────────────────

func TestLogout_ClearsToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/auth/logout", r.URL.Path)
		assert.Equal(t, "Bearer sometoken", r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	a := newTestClient(t, srv.URL)
	a.SetToken("sometoken")

	require.NoError(t, a.Logout(context.Background(), "refresh-1"))
	assert.Empty(t, a.Token())
}

func TestLogout_ClearsTokenOnServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	a := newTestClient(t, srv.URL)
	a.SetToken("sometoken")

	err := a.Logout(context.Background(), "refresh-1")
	require.Error(t, err)
	assert.Empty(t, a.Token(), "local token must be dropped even when revocation fails")
}

// ── IssueChallenge ───────────────────────────────────────────────────────────

func TestIssueChallenge_Success(t *testing.T) {
	expiresAt := time.Now().Add(2 * time.Minute).UTC().Truncate(time.Second)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/verification/challenge", r.URL.Path)
		assert.Equal(t, "idem-123", r.Header.Get("Idempotency-Key"))
		assert.Equal(t, "corr-test", r.Header.Get("X-Correlation-ID"))

		var req models.ChallengeRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "m-1001", req.MerchantID)
		assert.Equal(t, models.DeliveryEmail, req.Method)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(models.ChallengeResponse{
			RequestID:          "req-1",
			ChallengeExpiresAt: expiresAt,
		})
	}))
	defer srv.Close()

	a := newTestClient(t, srv.URL)
	a.SetToken("sometoken")

	got, err := a.IssueChallenge(context.Background(), models.ChallengeRequest{
		MerchantID:      "m-1001",
		Method:          models.DeliveryEmail,
		DeliveryAddress: "user@example.com",
	}, "idem-123")

	require.NoError(t, err)
	assert.Equal(t, "req-1", got.RequestID)
	assert.True(t, got.ChallengeExpiresAt.Equal(expiresAt))
}

func TestIssueChallenge_RetriesServerErrors(t *testing.T) {
	var mu sync.Mutex
	attempts := 0

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		attempts++
		n := attempts
		mu.Unlock()

		assert.Equal(t, "idem-456", r.Header.Get("Idempotency-Key"))
		if n < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(models.ChallengeResponse{RequestID: "req-2"})
	}))
	defer srv.Close()

	a := newTestClient(t, srv.URL)
	got, err := a.IssueChallenge(context.Background(), models.ChallengeRequest{MerchantID: "m-1001"}, "idem-456")

	require.NoError(t, err)
	assert.Equal(t, "req-2", got.RequestID)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 3, attempts, "keyed POST must be retried until success")
}

func TestIssueChallenge_TooManyRequests(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte("slow down"))
	}))
	defer srv.Close()

	a := newTestClient(t, srv.URL)
	_, err := a.IssueChallenge(context.Background(), models.ChallengeRequest{MerchantID: "m-1001"}, "idem-789")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTooManyRequests)
}

// ── GetStatus ────────────────────────────────────────────────────────────────

func TestGetStatus_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/verification/status/req-1", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(models.StatusResponse{
			RequestID: "req-1",
			State:     models.StateAwaitingApproval,
			Sequence:  4,
		})
	}))
	defer srv.Close()

	a := newTestClient(t, srv.URL)
	a.SetToken("sometoken")

	got, err := a.GetStatus(context.Background(), "req-1")

	require.NoError(t, err)
	assert.Equal(t, "req-1", got.RequestID)
	assert.Equal(t, models.StateAwaitingApproval, got.State)
	assert.Equal(t, uint64(4), got.Sequence)
}

func TestGetStatus_RetriesTimeoutsThenSucceeds(t *testing.T) {
	var mu sync.Mutex
	attempts := 0

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		attempts++
		n := attempts
		mu.Unlock()

		if n < 3 {
			time.Sleep(200 * time.Millisecond) // past the client timeout
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(models.StatusResponse{RequestID: "req-1", State: models.StateApproved, Sequence: 1})
	}))
	defer srv.Close()

	cfg := config.Adapter{
		APIBaseURL:       srv.URL,
		RequestTimeout:   50 * time.Millisecond,
		RetryMaxAttempts: 3,
		RetryBaseWait:    time.Millisecond,
	}
	a, err := NewApiClient(cfg, "corr-test", logger.Nop())
	require.NoError(t, err)

	got, err := a.GetStatus(context.Background(), "req-1")

	require.NoError(t, err)
	assert.Equal(t, models.StateApproved, got.State)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 3, attempts, "two timed-out attempts then one success")
}

func TestGetStatus_RetriesExhaustAtConfiguredMax(t *testing.T) {
	var mu sync.Mutex
	attempts := 0

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		attempts++
		mu.Unlock()
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	a := newTestClient(t, srv.URL)
	_, err := a.GetStatus(context.Background(), "req-1")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInternalServerError)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 3, attempts, "attempts must stop at the configured max")
}

func TestGetStatus_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte("unknown request"))
	}))
	defer srv.Close()

	a := newTestClient(t, srv.URL)
	_, err := a.GetStatus(context.Background(), "req-404")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

// ── Confirm ──────────────────────────────────────────────────────────────────

func TestConfirm_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/verification/confirm", r.URL.Path)
		assert.Empty(t, r.Header.Get("Idempotency-Key"))

		var req models.ConfirmRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "req-1", req.RequestID)
		assert.Equal(t, "123456", req.Code)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(models.ConfirmResponse{State: models.StateApproved})
	}))
	defer srv.Close()

	a := newTestClient(t, srv.URL)
	a.SetToken("sometoken")

	got, err := a.Confirm(context.Background(), "req-1", "123456")

	require.NoError(t, err)
	assert.Equal(t, models.StateApproved, got.State)
}

func TestConfirm_NoRetryWithoutIdempotencyKey(t *testing.T) {
	var mu sync.Mutex
	attempts := 0

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		attempts++
		mu.Unlock()
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	a := newTestClient(t, srv.URL)
	_, err := a.Confirm(context.Background(), "req-1", "123456")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInternalServerError)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 1, attempts, "unkeyed POST must get exactly one attempt")
}

func TestConfirm_NoRetryOnConnectionReset(t *testing.T) {
	var mu sync.Mutex
	attempts := 0

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		attempts++
		mu.Unlock()

		hj, ok := w.(http.Hijacker)
		if !ok {
			t.Error("response writer does not support hijacking")
			return
		}
		conn, _, err := hj.Hijack()
		if err != nil {
			t.Errorf("hijack failed: %v", err)
			return
		}
		_ = conn.Close()
	}))
	defer srv.Close()

	a := newTestClient(t, srv.URL)
	_, err := a.Confirm(context.Background(), "req-1", "123456")

	require.Error(t, err)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 1, attempts, "connection reset must surface, not retry")
}

// ── SearchMerchants ──────────────────────────────────────────────────────────

func TestSearchMerchants_Success(t *testing.T) {
	want := []models.Merchant{
		{MerchantID: "m-1001", Name: "Acme Store", Category: "retail"},
		{MerchantID: "m-1002", Name: "Acme Cafe", Category: "food"},
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/merchants", r.URL.Path)
		assert.Equal(t, "acme", r.URL.Query().Get("q"))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(want)
	}))
	defer srv.Close()

	a := newTestClient(t, srv.URL)
	a.SetToken("sometoken")

	got, err := a.SearchMerchants(context.Background(), "acme")

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, want[0].MerchantID, got[0].MerchantID)
	assert.Equal(t, want[1].Name, got[1].Name)
}

func TestSearchMerchants_Forbidden(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte("access denied"))
	}))
	defer srv.Close()

	a := newTestClient(t, srv.URL)
	_, err := a.SearchMerchants(context.Background(), "acme")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrForbidden)
}

// ── Ping ─────────────────────────────────────────────────────────────────────

func TestPing_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/health", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	a := newTestClient(t, srv.URL)
	require.NoError(t, a.Ping(context.Background()))
}

func TestPing_ServiceUnavailable(t *testing.T) {
	var mu sync.Mutex
	attempts := 0

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		attempts++
		mu.Unlock()
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	a := newTestClient(t, srv.URL)
	err := a.Ping(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrServiceUnavailable)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 3, attempts, "health GET is retried as idempotent")
}

// ── Correlation ID ───────────────────────────────────────────────────────────

func TestCorrelationID_ContextOverride(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "corr-override", r.Header.Get("X-Correlation-ID"))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	a := newTestClient(t, srv.URL)
	ctx := utils.WithCorrelationID(context.Background(), "corr-override")

	require.NoError(t, a.Ping(ctx))
}

// ── normalizeBaseURL ─────────────────────────────────────────────────────────

func TestNormalizeBaseURL(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"valid http", "http://localhost:8080", "http://localhost:8080", false},
		{"valid https", "https://verify.example.com", "https://verify.example.com", false},
		{"no scheme", "localhost:8080", "http://localhost:8080", false},
		{"trailing slash", "http://localhost:8080/", "http://localhost:8080", false},
		{"empty", "", "", true},
		{"no host", "http://", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := normalizeBaseURL(tt.input)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

type fakeChecker struct {
	err error
}

func (c *fakeChecker) Ping(ctx context.Context) error {
	return c.err
}

func TestHealthHandler_Healthz(t *testing.T) {
	h := NewHealthHandler(nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()

	h.Healthz(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", rec.Code)
	}

	var resp HealthResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Status != "ok" {
		t.Errorf("unexpected status: %s", resp.Status)
	}
}

func TestHealthHandler_Readyz(t *testing.T) {
	tests := []struct {
		name       string
		db         HealthChecker
		cache      HealthChecker
		wantStatus int
		wantStore  string
		wantRedis  string
	}{
		{
			name:       "all healthy",
			db:         &fakeChecker{},
			cache:      &fakeChecker{},
			wantStatus: http.StatusOK,
			wantStore:  "ok",
			wantRedis:  "ok",
		},
		{
			name:       "cache not configured",
			db:         &fakeChecker{},
			cache:      nil,
			wantStatus: http.StatusOK,
			wantStore:  "ok",
			wantRedis:  "not configured",
		},
		{
			name:       "store failing",
			db:         &fakeChecker{err: errors.New("connection refused")},
			cache:      nil,
			wantStatus: http.StatusServiceUnavailable,
			wantStore:  "error: connection refused",
			wantRedis:  "not configured",
		},
		{
			name:       "cache failing",
			db:         &fakeChecker{},
			cache:      &fakeChecker{err: errors.New("timeout")},
			wantStatus: http.StatusServiceUnavailable,
			wantStore:  "ok",
			wantRedis:  "error: timeout",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHealthHandler(tt.db, tt.cache)

			req := httptest.NewRequest(http.MethodGet, "/readyz", nil)
			rec := httptest.NewRecorder()

			h.Readyz(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d", tt.wantStatus, rec.Code)
			}

			var resp HealthResponse
			if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if resp.Checks["store"] != tt.wantStore {
				t.Errorf("store check: expected %q, got %q", tt.wantStore, resp.Checks["store"])
			}
			if resp.Checks["redis"] != tt.wantRedis {
				t.Errorf("redis check: expected %q, got %q", tt.wantRedis, resp.Checks["redis"])
			}
		})
	}
}

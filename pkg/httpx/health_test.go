package httpx_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ghuser/boundedstr/pkg/httpx"
)

type stubChecker struct{ err error }

func (s *stubChecker) Ping(_ context.Context) error { return s.err }

func serveHealth(t *testing.T, checks httpx.HealthChecks) (*httptest.ResponseRecorder, map[string]string) {
	t.Helper()
	rr := httptest.NewRecorder()
	httpx.HealthHandler(checks).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", http.NoBody))
	var resp map[string]string
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return rr, resp
}

func TestHealthHandler(t *testing.T) {
	down := errors.New("down")
	tests := []struct {
		name       string
		checks     httpx.HealthChecks
		wantCode   int
		wantStatus string
		wantDown   []string
	}{
		{
			name:       "all healthy",
			checks:     httpx.HealthChecks{"database": &stubChecker{}, "redis": &stubChecker{}, "event_bus": &stubChecker{}},
			wantCode:   http.StatusOK,
			wantStatus: "ok",
		},
		{
			name:       "database down",
			checks:     httpx.HealthChecks{"database": &stubChecker{err: down}, "redis": &stubChecker{}},
			wantCode:   http.StatusServiceUnavailable,
			wantStatus: "degraded",
			wantDown:   []string{"database"},
		},
		{
			name:       "redis down",
			checks:     httpx.HealthChecks{"database": &stubChecker{}, "redis": &stubChecker{err: down}},
			wantCode:   http.StatusServiceUnavailable,
			wantStatus: "degraded",
			wantDown:   []string{"redis"},
		},
		{
			name:       "all down",
			checks:     httpx.HealthChecks{"database": &stubChecker{err: down}, "redis": &stubChecker{err: down}, "event_bus": &stubChecker{err: down}},
			wantCode:   http.StatusServiceUnavailable,
			wantStatus: "degraded",
			wantDown:   []string{"database", "redis", "event_bus"},
		},
		{
			name:       "no checks",
			checks:     httpx.HealthChecks{},
			wantCode:   http.StatusOK,
			wantStatus: "ok",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr, resp := serveHealth(t, tt.checks)
			if rr.Code != tt.wantCode {
				t.Fatalf("expected %d, got %d", tt.wantCode, rr.Code)
			}
			if resp["status"] != tt.wantStatus {
				t.Errorf("status: got %q, want %q", resp["status"], tt.wantStatus)
			}
			for _, name := range tt.wantDown {
				if resp[name] != "unreachable" {
					t.Errorf("%s: got %q, want unreachable", name, resp[name])
				}
			}
		})
	}
}

func TestHealthHandler_ContentType(t *testing.T) {
	rr, _ := serveHealth(t, httpx.HealthChecks{"database": &stubChecker{}})
	ct := rr.Header().Get("Content-Type")
	if ct != "application/json; charset=utf-8" {
		t.Errorf("Content-Type: got %q, want %q", ct, "application/json; charset=utf-8")
	}
}

package metrics_test

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/verimail/verimail/internal/health"
	"github.com/verimail/verimail/internal/metrics"
)

type fakePinger struct {
	err error
}

func (p *fakePinger) Ping(_ context.Context) error { return p.err }

func newTestServer(p health.Pinger) *http.Server {
	checker := health.NewChecker(p, slog.Default(), prometheus.NewRegistry())
	return metrics.NewServer(":0", checker)
}

func get(srv *http.Server, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	srv.Handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestServer_ServesMetrics(t *testing.T) {
	w := get(newTestServer(&fakePinger{}), "/metrics")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
}

func TestServer_Healthz_AlwaysUp(t *testing.T) {
	w := get(newTestServer(&fakePinger{err: errors.New("db down")}), "/healthz")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var result health.HealthResult
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if result.Status != "up" {
		t.Errorf("status = %q, want up", result.Status)
	}
}

func TestServer_Readyz_ReflectsDependencyHealth(t *testing.T) {
	w := get(newTestServer(&fakePinger{}), "/readyz")
	if w.Code != http.StatusOK {
		t.Fatalf("healthy: status = %d, want 200", w.Code)
	}

	w = get(newTestServer(&fakePinger{err: errors.New("connection refused")}), "/readyz")
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("unhealthy: status = %d, want 503", w.Code)
	}

	var result health.HealthResult
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if result.Status != "down" {
		t.Errorf("status = %q, want down", result.Status)
	}
}

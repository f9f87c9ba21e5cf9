package server

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/agbru/bigint/internal/logging"
	"github.com/agbru/bigint/internal/metrics"
)

func newTestServer() *Server {
	return New("127.0.0.1:0", metrics.NewCollector(), logging.NewLogger(io.Discard, "server"))
}

func TestServer_MetricsMethods(t *testing.T) {
	t.Parallel()
	s := newTestServer()
	s.metrics.ObserveCase("add", time.Microsecond, nil, false)

	tests := []struct {
		method   string
		wantCode int
		wantBody string
	}{
		{http.MethodGet, http.StatusOK, `bigcalc_verify_cases_total{op="add",outcome="ok"} 1`},
		{http.MethodHead, http.StatusOK, ""},
		{http.MethodPost, http.StatusMethodNotAllowed, "method not allowed"},
		{http.MethodDelete, http.StatusMethodNotAllowed, "method not allowed"},
	}
	for _, tt := range tests {
		rec := httptest.NewRecorder()
		s.handleMetrics(rec, httptest.NewRequest(tt.method, "/metrics", http.NoBody))
		if rec.Code != tt.wantCode {
			t.Errorf("%s: status = %d, want %d", tt.method, rec.Code, tt.wantCode)
		}
		if !strings.Contains(rec.Body.String(), tt.wantBody) {
			t.Errorf("%s: body lacks %q", tt.method, tt.wantBody)
		}
		if tt.wantCode == http.StatusMethodNotAllowed && rec.Header().Get("Allow") != "GET, HEAD" {
			t.Errorf("%s: Allow = %q", tt.method, rec.Header().Get("Allow"))
		}
	}
}

func get(t *testing.T, url string) (int, string) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("reading %s: %v", url, err)
	}
	return resp.StatusCode, string(body)
}

func TestServer_Lifecycle(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	addr, err := newTestServer().Start(ctx)
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if code, body := get(t, "http://"+addr+"/healthz"); code != http.StatusOK || body != "ok\n" {
		t.Errorf("/healthz = %d %q", code, body)
	}
	// The scrape counter is incremented before the registry is gathered.
	if _, body := get(t, "http://"+addr+"/metrics"); !strings.Contains(body, "bigcalc_metrics_requests_total 1") {
		t.Error("/metrics does not count its own request")
	}

	cancel()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if _, err := http.Get("http://" + addr + "/healthz"); err != nil {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Error("server still serving after its context ended")
}

func TestServer_StartBadAddress(t *testing.T) {
	t.Parallel()
	s := New("256.0.0.1:http-nope", metrics.NewCollector(), logging.NewLogger(io.Discard, "server"))
	if _, err := s.Start(context.Background()); err == nil || !strings.HasPrefix(err.Error(), "metrics server:") {
		t.Errorf("Start() error = %v", err)
	}
}

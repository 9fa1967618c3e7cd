package middleware_test

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/kitelabs/kite/pkg/middleware"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestCORSConfigDefaults(t *testing.T) {
	cfg := middleware.CORSConfig{}
	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}

	if len(cfg.AllowedMethods) == 0 {
		t.Error("AllowedMethods empty after Finalize")
	}
	if len(cfg.AllowedHeaders) == 0 {
		t.Error("AllowedHeaders empty after Finalize")
	}
	if cfg.MaxAge != 3600 {
		t.Errorf("MaxAge = %d, want 3600", cfg.MaxAge)
	}
}

func TestCORSDisabledPassesThrough(t *testing.T) {
	cfg := &middleware.CORSConfig{Enabled: false}
	handler := middleware.CORS(cfg)(okHandler())

	req := httptest.NewRequest("GET", "/cheques", nil)
	req.Header.Set("Origin", "https://example.com")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("Allow-Origin = %q, want empty", got)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}

func TestCORSAllowedOrigin(t *testing.T) {
	cfg := &middleware.CORSConfig{
		Enabled:        true,
		Origins:        []string{"https://example.com"},
		AllowedMethods: []string{"GET", "POST"},
		AllowedHeaders: []string{"Content-Type"},
		MaxAge:         600,
	}
	handler := middleware.CORS(cfg)(okHandler())

	req := httptest.NewRequest("GET", "/cheques", nil)
	req.Header.Set("Origin", "https://example.com")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://example.com" {
		t.Errorf("Allow-Origin = %q, want https://example.com", got)
	}
	if got := rec.Header().Get("Access-Control-Max-Age"); got != "600" {
		t.Errorf("Max-Age = %q, want 600", got)
	}
}

func TestCORSRejectedOrigin(t *testing.T) {
	cfg := &middleware.CORSConfig{
		Enabled: true,
		Origins: []string{"https://example.com"},
	}
	handler := middleware.CORS(cfg)(okHandler())

	req := httptest.NewRequest("GET", "/cheques", nil)
	req.Header.Set("Origin", "https://evil.example")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("Allow-Origin = %q, want empty", got)
	}
}

func TestLoggerRecordsRequest(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	handler := middleware.Logger(logger)(okHandler())

	req := httptest.NewRequest("GET", "/cheques?page=2", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}

	logged := buf.String()
	if !strings.Contains(logged, "method=GET") {
		t.Errorf("log missing method: %q", logged)
	}
	if !strings.Contains(logged, "/cheques?page=2") {
		t.Errorf("log missing request URI: %q", logged)
	}
}

func TestCORSPreflightShortCircuits(t *testing.T) {
	cfg := &middleware.CORSConfig{
		Enabled: true,
		Origins: []string{"https://example.com"},
	}

	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})
	handler := middleware.CORS(cfg)(next)

	req := httptest.NewRequest("OPTIONS", "/cheques", nil)
	req.Header.Set("Origin", "https://example.com")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if called {
		t.Error("next handler called on preflight")
	}
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}

package module_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kitelabs/kite/pkg/module"
)

func innerMux(body string) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /cheques", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(body))
	})
	return mux
}

func TestNewValidatesPrefix(t *testing.T) {
	tests := []struct {
		name   string
		prefix string
		panics bool
	}{
		{"valid prefix", "/api", false},
		{"empty prefix", "", true},
		{"missing slash", "api", true},
		{"multi level", "/api/v1", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				r := recover()
				if tt.panics && r == nil {
					t.Errorf("New(%q) did not panic", tt.prefix)
				}
				if !tt.panics && r != nil {
					t.Errorf("New(%q) panicked: %v", tt.prefix, r)
				}
			}()
			module.New(tt.prefix, innerMux("ok"))
		})
	}
}

func TestModuleStripsPrefix(t *testing.T) {
	m := module.New("/api", innerMux("cheques"))

	router := module.NewRouter()
	router.Mount(m)

	req := httptest.NewRequest("GET", "/api/cheques", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Body.String() != "cheques" {
		t.Errorf("body = %q, want cheques", rec.Body.String())
	}
}

func TestModuleMiddlewareApplied(t *testing.T) {
	m := module.New("/api", innerMux("ok"))
	m.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Traced", "yes")
			next.ServeHTTP(w, r)
		})
	})

	router := module.NewRouter()
	router.Mount(m)

	req := httptest.NewRequest("GET", "/api/cheques", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Header().Get("X-Traced") != "yes" {
		t.Error("middleware header missing")
	}
}

func TestRouterNativeFallback(t *testing.T) {
	router := module.NewRouter()
	router.HandleNative("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})

	req := httptest.NewRequest("GET", "/healthz", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Body.String() != "ok" {
		t.Errorf("body = %q, want ok", rec.Body.String())
	}
}

func TestRouterTrailingSlashNormalized(t *testing.T) {
	m := module.New("/api", innerMux("cheques"))

	router := module.NewRouter()
	router.Mount(m)

	req := httptest.NewRequest("GET", "/api/cheques/", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Body.String() != "cheques" {
		t.Errorf("body = %q, want cheques", rec.Body.String())
	}
}

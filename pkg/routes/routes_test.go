package routes_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kitelabs/kite/pkg/routes"
)

func handlerWriting(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(body))
	}
}

func TestRegisterGroup(t *testing.T) {
	mux := http.NewServeMux()

	routes.Register(mux, routes.Group{
		Prefix: "/cheques",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: handlerWriting("list")},
			{Method: "GET", Pattern: "/{id}", Handler: handlerWriting("find")},
		},
	})

	tests := []struct {
		name   string
		method string
		path   string
		want   string
	}{
		{"list route", "GET", "/cheques", "list"},
		{"find route", "GET", "/cheques/abc", "find"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)

			if rec.Body.String() != tt.want {
				t.Errorf("body = %q, want %q", rec.Body.String(), tt.want)
			}
		})
	}
}

func TestRegisterNestedGroups(t *testing.T) {
	mux := http.NewServeMux()

	routes.Register(mux, routes.Group{
		Prefix: "/decisions",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: handlerWriting("decisions")},
		},
		Children: []routes.Group{
			{
				Prefix: "/cheque",
				Routes: []routes.Route{
					{Method: "GET", Pattern: "/{id}", Handler: handlerWriting("by-cheque")},
				},
			},
		},
	})

	req := httptest.NewRequest("GET", "/decisions/cheque/abc", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Body.String() != "by-cheque" {
		t.Errorf("body = %q, want by-cheque", rec.Body.String())
	}
}

func TestMethodMismatch(t *testing.T) {
	mux := http.NewServeMux()

	routes.Register(mux, routes.Group{
		Prefix: "/cheques",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: handlerWriting("list")},
		},
	})

	req := httptest.NewRequest("DELETE", "/cheques", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusMethodNotAllowed)
	}
}

package pagination_test

import (
	"encoding/json"
	"net/url"
	"testing"

	"github.com/kitelabs/kite/pkg/pagination"
)

func testConfig() pagination.Config {
	return pagination.Config{
		DefaultPageSize: 20,
		MaxPageSize:     100,
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name         string
		page         int
		pageSize     int
		wantPage     int
		wantPageSize int
	}{
		{"zero values", 0, 0, 1, 20},
		{"negative page", -3, 10, 1, 10},
		{"oversized page size", 1, 500, 1, 100},
		{"valid values unchanged", 2, 50, 2, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := pagination.PageRequest{Page: tt.page, PageSize: tt.pageSize}
			req.Normalize(testConfig())

			if req.Page != tt.wantPage {
				t.Errorf("Page = %d, want %d", req.Page, tt.wantPage)
			}
			if req.PageSize != tt.wantPageSize {
				t.Errorf("PageSize = %d, want %d", req.PageSize, tt.wantPageSize)
			}
		})
	}
}

func TestOffset(t *testing.T) {
	req := pagination.PageRequest{Page: 3, PageSize: 25}
	if got := req.Offset(); got != 50 {
		t.Errorf("Offset() = %d, want 50", got)
	}
}

func TestPageRequestFromQuery(t *testing.T) {
	values := url.Values{
		"page":      {"2"},
		"page_size": {"10"},
		"search":    {"acme"},
		"sort":      {"-UploadedAt"},
	}

	req := pagination.PageRequestFromQuery(values, testConfig())

	if req.Page != 2 {
		t.Errorf("Page = %d, want 2", req.Page)
	}
	if req.PageSize != 10 {
		t.Errorf("PageSize = %d, want 10", req.PageSize)
	}
	if req.Search == nil || *req.Search != "acme" {
		t.Errorf("Search = %v, want acme", req.Search)
	}
	if len(req.Sort) != 1 || req.Sort[0].Field != "UploadedAt" || !req.Sort[0].Descending {
		t.Errorf("Sort = %+v, want descending UploadedAt", req.Sort)
	}
}

func TestSortFieldsUnmarshalJSON(t *testing.T) {
	t.Run("string form", func(t *testing.T) {
		var req pagination.PageRequest
		if err := json.Unmarshal([]byte(`{"sort": "Name,-CreatedAt"}`), &req); err != nil {
			t.Fatalf("Unmarshal error = %v", err)
		}
		if len(req.Sort) != 2 {
			t.Fatalf("Sort length = %d, want 2", len(req.Sort))
		}
		if req.Sort[1].Field != "CreatedAt" || !req.Sort[1].Descending {
			t.Errorf("Sort[1] = %+v, want descending CreatedAt", req.Sort[1])
		}
	})

	t.Run("array form", func(t *testing.T) {
		var req pagination.PageRequest
		body := `{"sort": [{"Field": "Name", "Descending": true}]}`
		if err := json.Unmarshal([]byte(body), &req); err != nil {
			t.Fatalf("Unmarshal error = %v", err)
		}
		if len(req.Sort) != 1 || !req.Sort[0].Descending {
			t.Errorf("Sort = %+v, want single descending field", req.Sort)
		}
	})
}

func TestNewPageResult(t *testing.T) {
	tests := []struct {
		name           string
		total          int
		pageSize       int
		wantTotalPages int
	}{
		{"exact division", 100, 20, 5},
		{"with remainder", 101, 20, 6},
		{"empty result", 0, 20, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := pagination.NewPageResult([]string{}, tt.total, 1, tt.pageSize)
			if result.TotalPages != tt.wantTotalPages {
				t.Errorf("TotalPages = %d, want %d", result.TotalPages, tt.wantTotalPages)
			}
		})
	}

	t.Run("nil data becomes empty slice", func(t *testing.T) {
		result := pagination.NewPageResult[string](nil, 0, 1, 20)
		if result.Data == nil {
			t.Error("Data = nil, want empty slice")
		}
	})
}

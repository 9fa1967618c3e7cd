package cheques_test

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"testing"

	"github.com/kitelabs/kite/internal/cheques"
)

func TestValidStatus(t *testing.T) {
	tests := []struct {
		status string
		want   bool
	}{
		{cheques.StatusReceived, true},
		{cheques.StatusReview, true},
		{cheques.StatusComplete, true},
		{cheques.StatusRejected, true},
		{"pending", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			if got := cheques.ValidStatus(tt.status); got != tt.want {
				t.Errorf("ValidStatus(%q) = %v, want %v", tt.status, got, tt.want)
			}
		})
	}
}

func TestSupportedContentType(t *testing.T) {
	tests := []struct {
		contentType string
		want        bool
	}{
		{"application/pdf", true},
		{"image/png", true},
		{"image/jpeg", true},
		{"image/tiff", false},
		{"image/gif", false},
		{"text/plain", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.contentType, func(t *testing.T) {
			if got := cheques.SupportedContentType(tt.contentType); got != tt.want {
				t.Errorf("SupportedContentType(%q) = %v, want %v", tt.contentType, got, tt.want)
			}
		})
	}
}

func TestMapHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", cheques.ErrNotFound, http.StatusNotFound},
		{"duplicate", cheques.ErrDuplicate, http.StatusConflict},
		{"file too large", cheques.ErrFileTooLarge, http.StatusRequestEntityTooLarge},
		{"invalid file", cheques.ErrInvalidFile, http.StatusBadRequest},
		{"invalid status", cheques.ErrInvalidStatus, http.StatusBadRequest},
		{"wrapped not found", fmt.Errorf("find: %w", cheques.ErrNotFound), http.StatusNotFound},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cheques.MapHTTPStatus(tt.err); got != tt.want {
				t.Errorf("MapHTTPStatus(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestFiltersFromQuery(t *testing.T) {
	t.Run("all params present", func(t *testing.T) {
		values := url.Values{
			"status":       {"review"},
			"filename":     {"cheque-042"},
			"content_type": {"application/pdf"},
			"storage_key":  {"cheques/abc"},
		}

		f := cheques.FiltersFromQuery(values)

		if f.Status == nil || *f.Status != "review" {
			t.Errorf("Status = %v, want review", f.Status)
		}
		if f.Filename == nil || *f.Filename != "cheque-042" {
			t.Errorf("Filename = %v, want cheque-042", f.Filename)
		}
		if f.ContentType == nil || *f.ContentType != "application/pdf" {
			t.Errorf("ContentType = %v, want application/pdf", f.ContentType)
		}
		if f.StorageKey == nil || *f.StorageKey != "cheques/abc" {
			t.Errorf("StorageKey = %v, want cheques/abc", f.StorageKey)
		}
	})

	t.Run("empty params yield nil fields", func(t *testing.T) {
		f := cheques.FiltersFromQuery(url.Values{})

		if f.Status != nil || f.Filename != nil || f.ContentType != nil || f.StorageKey != nil {
			t.Errorf("filters = %+v, want all nil", f)
		}
	})
}

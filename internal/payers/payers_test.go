package payers_test

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"testing"

	"github.com/kitelabs/kite/internal/payers"
)

func TestBehavior(t *testing.T) {
	p := payers.Payer{
		AccountNumber: "0042117788",
		Name:          "Meridian Fabrication Ltd",
		AvgAmount:     1250.50,
		MaxAmount:     8000,
		TypicalPayees: []string{"Steel Supply Co", "Acme Logistics"},
	}

	b := p.Behavior()

	if b.AccountHolder != p.Name {
		t.Errorf("AccountHolder = %q, want %q", b.AccountHolder, p.Name)
	}
	if b.AvgAmount != p.AvgAmount || b.MaxAmount != p.MaxAmount {
		t.Errorf("amounts = %v/%v, want %v/%v", b.AvgAmount, b.MaxAmount, p.AvgAmount, p.MaxAmount)
	}
	if len(b.TypicalPayees) != 2 {
		t.Errorf("TypicalPayees length = %d, want 2", len(b.TypicalPayees))
	}
}

func TestMapHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", payers.ErrNotFound, http.StatusNotFound},
		{"duplicate", payers.ErrDuplicate, http.StatusConflict},
		{"invalid", payers.ErrInvalid, http.StatusBadRequest},
		{"no signature", payers.ErrNoSignature, http.StatusNotFound},
		{"file too large", payers.ErrFileTooLarge, http.StatusRequestEntityTooLarge},
		{"wrapped duplicate", fmt.Errorf("insert: %w", payers.ErrDuplicate), http.StatusConflict},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := payers.MapHTTPStatus(tt.err); got != tt.want {
				t.Errorf("MapHTTPStatus(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestFiltersFromQuery(t *testing.T) {
	t.Run("all params present", func(t *testing.T) {
		values := url.Values{
			"account_number": {"0042117788"},
			"name":           {"Meridian"},
		}

		f := payers.FiltersFromQuery(values)

		if f.AccountNumber == nil || *f.AccountNumber != "0042117788" {
			t.Errorf("AccountNumber = %v, want 0042117788", f.AccountNumber)
		}
		if f.Name == nil || *f.Name != "Meridian" {
			t.Errorf("Name = %v, want Meridian", f.Name)
		}
	})

	t.Run("empty params yield nil fields", func(t *testing.T) {
		f := payers.FiltersFromQuery(url.Values{})
		if f.AccountNumber != nil || f.Name != nil {
			t.Errorf("filters = %+v, want all nil", f)
		}
	})
}

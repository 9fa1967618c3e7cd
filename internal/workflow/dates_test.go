package workflow_test

import (
	"errors"
	"testing"
	"time"

	"github.com/kitelabs/kite/internal/workflow"
)

func TestValidateChequeDate(t *testing.T) {
	// fixed reference point: 15 June 2026
	now := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		raw     string
		wantErr error
		want    time.Time
	}{
		{
			name: "valid recent date",
			raw:  "01052026",
			want: time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "near the stale boundary",
			raw:  "18122025",
			want: time.Date(2025, 12, 18, 0, 0, 0, 0, time.UTC),
		},
		{
			name:    "stale date",
			raw:     "01012025",
			wantErr: workflow.ErrDateStale,
		},
		{
			name:    "post-dated",
			raw:     "01072026",
			wantErr: workflow.ErrDatePostDated,
		},
		{
			name:    "invalid calendar date",
			raw:     "31022026",
			wantErr: workflow.ErrDateInvalid,
		},
		{
			name:    "non-digit characters",
			raw:     "01/05/26",
			wantErr: workflow.ErrDateFormat,
		},
		{
			name:    "wrong length",
			raw:     "0105202",
			wantErr: workflow.ErrDateFormat,
		},
		{
			name:    "empty",
			raw:     "",
			wantErr: workflow.ErrDateFormat,
		},
		{
			name: "six digit year at or below current resolves to 2000s",
			raw:  "010526",
			want: time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:    "six digit year above current resolves to 1900s",
			raw:     "010527",
			wantErr: workflow.ErrDateStale,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := workflow.ValidateChequeDate(tt.raw, now)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ValidateChequeDate(%q) error = %v, want %v", tt.raw, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ValidateChequeDate(%q) error = %v", tt.raw, err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("ValidateChequeDate(%q) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}

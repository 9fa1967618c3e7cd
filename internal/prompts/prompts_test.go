package prompts_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/kitelabs/kite/internal/prompts"
)

func TestParseStage(t *testing.T) {
	t.Run("all known stages parse", func(t *testing.T) {
		for _, stage := range prompts.Stages() {
			got, err := prompts.ParseStage(string(stage))
			if err != nil {
				t.Errorf("ParseStage(%q) error = %v", stage, err)
			}
			if got != stage {
				t.Errorf("ParseStage(%q) = %q", stage, got)
			}
		}
	})

	t.Run("unknown stage rejected", func(t *testing.T) {
		_, err := prompts.ParseStage("enhance")
		if !errors.Is(err, prompts.ErrInvalidStage) {
			t.Errorf("ParseStage(enhance) error = %v, want ErrInvalidStage", err)
		}
	})
}

func TestStageUnmarshalJSON(t *testing.T) {
	t.Run("valid stage", func(t *testing.T) {
		var s prompts.Stage
		if err := json.Unmarshal([]byte(`"tamper"`), &s); err != nil {
			t.Fatalf("Unmarshal error = %v", err)
		}
		if s != prompts.StageTamper {
			t.Errorf("stage = %q, want tamper", s)
		}
	})

	t.Run("invalid stage", func(t *testing.T) {
		var s prompts.Stage
		err := json.Unmarshal([]byte(`"triage"`), &s)
		if !errors.Is(err, prompts.ErrInvalidStage) {
			t.Errorf("Unmarshal error = %v, want ErrInvalidStage", err)
		}
	})
}

func TestInstructions(t *testing.T) {
	for _, stage := range prompts.Stages() {
		t.Run(string(stage), func(t *testing.T) {
			got, err := prompts.Instructions(stage)
			if err != nil {
				t.Fatalf("Instructions(%q) error = %v", stage, err)
			}
			if strings.TrimSpace(got) == "" {
				t.Errorf("Instructions(%q) is empty", stage)
			}
		})
	}

	t.Run("unknown stage", func(t *testing.T) {
		if _, err := prompts.Instructions(prompts.Stage("enhance")); err == nil {
			t.Error("Instructions(enhance) error = nil, want error")
		}
	})
}

func TestSpec(t *testing.T) {
	for _, stage := range prompts.Stages() {
		t.Run(string(stage), func(t *testing.T) {
			got, err := prompts.Spec(stage)
			if err != nil {
				t.Fatalf("Spec(%q) error = %v", stage, err)
			}
			if strings.TrimSpace(got) == "" {
				t.Errorf("Spec(%q) is empty", stage)
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
		{"not found", prompts.ErrNotFound, http.StatusNotFound},
		{"duplicate", prompts.ErrDuplicate, http.StatusConflict},
		{"invalid stage", prompts.ErrInvalidStage, http.StatusBadRequest},
		{"wrapped not found", fmt.Errorf("find: %w", prompts.ErrNotFound), http.StatusNotFound},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := prompts.MapHTTPStatus(tt.err); got != tt.want {
				t.Errorf("MapHTTPStatus(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

package workflow_test

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/kitelabs/kite/internal/prompts"
	"github.com/kitelabs/kite/internal/workflow"
)

func boolPtr(b bool) *bool { return &b }

func TestFraudDetected(t *testing.T) {
	tests := []struct {
		name  string
		state workflow.ChequeState
		want  bool
	}{
		{
			"clean state",
			workflow.ChequeState{},
			false,
		},
		{
			"tampering detected",
			workflow.ChequeState{TamperingDetected: true},
			true,
		},
		{
			"behavior anomalies",
			workflow.ChequeState{BehaviorAnomalies: []string{"amount far above profile"}},
			true,
		},
		{
			"signature mismatch",
			workflow.ChequeState{SignatureMatch: boolPtr(false)},
			true,
		},
		{
			"signature match is clean",
			workflow.ChequeState{SignatureMatch: boolPtr(true)},
			false,
		},
		{
			"signature unchecked is clean",
			workflow.ChequeState{SignatureMatch: nil},
			false,
		},
		{
			"invalid date after extraction",
			workflow.ChequeState{
				Fields:            &workflow.ChequeFields{},
				DateValid:         false,
				AmountsConsistent: true,
			},
			true,
		},
		{
			"inconsistent amounts after extraction",
			workflow.ChequeState{
				Fields:            &workflow.ChequeFields{},
				DateValid:         true,
				AmountsConsistent: false,
			},
			true,
		},
		{
			"validation zero values before extraction are clean",
			workflow.ChequeState{DateValid: false, AmountsConsistent: false},
			false,
		},
		{
			"valid date and amounts after extraction are clean",
			workflow.ChequeState{
				Fields:            &workflow.ChequeFields{},
				DateValid:         true,
				AmountsConsistent: true,
			},
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.state.FraudDetected(); got != tt.want {
				t.Errorf("FraudDetected() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestResolveOutcome(t *testing.T) {
	clean := workflow.ChequeState{
		Readable:          true,
		Fields:            &workflow.ChequeFields{},
		DateValid:         true,
		PayerKnown:        true,
		AmountsConsistent: true,
	}

	tests := []struct {
		name  string
		state workflow.ChequeState
		want  workflow.Outcome
	}{
		{
			"unreadable",
			workflow.ChequeState{Readable: false},
			workflow.OutcomeUnreadable,
		},
		{
			"extraction failed",
			workflow.ChequeState{Readable: true, ExtractFailed: true},
			workflow.OutcomeManualReview,
		},
		{
			"fraud indicator",
			func() workflow.ChequeState {
				s := clean
				s.TamperingDetected = true
				return s
			}(),
			workflow.OutcomeManualReview,
		},
		{
			"invalid date flags for review",
			func() workflow.ChequeState {
				s := clean
				s.DateValid = false
				return s
			}(),
			workflow.OutcomeManualReview,
		},
		{
			"inconsistent amounts flag for review",
			func() workflow.ChequeState {
				s := clean
				s.AmountsConsistent = false
				return s
			}(),
			workflow.OutcomeManualReview,
		},
		{
			"unknown payer",
			func() workflow.ChequeState {
				s := clean
				s.PayerKnown = false
				return s
			}(),
			workflow.OutcomeReject,
		},
		{
			"all checks pass",
			clean,
			workflow.OutcomeApprove,
		},
		{
			"fraud takes precedence over unknown payer",
			func() workflow.ChequeState {
				s := clean
				s.TamperingDetected = true
				s.PayerKnown = false
				return s
			}(),
			workflow.OutcomeManualReview,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := workflow.ResolveOutcome(&tt.state); got != tt.want {
				t.Errorf("ResolveOutcome() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestMissingFields(t *testing.T) {
	complete := workflow.ChequeFields{
		Payee:         "Steel Supply Co",
		Amount:        1250.50,
		Date:          "01052026",
		AccountNumber: "0042117788",
	}

	tests := []struct {
		name   string
		mutate func(*workflow.ChequeFields)
		want   []string
	}{
		{"all present", func(f *workflow.ChequeFields) {}, nil},
		{"missing payee", func(f *workflow.ChequeFields) { f.Payee = " " }, []string{"payee"}},
		{"zero amount", func(f *workflow.ChequeFields) { f.Amount = 0 }, []string{"amount"}},
		{"missing date", func(f *workflow.ChequeFields) { f.Date = "" }, []string{"date"}},
		{
			"missing account number",
			func(f *workflow.ChequeFields) { f.AccountNumber = "" },
			[]string{"account_number"},
		},
		{
			"everything missing",
			func(f *workflow.ChequeFields) { *f = workflow.ChequeFields{} },
			[]string{"payee", "amount", "date", "account_number"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := complete
			tt.mutate(&f)

			got := workflow.MissingFields(&f)
			if len(got) != len(tt.want) {
				t.Fatalf("MissingFields() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("MissingFields()[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestAccountFromMICR(t *testing.T) {
	tests := []struct {
		name string
		micr string
		want string
	}{
		{"symbols around fields", "⑈000042⑈ ⑆026009593⑆ 0042117788⑈", "0042117788"},
		{"plain digit groups", "000123 026009593 7788001122", "7788001122"},
		{"single run", "0042117788", "0042117788"},
		{"later run wins ties", "123456789 987654321", "987654321"},
		{"no digits", "⑆⑈ --", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := workflow.AccountFromMICR(tt.micr); got != tt.want {
				t.Errorf("AccountFromMICR(%q) = %q, want %q", tt.micr, got, tt.want)
			}
		})
	}
}

func TestTrail(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("records steps and anomalies", func(t *testing.T) {
		trail := workflow.NewTrail(logger)
		trail.Record("quality", "image readable")
		trail.Anomaly("fraud", "tampering detected near amount field")

		snap := trail.Snapshot()
		if len(snap.Steps) != 2 {
			t.Fatalf("Steps length = %d, want 2", len(snap.Steps))
		}
		if len(snap.Anomalies) != 1 {
			t.Fatalf("Anomalies length = %d, want 1", len(snap.Anomalies))
		}
		if snap.Anomalies[0] != "tampering detected near amount field" {
			t.Errorf("Anomalies[0] = %q", snap.Anomalies[0])
		}
		if snap.Steps[0].Stage != "quality" || snap.Steps[1].Stage != "fraud" {
			t.Errorf("Steps stages = %q, %q", snap.Steps[0].Stage, snap.Steps[1].Stage)
		}
	})

	t.Run("anomalies returns a copy", func(t *testing.T) {
		trail := workflow.NewTrail(logger)
		trail.Anomaly("fraud", "first")

		anomalies := trail.Anomalies()
		anomalies[0] = "mutated"

		if got := trail.Anomalies()[0]; got != "first" {
			t.Errorf("Anomalies()[0] = %q, want first", got)
		}
	})
}

type stubPrompts struct {
	prompts.System
	instructions string
	spec         string
}

func (s *stubPrompts) Instructions(ctx context.Context, stage prompts.Stage) (string, error) {
	return s.instructions, nil
}

func (s *stubPrompts) Spec(ctx context.Context, stage prompts.Stage) (string, error) {
	return s.spec, nil
}

func TestComposePrompt(t *testing.T) {
	ps := &stubPrompts{
		instructions: "You are a bank document examiner.",
		spec:         `Respond with JSON: {"readable": boolean}`,
	}

	t.Run("without context", func(t *testing.T) {
		got, err := workflow.ComposePrompt(context.Background(), ps, prompts.StageQuality, nil)
		if err != nil {
			t.Fatalf("ComposePrompt() error = %v", err)
		}

		want := ps.instructions + "\n\n" + ps.spec
		if got != want {
			t.Errorf("ComposePrompt() = %q, want %q", got, want)
		}
	})

	t.Run("with context", func(t *testing.T) {
		extra := map[string]string{"payee": "Acme Supplies"}
		got, err := workflow.ComposePrompt(context.Background(), ps, prompts.StageBehavior, extra)
		if err != nil {
			t.Fatalf("ComposePrompt() error = %v", err)
		}

		if !strings.Contains(got, "Context:") {
			t.Error("prompt missing Context section")
		}
		if !strings.Contains(got, "Acme Supplies") {
			t.Error("prompt missing serialized context data")
		}
	})
}

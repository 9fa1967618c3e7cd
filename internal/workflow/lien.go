package workflow

import (
	"context"
	"fmt"

	"github.com/JaimeStill/go-agents/pkg/agent"

	"github.com/JaimeStill/go-agents-orchestration/pkg/state"

	"github.com/kitelabs/kite/internal/prompts"
	"github.com/kitelabs/kite/pkg/formatting"
)

type lienResponse struct {
	LienLikely  bool    `json:"lien_likely"`
	Probability float64 `json:"probability"`
	Rationale   string  `json:"rationale"`
}

// lienContext carries the cheque data and accumulated findings that
// inform the lien estimate.
type lienContext struct {
	Cheque            *ChequeFields `json:"cheque"`
	PayerKnown        bool          `json:"payer_known"`
	TamperFindings    []string      `json:"tamper_findings,omitempty"`
	BehaviorAnomalies []string      `json:"behavior_anomalies,omitempty"`
	ValidationIssues  []string      `json:"validation_issues,omitempty"`
	Anomalies         []string      `json:"anomalies"`
}

// LienNode returns a state node that estimates the likelihood of a lien
// or hold being placed on the cheque before it clears. It only runs for
// cheques that passed the fraud checks.
func LienNode(rt *Runtime) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		cs, trail, err := extractChequeState(s)
		if err != nil {
			return s, fmt.Errorf("lien: %w", err)
		}

		prompt, err := ComposePrompt(ctx, rt.Prompts, prompts.StageLien, lienContext{
			Cheque:            cs.Fields,
			PayerKnown:        cs.PayerKnown,
			TamperFindings:    cs.TamperFindings,
			BehaviorAnomalies: cs.BehaviorAnomalies,
			ValidationIssues:  cs.ValidationIssues,
			Anomalies:         trail.Anomalies(),
		})
		if err != nil {
			return s, fmt.Errorf("%w: %w", ErrLienFailed, err)
		}

		a, err := agent.New(&rt.Agent)
		if err != nil {
			return s, fmt.Errorf("%w: create agent: %w", ErrLienFailed, err)
		}

		resp, err := a.Chat(ctx, prompt)
		if err != nil {
			return s, fmt.Errorf("%w: chat call: %w", ErrLienFailed, err)
		}

		parsed, err := formatting.Parse[lienResponse](resp.Content())
		if err != nil {
			return s, fmt.Errorf("%w: parse response: %w", ErrLienFailed, err)
		}

		cs.LienAssessed = true
		cs.LienLikely = parsed.LienLikely
		cs.LienProbability = parsed.Probability
		cs.LienRationale = parsed.Rationale

		if parsed.LienLikely {
			trail.Anomaly("lien", fmt.Sprintf(
				"lien likely (probability %.2f): %s", parsed.Probability, parsed.Rationale,
			))
		} else {
			trail.Record("lien", fmt.Sprintf(
				"lien unlikely (probability %.2f)", parsed.Probability,
			))
		}

		rt.Logger.InfoContext(
			ctx, "lien node complete",
			"lien_likely", parsed.LienLikely,
			"probability", parsed.Probability,
		)

		s = s.Set(KeyChequeState, *cs)
		return s, nil
	})
}

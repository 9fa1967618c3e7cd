package workflow

import (
	"context"
	"fmt"
	"strings"

	"github.com/JaimeStill/go-agents/pkg/agent"

	"github.com/JaimeStill/go-agents-orchestration/pkg/state"

	"github.com/kitelabs/kite/internal/prompts"
)

// auditContext carries the outcome and full trail for report generation.
type auditContext struct {
	Outcome Outcome       `json:"outcome"`
	Cheque  *ChequeFields `json:"cheque,omitempty"`
	Trail   TrailSnapshot `json:"trail"`
}

// AuditNode returns a state node that generates the final narrative audit
// report from the recorded trail. Report generation failure degrades to a
// fallback summary rather than failing the workflow; the outcome and trail
// are already settled by this point.
func AuditNode(rt *Runtime) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		cs, trail, err := extractChequeState(s)
		if err != nil {
			return s, fmt.Errorf("audit: %w", err)
		}

		summary, err := generateReport(ctx, rt, cs, trail)
		if err != nil {
			rt.Logger.WarnContext(ctx, "audit report generation failed", "error", err)
			summary = fallbackReport(cs, trail)
		}

		cs.Summary = summary
		trail.Record("audit", "audit report generated")

		rt.Logger.InfoContext(ctx, "audit node complete", "outcome", cs.Outcome)

		s = s.Set(KeyChequeState, *cs)
		return s, nil
	})
}

func generateReport(ctx context.Context, rt *Runtime, cs *ChequeState, trail *Trail) (string, error) {
	prompt, err := ComposePrompt(ctx, rt.Prompts, prompts.StageSummary, auditContext{
		Outcome: cs.Outcome,
		Cheque:  cs.Fields,
		Trail:   trail.Snapshot(),
	})
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrAuditFailed, err)
	}

	a, err := agent.New(&rt.Agent)
	if err != nil {
		return "", fmt.Errorf("%w: create agent: %w", ErrAuditFailed, err)
	}

	resp, err := a.Chat(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("%w: chat call: %w", ErrAuditFailed, err)
	}

	summary := strings.TrimSpace(resp.Content())
	if summary == "" {
		return "", fmt.Errorf("%w: empty report", ErrAuditFailed)
	}

	return summary, nil
}

func fallbackReport(cs *ChequeState, trail *Trail) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Outcome: %s.", cs.Outcome)

	anomalies := trail.Anomalies()
	if len(anomalies) > 0 {
		fmt.Fprintf(&sb, " Anomalies recorded: %s.", strings.Join(anomalies, "; "))
	} else {
		sb.WriteString(" No anomalies recorded.")
	}

	return sb.String()
}

package workflow

import (
	"context"
	"fmt"

	"github.com/JaimeStill/go-agents-orchestration/pkg/state"
)

// ResolveNode returns a state node that applies the deterministic decision
// rules to the accumulated pipeline state:
//
//   - unreadable image: UNREADABLE
//   - failed extraction: MANUAL_REVIEW
//   - any fraud indicator, including an invalid date or inconsistent
//     amounts: MANUAL_REVIEW, a human examiner decides
//   - account number not in the payer registry: REJECT
//   - otherwise: APPROVE
func ResolveNode(rt *Runtime) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		cs, trail, err := extractChequeState(s)
		if err != nil {
			return s, fmt.Errorf("resolve: %w", err)
		}

		cs.Outcome = ResolveOutcome(cs)
		trail.Record("resolve", fmt.Sprintf("outcome determined: %s", cs.Outcome))

		rt.Logger.InfoContext(ctx, "resolve node complete", "outcome", cs.Outcome)

		s = s.Set(KeyChequeState, *cs)
		return s, nil
	})
}

// ResolveOutcome applies the decision rules to the accumulated state.
func ResolveOutcome(cs *ChequeState) Outcome {
	if !cs.Readable {
		return OutcomeUnreadable
	}

	if cs.ExtractFailed {
		return OutcomeManualReview
	}

	if cs.FraudDetected() {
		return OutcomeManualReview
	}

	if !cs.PayerKnown {
		return OutcomeReject
	}

	return OutcomeApprove
}

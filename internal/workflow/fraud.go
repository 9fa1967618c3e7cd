package workflow

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/JaimeStill/document-context/pkg/document"
	"github.com/JaimeStill/document-context/pkg/encoding"

	"github.com/JaimeStill/go-agents/pkg/agent"

	"github.com/JaimeStill/go-agents-orchestration/pkg/state"

	"github.com/kitelabs/kite/internal/payers"
	"github.com/kitelabs/kite/internal/prompts"
	"github.com/kitelabs/kite/pkg/formatting"
)

type tamperResponse struct {
	TamperingDetected bool       `json:"tampering_detected"`
	Findings          []string   `json:"findings"`
	Confidence        Confidence `json:"confidence"`
}

type behaviorResponse struct {
	Anomalous bool     `json:"anomalous"`
	Anomalies []string `json:"anomalies"`
}

type locateResponse struct {
	Found bool `json:"found"`
	BBox  BBox `json:"bbox"`
}

type signatureResponse struct {
	Match      bool       `json:"match"`
	Confidence Confidence `json:"confidence"`
	Rationale  string     `json:"rationale"`
}

// behaviorContext pairs the extracted cheque data with the payer's
// spending profile for the behavior analysis prompt.
type behaviorContext struct {
	Cheque  *ChequeFields          `json:"cheque"`
	Profile payers.BehaviorSummary `json:"profile"`
}

// FraudNode returns a state node that runs the three fraud checks
// concurrently: visual tampering inspection, transaction behavior analysis
// against the payer profile, and signature comparison against the payer's
// reference signature. Each check writes a disjoint field group of the
// shared ChequeState. Behavior and signature checks are skipped with a
// recorded anomaly when no registered payer is available.
func FraudNode(rt *Runtime) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		cs, trail, err := extractChequeState(s)
		if err != nil {
			return s, fmt.Errorf("fraud: %w", err)
		}

		payer := payerFromState(s)

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(3)

		g.Go(func() error {
			return checkTampering(gctx, rt, cs, trail)
		})

		g.Go(func() error {
			if payer == nil {
				trail.Anomaly("behavior", "behavior analysis skipped: no registered payer")
				return nil
			}
			return checkBehavior(gctx, rt, cs, trail, payer)
		})

		g.Go(func() error {
			if payer == nil {
				trail.Anomaly("signature", "signature comparison skipped: no registered payer")
				return nil
			}
			return checkSignature(gctx, rt, cs, trail, payer)
		})

		if err := g.Wait(); err != nil {
			return s, fmt.Errorf("%w: %w", ErrFraudFailed, err)
		}

		rt.Logger.InfoContext(
			ctx, "fraud node complete",
			"fraud_detected", cs.FraudDetected(),
			"tampering", cs.TamperingDetected,
			"behavior_anomalies", len(cs.BehaviorAnomalies),
		)

		s = s.Set(KeyChequeState, *cs)
		return s, nil
	})
}

func payerFromState(s state.State) *payers.Payer {
	val, ok := s.Get(KeyPayer)
	if !ok {
		return nil
	}

	payer, ok := val.(*payers.Payer)
	if !ok {
		return nil
	}

	return payer
}

func checkTampering(ctx context.Context, rt *Runtime, cs *ChequeState, trail *Trail) error {
	prompt, err := ComposePrompt(ctx, rt.Prompts, prompts.StageTamper, nil)
	if err != nil {
		return fmt.Errorf("tamper: %w", err)
	}

	a, err := agent.New(&rt.Agent)
	if err != nil {
		return fmt.Errorf("tamper: create agent: %w", err)
	}

	dataURI, err := encodeChequeImage(cs.ImagePath)
	if err != nil {
		return fmt.Errorf("tamper: %w", err)
	}

	resp, err := a.Vision(ctx, prompt, []string{dataURI})
	if err != nil {
		return fmt.Errorf("tamper: vision call: %w", err)
	}

	parsed, err := formatting.Parse[tamperResponse](resp.Content())
	if err != nil {
		return fmt.Errorf("tamper: parse response: %w", err)
	}

	cs.TamperingDetected = parsed.TamperingDetected
	cs.TamperFindings = parsed.Findings

	if parsed.TamperingDetected {
		trail.Anomaly("tamper", fmt.Sprintf(
			"tampering indicators: %s", strings.Join(parsed.Findings, "; "),
		))
	} else {
		trail.Record("tamper", "no tampering indicators found")
	}

	return nil
}

func checkBehavior(
	ctx context.Context,
	rt *Runtime,
	cs *ChequeState,
	trail *Trail,
	payer *payers.Payer,
) error {
	prompt, err := ComposePrompt(ctx, rt.Prompts, prompts.StageBehavior, behaviorContext{
		Cheque:  cs.Fields,
		Profile: payer.Behavior(),
	})
	if err != nil {
		return fmt.Errorf("behavior: %w", err)
	}

	a, err := agent.New(&rt.Agent)
	if err != nil {
		return fmt.Errorf("behavior: create agent: %w", err)
	}

	resp, err := a.Chat(ctx, prompt)
	if err != nil {
		return fmt.Errorf("behavior: chat call: %w", err)
	}

	parsed, err := formatting.Parse[behaviorResponse](resp.Content())
	if err != nil {
		return fmt.Errorf("behavior: parse response: %w", err)
	}

	cs.BehaviorAnomalies = parsed.Anomalies

	if parsed.Anomalous {
		trail.Anomaly("behavior", fmt.Sprintf(
			"transaction anomalies: %s", strings.Join(parsed.Anomalies, "; "),
		))
	} else {
		trail.Record("behavior", "transaction consistent with payer profile")
	}

	return nil
}

func checkSignature(
	ctx context.Context,
	rt *Runtime,
	cs *ChequeState,
	trail *Trail,
	payer *payers.Payer,
) error {
	if payer.SignatureKey == nil {
		trail.Anomaly("signature", "signature comparison skipped: no reference signature on file")
		return nil
	}

	crop, err := locateAndCrop(ctx, rt, cs.ImagePath)
	if err != nil {
		trail.Anomaly("signature", fmt.Sprintf("signature not isolated: %v", err))
		return nil
	}

	reference, err := downloadReference(ctx, rt, payer)
	if err != nil {
		return fmt.Errorf("signature: %w", err)
	}

	prompt, err := ComposePrompt(ctx, rt.Prompts, prompts.StageSignature, nil)
	if err != nil {
		return fmt.Errorf("signature: %w", err)
	}

	cropURI, err := encoding.EncodeImageDataURI(crop, document.PNG)
	if err != nil {
		return fmt.Errorf("signature: encode crop: %w", err)
	}

	refURI, err := encoding.EncodeImageDataURI(reference, document.PNG)
	if err != nil {
		return fmt.Errorf("signature: encode reference: %w", err)
	}

	a, err := agent.New(&rt.Agent)
	if err != nil {
		return fmt.Errorf("signature: create agent: %w", err)
	}

	resp, err := a.Vision(ctx, prompt, []string{cropURI, refURI})
	if err != nil {
		return fmt.Errorf("signature: vision call: %w", err)
	}

	parsed, err := formatting.Parse[signatureResponse](resp.Content())
	if err != nil {
		return fmt.Errorf("signature: parse response: %w", err)
	}

	cs.SignatureMatch = &parsed.Match
	cs.SignatureConfidence = parsed.Confidence

	if parsed.Match {
		trail.Record("signature", "signature matches reference on file")
	} else {
		trail.Anomaly("signature", fmt.Sprintf(
			"signature mismatch: %s", parsed.Rationale,
		))
	}

	return nil
}

// locateAndCrop asks the vision model for the signature bounding box,
// then crops the padded region from the cheque image.
func locateAndCrop(ctx context.Context, rt *Runtime, imagePath string) ([]byte, error) {
	prompt, err := ComposePrompt(ctx, rt.Prompts, prompts.StageLocate, nil)
	if err != nil {
		return nil, err
	}

	a, err := agent.New(&rt.Agent)
	if err != nil {
		return nil, fmt.Errorf("create agent: %w", err)
	}

	dataURI, err := encodeChequeImage(imagePath)
	if err != nil {
		return nil, err
	}

	resp, err := a.Vision(ctx, prompt, []string{dataURI})
	if err != nil {
		return nil, fmt.Errorf("vision call: %w", err)
	}

	parsed, err := formatting.Parse[locateResponse](resp.Content())
	if err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}

	if !parsed.Found {
		return nil, fmt.Errorf("no signature present on cheque")
	}

	data, err := os.ReadFile(imagePath)
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}

	return CropSignature(data, parsed.BBox)
}

func downloadReference(ctx context.Context, rt *Runtime, payer *payers.Payer) ([]byte, error) {
	result, err := rt.Payers.DownloadSignature(ctx, payer.ID)
	if err != nil {
		return nil, fmt.Errorf("download reference: %w", err)
	}
	defer result.Body.Close()

	data, err := io.ReadAll(result.Body)
	if err != nil {
		return nil, fmt.Errorf("read reference: %w", err)
	}

	return convertPNG(data)
}

package workflow

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/JaimeStill/document-context/pkg/document"
	"github.com/JaimeStill/document-context/pkg/encoding"

	"github.com/JaimeStill/go-agents/pkg/agent"

	"github.com/JaimeStill/go-agents-orchestration/pkg/state"

	"github.com/kitelabs/kite/internal/prompts"
	"github.com/kitelabs/kite/pkg/formatting"
)

type qualityResponse struct {
	Readable   bool       `json:"readable"`
	Issues     []string   `json:"issues"`
	Confidence Confidence `json:"confidence"`
}

// QualityNode returns a state node that sends the cheque image to the
// vision model for a readability assessment. An unreadable verdict routes
// the graph straight to resolution.
func QualityNode(rt *Runtime) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		cs, trail, err := extractChequeState(s)
		if err != nil {
			return s, fmt.Errorf("quality: %w", err)
		}

		prompt, err := ComposePrompt(ctx, rt.Prompts, prompts.StageQuality, nil)
		if err != nil {
			return s, fmt.Errorf("%w: %w", ErrQualityFailed, err)
		}

		a, err := agent.New(&rt.Agent)
		if err != nil {
			return s, fmt.Errorf("quality: create agent: %w", err)
		}

		dataURI, err := encodeChequeImage(cs.ImagePath)
		if err != nil {
			return s, fmt.Errorf("quality: %w", err)
		}

		resp, err := a.Vision(ctx, prompt, []string{dataURI})
		if err != nil {
			return s, fmt.Errorf("%w: vision call: %w", ErrQualityFailed, err)
		}

		parsed, err := formatting.Parse[qualityResponse](resp.Content())
		if err != nil {
			return s, fmt.Errorf("%w: parse response: %w", ErrQualityFailed, err)
		}

		cs.Readable = parsed.Readable
		cs.QualityIssues = parsed.Issues
		cs.QualityConfidence = parsed.Confidence

		if parsed.Readable {
			trail.Record("quality", "image passed readability assessment")
		} else {
			trail.Anomaly("quality", fmt.Sprintf(
				"image unreadable: %s", strings.Join(parsed.Issues, "; "),
			))
		}

		rt.Logger.InfoContext(
			ctx, "quality node complete",
			"readable", parsed.Readable,
			"confidence", parsed.Confidence,
		)

		s = s.Set(KeyChequeState, *cs)
		return s, nil
	})
}

func extractChequeState(s state.State) (*ChequeState, *Trail, error) {
	csVal, ok := s.Get(KeyChequeState)
	if !ok {
		return nil, nil, fmt.Errorf("missing %s in state", KeyChequeState)
	}

	cs, ok := csVal.(ChequeState)
	if !ok {
		return nil, nil, fmt.Errorf("%s is not ChequeState", KeyChequeState)
	}

	trailVal, ok := s.Get(KeyTrail)
	if !ok {
		return nil, nil, fmt.Errorf("missing %s in state", KeyTrail)
	}

	trail, ok := trailVal.(*Trail)
	if !ok {
		return nil, nil, fmt.Errorf("%s is not *Trail", KeyTrail)
	}

	return &cs, trail, nil
}

func encodeChequeImage(imagePath string) (string, error) {
	data, err := os.ReadFile(imagePath)
	if err != nil {
		return "", fmt.Errorf("read image: %w", err)
	}

	dataURI, err := encoding.EncodeImageDataURI(data, document.PNG)
	if err != nil {
		return "", fmt.Errorf("encode image: %w", err)
	}

	return dataURI, nil
}

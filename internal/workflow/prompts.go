package workflow

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/kitelabs/kite/internal/prompts"
)

// ComposePrompt builds a system prompt by combining tunable instructions,
// immutable specifications, and optional serialized context for a given
// workflow stage. When extra is nil the prompt contains only instructions
// and spec.
func ComposePrompt(
	ctx context.Context,
	ps prompts.System,
	stage prompts.Stage,
	extra any,
) (string, error) {
	instructions, err := ps.Instructions(ctx, stage)
	if err != nil {
		return "", fmt.Errorf("load instructions for %s: %w", stage, err)
	}

	spec, err := ps.Spec(ctx, stage)
	if err != nil {
		return "", fmt.Errorf("load spec for %s: %w", stage, err)
	}

	var sb strings.Builder
	sb.WriteString(instructions)
	sb.WriteString("\n\n")
	sb.WriteString(spec)

	if extra != nil {
		extraJSON, err := json.MarshalIndent(extra, "", "  ")
		if err != nil {
			return "", fmt.Errorf("serialize %s context: %w", stage, err)
		}

		sb.WriteString("\n\nContext:\n\n")
		sb.WriteString(string(extraJSON))
	}

	return sb.String(), nil
}

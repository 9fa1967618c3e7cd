package workflow

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	gaoconfig "github.com/JaimeStill/go-agents-orchestration/pkg/config"
	"github.com/JaimeStill/go-agents-orchestration/pkg/state"
)

// Execute runs the cheque processing workflow for a single cheque. It
// creates a temp directory for rendered images (cleaned up via defer),
// builds the state graph, executes it, and extracts the Result from the
// final state.
func Execute(ctx context.Context, rt *Runtime, chequeID uuid.UUID) (*Result, error) {
	tempDir, err := os.MkdirTemp("", "kite-cheque-*")
	if err != nil {
		return nil, fmt.Errorf("create temp directory: %w", err)
	}
	defer os.RemoveAll(tempDir)

	graph, err := buildGraph(rt)
	if err != nil {
		return nil, fmt.Errorf("build graph: %w", err)
	}

	initialState := state.New(nil)
	initialState = initialState.Set(KeyChequeID, chequeID)
	initialState = initialState.Set(KeyTempDir, tempDir)

	finalState, err := graph.Execute(ctx, initialState)
	if err != nil {
		return nil, fmt.Errorf("execute graph: %w", err)
	}

	return extractResult(finalState)
}

// buildGraph wires the pipeline:
//
//	init → quality → extract → fraud → lien → resolve → audit
//
// with short-circuit routing to resolve when the image is unreadable,
// extraction fails, or a fraud check flags the cheque.
func buildGraph(rt *Runtime) (state.StateGraph, error) {
	cfg := gaoconfig.DefaultGraphConfig("kite-cheque")
	cfg.Observer = "noop"

	graph, err := state.NewGraph(cfg)
	if err != nil {
		return nil, err
	}

	nodes := map[string]state.StateNode{
		"init":    InitNode(rt),
		"quality": QualityNode(rt),
		"extract": ExtractNode(rt),
		"fraud":   FraudNode(rt),
		"lien":    LienNode(rt),
		"resolve": ResolveNode(rt),
		"audit":   AuditNode(rt),
	}

	for name, node := range nodes {
		if err := graph.AddNode(name, node); err != nil {
			return nil, err
		}
	}

	edges := []struct {
		from, to string
		cond     func(state.State) bool
	}{
		{"init", "quality", nil},
		{"quality", "extract", isReadable},
		{"quality", "resolve", state.Not(isReadable)},
		{"extract", "fraud", extractSucceeded},
		{"extract", "resolve", state.Not(extractSucceeded)},
		{"fraud", "lien", state.Not(fraudDetected)},
		{"fraud", "resolve", fraudDetected},
		{"lien", "resolve", nil},
		{"resolve", "audit", nil},
	}

	for _, e := range edges {
		if err := graph.AddEdge(e.from, e.to, e.cond); err != nil {
			return nil, err
		}
	}

	if err := graph.SetEntryPoint("init"); err != nil {
		return nil, err
	}

	if err := graph.SetExitPoint("audit"); err != nil {
		return nil, err
	}

	return graph, nil
}

func extractResult(s state.State) (*Result, error) {
	csVal, ok := s.Get(KeyChequeState)
	if !ok {
		return nil, fmt.Errorf("missing %s in final state", KeyChequeState)
	}

	cs, ok := csVal.(ChequeState)
	if !ok {
		return nil, fmt.Errorf("%s is not ChequeState", KeyChequeState)
	}

	idVal, ok := s.Get(KeyChequeID)
	if !ok {
		return nil, fmt.Errorf("missing %s in final state", KeyChequeID)
	}

	chequeID, ok := idVal.(uuid.UUID)
	if !ok {
		return nil, fmt.Errorf("%s is not uuid.UUID", KeyChequeID)
	}

	trailVal, ok := s.Get(KeyTrail)
	if !ok {
		return nil, fmt.Errorf("missing %s in final state", KeyTrail)
	}

	trail, ok := trailVal.(*Trail)
	if !ok {
		return nil, fmt.Errorf("%s is not *Trail", KeyTrail)
	}

	return &Result{
		ChequeID:    chequeID,
		State:       cs,
		Trail:       trail.Snapshot(),
		CompletedAt: time.Now(),
	}, nil
}

func isReadable(s state.State) bool {
	cs, ok := chequeStateOf(s)
	return ok && cs.Readable
}

func extractSucceeded(s state.State) bool {
	cs, ok := chequeStateOf(s)
	return ok && !cs.ExtractFailed
}

func fraudDetected(s state.State) bool {
	cs, ok := chequeStateOf(s)
	return ok && cs.FraudDetected()
}

func chequeStateOf(s state.State) (ChequeState, bool) {
	val, ok := s.Get(KeyChequeState)
	if !ok {
		return ChequeState{}, false
	}

	cs, ok := val.(ChequeState)
	return cs, ok
}

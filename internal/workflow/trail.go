package workflow

import (
	"log/slog"
	"sync"
	"time"
)

// TrailStep records a single pipeline event with its stage and timestamp.
type TrailStep struct {
	Stage     string    `json:"stage"`
	Detail    string    `json:"detail"`
	Timestamp time.Time `json:"timestamp"`
}

// TrailSnapshot is an immutable copy of the audit trail for serialization.
type TrailSnapshot struct {
	Steps     []TrailStep `json:"steps"`
	Anomalies []string    `json:"anomalies"`
}

// Trail accumulates the audit record of a workflow execution. Nodes append
// steps as they run and anomalies as they find them. Safe for concurrent
// use by the parallel fraud checks.
type Trail struct {
	mu        sync.Mutex
	logger    *slog.Logger
	steps     []TrailStep
	anomalies []string
}

// NewTrail creates a Trail that mirrors every entry to the given logger.
func NewTrail(logger *slog.Logger) *Trail {
	return &Trail{
		logger:    logger.With("system", "workflow"),
		steps:     make([]TrailStep, 0),
		anomalies: make([]string, 0),
	}
}

// Record appends a pipeline step to the trail.
func (t *Trail) Record(stage, detail string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.steps = append(t.steps, TrailStep{
		Stage:     stage,
		Detail:    detail,
		Timestamp: time.Now(),
	})

	t.logger.Info("pipeline step", "stage", stage, "detail", detail)
}

// Anomaly appends both a pipeline step and an anomaly entry.
func (t *Trail) Anomaly(stage, detail string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.steps = append(t.steps, TrailStep{
		Stage:     stage,
		Detail:    detail,
		Timestamp: time.Now(),
	})
	t.anomalies = append(t.anomalies, detail)

	t.logger.Warn("pipeline anomaly", "stage", stage, "detail", detail)
}

// Anomalies returns a copy of the recorded anomalies.
func (t *Trail) Anomalies() []string {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]string, len(t.anomalies))
	copy(out, t.anomalies)
	return out
}

// Snapshot returns an immutable copy of the full trail.
func (t *Trail) Snapshot() TrailSnapshot {
	t.mu.Lock()
	defer t.mu.Unlock()

	steps := make([]TrailStep, len(t.steps))
	copy(steps, t.steps)

	anomalies := make([]string, len(t.anomalies))
	copy(anomalies, t.anomalies)

	return TrailSnapshot{Steps: steps, Anomalies: anomalies}
}

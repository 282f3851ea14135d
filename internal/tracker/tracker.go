package tracker

import (
	"context"
	"errors"
)

// UnavailableErr marks a tracking collaborator that could not be reached.
// It is never fatal for the pipeline, runs degrade to unlogged instead.
var UnavailableErr = errors.New("tracking unavailable")

// Run lifecycle status values.
const (
	StatusRunning  = "RUNNING"
	StatusFinished = "FINISHED"
	StatusFailed   = "FAILED"
)

// RunContext identifies one tracked run. It is returned by BeginRun and
// passed explicitly to every subsequent call, there is no ambient
// current-run state anywhere.
type RunContext struct {
	ID         string `json:"run_id"`
	Experiment string `json:"experiment"`
}

// Submission is the payload logged for one run.
type Submission struct {
	RunName         string             `json:"run_name"`
	ModelType       string             `json:"model_type"`
	Hyperparameters map[string]float64 `json:"hyperparameters"`
	Metrics         map[string]float64 `json:"metrics"`
	Artifact        []byte             `json:"artifact"`
}

// Tracker is the append-only experiment tracking collaborator.
// Re-running the pipeline appends new records, nothing is overwritten.
type Tracker interface {
	BeginRun(ctx context.Context, experiment, name string) (RunContext, error)
	LogRun(ctx context.Context, rc RunContext, sub Submission) error
	EndRun(ctx context.Context, rc RunContext, status string) error
}

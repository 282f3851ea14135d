package pipeline

import (
	"context"
	"fmt"

	"github.com/drakos74/iris-pipeline/internal/config"
	"github.com/drakos74/iris-pipeline/internal/data"
	"github.com/drakos74/iris-pipeline/internal/experiment"
	"github.com/drakos74/iris-pipeline/internal/optimize"
	"github.com/drakos74/iris-pipeline/internal/storage"
	"github.com/drakos74/iris-pipeline/internal/tracker"
	"github.com/rs/zerolog/log"
)

// Result aggregates the outcome of one full pipeline pass.
type Result struct {
	Summary  []data.Summary
	Runs     []experiment.Run
	Artifact optimize.Artifact
	Report   optimize.Report
}

// Run executes the linear sequence: prepare the data, train and track
// every model, quantize the best run and verify the restored artifact.
// Data and configuration errors abort, tracking and verification
// failures are carried as data on the result.
func Run(ctx context.Context, cfg config.Config, t tracker.Tracker, store storage.Persistence) (Result, error) {
	dataset, err := data.Load()
	if err != nil {
		return Result{}, fmt.Errorf("could not load dataset: %w", err)
	}

	processor := data.NewProcessor(dataset, cfg.Data)
	split, err := processor.Prepare()
	if err != nil {
		return Result{}, fmt.Errorf("could not prepare split: %w", err)
	}

	runner := experiment.NewRunner(split, dataset.Classes, t, cfg.Tracking.Experiment, cfg.Data.Seed)
	runs, err := runner.RunAll(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("could not run experiments: %w", err)
	}

	optimizer := optimize.NewOptimizer(store, cfg.Artifact.Name, dataset.Classes, split.Scaler)
	artifact, err := optimizer.SelectAndQuantize(runs, optimize.ByAccuracy)
	if err != nil {
		return Result{}, fmt.Errorf("could not quantize: %w", err)
	}

	report := optimizer.Verify(artifact)
	for _, check := range report.Checks {
		log.Info().
			Str("check", check.Name).
			Bool("ok", check.OK).
			Str("detail", check.Detail).
			Msg("verification")
	}

	return Result{
		Summary:  processor.FeatureSummary(),
		Runs:     runs,
		Artifact: artifact,
		Report:   report,
	}, nil
}

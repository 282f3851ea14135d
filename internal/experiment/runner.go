package experiment

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/drakos74/iris-pipeline/internal/data"
	"github.com/drakos74/iris-pipeline/internal/metrics"
	"github.com/drakos74/iris-pipeline/internal/ml"
	"github.com/drakos74/iris-pipeline/internal/tracker"
	"github.com/rs/zerolog/log"
)

// Run is one training and evaluation attempt for a single model type.
// It is immutable once the metrics are computed, only the tracking
// outcome fields are filled in afterwards.
type Run struct {
	Type       ml.Type       `json:"type"`
	Network    ml.Network    `json:"-"`
	Evaluation ml.Evaluation `json:"evaluation"`
	RunID      string        `json:"run_id,omitempty"`
	Unlogged   bool          `json:"unlogged"`
}

// Runner trains every model of the fixed set on one prepared split.
type Runner struct {
	split      data.ScaledSplit
	classes    []string
	tracker    tracker.Tracker
	experiment string
	seed       int64
}

func NewRunner(split data.ScaledSplit, classes []string, t tracker.Tracker, experiment string, seed int64) *Runner {
	return &Runner{
		split:      split,
		classes:    classes,
		tracker:    t,
		experiment: experiment,
		seed:       seed,
	}
}

// RunAll trains, evaluates and tracks each model type in enumeration
// order. A tracking outage never blocks a run, the result is returned
// with Unlogged set instead.
func (r *Runner) RunAll(ctx context.Context) ([]Run, error) {
	runs := make([]Run, 0, len(ml.Types()))
	for _, t := range ml.Types() {
		run, err := r.run(ctx, t)
		if err != nil {
			return runs, fmt.Errorf("could not run '%s': %w", t, err)
		}
		runs = append(runs, run)
	}
	return runs, nil
}

func (r *Runner) run(ctx context.Context, t ml.Type) (Run, error) {
	// fix the library-level sampling randomness per run
	rand.Seed(r.seed)

	network, err := ml.New(t, len(r.classes))
	if err != nil {
		return Run{}, err
	}

	if err := network.Train(r.split.XTrain, r.split.YTrain); err != nil {
		return Run{}, fmt.Errorf("could not train: %w", err)
	}

	predictions := make([]int, len(r.split.XTest))
	for i, x := range r.split.XTest {
		class, err := network.Predict(x)
		if err != nil {
			return Run{}, fmt.Errorf("could not predict row %d: %w", i, err)
		}
		predictions[i] = class
	}

	run := Run{
		Type:       t,
		Network:    network,
		Evaluation: ml.Evaluate(r.split.YTest, predictions, len(r.classes)),
	}

	log.Info().
		Str("model", string(t)).
		Float64("accuracy", run.Evaluation.Accuracy).
		Float64("precision", run.Evaluation.Precision).
		Float64("recall", run.Evaluation.Recall).
		Msg("evaluated")

	r.track(ctx, &run)
	return run, nil
}

// track submits the run to the collaborator, best effort.
func (r *Runner) track(ctx context.Context, run *Run) {
	payload, err := run.Network.Encode()
	if err != nil {
		r.unlogged(run, err)
		return
	}

	rc, err := r.tracker.BeginRun(ctx, r.experiment, string(run.Type))
	if err != nil {
		r.unlogged(run, err)
		return
	}

	sub := tracker.Submission{
		RunName:         string(run.Type),
		ModelType:       string(run.Type),
		Hyperparameters: run.Network.Parameters(),
		Metrics:         run.Evaluation.Map(),
		Artifact:        payload,
	}
	if err := r.tracker.LogRun(ctx, rc, sub); err != nil {
		r.unlogged(run, err)
		return
	}
	if err := r.tracker.EndRun(ctx, rc, tracker.StatusFinished); err != nil {
		r.unlogged(run, err)
		return
	}

	run.RunID = rc.ID
	metrics.Observer.IncrementRun(string(run.Type), "logged")
	log.Info().Str("model", string(run.Type)).Str("run", rc.ID).Msg("run tracked")
}

func (r *Runner) unlogged(run *Run, err error) {
	run.Unlogged = true
	metrics.Observer.IncrementRun(string(run.Type), "unlogged")
	log.Warn().Err(err).Str("model", string(run.Type)).Msg("run not tracked")
}

package optimize

import (
	"errors"
	"fmt"

	"github.com/drakos74/iris-pipeline/internal/data"
	"github.com/drakos74/iris-pipeline/internal/experiment"
	"github.com/drakos74/iris-pipeline/internal/metrics"
	"github.com/drakos74/iris-pipeline/internal/ml"
	"github.com/drakos74/iris-pipeline/internal/storage"
	"github.com/rs/zerolog/log"
)

// NoRunsErr marks an optimizer invoked before any run exists.
var NoRunsErr = errors.New("no runs available")

// State of the optimizer.
type State string

const (
	Empty     State = "empty"
	Quantized State = "quantized"
	Verified  State = "verified"
)

const artifactLabel = "quantized"

// Criterion picks the index of one run out of a non-empty sequence.
type Criterion func(runs []experiment.Run) int

// ByAccuracy selects the highest accuracy, ties broken by enumeration order.
func ByAccuracy(runs []experiment.Run) int {
	best := 0
	for i, r := range runs {
		if r.Evaluation.Accuracy > runs[best].Evaluation.Accuracy {
			best = i
		}
	}
	return best
}

// Artifact is the serialized form of one selected model. The envelope
// carries the model type tag, so the payload is self-describing.
type Artifact struct {
	ModelType ml.Type     `json:"model_type"`
	Payload   []byte      `json:"payload"`
	Key       storage.Key `json:"-"`
}

// Check is one verification result.
type Check struct {
	Name   string `json:"name"`
	OK     bool   `json:"ok"`
	Detail string `json:"detail,omitempty"`
}

// Report collects the verification checks for one artifact.
// Failures are data, not errors, so one bad check never hides the rest.
type Report struct {
	Checks []Check `json:"checks"`
}

func (r *Report) add(name string, ok bool, detail string) {
	r.Checks = append(r.Checks, Check{Name: name, OK: ok, Detail: detail})
}

// OK reports whether every check passed.
func (r Report) OK() bool {
	if len(r.Checks) == 0 {
		return false
	}
	for _, c := range r.Checks {
		if !c.OK {
			return false
		}
	}
	return true
}

// samples are fixed raw rows with a known class each, used for the
// verification predictions.
var samples = [][]float64{
	{5.1, 3.5, 1.4, 0.2},
	{6.4, 3.2, 4.5, 1.5},
	{6.3, 3.3, 6.0, 2.5},
}

// Optimizer serializes the selected run and sanity-checks the restored copy.
type Optimizer struct {
	store   storage.Persistence
	name    string
	classes []string
	scaler  data.Scaler
	state   State
	// selected keeps the live model of the last quantized run for the
	// round-trip fidelity check.
	selected ml.Network
}

func NewOptimizer(store storage.Persistence, name string, classes []string, scaler data.Scaler) *Optimizer {
	return &Optimizer{
		store:   store,
		name:    name,
		classes: classes,
		scaler:  scaler,
		state:   Empty,
	}
}

func (o *Optimizer) State() State {
	return o.state
}

// SelectAndQuantize picks one run by the criterion (ByAccuracy when nil)
// and writes its serialized model. Re-calling overwrites the artifact.
func (o *Optimizer) SelectAndQuantize(runs []experiment.Run, criterion Criterion) (Artifact, error) {
	if len(runs) == 0 {
		return Artifact{}, fmt.Errorf("cannot select: %w", NoRunsErr)
	}
	if criterion == nil {
		criterion = ByAccuracy
	}

	run := runs[criterion(runs)]
	payload, err := run.Network.Encode()
	if err != nil {
		return Artifact{}, fmt.Errorf("could not encode '%s': %w", run.Type, err)
	}

	artifact := Artifact{
		ModelType: run.Type,
		Payload:   payload,
		Key:       storage.Key{Name: o.name, Label: artifactLabel},
	}
	if err := o.store.Store(artifact.Key, artifact); err != nil {
		return Artifact{}, fmt.Errorf("could not store artifact: %w", err)
	}

	o.selected = run.Network
	o.state = Quantized
	metrics.Observer.IncrementArtifact(string(run.Type))
	log.Info().
		Str("model", string(run.Type)).
		Str("key", artifact.Key.Path()).
		Float64("accuracy", run.Evaluation.Accuracy).
		Msg("quantized")

	return artifact, nil
}

// Verify reloads the artifact and runs the sanity checks against the
// restored model: the artifact decodes, predictions stay inside the
// known label set, and the restored copy agrees with the live model.
// It never raises, every failure becomes a report entry.
func (o *Optimizer) Verify(artifact Artifact) Report {
	report := Report{Checks: make([]Check, 0, 3)}

	restored, err := o.reload(artifact)
	if err != nil {
		report.add("deserialize", false, err.Error())
		return report
	}
	report.add("deserialize", true, "")

	report.add(o.checkLabels(restored))
	report.add(o.checkRoundTrip(restored))

	if o.state == Quantized && report.OK() {
		o.state = Verified
	}
	return report
}

func (o *Optimizer) reload(artifact Artifact) (ml.Network, error) {
	var restored Artifact
	if err := o.store.Load(artifact.Key, &restored); err != nil {
		return nil, fmt.Errorf("could not reload artifact: %w", err)
	}

	network, err := ml.New(restored.ModelType, len(o.classes))
	if err != nil {
		return nil, err
	}
	if err := network.Decode(restored.Payload); err != nil {
		return nil, err
	}
	return network, nil
}

func (o *Optimizer) checkLabels(network ml.Network) (string, bool, string) {
	for _, sample := range samples {
		class, err := network.Predict(o.scaler.TransformRow(sample))
		if err != nil {
			return "label-domain", false, fmt.Sprintf("could not predict %+v: %v", sample, err)
		}
		if class < 0 || class >= len(o.classes) {
			return "label-domain", false, fmt.Sprintf("class %d outside label set for %+v", class, sample)
		}
	}
	return "label-domain", true, ""
}

func (o *Optimizer) checkRoundTrip(network ml.Network) (string, bool, string) {
	if o.selected == nil {
		return "round-trip", false, "no live model to compare against"
	}

	sample := o.scaler.TransformRow(samples[0])
	want, err := o.selected.Predict(sample)
	if err != nil {
		return "round-trip", false, fmt.Sprintf("live model: %v", err)
	}
	got, err := network.Predict(sample)
	if err != nil {
		return "round-trip", false, fmt.Sprintf("restored model: %v", err)
	}
	if got != want {
		return "round-trip", false, fmt.Sprintf("restored predicted %d, live predicted %d", got, want)
	}
	return "round-trip", true, ""
}

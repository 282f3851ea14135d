package ml

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/cdipaolo/goml/base"
	"github.com/cdipaolo/goml/linear"
)

// stochastic updates, the summed batch gradient oscillates and
// diverges on this set
const (
	softmaxAlpha      = 0.005
	softmaxIterations = 2000
)

// Softmax is the linear-classifier variant, a multinomial logistic
// regression trained with stochastic gradient ascent.
type Softmax struct {
	classes int
	model   *linear.Softmax
}

func NewSoftmax(classes int) *Softmax {
	return &Softmax{
		classes: classes,
	}
}

func (s *Softmax) Type() Type {
	return Linear
}

func (s *Softmax) Train(x [][]float64, y []int) error {
	labels := make([]float64, len(y))
	for i, v := range y {
		labels[i] = float64(v)
	}

	model := linear.NewSoftmax(base.StochasticGA, softmaxAlpha, 0, s.classes, softmaxIterations, x, labels)
	model.Output = io.Discard

	if err := model.Learn(); err != nil {
		return fmt.Errorf("could not train softmax: %w", err)
	}
	s.model = model
	return nil
}

func (s *Softmax) Predict(x []float64) (int, error) {
	if s.model == nil {
		return 0, fmt.Errorf("no softmax trained")
	}
	probs, err := s.model.Predict(x)
	if err != nil {
		return 0, fmt.Errorf("could not predict: %w", err)
	}
	return argmax(probs), nil
}

func (s *Softmax) Parameters() map[string]float64 {
	return map[string]float64{
		"alpha":          softmaxAlpha,
		"max_iterations": softmaxIterations,
		"classes":        float64(s.classes),
	}
}

// Encode serializes the learned parameter matrix, one row of weights
// (bias first) per class.
func (s *Softmax) Encode() ([]byte, error) {
	if s.model == nil {
		return nil, fmt.Errorf("no softmax trained")
	}
	return json.Marshal(s.model.Parameters)
}

func (s *Softmax) Decode(b []byte) error {
	var theta [][]float64
	if err := json.Unmarshal(b, &theta); err != nil {
		return fmt.Errorf("could not decode softmax: %w", err)
	}
	if len(theta) == 0 || len(theta[0]) < 2 {
		return fmt.Errorf("could not decode softmax: empty parameter matrix")
	}

	model := linear.NewSoftmax(base.StochasticGA, softmaxAlpha, 0, s.classes, softmaxIterations, nil, nil, len(theta[0])-1)
	model.Output = io.Discard
	model.Parameters = theta
	s.model = model
	return nil
}

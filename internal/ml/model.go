package ml

import (
	"errors"
	"fmt"
)

// UnknownModelErr marks an unsupported model type tag, a configuration error.
var UnknownModelErr = errors.New("unknown model type")

// Type enumerates the supported model variants.
type Type string

const (
	Linear Type = "linear-classifier"
	Forest Type = "ensemble-of-trees"
)

// Types returns the fixed model set in enumeration order.
func Types() []Type {
	return []Type{Linear, Forest}
}

// Network is the capability interface every model variant implements.
type Network interface {
	Type() Type
	// Train fits the model on the given feature matrix and labels.
	Train(x [][]float64, y []int) error
	// Predict returns the class index for one feature vector.
	Predict(x []float64) (int, error)
	// Parameters exposes the hyperparameters submitted to tracking.
	Parameters() map[string]float64
	// Encode serializes the fitted model to a self-contained payload.
	Encode() ([]byte, error)
	// Decode restores a fitted model from an Encode payload.
	Decode(b []byte) error
}

// New constructs the network for the given model type tag.
func New(t Type, classes int) (Network, error) {
	switch t {
	case Linear:
		return NewSoftmax(classes), nil
	case Forest:
		return NewRandomForest(classes), nil
	}
	return nil, fmt.Errorf("'%s': %w", t, UnknownModelErr)
}

func argmax(values []float64) int {
	best := 0
	for i, v := range values {
		if v > values[best] {
			best = i
		}
	}
	return best
}

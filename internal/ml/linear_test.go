package ml

import (
	"testing"

	"github.com/drakos74/iris-pipeline/internal/config"
	"github.com/drakos74/iris-pipeline/internal/data"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// the standardized training partition is linearly separable for one of
// the classes, training has to stay bounded there and still fit the rest
func TestSoftmax_LearnsScaledIris(t *testing.T) {

	ds, err := data.Load()
	require.NoError(t, err)

	split, err := data.NewProcessor(ds, config.Data{TestFraction: 0.2, Seed: config.DefaultSeed}).Prepare()
	require.NoError(t, err)

	network := NewSoftmax(len(ds.Classes))
	require.NoError(t, network.Train(split.XTrain, split.YTrain))

	predicted := make([]int, len(split.XTest))
	for i, row := range split.XTest {
		class, err := network.Predict(row)
		require.NoError(t, err)
		predicted[i] = class
	}

	evaluation := Evaluate(split.YTest, predicted, len(ds.Classes))
	assert.True(t, evaluation.Accuracy >= 0.85, "accuracy %f", evaluation.Accuracy)
}

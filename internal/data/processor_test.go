package data

import (
	"errors"
	"math"
	"sort"
	"testing"

	"github.com/drakos74/iris-pipeline/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcessor_Prepare_Split(t *testing.T) {

	type test struct {
		fraction float64
		test     int
	}

	tests := map[string]test{
		"80-20": {
			fraction: 0.2,
			test:     30,
		},
		"90-10": {
			fraction: 0.1,
			test:     15,
		},
		"50-50": {
			fraction: 0.5,
			test:     75,
		},
		"10-90": {
			fraction: 0.9,
			test:     135,
		},
	}

	ds, err := Load()
	require.NoError(t, err)

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			processor := NewProcessor(ds, config.Data{TestFraction: tt.fraction, Seed: 1})
			split, err := processor.Prepare()
			assert.NoError(t, err)

			assert.Equal(t, tt.test, len(split.XTest))
			assert.Equal(t, ds.Len()-tt.test, len(split.XTrain))
			assert.Equal(t, len(split.XTest), len(split.YTest))
			assert.Equal(t, len(split.XTrain), len(split.YTrain))

			// every row lands in exactly one partition
			seen := make(map[int]bool)
			for _, idx := range append(append([]int{}, split.TrainIndex...), split.TestIndex...) {
				assert.False(t, seen[idx], "row %d appears twice", idx)
				seen[idx] = true
			}
			assert.Equal(t, ds.Len(), len(seen))
		})
	}
}

func TestProcessor_Prepare_InvalidFraction(t *testing.T) {

	ds, err := Load()
	require.NoError(t, err)

	for _, fraction := range []float64{0, 1, -0.1, 1.5} {
		processor := NewProcessor(ds, config.Data{TestFraction: fraction, Seed: 1})
		_, err := processor.Prepare()
		assert.Error(t, err)
		assert.True(t, errors.Is(err, config.InvalidErr), "got %v", err)
	}
}

func TestProcessor_Prepare_TinyTrainPartition(t *testing.T) {

	ds, err := Load()
	require.NoError(t, err)

	// 0.995 leaves a single training row, the scaler falls back to
	// centering and the output stays finite
	split, err := NewProcessor(ds, config.Data{TestFraction: 0.995, Seed: 1}).Prepare()
	require.NoError(t, err)

	require.Len(t, split.XTrain, 1)
	assert.Equal(t, ds.Len()-1, len(split.XTest))

	for _, rows := range [][][]float64{split.XTrain, split.XTest} {
		for i, row := range rows {
			for j, v := range row {
				assert.False(t, math.IsNaN(v) || math.IsInf(v, 0), "row %d feature %d is %f", i, j, v)
			}
		}
	}
}

func TestProcessor_Prepare_ScalerCentersTrainMean(t *testing.T) {

	ds, err := Load()
	require.NoError(t, err)

	processor := NewProcessor(ds, config.Data{TestFraction: 0.2, Seed: 42})
	split, err := processor.Prepare()
	require.NoError(t, err)

	// mean of the raw training rows per feature
	mean := make([]float64, len(ds.Features))
	for _, idx := range split.TrainIndex {
		for j, v := range ds.X[idx] {
			mean[j] += v
		}
	}
	for j := range mean {
		mean[j] /= float64(len(split.TrainIndex))
	}

	scaled := split.Scaler.TransformRow(mean)
	for j, v := range scaled {
		assert.InDelta(t, 0.0, v, 1e-9, "feature %d", j)
	}
}

func TestProcessor_Prepare_Deterministic(t *testing.T) {

	ds, err := Load()
	require.NoError(t, err)

	first, err := NewProcessor(ds, config.Data{TestFraction: 0.2, Seed: 7}).Prepare()
	require.NoError(t, err)
	second, err := NewProcessor(ds, config.Data{TestFraction: 0.2, Seed: 7}).Prepare()
	require.NoError(t, err)
	other, err := NewProcessor(ds, config.Data{TestFraction: 0.2, Seed: 8}).Prepare()
	require.NoError(t, err)

	assert.Equal(t, first.TestIndex, second.TestIndex)
	assert.NotEqual(t, first.TestIndex, other.TestIndex)
}

func TestProcessor_FeatureSummary(t *testing.T) {

	ds, err := Load()
	require.NoError(t, err)

	processor := NewProcessor(ds, config.Data{TestFraction: 0.2, Seed: 1})
	summary := processor.FeatureSummary()

	require.Len(t, summary, len(ds.Features))
	for _, s := range summary {
		assert.Equal(t, 150, s.Count)
		ordered := []float64{s.Min, s.Q25, s.Median, s.Q75, s.Max}
		assert.True(t, sort.Float64sAreSorted(ordered), "%s quartiles out of order: %+v", s.Feature, ordered)
		assert.True(t, s.Std > 0, "%s has zero deviation", s.Feature)
	}

	// known iris values
	assert.Equal(t, "sepal-length", summary[0].Feature)
	assert.InDelta(t, 5.84, summary[0].Mean, 0.05)
	assert.InDelta(t, 4.3, summary[0].Min, 1e-9)
	assert.InDelta(t, 7.9, summary[0].Max, 1e-9)
}

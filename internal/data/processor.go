package data

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/drakos74/iris-pipeline/internal/config"
	"github.com/rs/zerolog/log"
	"gonum.org/v1/gonum/stat"
)

// Processor prepares the raw dataset for training.
type Processor struct {
	dataset Dataset
	cfg     config.Data
}

func NewProcessor(ds Dataset, cfg config.Data) *Processor {
	return &Processor{
		dataset: ds,
		cfg:     cfg,
	}
}

// ScaledSplit carries the train and test partitions together with the
// scaler that produced them. The index slices point back into the raw
// dataset rows each partition was drawn from.
type ScaledSplit struct {
	XTrain     [][]float64
	XTest      [][]float64
	YTrain     []int
	YTest      []int
	TrainIndex []int
	TestIndex  []int
	Scaler     Scaler
}

// Prepare splits the dataset by a seeded permutation and scales both
// partitions with a transform fitted on the training rows only.
func (p *Processor) Prepare() (ScaledSplit, error) {
	fraction := p.cfg.TestFraction
	if fraction <= 0 || fraction >= 1 {
		return ScaledSplit{}, fmt.Errorf("test fraction %v outside (0,1): %w", fraction, config.InvalidErr)
	}

	n := p.dataset.Len()
	if n == 0 {
		return ScaledSplit{}, fmt.Errorf("empty dataset: %w", UnavailableErr)
	}

	perm := rand.New(rand.NewSource(p.cfg.Seed)).Perm(n)
	hold := int(float64(n) * fraction)
	if hold == 0 {
		hold = 1
	}

	split := ScaledSplit{
		TestIndex:  perm[:hold],
		TrainIndex: perm[hold:],
	}

	rawTrain := rows(p.dataset.X, split.TrainIndex)
	rawTest := rows(p.dataset.X, split.TestIndex)

	split.Scaler.Fit(rawTrain)
	split.XTrain = split.Scaler.Transform(rawTrain)
	split.XTest = split.Scaler.Transform(rawTest)
	split.YTrain = labels(p.dataset.Y, split.TrainIndex)
	split.YTest = labels(p.dataset.Y, split.TestIndex)

	log.Info().
		Int("train", len(split.XTrain)).
		Int("test", len(split.XTest)).
		Float64("fraction", fraction).
		Int64("seed", p.cfg.Seed).
		Msg("prepared split")

	return split, nil
}

// Summary holds descriptive statistics for one raw feature.
type Summary struct {
	Feature string  `json:"feature"`
	Count   int     `json:"count"`
	Mean    float64 `json:"mean"`
	Std     float64 `json:"std"`
	Min     float64 `json:"min"`
	Q25     float64 `json:"q25"`
	Median  float64 `json:"median"`
	Q75     float64 `json:"q75"`
	Max     float64 `json:"max"`
}

// FeatureSummary describes every feature over the unscaled data.
func (p *Processor) FeatureSummary() []Summary {
	out := make([]Summary, 0, len(p.dataset.Features))
	for j, name := range p.dataset.Features {
		col := column(p.dataset.X, j)
		sorted := make([]float64, len(col))
		copy(sorted, col)
		sort.Float64s(sorted)
		out = append(out, Summary{
			Feature: name,
			Count:   len(col),
			Mean:    stat.Mean(col, nil),
			Std:     stat.StdDev(col, nil),
			Min:     sorted[0],
			Q25:     stat.Quantile(0.25, stat.Empirical, sorted, nil),
			Median:  stat.Quantile(0.5, stat.Empirical, sorted, nil),
			Q75:     stat.Quantile(0.75, stat.Empirical, sorted, nil),
			Max:     sorted[len(sorted)-1],
		})
	}
	return out
}

func rows(x [][]float64, index []int) [][]float64 {
	out := make([][]float64, len(index))
	for i, idx := range index {
		out[i] = x[idx]
	}
	return out
}

func labels(y []int, index []int) []int {
	out := make([]int, len(index))
	for i, idx := range index {
		out[i] = y[idx]
	}
	return out
}

package data

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Scaler centers each feature to zero mean and unit variance.
// It is fitted once on the training partition and then applied unchanged
// to any other partition, so that no test information leaks into the fit.
type Scaler struct {
	Mean  []float64 `json:"mean"`
	Scale []float64 `json:"scale"`
}

// Fit learns the per-feature mean and deviation from the given rows.
func (s *Scaler) Fit(x [][]float64) *Scaler {
	cols := len(x[0])
	s.Mean = make([]float64, cols)
	s.Scale = make([]float64, cols)
	for j := 0; j < cols; j++ {
		col := column(x, j)
		s.Mean[j] = stat.Mean(col, nil)
		dev := stat.StdDev(col, nil)
		if dev == 0 || math.IsNaN(dev) {
			// constant feature or a single row, leave it centered only
			dev = 1
		}
		s.Scale[j] = dev
	}
	return s
}

// Transform applies the fitted transform to every row.
func (s *Scaler) Transform(x [][]float64) [][]float64 {
	out := make([][]float64, len(x))
	for i, row := range x {
		out[i] = s.TransformRow(row)
	}
	return out
}

// TransformRow applies the fitted transform to a single row.
func (s *Scaler) TransformRow(row []float64) []float64 {
	out := make([]float64, len(row))
	for j, v := range row {
		out[j] = (v - s.Mean[j]) / s.Scale[j]
	}
	return out
}

func column(x [][]float64, j int) []float64 {
	col := make([]float64, len(x))
	for i := range x {
		col[i] = x[i][j]
	}
	return col
}

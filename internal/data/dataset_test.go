package data

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	ds, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 150, ds.Len())
	assert.Equal(t, []string{"sepal-length", "sepal-width", "petal-length", "petal-width"}, ds.Features)
	assert.Equal(t, []string{"Iris-setosa", "Iris-versicolor", "Iris-virginica"}, ds.Classes)

	counts := make(map[int]int)
	for _, y := range ds.Y {
		counts[y]++
	}
	assert.Equal(t, map[int]int{0: 50, 1: 50, 2: 50}, counts)

	assert.Equal(t, []float64{5.1, 3.5, 1.4, 0.2}, ds.X[0])
	assert.Equal(t, 0, ds.Y[0])
}

func TestLoad_StableColumnOrder(t *testing.T) {
	// attribute resolution must not depend on iteration order,
	// every load lines the columns up with Features
	for i := 0; i < 10; i++ {
		ds, err := Load()
		require.NoError(t, err)

		assert.Equal(t, []float64{5.1, 3.5, 1.4, 0.2}, ds.X[0], "load %d", i)
		assert.Equal(t, []float64{7.0, 3.2, 4.7, 1.4}, ds.X[50], "load %d", i)
		assert.Equal(t, []float64{6.3, 3.3, 6.0, 2.5}, ds.X[100], "load %d", i)
	}
}

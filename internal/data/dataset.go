package data

import (
	"bytes"
	"errors"
	"fmt"

	_ "embed"

	"github.com/sjwhitworth/golearn/base"
)

//go:embed iris.csv
var irisCSV []byte

// UnavailableErr marks a dataset that could not be loaded.
var UnavailableErr = errors.New("dataset unavailable")

// featureNames follow the header of the embedded table.
var featureNames = []string{"sepal-length", "sepal-width", "petal-length", "petal-width"}

// Dataset is the immutable in-memory iris table.
// X holds one row per flower, Y the class index into Classes.
type Dataset struct {
	X        [][]float64
	Y        []int
	Features []string
	Classes  []string
}

// Load parses the embedded iris table into a Dataset.
func Load() (Dataset, error) {
	instances, err := base.ParseCSVToInstancesFromReader(bytes.NewReader(irisCSV), true)
	if err != nil {
		return Dataset{}, fmt.Errorf("could not parse iris table: %v: %w", err, UnavailableErr)
	}
	return fromInstances(instances)
}

// fromInstances unpacks a golearn grid into the plain matrix the models consume.
func fromInstances(instances *base.DenseInstances) (Dataset, error) {
	attrs := base.NonClassAttributes(instances)
	_, rows := instances.Size()

	if rows == 0 || len(attrs) != len(featureNames) {
		return Dataset{}, fmt.Errorf("unexpected iris shape %dx%d: %w", rows, len(attrs), UnavailableErr)
	}

	// golearn hands attributes back in no particular order,
	// pin them to the header columns by name
	byName := make(map[string]base.Attribute, len(attrs))
	for _, attr := range attrs {
		byName[attr.GetName()] = attr
	}
	ordered := make([]base.Attribute, 0, len(featureNames))
	for _, name := range featureNames {
		attr, ok := byName[name]
		if !ok {
			return Dataset{}, fmt.Errorf("missing feature column '%s': %w", name, UnavailableErr)
		}
		ordered = append(ordered, attr)
	}
	specs := base.ResolveAttributes(instances, ordered)

	ds := Dataset{
		X:        make([][]float64, 0, rows),
		Y:        make([]int, 0, rows),
		Features: featureNames,
		Classes:  make([]string, 0, 3),
	}

	index := make(map[string]int)
	for i := 0; i < rows; i++ {
		x := make([]float64, 0, len(specs))
		for _, spec := range specs {
			x = append(x, base.UnpackBytesToFloat(instances.Get(spec, i)))
		}
		label := base.GetClass(instances, i)
		class, ok := index[label]
		if !ok {
			class = len(ds.Classes)
			index[label] = class
			ds.Classes = append(ds.Classes, label)
		}
		ds.X = append(ds.X, x)
		ds.Y = append(ds.Y, class)
	}
	return ds, nil
}

// Len returns the number of rows.
func (ds Dataset) Len() int {
	return len(ds.X)
}

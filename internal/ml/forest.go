package ml

import (
	"encoding/json"
	"fmt"

	randomforest "github.com/malaschitz/randomForest"
)

const forestTrees = 100

// RandomForest is the ensemble-of-trees variant.
type RandomForest struct {
	trees   int
	classes int
	forest  *randomforest.Forest
}

func NewRandomForest(classes int) *RandomForest {
	return &RandomForest{
		trees:   forestTrees,
		classes: classes,
	}
}

func (rf *RandomForest) Type() Type {
	return Forest
}

func (rf *RandomForest) Train(x [][]float64, y []int) error {
	forest := &randomforest.Forest{}
	forest.Data = randomforest.ForestData{X: x, Class: y}
	forest.Train(rf.trees)
	rf.forest = forest
	return nil
}

func (rf *RandomForest) Predict(x []float64) (int, error) {
	if rf.forest == nil {
		return 0, fmt.Errorf("no forest trained")
	}
	votes := rf.forest.Vote(x)
	if len(votes) == 0 {
		return 0, fmt.Errorf("no votes for %+v", x)
	}
	return argmax(votes), nil
}

func (rf *RandomForest) Parameters() map[string]float64 {
	return map[string]float64{
		"trees":   float64(rf.trees),
		"classes": float64(rf.classes),
	}
}

func (rf *RandomForest) Encode() ([]byte, error) {
	if rf.forest == nil {
		return nil, fmt.Errorf("no forest trained")
	}
	return json.Marshal(rf.forest)
}

func (rf *RandomForest) Decode(b []byte) error {
	forest := &randomforest.Forest{}
	if err := json.Unmarshal(b, forest); err != nil {
		return fmt.Errorf("could not decode forest: %w", err)
	}
	rf.forest = forest
	return nil
}

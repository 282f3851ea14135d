package ml

// Evaluation is the metric set computed on the test partition.
type Evaluation struct {
	Accuracy  float64 `json:"accuracy"`
	Precision float64 `json:"precision"`
	Recall    float64 `json:"recall"`
}

// Map flattens the metric set for tracking submissions.
func (e Evaluation) Map() map[string]float64 {
	return map[string]float64{
		"accuracy":  e.Accuracy,
		"precision": e.Precision,
		"recall":    e.Recall,
	}
}

// Evaluate computes accuracy and macro-averaged precision and recall,
// giving each class equal weight regardless of its support.
func Evaluate(yTrue, yPred []int, classes int) Evaluation {
	if len(yTrue) == 0 || len(yTrue) != len(yPred) {
		return Evaluation{}
	}

	confusion := make([][]int, classes)
	for c := range confusion {
		confusion[c] = make([]int, classes)
	}

	correct := 0
	for i := range yTrue {
		confusion[yTrue[i]][yPred[i]]++
		if yTrue[i] == yPred[i] {
			correct++
		}
	}

	var precision, recall float64
	for c := 0; c < classes; c++ {
		tp := confusion[c][c]
		predicted := 0
		actual := 0
		for k := 0; k < classes; k++ {
			predicted += confusion[k][c]
			actual += confusion[c][k]
		}
		if predicted > 0 {
			precision += float64(tp) / float64(predicted)
		}
		if actual > 0 {
			recall += float64(tp) / float64(actual)
		}
	}

	return Evaluation{
		Accuracy:  float64(correct) / float64(len(yTrue)),
		Precision: precision / float64(classes),
		Recall:    recall / float64(classes),
	}
}

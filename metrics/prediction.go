package metrics

// Prediction is a model's output for one row.
//
// For binary models Probability is the probability of label 1. For
// multiclass models it is the probability of PredictedLabel. A model that
// knows the probability of every class sets Distribution, and evaluation
// reads it in preference to Probability.
type Prediction struct {
	PredictedLabel int64             `json:"predicted_label"`
	Score          float64           `json:"score"`
	Probability    float64           `json:"probability"`
	Distribution   map[int64]float64 `json:"-"`
}

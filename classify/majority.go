package classify

import (
	"context"
	"fmt"

	apperrors "github.com/Stephen0620/NimbusML-Samples/errors"
	"github.com/Stephen0620/NimbusML-Samples/metrics"
	"github.com/Stephen0620/NimbusML-Samples/pipeline"
	"github.com/Stephen0620/NimbusML-Samples/stage"
)

// Majority predicts the most frequent training label, ignoring features.
// Ties go to the smallest label. When every training label is 0 or 1 the
// probability is the frequency of label 1, otherwise the frequency of the
// predicted label. Predictions also carry the full class distribution.
type Majority struct {
	name string
}

// NewMajority returns the classifier. An empty name defaults to "majority".
func NewMajority(name string) *Majority {
	if name == "" {
		name = "majority"
	}
	return &Majority{name: name}
}

func (m *Majority) Name() string { return m.name }

func (m *Majority) Fit(ctx context.Context, examples *pipeline.Pipeline[stage.Example]) (stage.Model, error) {
	counts := make(map[int64]int)
	total := 0
	err := pipeline.ForEach(ctx, examples, func(_ context.Context, ex stage.Example) error {
		if !ex.HasLabel {
			return apperrors.MissingField("label")
		}
		counts[ex.Label]++
		total++
		return nil
	})
	if err != nil {
		return nil, err
	}
	if total == 0 {
		return nil, apperrors.InvalidInput("rows", fmt.Sprintf("stage %q: cannot fit on an empty stream", m.name))
	}

	var best int64
	bestCount := -1
	binary := true
	for label, c := range counts {
		if c > bestCount || (c == bestCount && label < best) {
			best, bestCount = label, c
		}
		if label != 0 && label != 1 {
			binary = false
		}
	}

	dist := make(map[int64]float64, len(counts))
	for label, c := range counts {
		dist[label] = float64(c) / float64(total)
	}
	p := dist[best]
	if binary {
		p = dist[1]
	}
	return &majorityModel{pred: metrics.Prediction{PredictedLabel: best, Score: p, Probability: p, Distribution: dist}}, nil
}

type majorityModel struct {
	pred metrics.Prediction
}

func (m *majorityModel) Predict(context.Context, stage.Example) (metrics.Prediction, error) {
	return m.pred, nil
}

package classify

import (
	"context"
	"fmt"
	"math"

	apperrors "github.com/Stephen0620/NimbusML-Samples/errors"
	"github.com/Stephen0620/NimbusML-Samples/metrics"
	"github.com/Stephen0620/NimbusML-Samples/pipeline"
	"github.com/Stephen0620/NimbusML-Samples/stage"
)

// linearModel scores w·x + b and maps the score through the logistic
// function.
type linearModel struct {
	name    string
	weights []float64
	bias    float64
}

func (m *linearModel) score(x []float64) float64 {
	s := m.bias
	for i, w := range m.weights {
		s += w * x[i]
	}
	return s
}

func (m *linearModel) Predict(_ context.Context, ex stage.Example) (metrics.Prediction, error) {
	if len(ex.Features) != len(m.weights) {
		return metrics.Prediction{}, apperrors.InvalidInput("features",
			fmt.Sprintf("model %q: expected %d features, got %d", m.name, len(m.weights), len(ex.Features)))
	}
	s := m.score(ex.Features)
	p := sigmoid(s)
	var label int64
	if s > 0 {
		label = 1
	}
	return metrics.Prediction{PredictedLabel: label, Score: s, Probability: p}, nil
}

// Weights returns a copy of the learned weights and the bias.
func (m *linearModel) Weights() ([]float64, float64) {
	out := make([]float64, len(m.weights))
	copy(out, m.weights)
	return out, m.bias
}

func sigmoid(z float64) float64 {
	if z >= 0 {
		return 1 / (1 + math.Exp(-z))
	}
	e := math.Exp(z)
	return e / (1 + e)
}

// epochs traverses examples once per epoch, checking labels and the
// feature dimension, and calls step for every example.
func epochs(ctx context.Context, name string, examples *pipeline.Pipeline[stage.Example], n int,
	step func(ex stage.Example, y float64)) error {
	dim := -1
	for epoch := 0; epoch < n; epoch++ {
		err := pipeline.ForEach(ctx, examples, func(_ context.Context, ex stage.Example) error {
			if !ex.HasLabel {
				return apperrors.MissingField("label")
			}
			if ex.Label != 0 && ex.Label != 1 {
				return apperrors.StageFit(name, fmt.Errorf("label %d is not binary; want 0 or 1", ex.Label))
			}
			if dim < 0 {
				dim = len(ex.Features)
			}
			if len(ex.Features) != dim {
				return apperrors.InvalidInput("features", fmt.Sprintf("stage %q: expected %d features, got %d", name, dim, len(ex.Features)))
			}
			step(ex, float64(ex.Label))
			return nil
		})
		if err != nil {
			return err
		}
		if dim < 0 {
			return apperrors.InvalidInput("rows", fmt.Sprintf("stage %q: cannot fit on an empty stream", name))
		}
	}
	return nil
}

package stage

import (
	"context"

	"github.com/Stephen0620/NimbusML-Samples/metrics"
	"github.com/Stephen0620/NimbusML-Samples/pipeline"
)

// Stage is a named pipeline step.
type Stage interface {
	Name() string
}

// Transformer is a non-terminal step.
type Transformer interface {
	Stage
	// Fit learns the transform from examples produced by earlier steps.
	Fit(ctx context.Context, examples *pipeline.Pipeline[Example]) (Fitted, error)
}

// Fitted is a trained transform.
type Fitted interface {
	Transform(ctx context.Context, ex Example) (Example, error)
}

// Classifier is the terminal step.
type Classifier interface {
	Stage
	// Fit trains a model. Every example carries a label.
	Fit(ctx context.Context, examples *pipeline.Pipeline[Example]) (Model, error)
}

// Model is a trained classifier.
type Model interface {
	Predict(ctx context.Context, ex Example) (metrics.Prediction, error)
}

// FittedFunc adapts a function to Fitted.
type FittedFunc func(ctx context.Context, ex Example) (Example, error)

// Transform calls f.
func (f FittedFunc) Transform(ctx context.Context, ex Example) (Example, error) {
	return f(ctx, ex)
}

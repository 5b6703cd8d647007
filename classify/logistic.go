package classify

import (
	"context"

	"github.com/Stephen0620/NimbusML-Samples/pipeline"
	"github.com/Stephen0620/NimbusML-Samples/stage"
	"github.com/Stephen0620/NimbusML-Samples/validation"
)

// LogisticConfig configures a LogisticRegression.
type LogisticConfig struct {
	Name         string  `yaml:"name" mapstructure:"name"`
	Epochs       int     `yaml:"epochs" mapstructure:"epochs" validate:"gte=1"`
	LearningRate float64 `yaml:"learning_rate" mapstructure:"learning_rate" validate:"gt=0"`
	L2           float64 `yaml:"l2" mapstructure:"l2" validate:"gte=0"`
}

// LogisticRegression is binary logistic regression trained by per-row
// stochastic gradient descent from zero weights.
type LogisticRegression struct {
	cfg LogisticConfig
}

// NewLogisticRegression validates cfg and returns the classifier.
func NewLogisticRegression(cfg LogisticConfig) (*LogisticRegression, error) {
	if cfg.Name == "" {
		cfg.Name = "logistic_regression"
	}
	if cfg.Epochs == 0 {
		cfg.Epochs = 10
	}
	if cfg.LearningRate == 0 {
		cfg.LearningRate = 0.1
	}
	if err := validation.Validate(cfg); err != nil {
		return nil, err
	}
	return &LogisticRegression{cfg: cfg}, nil
}

func (l *LogisticRegression) Name() string { return l.cfg.Name }

func (l *LogisticRegression) Fit(ctx context.Context, examples *pipeline.Pipeline[stage.Example]) (stage.Model, error) {
	m := &linearModel{name: l.cfg.Name}
	lr, l2 := l.cfg.LearningRate, l.cfg.L2
	err := epochs(ctx, l.cfg.Name, examples, l.cfg.Epochs, func(ex stage.Example, y float64) {
		if m.weights == nil {
			m.weights = make([]float64, len(ex.Features))
		}
		g := sigmoid(m.score(ex.Features)) - y
		for i, x := range ex.Features {
			m.weights[i] -= lr * (g*x + l2*m.weights[i])
		}
		m.bias -= lr * g
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}

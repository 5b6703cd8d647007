package classify

import (
	"context"

	"github.com/Stephen0620/NimbusML-Samples/pipeline"
	"github.com/Stephen0620/NimbusML-Samples/stage"
	"github.com/Stephen0620/NimbusML-Samples/validation"
)

// PerceptronConfig configures an AveragedPerceptron.
type PerceptronConfig struct {
	Name         string  `yaml:"name" mapstructure:"name"`
	Epochs       int     `yaml:"epochs" mapstructure:"epochs" validate:"gte=1"`
	LearningRate float64 `yaml:"learning_rate" mapstructure:"learning_rate" validate:"gt=0"`
}

// AveragedPerceptron is a binary perceptron whose final weights are the
// average of the weights after every example.
type AveragedPerceptron struct {
	cfg PerceptronConfig
}

// NewAveragedPerceptron validates cfg and returns the classifier.
func NewAveragedPerceptron(cfg PerceptronConfig) (*AveragedPerceptron, error) {
	if cfg.Name == "" {
		cfg.Name = "averaged_perceptron"
	}
	if cfg.Epochs == 0 {
		cfg.Epochs = 10
	}
	if cfg.LearningRate == 0 {
		cfg.LearningRate = 1
	}
	if err := validation.Validate(cfg); err != nil {
		return nil, err
	}
	return &AveragedPerceptron{cfg: cfg}, nil
}

func (p *AveragedPerceptron) Name() string { return p.cfg.Name }

func (p *AveragedPerceptron) Fit(ctx context.Context, examples *pipeline.Pipeline[stage.Example]) (stage.Model, error) {
	var (
		w, u  []float64
		b, ub float64
		c     = 1.0
	)
	lr := p.cfg.LearningRate
	err := epochs(ctx, p.cfg.Name, examples, p.cfg.Epochs, func(ex stage.Example, y float64) {
		if w == nil {
			w = make([]float64, len(ex.Features))
			u = make([]float64, len(ex.Features))
		}
		sign := 2*y - 1
		s := b
		for i, x := range ex.Features {
			s += w[i] * x
		}
		if sign*s <= 0 {
			for i, x := range ex.Features {
				w[i] += lr * sign * x
				u[i] += c * lr * sign * x
			}
			b += lr * sign
			ub += c * lr * sign
		}
		c++
	})
	if err != nil {
		return nil, err
	}

	avg := make([]float64, len(w))
	for i := range w {
		avg[i] = w[i] - u[i]/c
	}
	return &linearModel{name: p.cfg.Name, weights: avg, bias: b - ub/c}, nil
}

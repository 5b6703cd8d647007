package featurize

import (
	"context"
	"fmt"
	"math"

	apperrors "github.com/Stephen0620/NimbusML-Samples/errors"
	"github.com/Stephen0620/NimbusML-Samples/pipeline"
	"github.com/Stephen0620/NimbusML-Samples/stage"
	"github.com/Stephen0620/NimbusML-Samples/validation"
)

// NumericConfig configures a Numeric featurizer.
type NumericConfig struct {
	Name        string   `yaml:"name" mapstructure:"name"`
	Columns     []string `yaml:"columns" mapstructure:"columns" validate:"required,min=1,unique"`
	Standardize bool     `yaml:"standardize" mapstructure:"standardize"`
}

// Numeric appends integer and float columns to the feature vector.
type Numeric struct {
	cfg NumericConfig
}

// NewNumeric validates cfg and returns the featurizer.
func NewNumeric(cfg NumericConfig) (*Numeric, error) {
	if cfg.Name == "" {
		cfg.Name = "numeric"
	}
	if err := validation.Validate(cfg); err != nil {
		return nil, err
	}
	return &Numeric{cfg: cfg}, nil
}

func (n *Numeric) Name() string { return n.cfg.Name }

// Fit checks column types and, when standardizing, learns each column's
// mean and standard deviation.
func (n *Numeric) Fit(ctx context.Context, examples *pipeline.Pipeline[stage.Example]) (stage.Fitted, error) {
	k := len(n.cfg.Columns)
	mean := make([]float64, k)
	m2 := make([]float64, k)
	count := 0
	err := pipeline.ForEach(ctx, examples, func(_ context.Context, ex stage.Example) error {
		if count == 0 {
			for _, c := range n.cfg.Columns {
				t, err := ex.ColumnType(c)
				if err != nil {
					return err
				}
				if !t.IsNumeric() {
					return apperrors.InvalidInput("columns", fmt.Sprintf("stage %q: column %q is %s, want a numeric type", n.cfg.Name, c, t))
				}
			}
		}
		count++
		if !n.cfg.Standardize {
			return nil
		}
		for i, c := range n.cfg.Columns {
			v, err := ex.Column(c)
			if err != nil {
				return err
			}
			x := v.Float()
			d := x - mean[i]
			mean[i] += d / float64(count)
			m2[i] += d * (x - mean[i])
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	scale := make([]float64, k)
	for i := range scale {
		scale[i] = 1
		if n.cfg.Standardize && count > 1 {
			if sd := math.Sqrt(m2[i] / float64(count-1)); sd > 0 {
				scale[i] = sd
			}
		}
	}
	if !n.cfg.Standardize {
		mean = make([]float64, k)
	}
	return &numericModel{columns: n.cfg.Columns, mean: mean, scale: scale}, nil
}

type numericModel struct {
	columns []string
	mean    []float64
	scale   []float64
}

func (m *numericModel) Transform(_ context.Context, ex stage.Example) (stage.Example, error) {
	vec := make([]float64, len(m.columns))
	for i, c := range m.columns {
		v, err := ex.Column(c)
		if err != nil {
			return ex, err
		}
		vec[i] = (v.Float() - m.mean[i]) / m.scale[i]
	}
	return ex.WithFeatures(vec...), nil
}

package reduce

import (
	"context"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	apperrors "github.com/Stephen0620/NimbusML-Samples/errors"
	"github.com/Stephen0620/NimbusML-Samples/pipeline"
	"github.com/Stephen0620/NimbusML-Samples/stage"
	"github.com/Stephen0620/NimbusML-Samples/validation"
)

// PCAConfig configures a PCA stage.
type PCAConfig struct {
	Name string `yaml:"name" mapstructure:"name"`
	Rank int    `yaml:"rank" mapstructure:"rank" validate:"gte=1"`
}

// PCA projects centered features onto their top principal components.
type PCA struct {
	cfg PCAConfig
}

// NewPCA validates cfg and returns the stage.
func NewPCA(cfg PCAConfig) (*PCA, error) {
	if cfg.Name == "" {
		cfg.Name = "pca"
	}
	if err := validation.Validate(cfg); err != nil {
		return nil, err
	}
	return &PCA{cfg: cfg}, nil
}

func (p *PCA) Name() string { return p.cfg.Name }

// Fit learns the components. A rank above the feature dimension is clamped.
func (p *PCA) Fit(ctx context.Context, examples *pipeline.Pipeline[stage.Example]) (stage.Fitted, error) {
	var (
		dim   int
		n     int
		sum   []float64
		outer *mat.SymDense
	)
	err := pipeline.ForEach(ctx, examples, func(_ context.Context, ex stage.Example) error {
		if n == 0 {
			dim = len(ex.Features)
			if dim == 0 {
				return apperrors.InvalidInput("features", fmt.Sprintf("stage %q: examples have no features", p.cfg.Name))
			}
			sum = make([]float64, dim)
			outer = mat.NewSymDense(dim, nil)
		}
		if len(ex.Features) != dim {
			return dimensionError(p.cfg.Name, dim, len(ex.Features))
		}
		n++
		for i, v := range ex.Features {
			sum[i] += v
		}
		outer.SymRankOne(outer, 1, mat.NewVecDense(dim, ex.Features))
		return nil
	})
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, apperrors.InvalidInput("rows", fmt.Sprintf("stage %q: cannot fit on an empty stream", p.cfg.Name))
	}

	mean := make([]float64, dim)
	for i := range sum {
		mean[i] = sum[i] / float64(n)
	}
	cov := mat.NewSymDense(dim, nil)
	cov.SymRankOne(outer, -float64(n), mat.NewVecDense(dim, mean))
	if n > 1 {
		cov.ScaleSym(1/float64(n-1), cov)
	}

	var eig mat.EigenSym
	if ok := eig.Factorize(cov, true); !ok {
		return nil, fmt.Errorf("eigendecomposition of %dx%d covariance did not converge", dim, dim)
	}
	values := eig.Values(nil)
	var vectors mat.Dense
	eig.VectorsTo(&vectors)

	rank := min(p.cfg.Rank, dim)
	components := make([][]float64, rank)
	explained := make([]float64, rank)
	// eigenvalues come back in ascending order
	for k := 0; k < rank; k++ {
		col := dim - 1 - k
		components[k] = orient(mat.Col(nil, col, &vectors))
		explained[k] = math.Max(values[col], 0)
	}
	return &pcaModel{name: p.cfg.Name, mean: mean, components: components, explained: explained}, nil
}

// orient flips v so its largest-magnitude entry is positive, making the
// sign of each component deterministic.
func orient(v []float64) []float64 {
	best := 0
	for i := range v {
		if math.Abs(v[i]) > math.Abs(v[best]) {
			best = i
		}
	}
	if v[best] < 0 {
		for i := range v {
			v[i] = -v[i]
		}
	}
	return v
}

type pcaModel struct {
	name       string
	mean       []float64
	components [][]float64
	explained  []float64
}

// Explained returns the variance captured by each kept component.
func (m *pcaModel) Explained() []float64 {
	out := make([]float64, len(m.explained))
	copy(out, m.explained)
	return out
}

func (m *pcaModel) Transform(_ context.Context, ex stage.Example) (stage.Example, error) {
	if len(ex.Features) != len(m.mean) {
		return ex, dimensionError(m.name, len(m.mean), len(ex.Features))
	}
	out := make([]float64, len(m.components))
	for k, comp := range m.components {
		var dot float64
		for i, c := range comp {
			dot += c * (ex.Features[i] - m.mean[i])
		}
		out[k] = dot
	}
	return ex.ReplaceFeatures(out), nil
}

func dimensionError(stageName string, want, got int) error {
	return apperrors.InvalidInput("features", fmt.Sprintf("stage %q: expected %d features, got %d", stageName, want, got))
}

package runner

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	apperrors "github.com/Stephen0620/NimbusML-Samples/errors"
	"github.com/Stephen0620/NimbusML-Samples/logger"
	"github.com/Stephen0620/NimbusML-Samples/metrics"
	"github.com/Stephen0620/NimbusML-Samples/observability"
	"github.com/Stephen0620/NimbusML-Samples/pipeline"
	"github.com/Stephen0620/NimbusML-Samples/stage"
	"github.com/Stephen0620/NimbusML-Samples/stream"
	"github.com/Stephen0620/NimbusML-Samples/validation"
)

const meterName = "github.com/Stephen0620/NimbusML-Samples/runner"

// Operation names used for spans, metrics and logs.
const (
	OpFit     = "fit"
	OpTest    = "test"
	OpPredict = "predict"
)

// Pipeline is an ordered list of transformers ending in a classifier.
// Runs on one Pipeline are serialized.
type Pipeline struct {
	roles      stage.Roles
	stages     []stage.Transformer
	classifier stage.Classifier
	log        *logger.Logger
	metrics    *observability.Metrics
	newRunID   func() string

	mu      sync.Mutex
	trained *trainedState
}

type trainedState struct {
	runID  string
	fitted []stage.Fitted
	model  stage.Model
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets the run logger.
func WithLogger(l *logger.Logger) Option {
	return func(p *Pipeline) { p.log = l }
}

// WithMetrics sets the metric instruments.
func WithMetrics(m *observability.Metrics) Option {
	return func(p *Pipeline) { p.metrics = m }
}

// WithRunIDs replaces the run id generator.
func WithRunIDs(fn func() string) Option {
	return func(p *Pipeline) { p.newRunID = fn }
}

// New validates the stage list and returns an unfitted pipeline.
func New(roles stage.Roles, classifier stage.Classifier, stages []stage.Transformer, opts ...Option) (*Pipeline, error) {
	if err := validation.Validate(roles); err != nil {
		return nil, err
	}
	if classifier == nil {
		return nil, apperrors.MissingField("classifier")
	}

	v := validation.New()
	names := make([]string, 0, len(stages)+1)
	for i, st := range stages {
		if st == nil {
			v.AddError(fmt.Sprintf("stages[%d]", i), "is nil")
			continue
		}
		v.Required(fmt.Sprintf("stages[%d].name", i), st.Name())
		names = append(names, st.Name())
	}
	v.Required("classifier.name", classifier.Name())
	names = append(names, classifier.Name())
	v.Unique("stages", names)
	if err := v.Validate(); err != nil {
		return nil, err
	}

	p := &Pipeline{
		roles:      roles,
		stages:     append([]stage.Transformer(nil), stages...),
		classifier: classifier,
		newRunID:   func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.log == nil {
		p.log = logger.Get("runner")
	}
	if p.metrics == nil {
		if m, err := observability.NewMetrics(observability.Meter(meterName)); err == nil {
			p.metrics = m
		}
	}
	return p, nil
}

// Stages returns the stage names in order, classifier last.
func (p *Pipeline) Stages() []string {
	names := make([]string, 0, len(p.stages)+1)
	for _, st := range p.stages {
		names = append(names, st.Name())
	}
	return append(names, p.classifier.Name())
}

// Trained reports whether a Fit has succeeded.
func (p *Pipeline) Trained() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.trained != nil
}

// Fit trains every stage on s. The previous trained state is replaced only
// when the whole fit succeeds.
func (p *Pipeline) Fit(ctx context.Context, s *stream.Stream) (err error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	r := p.startRun(ctx, OpFit, observability.SpanPipelineFit)
	defer func() { r.finish(s, err) }()
	ctx = r.ctx

	if s == nil {
		return apperrors.MissingField("stream")
	}

	binding, err := p.roles.Bind(s.Schema(), true)
	if err != nil {
		return err
	}

	current := r.examples(s, binding)
	fitted := make([]stage.Fitted, 0, len(p.stages))
	for _, st := range p.stages {
		var f stage.Fitted
		err := r.fitStage(st.Name(), func(ctx context.Context) (ferr error) {
			f, ferr = st.Fit(ctx, current)
			return ferr
		})
		if err != nil {
			return err
		}
		fitted = append(fitted, f)
		current = lift(current, st.Name(), f)
	}

	var model stage.Model
	err = r.fitStage(p.classifier.Name(), func(ctx context.Context) (ferr error) {
		model, ferr = p.classifier.Fit(ctx, current)
		return ferr
	})
	if err != nil {
		return err
	}

	p.trained = &trainedState{runID: r.id, fitted: fitted, model: model}
	return nil
}

// Test evaluates the trained pipeline on s. Per-row predictions are
// returned only when wantScores is set, aligned with the rows of s. A stream
// with no rows yields an empty record.
func (p *Pipeline) Test(ctx context.Context, s *stream.Stream, wantScores bool) (rec metrics.Record, preds []metrics.Prediction, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	r := p.startRun(ctx, OpTest, observability.SpanPipelineTest)
	defer func() { r.finish(s, err) }()
	ctx = r.ctx

	if s == nil {
		return metrics.Record{}, nil, apperrors.MissingField("stream")
	}

	if p.trained == nil {
		return metrics.Record{}, nil, apperrors.NotFitted("pipeline")
	}
	binding, err := p.roles.Bind(s.Schema(), true)
	if err != nil {
		return metrics.Record{}, nil, err
	}

	ev := metrics.NewEvaluator()
	err = p.predict(ctx, r.examples(s, binding), func(ex stage.Example, pred metrics.Prediction) {
		ev.Add(ex.Label, pred)
		if wantScores {
			preds = append(preds, pred)
		}
	})
	if err != nil {
		return metrics.Record{}, nil, err
	}
	if ev.Len() == 0 {
		r.log.Warn("test set is empty", logger.Fields(logger.FieldPath, s.Path()))
		if wantScores {
			preds = []metrics.Prediction{}
		}
		return metrics.Record{}, preds, nil
	}

	rec, err = ev.Record()
	if err != nil {
		return metrics.Record{}, nil, err
	}
	return rec, preds, nil
}

// Predict scores every row of s without evaluating. The label column may
// be absent.
func (p *Pipeline) Predict(ctx context.Context, s *stream.Stream) (preds []metrics.Prediction, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	r := p.startRun(ctx, OpPredict, observability.SpanPipelinePredict)
	defer func() { r.finish(s, err) }()
	ctx = r.ctx

	if s == nil {
		return nil, apperrors.MissingField("stream")
	}

	if p.trained == nil {
		return nil, apperrors.NotFitted("pipeline")
	}
	binding, err := p.roles.Bind(s.Schema(), false)
	if err != nil {
		return nil, err
	}

	preds = []metrics.Prediction{}
	err = p.predict(ctx, r.examples(s, binding), func(_ stage.Example, pred metrics.Prediction) {
		preds = append(preds, pred)
	})
	if err != nil {
		return nil, err
	}
	return preds, nil
}

func (p *Pipeline) predict(ctx context.Context, examples *pipeline.Pipeline[stage.Example], sink func(stage.Example, metrics.Prediction)) error {
	current := examples
	for i, f := range p.trained.fitted {
		current = lift(current, p.stages[i].Name(), f)
	}
	name := p.classifier.Name()
	model := p.trained.model
	return pipeline.ForEach(ctx, current, func(ctx context.Context, ex stage.Example) error {
		pred, err := model.Predict(ctx, ex)
		if err != nil {
			return wrap(err, func(cause error) error { return apperrors.StageTransform(name, cause) })
		}
		sink(ex, pred)
		return nil
	})
}

// lift maps a fitted transform over a stream.
func lift(src *pipeline.Pipeline[stage.Example], name string, f stage.Fitted) *pipeline.Pipeline[stage.Example] {
	return pipeline.Map(src, func(ctx context.Context, ex stage.Example) (stage.Example, error) {
		out, err := f.Transform(ctx, ex)
		if err != nil {
			return ex, wrap(err, func(cause error) error { return apperrors.StageTransform(name, cause) })
		}
		return out, nil
	})
}

package runner

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	apperrors "github.com/Stephen0620/NimbusML-Samples/errors"
	"github.com/Stephen0620/NimbusML-Samples/logger"
	"github.com/Stephen0620/NimbusML-Samples/observability"
	"github.com/Stephen0620/NimbusML-Samples/pipeline"
	"github.com/Stephen0620/NimbusML-Samples/stage"
	"github.com/Stephen0620/NimbusML-Samples/stream"
)

// run carries the state of one Fit, Test or Predict call.
type run struct {
	id   string
	op   string
	ctx  context.Context
	rc   *observability.RunContext
	span trace.Span
	log  *logger.Logger
	rows int64
}

func (p *Pipeline) startRun(ctx context.Context, op, spanName string) *run {
	id := p.newRunID()
	r := &run{id: id, op: op, log: p.log.WithRun(id)}
	r.rc = observability.NewRunContext(id, op, p.metrics)
	r.ctx, r.span = r.rc.StartSpan(ctx, spanName)
	r.log.Debug("run started", logger.Fields(logger.FieldOperation, op))
	return r
}

// examples reads s as bound examples, counting every row pulled.
func (r *run) examples(s *stream.Stream, b *stage.Binding) *pipeline.Pipeline[stage.Example] {
	rows := pipeline.Tap(s.Rows(), func(context.Context, stream.Row) error {
		r.rows++
		return nil
	})
	return pipeline.Map(rows, func(_ context.Context, row stream.Row) (stage.Example, error) {
		return b.Example(row), nil
	})
}

// fitStage runs fn inside a stage span and wraps untyped errors as
// STAGE_FIT for the named stage.
func (r *run) fitStage(name string, fn func(ctx context.Context) error) error {
	ctx, span := observability.StartSpan(r.ctx, observability.SpanStageFit)
	span.SetAttributes(
		attribute.String(observability.AttrRunID, r.id),
		attribute.String(observability.AttrStage, name),
	)
	start := time.Now()
	err := fn(ctx)
	d := time.Since(start)
	if err != nil {
		err = wrap(err, func(cause error) error { return apperrors.StageFit(name, cause) })
		span.RecordError(err)
	}
	span.End()

	if err != nil {
		return err
	}
	r.rc.StageDone(r.ctx, name, d)
	r.log.Debug("stage fitted", logger.Fields(
		logger.FieldStage, name,
		logger.FieldDuration, d.Milliseconds(),
	))
	return nil
}

func (r *run) finish(s *stream.Stream, err error) {
	r.rc.RowsRead(r.ctx, r.rows)
	r.span.SetAttributes(attribute.Int64(observability.AttrRows, r.rows))
	r.rc.End(r.ctx, r.span, err)

	fields := logger.DurationFields(r.op, r.rc.Duration())
	fields[logger.FieldRows] = r.rows
	if s != nil && s.Skipped() > 0 {
		fields[logger.FieldSkipped] = s.Skipped()
	}
	if err != nil {
		r.log.Error("run failed", logger.MergeWithError(fields, err))
		return
	}
	r.log.Info("run finished", fields)
}

// wrap returns err unchanged when it already carries an error code or is a
// context error, and wrapped by fn otherwise.
func wrap(err error, fn func(cause error) error) error {
	if apperrors.IsAppError(err) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return fn(err)
}

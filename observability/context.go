package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	apperrors "github.com/Stephen0620/NimbusML-Samples/errors"
)

// Run statuses.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// RunContext holds observability context for one pipeline run.
type RunContext struct {
	RunID     string
	Operation string
	StartTime time.Time
	Metrics   *Metrics
}

// NewRunContext creates a run context. If metrics is nil, metric recording
// is silently skipped.
func NewRunContext(runID, operation string, metrics *Metrics) *RunContext {
	return &RunContext{
		RunID:     runID,
		Operation: operation,
		StartTime: time.Now(),
		Metrics:   metrics,
	}
}

type runContextKey struct{}

// WithRunContext stores a RunContext in the context.
func WithRunContext(ctx context.Context, rc *RunContext) context.Context {
	return context.WithValue(ctx, runContextKey{}, rc)
}

// RunContextFromContext retrieves the RunContext from context, or nil.
func RunContextFromContext(ctx context.Context) *RunContext {
	if rc, ok := ctx.Value(runContextKey{}).(*RunContext); ok {
		return rc
	}
	return nil
}

// StartSpan starts the run span and stores rc in the returned context.
func (rc *RunContext) StartSpan(ctx context.Context, spanName string) (context.Context, trace.Span) {
	ctx, span := StartSpan(WithRunContext(ctx, rc), spanName)
	span.SetAttributes(
		attribute.String(AttrRunID, rc.RunID),
		attribute.String(AttrOperationName, rc.Operation),
	)
	return ctx, span
}

// StageDone records a completed stage fit.
func (rc *RunContext) StageDone(ctx context.Context, stage string, duration time.Duration) {
	if rc.Metrics != nil {
		rc.Metrics.RecordStage(ctx, stage, duration)
	}
}

// RowsRead records rows pulled during the run.
func (rc *RunContext) RowsRead(ctx context.Context, n int64) {
	if rc.Metrics != nil && n > 0 {
		rc.Metrics.RecordRows(ctx, rc.Operation, n)
	}
}

// End ends the span and records run metrics. A non-nil err marks the run
// failed and is counted under its error code.
func (rc *RunContext) End(ctx context.Context, span trace.Span, err error) {
	duration := time.Since(rc.StartTime)
	status := StatusOK

	if err != nil {
		status = StatusError
		code := string(apperrors.CodeOf(err))
		if code == "" {
			code = "UNKNOWN"
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		span.SetAttributes(
			attribute.String(AttrErrorMessage, err.Error()),
			attribute.String(AttrErrorCode, code),
		)
		if rc.Metrics != nil {
			rc.Metrics.RecordError(ctx, code, rc.Operation)
		}
	}

	span.SetAttributes(
		attribute.String(AttrStatus, status),
		attribute.Int64(AttrDurationMs, duration.Milliseconds()),
	)
	span.End()

	if rc.Metrics != nil {
		rc.Metrics.RecordRun(ctx, rc.Operation, status, duration)
	}
}

// Duration returns the elapsed time since run start.
func (rc *RunContext) Duration() time.Duration {
	return time.Since(rc.StartTime)
}

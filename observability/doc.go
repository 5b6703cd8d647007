// Package observability provides OpenTelemetry tracing and metrics for
// pipeline runs.
//
// Setup wires OTLP HTTP exporters when enabled and leaves the global no-op
// providers in place otherwise, so instrumented code never needs to check:
//
//	providers, err := observability.Setup(ctx, "sentiment", "1.0.0", "dev", cfg.Observability)
//	defer providers.Shutdown(ctx)
//
// Each Fit, Test or Predict call is a run. A RunContext ties a run id to its
// span and to the run.total, run.duration, stage.duration, rows.read and
// error.total instruments:
//
//	rc := observability.NewRunContext(runID, "fit", metrics)
//	ctx, span := rc.StartSpan(ctx, observability.SpanPipelineFit)
//	defer func() { rc.End(ctx, span, err) }()
package observability

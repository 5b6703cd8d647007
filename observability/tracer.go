package observability

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/Stephen0620/NimbusML-Samples/logger"
)

const tracerName = "github.com/Stephen0620/NimbusML-Samples/observability"

// Span names.
const (
	SpanPipelineFit     = "pipeline.fit"
	SpanPipelineTest    = "pipeline.test"
	SpanPipelinePredict = "pipeline.predict"
	SpanStageFit        = "stage.fit"
)

// Attribute keys.
const (
	AttrRunID         = "run.id"
	AttrOperationName = "operation.name"
	AttrStage         = "stage.name"
	AttrRows          = "rows"
	AttrDurationMs    = "duration_ms"
	AttrStatus        = "status"
	AttrErrorCode     = "error.code"
	AttrErrorMessage  = "error.message"
)

// Target identifies the program and the OTLP HTTP collector it exports to.
type Target struct {
	Service     string
	Version     string
	Environment string
	// Endpoint is host:port, e.g. "localhost:4318".
	Endpoint string
	Insecure bool
}

func (t Target) resource() (*resource.Resource, error) {
	return resource.Merge(
		resource.Default(),
		// schemaless so the merge never fails on a schema URL mismatch
		resource.NewSchemaless(
			semconv.ServiceName(t.Service),
			semconv.ServiceVersion(t.Version),
			attribute.String("environment", t.Environment),
		),
	)
}

// InitTracer installs a batching OTLP tracer provider as the global one.
// The caller shuts it down on exit.
func InitTracer(ctx context.Context, t Target, sampleRate float64) (*sdktrace.TracerProvider, error) {
	opts := []otlptracehttp.Option{otlptracehttp.WithEndpoint(t.Endpoint)}
	if t.Insecure {
		opts = append(opts, otlptracehttp.WithInsecure())
	}
	exporter, err := otlptracehttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating trace exporter: %w", err)
	}
	res, err := t.resource()
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sampler(sampleRate)),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	logger.Info("tracer initialized", logger.Fields(
		"service", t.Service,
		"endpoint", t.Endpoint,
		"sample_rate", sampleRate,
	))
	return tp, nil
}

func sampler(rate float64) sdktrace.Sampler {
	switch {
	case rate >= 1.0:
		return sdktrace.AlwaysSample()
	case rate <= 0:
		return sdktrace.NeverSample()
	default:
		return sdktrace.ParentBased(sdktrace.TraceIDRatioBased(rate))
	}
}

// StartSpan starts a span on the package tracer of the global provider.
func StartSpan(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	return otel.Tracer(tracerName).Start(ctx, name, opts...)
}

package tracing

// Global OpenTelemetry setup. With a collector endpoint spans are batched to it
// over OTLP gRPC. Without one every finished span is written to the debug log.

import (
	"context"
	"fmt"
	"time"

	"memecoin-radar/internal/infra/config"
	"memecoin-radar/internal/infra/log"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"go.uber.org/zap"
)

var newTraceExporter = func(ctx context.Context, endpoint string) (sdktrace.SpanExporter, error) {
	return otlptracegrpc.New(ctx,
		otlptracegrpc.WithEndpoint(endpoint),
		otlptracegrpc.WithInsecure(),
	)
}

// InitTracer installs the global tracer provider. Callers must Shutdown it on exit.
func InitTracer(ctx context.Context, cfg config.TracingConfig) (*sdktrace.TracerProvider, error) {
	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = "memecoin-radar"
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
			semconv.ServiceVersion("1.0.0"),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build trace resource: %w", err)
	}

	var spans sdktrace.TracerProviderOption
	if cfg.Endpoint != "" {
		exporter, err := newTraceExporter(ctx, cfg.Endpoint)
		if err != nil {
			return nil, fmt.Errorf("failed to create OTLP exporter: %w", err)
		}
		spans = sdktrace.WithBatcher(exporter)
		log.LogInfo("Exporting traces", zap.String("endpoint", cfg.Endpoint))
	} else {
		spans = sdktrace.WithSpanProcessor(SpanLogger{})
	}

	tp := sdktrace.NewTracerProvider(spans, sdktrace.WithResource(res))

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	return tp, nil
}

// Shutdown flushes pending spans, waiting at most 5s.
func Shutdown(tp *sdktrace.TracerProvider) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := tp.Shutdown(ctx); err != nil {
		log.LogWarn("Failed to shut down tracer provider", zap.Error(err))
	}
}

// SpanLogger writes each finished span with its attributes to the file log.
type SpanLogger struct{}

func (SpanLogger) OnStart(parent context.Context, s sdktrace.ReadWriteSpan) {}

func (SpanLogger) OnEnd(s sdktrace.ReadOnlySpan) {
	fields := []zap.Field{
		zap.String("span", s.Name()),
		zap.String("trace_id", s.SpanContext().TraceID().String()),
		zap.Duration("elapsed", s.EndTime().Sub(s.StartTime())),
		zap.String("status", s.Status().Code.String()),
	}
	for _, kv := range s.Attributes() {
		fields = append(fields, zap.String(string(kv.Key), kv.Value.Emit()))
	}
	log.LogDebug("Span finished", fields...)
}

func (SpanLogger) Shutdown(ctx context.Context) error   { return nil }
func (SpanLogger) ForceFlush(ctx context.Context) error { return nil }

package observability

import (
	"context"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.27.0"

	"rai-review-backend/internal/shared/config"
	"rai-review-backend/internal/shared/telemetry"
)

const serviceName = "rai-review-backend"

var (
	otelOnce     sync.Once
	otelShutdown = func(context.Context) error { return nil }
)

// InitTracing installs the global tracer provider once. Spans go to the OTLP
// HTTP endpoint when one is configured, otherwise to stdout. When tracing is
// disabled the global no-op provider stays in place.
func InitTracing(ctx context.Context, cfg config.Config) func(context.Context) error {
	otelOnce.Do(func() {
		if !cfg.OTELEnabled {
			return
		}
		res, err := resource.New(ctx, resource.WithAttributes(
			semconv.ServiceNameKey.String(serviceName),
			semconv.ServiceVersionKey.String(strings.TrimSpace(cfg.ServiceVersion)),
			attribute.String("deployment.environment", cfg.Env),
		))
		if err != nil {
			telemetry.Warn("otel.resource_failed", map[string]any{"error": err})
		}

		opts := []sdktrace.TracerProviderOption{
			sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(cfg.OTELSampleRatio))),
			sdktrace.WithResource(res),
		}
		exporter, err := buildExporter(ctx, cfg)
		if err != nil {
			telemetry.Warn("otel.exporter_failed", map[string]any{"error": err})
		} else {
			opts = append(opts, sdktrace.WithBatcher(exporter, sdktrace.WithBatchTimeout(5*time.Second)))
		}
		tp := sdktrace.NewTracerProvider(opts...)
		otel.SetTracerProvider(tp)
		otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
			propagation.TraceContext{},
			propagation.Baggage{},
		))
		otelShutdown = tp.Shutdown
		telemetry.Info("otel.initialized", map[string]any{
			"endpoint":     cfg.OTELEndpoint,
			"sample_ratio": cfg.OTELSampleRatio,
		})
	})
	return otelShutdown
}

func buildExporter(ctx context.Context, cfg config.Config) (sdktrace.SpanExporter, error) {
	endpoint := strings.TrimSpace(cfg.OTELEndpoint)
	if endpoint == "" {
		return stdouttrace.New()
	}
	opts := []otlptracehttp.Option{otlptracehttp.WithEndpoint(endpoint)}
	if cfg.OTELInsecure {
		opts = append(opts, otlptracehttp.WithInsecure())
	}
	return otlptracehttp.New(ctx, opts...)
}

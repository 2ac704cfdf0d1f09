package infrastructure

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.28.0"

	"storydash/internal/config"
)

// ServiceName identifies this process in exported spans
const ServiceName = "storydash"

// Tracing owns the tracer provider installed by InitializeTracing
type Tracing struct {
	provider *sdktrace.TracerProvider
}

// InitializeTracing installs a global tracer provider for the configured
// exporter. With exporter "none" the global no-op provider is left in place and
// the returned Tracing shuts down as a no-op.
func InitializeTracing(cfg config.TracingConfig, logger *slog.Logger) (*Tracing, error) {
	return initializeTracing(cfg, os.Stdout, logger)
}

func initializeTracing(cfg config.TracingConfig, out io.Writer, logger *slog.Logger) (*Tracing, error) {
	if logger == nil {
		logger = GetLogger()
	}

	var exporter sdktrace.SpanExporter
	switch cfg.Exporter {
	case "", "none":
		logger.Debug("Tracing disabled")
		return &Tracing{}, nil
	case "stdout":
		exp, err := stdouttrace.New(stdouttrace.WithWriter(out))
		if err != nil {
			return nil, fmt.Errorf("failed to create trace exporter: %w", err)
		}
		exporter = exp
	default:
		return nil, fmt.Errorf("unsupported trace exporter: %s", cfg.Exporter)
	}

	res := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(ServiceName),
		semconv.ServiceVersion(config.AppVersion),
	)

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(cfg.SampleRatio))),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	logger.Info("Tracing initialized",
		slog.String("exporter", cfg.Exporter),
		slog.Float64("sample_ratio", cfg.SampleRatio))

	return &Tracing{provider: tp}, nil
}

// Shutdown flushes pending spans and stops the exporter
func (t *Tracing) Shutdown(ctx context.Context) error {
	if t == nil || t.provider == nil {
		return nil
	}
	return t.provider.Shutdown(ctx)
}

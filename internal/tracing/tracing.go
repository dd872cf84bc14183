// Package tracing installs an OpenTelemetry tracer provider whose finished
// spans are written to the structured log.
package tracing

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdkresource "go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/vanshika/pathfinder/internal/config"
)

// NewProvider builds a tracer provider sampling cfg.SampleRatio of root spans.
// Callers own Shutdown.
func NewProvider(cfg config.TracingConfig, logger *slog.Logger) *sdktrace.TracerProvider {
	ratio := cfg.SampleRatio
	if ratio <= 0 || ratio > 1 {
		ratio = 1
	}
	return sdktrace.NewTracerProvider(
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(ratio))),
		sdktrace.WithResource(sdkresource.NewSchemaless(attribute.String("service.name", cfg.ServiceName))),
		sdktrace.WithBatcher(NewLogExporter(logger)),
	)
}

// Install registers tp as the global provider used by otel.Tracer.
func Install(tp *sdktrace.TracerProvider) {
	otel.SetTracerProvider(tp)
}

// LogExporter writes one debug record per span, or a warning for failed spans.
type LogExporter struct {
	logger *slog.Logger
}

// NewLogExporter returns an exporter writing to logger.
func NewLogExporter(logger *slog.Logger) *LogExporter {
	return &LogExporter{logger: logger.With("component", "tracing")}
}

// ExportSpans implements sdktrace.SpanExporter.
func (e *LogExporter) ExportSpans(ctx context.Context, spans []sdktrace.ReadOnlySpan) error {
	for _, span := range spans {
		args := []any{
			"span", span.Name(),
			"trace_id", span.SpanContext().TraceID().String(),
			"duration_ms", span.EndTime().Sub(span.StartTime()).Milliseconds(),
		}
		for _, kv := range span.Attributes() {
			args = append(args, string(kv.Key), kv.Value.Emit())
		}

		if span.Status().Code == codes.Error {
			e.logger.WarnContext(ctx, "span failed", append(args, "error", span.Status().Description)...)
			continue
		}
		e.logger.DebugContext(ctx, "span finished", args...)
	}
	return nil
}

// Shutdown implements sdktrace.SpanExporter.
func (e *LogExporter) Shutdown(ctx context.Context) error {
	return nil
}

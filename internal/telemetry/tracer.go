package telemetry

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
)

// ServiceNamespace groups every TravelBond service in the trace backend
const ServiceNamespace = "travelbond"

// Resource attributes describing how the API windows its lists
const (
	AttrDatabaseDriver    = attribute.Key("travelbond.database.driver")
	AttrDisclosureInitial = attribute.Key("travelbond.disclosure.initial")
	AttrDisclosureStep    = attribute.Key("travelbond.disclosure.step")
)

// Config holds OpenTelemetry configuration
type Config struct {
	ServiceName    string
	ServiceVersion string
	Environment    string
	OTLPEndpoint   string
	Enabled        bool
	Insecure       bool    // plain HTTP to the collector
	SamplingRate   float64 // 1.0 = 100%, 0.1 = 10%

	DatabaseDriver    string
	DisclosureInitial int
	DisclosureStep    int
}

// InitTracer installs a global tracer provider exporting over OTLP/HTTP.
// It returns nil when tracing is disabled.
func InitTracer(ctx context.Context, cfg Config) (*sdktrace.TracerProvider, error) {
	if !cfg.Enabled {
		return nil, nil
	}

	res, err := newResource(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	opts := []otlptracehttp.Option{otlptracehttp.WithEndpoint(cfg.OTLPEndpoint)}
	if cfg.Insecure {
		opts = append(opts, otlptracehttp.WithInsecure())
	}
	exporter, err := otlptracehttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create OTLP exporter: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(cfg.SamplingRate))),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	return tp, nil
}

// newResource describes the API process: who it is and the list sizes it serves by default
func newResource(ctx context.Context, cfg Config) (*resource.Resource, error) {
	attrs := []attribute.KeyValue{
		semconv.ServiceName(cfg.ServiceName),
		semconv.ServiceNamespace(ServiceNamespace),
		semconv.DeploymentEnvironment(cfg.Environment),
		AttrDisclosureInitial.Int(cfg.DisclosureInitial),
		AttrDisclosureStep.Int(cfg.DisclosureStep),
	}
	if cfg.ServiceVersion != "" {
		attrs = append(attrs, semconv.ServiceVersion(cfg.ServiceVersion))
	}
	if cfg.DatabaseDriver != "" {
		attrs = append(attrs, AttrDatabaseDriver.String(cfg.DatabaseDriver))
	}

	return resource.New(ctx, resource.WithAttributes(attrs...))
}

// Package telemetry wraps covenant, monitor, and breach operations with
// OpenTelemetry tracing and RED (rate, errors, duration) metrics, adapted
// from the teacher's observability provider for the accountability
// protocol's core operations.
package telemetry

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
)

// Config configures the OpenTelemetry providers. The core protocol has no
// network dependency of its own (spec §5), so Config takes injectable
// exporter/reader ports rather than wiring a concrete OTLP transport: a
// caller that wants spans/metrics shipped somewhere supplies a
// sdktrace.SpanExporter and sdkmetric.Reader of its choosing (OTLP, stdout,
// a test collector); leaving them nil still exercises the SDK's span and
// metric APIs in-process, just without export.
type Config struct {
	ServiceName    string
	ServiceVersion string
	Environment    string
	SpanExporter   sdktrace.SpanExporter
	MetricReader   sdkmetric.Reader
	SampleRate     float64
	BatchTimeout   time.Duration
	Enabled        bool
}

// DefaultConfig returns sane defaults with telemetry disabled; callers opt
// in explicitly since the protocol core has no network dependency of its
// own (spec §5).
func DefaultConfig() *Config {
	return &Config{
		ServiceName:    "covenant-protocol",
		ServiceVersion: "1.0.0",
		Environment:    "development",
		SampleRate:     1.0,
		BatchTimeout:   5 * time.Second,
		Enabled:        false,
	}
}

// Provider manages OpenTelemetry trace and metric providers for the
// covenant, monitor, and breach packages.
type Provider struct {
	config         *Config
	tracerProvider *sdktrace.TracerProvider
	meterProvider  *sdkmetric.MeterProvider
	tracer         trace.Tracer
	meter          metric.Meter
	logger         *slog.Logger

	requestCounter   metric.Int64Counter
	errorCounter     metric.Int64Counter
	durationHist     metric.Float64Histogram
	activeOperations metric.Int64UpDownCounter
}

// New creates a Provider. With config.Enabled false it returns a
// functioning no-op provider (TrackOperation and the wrapper methods in
// wrap.go are safe to call but record and export nothing).
func New(ctx context.Context, config *Config) (*Provider, error) {
	if config == nil {
		config = DefaultConfig()
	}

	p := &Provider{config: config, logger: slog.Default().With("component", "telemetry")}
	if !config.Enabled {
		p.logger.InfoContext(ctx, "telemetry disabled")
		return p, nil
	}

	res, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(config.ServiceName),
			semconv.ServiceVersion(config.ServiceVersion),
			semconv.DeploymentEnvironment(config.Environment),
			attribute.String("covenant.component", "core"),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("telemetry: failed to build resource: %w", err)
	}

	if err := p.initTraceProvider(ctx, res); err != nil {
		return nil, fmt.Errorf("telemetry: failed to init trace provider: %w", err)
	}
	if err := p.initMetricProvider(ctx, res); err != nil {
		return nil, fmt.Errorf("telemetry: failed to init metric provider: %w", err)
	}

	p.tracer = otel.Tracer("covenant.core", trace.WithInstrumentationVersion(config.ServiceVersion))
	p.meter = otel.Meter("covenant.core", metric.WithInstrumentationVersion(config.ServiceVersion))

	if err := p.initREDMetrics(); err != nil {
		return nil, fmt.Errorf("telemetry: failed to init RED metrics: %w", err)
	}

	p.logger.InfoContext(ctx, "telemetry initialized",
		"service", config.ServiceName, "environment", config.Environment)

	return p, nil
}

func (p *Provider) initTraceProvider(ctx context.Context, res *resource.Resource) error {
	var sampler sdktrace.Sampler
	switch {
	case p.config.SampleRate >= 1.0:
		sampler = sdktrace.AlwaysSample()
	case p.config.SampleRate <= 0.0:
		sampler = sdktrace.NeverSample()
	default:
		sampler = sdktrace.TraceIDRatioBased(p.config.SampleRate)
	}

	opts := []sdktrace.TracerProviderOption{
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sampler),
	}
	if p.config.SpanExporter != nil {
		opts = append(opts, sdktrace.WithBatcher(p.config.SpanExporter, sdktrace.WithBatchTimeout(p.config.BatchTimeout)))
	}

	p.tracerProvider = sdktrace.NewTracerProvider(opts...)
	otel.SetTracerProvider(p.tracerProvider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{}, propagation.Baggage{},
	))
	return nil
}

func (p *Provider) initMetricProvider(ctx context.Context, res *resource.Resource) error {
	opts := []sdkmetric.Option{sdkmetric.WithResource(res)}
	if p.config.MetricReader != nil {
		opts = append(opts, sdkmetric.WithReader(p.config.MetricReader))
	}

	p.meterProvider = sdkmetric.NewMeterProvider(opts...)
	otel.SetMeterProvider(p.meterProvider)
	return nil
}

func (p *Provider) initREDMetrics() error {
	var err error
	if p.requestCounter, err = p.meter.Int64Counter("covenant.operations.total",
		metric.WithDescription("Total protocol operations processed"), metric.WithUnit("{operation}")); err != nil {
		return err
	}
	if p.errorCounter, err = p.meter.Int64Counter("covenant.errors.total",
		metric.WithDescription("Total protocol operation errors"), metric.WithUnit("{error}")); err != nil {
		return err
	}
	if p.durationHist, err = p.meter.Float64Histogram("covenant.operation.duration",
		metric.WithDescription("Protocol operation duration in seconds"), metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0)); err != nil {
		return err
	}
	if p.activeOperations, err = p.meter.Int64UpDownCounter("covenant.operations.active",
		metric.WithDescription("Currently in-flight protocol operations"), metric.WithUnit("{operation}")); err != nil {
		return err
	}
	return nil
}

// Shutdown drains and closes the providers.
func (p *Provider) Shutdown(ctx context.Context) error {
	if p.tracerProvider != nil {
		if err := p.tracerProvider.Shutdown(ctx); err != nil {
			p.logger.ErrorContext(ctx, "failed to shutdown trace provider", "error", err)
		}
	}
	if p.meterProvider != nil {
		if err := p.meterProvider.Shutdown(ctx); err != nil {
			p.logger.ErrorContext(ctx, "failed to shutdown metric provider", "error", err)
		}
	}
	return nil
}

// TrackOperation starts a span and RED metrics around one protocol
// operation (e.g. "covenant.build", "monitor.evaluate",
// "breach.processBreach"). The returned func must be called with the
// operation's error (nil on success) when it completes.
func (p *Provider) TrackOperation(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, func(error)) {
	start := time.Now()

	// correlationID is attached to the span and metric attributes only;
	// it is not returned to the caller, and when telemetry is disabled it
	// is discarded.
	correlationID := uuid.NewString()
	attrs = append(attrs, attribute.String("covenant.correlationId", correlationID))

	if p.tracer == nil {
		return ctx, func(error) {}
	}

	ctx, span := p.tracer.Start(ctx, name, trace.WithSpanKind(trace.SpanKindInternal), trace.WithAttributes(attrs...))
	if p.activeOperations != nil {
		p.activeOperations.Add(ctx, 1, metric.WithAttributes(attrs...))
	}
	if p.requestCounter != nil {
		p.requestCounter.Add(ctx, 1, metric.WithAttributes(attrs...))
	}

	return ctx, func(err error) {
		duration := time.Since(start)
		if p.activeOperations != nil {
			p.activeOperations.Add(ctx, -1, metric.WithAttributes(attrs...))
		}
		if p.durationHist != nil {
			p.durationHist.Record(ctx, duration.Seconds(), metric.WithAttributes(attrs...))
		}
		if err != nil {
			span.RecordError(err)
			if p.errorCounter != nil {
				p.errorCounter.Add(ctx, 1, metric.WithAttributes(append(attrs, attribute.String("error.type", fmt.Sprintf("%T", err)))...))
			}
		}
		span.End()
	}
}

package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/skillsenselab/meetscribe/logger"
)

// MeterConfig configures the OpenTelemetry meter provider.
type MeterConfig struct {
	// ServiceName is the name of the service.
	ServiceName string
	// ServiceVersion is the version of the service.
	ServiceVersion string
	// Environment is the deployment environment (dev, staging, prod).
	Environment string
	// Endpoint is the OTLP HTTP endpoint host:port (e.g., "localhost:4318").
	Endpoint string
	// Insecure allows insecure connections (for development).
	Insecure bool
	// Interval is the metric export interval.
	Interval time.Duration
}

// DefaultMeterConfig returns sensible defaults for development.
func DefaultMeterConfig(serviceName string) MeterConfig {
	return MeterConfig{
		ServiceName:    serviceName,
		ServiceVersion: "1.0.0",
		Environment:    "development",
		Endpoint:       "localhost:4318",
		Insecure:       true,
		Interval:       15 * time.Second,
	}
}

// InitMeter initializes the OpenTelemetry meter provider.
// Returns a MeterProvider that should be shut down on application exit.
func InitMeter(ctx context.Context, config MeterConfig) (*sdkmetric.MeterProvider, error) {
	opts := []otlpmetrichttp.Option{
		otlpmetrichttp.WithEndpoint(config.Endpoint),
	}
	if config.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}

	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating metric exporter: %w", err)
	}

	res, err := newResource(config.ServiceName, config.ServiceVersion, config.Environment)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	readerOpts := []sdkmetric.PeriodicReaderOption{}
	if config.Interval > 0 {
		readerOpts = append(readerOpts, sdkmetric.WithInterval(config.Interval))
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, readerOpts...)),
		sdkmetric.WithResource(res),
	)

	otel.SetMeterProvider(mp)

	logger.Info("meter initialized", logger.Fields(
		"service", config.ServiceName,
		"endpoint", config.Endpoint,
		"interval", config.Interval.String(),
	))

	return mp, nil
}

// Meter returns a named meter from the global provider.
func Meter(name string) metric.Meter {
	return otel.Meter(name)
}

// RunMetrics holds instruments for pipeline run observability.
type RunMetrics struct {
	runTotal      metric.Int64Counter
	runDuration   metric.Float64Histogram
	runActive     metric.Int64UpDownCounter
	stageDuration metric.Float64Histogram
	stageErrors   metric.Int64Counter
	fallbackTotal metric.Int64Counter
}

// NewRunMetrics creates pipeline run instruments on the given meter.
func NewRunMetrics(meter metric.Meter) (*RunMetrics, error) {
	runTotal, err := meter.Int64Counter("run.total",
		metric.WithDescription("Total number of pipeline runs"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating run.total counter: %w", err)
	}

	runDuration, err := meter.Float64Histogram("run.duration",
		metric.WithDescription("Duration of pipeline runs in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating run.duration histogram: %w", err)
	}

	runActive, err := meter.Int64UpDownCounter("run.active",
		metric.WithDescription("Number of pipeline runs in progress"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating run.active gauge: %w", err)
	}

	stageDuration, err := meter.Float64Histogram("stage.duration",
		metric.WithDescription("Duration of pipeline stages in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating stage.duration histogram: %w", err)
	}

	stageErrors, err := meter.Int64Counter("stage.errors",
		metric.WithDescription("Total stage failures by stage"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating stage.errors counter: %w", err)
	}

	fallbackTotal, err := meter.Int64Counter("summarize.fallbacks",
		metric.WithDescription("Summarization calls that fell back to truncation"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating summarize.fallbacks counter: %w", err)
	}

	return &RunMetrics{
		runTotal:      runTotal,
		runDuration:   runDuration,
		runActive:     runActive,
		stageDuration: stageDuration,
		stageErrors:   stageErrors,
		fallbackTotal: fallbackTotal,
	}, nil
}

// RecordRunStart increments the active run count.
func (m *RunMetrics) RecordRunStart(ctx context.Context) {
	if m == nil {
		return
	}
	m.runActive.Add(ctx, 1)
}

// RecordRunEnd decrements active runs and records the completed run.
func (m *RunMetrics) RecordRunEnd(ctx context.Context, status string, duration time.Duration) {
	if m == nil {
		return
	}
	m.runActive.Add(ctx, -1)
	m.runTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("status", status),
	))
	m.runDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String("status", status),
	))
}

// RecordStage records one stage execution.
func (m *RunMetrics) RecordStage(ctx context.Context, stage string, err error, duration time.Duration) {
	if m == nil {
		return
	}
	m.stageDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String("stage", stage),
	))
	if err != nil {
		m.stageErrors.Add(ctx, 1, metric.WithAttributes(
			attribute.String("stage", stage),
		))
	}
}

// RecordFallback records a summarization truncation fallback.
func (m *RunMetrics) RecordFallback(ctx context.Context, scope string) {
	if m == nil {
		return
	}
	m.fallbackTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("scope", scope),
	))
}

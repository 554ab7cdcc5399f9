package observability

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/kbukum/seqkit/logger"
	"github.com/kbukum/seqkit/version"
)

// InitMeter initializes the OpenTelemetry meter provider and installs it globally.
// Returns a MeterProvider that should be shut down on application exit.
func InitMeter(ctx context.Context, config Config) (*sdkmetric.MeterProvider, error) {
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

	res, err := newResource(config)
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
	return otel.Meter(name, metric.WithInstrumentationVersion(version.Get().Version))
}

// Metrics holds the instruments recorded by blocking operations and bridges.
type Metrics struct {
	operationTotal     metric.Int64Counter
	operationDuration  metric.Float64Histogram
	errorTotal         metric.Int64Counter
	subscriptionActive metric.Int64UpDownCounter
	bridgeDropped      metric.Int64Counter
}

// NewMetrics creates metric instruments on the given meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	operationTotal, err := meter.Int64Counter("seqkit.operation.total",
		metric.WithDescription("Total number of blocking operations by outcome"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating seqkit.operation.total counter: %w", err)
	}

	operationDuration, err := meter.Float64Histogram("seqkit.operation.duration",
		metric.WithDescription("Time the caller spent blocked, in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating seqkit.operation.duration histogram: %w", err)
	}

	errorTotal, err := meter.Int64Counter("seqkit.error.total",
		metric.WithDescription("Errors returned by blocking operations, by kind"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating seqkit.error.total counter: %w", err)
	}

	subscriptionActive, err := meter.Int64UpDownCounter("seqkit.subscription.active",
		metric.WithDescription("Subscriptions currently held by blocking operations and bridges"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating seqkit.subscription.active gauge: %w", err)
	}

	bridgeDropped, err := meter.Int64Counter("seqkit.bridge.dropped",
		metric.WithDescription("Values discarded by lossy bridge policies"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating seqkit.bridge.dropped counter: %w", err)
	}

	return &Metrics{
		operationTotal:     operationTotal,
		operationDuration:  operationDuration,
		errorTotal:         errorTotal,
		subscriptionActive: subscriptionActive,
		bridgeDropped:      bridgeDropped,
	}, nil
}

var (
	defaultMetrics     *Metrics
	defaultMetricsOnce sync.Once
)

// DefaultMetrics returns metrics bound to the global meter provider. If the
// instruments cannot be created, no-op instruments are used instead.
func DefaultMetrics() *Metrics {
	defaultMetricsOnce.Do(func() {
		m, err := NewMetrics(Meter(InstrumentationName))
		if err != nil {
			logger.Warn("falling back to no-op metrics", logger.Fields(logger.FieldError, err.Error()))
			m, _ = NewMetrics(noop.NewMeterProvider().Meter(InstrumentationName))
		}
		defaultMetrics = m
	})
	return defaultMetrics
}

// RecordOperation records a finished blocking operation.
func (m *Metrics) RecordOperation(ctx context.Context, operation, status string, duration time.Duration) {
	m.operationTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String(AttrOperation, operation),
		attribute.String(AttrStatus, status),
	))
	m.operationDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String(AttrOperation, operation),
	))
}

// RecordError records an error by kind and operation.
func (m *Metrics) RecordError(ctx context.Context, kind, operation string) {
	m.errorTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("kind", kind),
		attribute.String(AttrOperation, operation),
	))
}

// RecordSubscribe increments the active subscription count.
func (m *Metrics) RecordSubscribe(ctx context.Context, operation string) {
	m.subscriptionActive.Add(ctx, 1, metric.WithAttributes(attribute.String(AttrOperation, operation)))
}

// RecordDispose decrements the active subscription count.
func (m *Metrics) RecordDispose(ctx context.Context, operation string) {
	m.subscriptionActive.Add(ctx, -1, metric.WithAttributes(attribute.String(AttrOperation, operation)))
}

// RecordDropped records values discarded by a lossy bridge policy.
func (m *Metrics) RecordDropped(ctx context.Context, policy string, n int64) {
	if n <= 0 {
		return
	}
	m.bridgeDropped.Add(ctx, n, metric.WithAttributes(attribute.String(AttrPolicy, policy)))
}

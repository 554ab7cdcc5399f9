package blocking

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/kbukum/seqkit/observability"
	"github.com/kbukum/seqkit/observable"
)

type recorder struct {
	spans  *tracetest.SpanRecorder
	reader *sdkmetric.ManualReader
}

func record(t *testing.T) *recorder {
	t.Helper()
	r := &recorder{
		spans:  tracetest.NewSpanRecorder(),
		reader: sdkmetric.NewManualReader(),
	}
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(r.spans))
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(r.reader))
	m, err := observability.NewMetrics(mp.Meter("test"))
	require.NoError(t, err)

	inst := &observability.Instrumentation{Tracer: tp.Tracer("test"), Metrics: m}
	prev := instrumentation
	instrumentation = func() *observability.Instrumentation { return inst }
	t.Cleanup(func() { instrumentation = prev })
	return r
}

func (r *recorder) sum(t *testing.T, name string, attrs ...attribute.KeyValue) int64 {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, r.reader.Collect(context.Background(), &rm))
	var total int64
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != name {
				continue
			}
			s, ok := m.Data.(metricdata.Sum[int64])
			if !ok {
				continue
			}
			for _, dp := range s.DataPoints {
				if matches(dp.Attributes, attrs) {
					total += dp.Value
				}
			}
		}
	}
	return total
}

func matches(set attribute.Set, attrs []attribute.KeyValue) bool {
	for _, kv := range attrs {
		v, ok := set.Value(kv.Key)
		if !ok || v.Emit() != kv.Value.Emit() {
			return false
		}
	}
	return true
}

func TestInstrumentation_Extract(t *testing.T) {
	r := record(t)
	ctx := context.Background()

	_, err := First(ctx, observable.FromSlice([]int{1, 2}))
	require.NoError(t, err)
	_, err = Single(ctx, observable.Empty[int]())
	require.Error(t, err)

	ended := r.spans.Ended()
	require.Len(t, ended, 2)
	assert.Equal(t, "blocking.first", ended[0].Name())
	assert.Equal(t, "blocking.single", ended[1].Name())

	assert.Equal(t, int64(2), r.sum(t, "seqkit.operation.total"))
	assert.Equal(t, int64(1), r.sum(t, "seqkit.operation.total",
		attribute.String(observability.AttrStatus, observability.StatusError)))
	assert.Equal(t, int64(1), r.sum(t, "seqkit.error.total", attribute.String("kind", "NO_ELEMENTS")))
	assert.Equal(t, int64(0), r.sum(t, "seqkit.subscription.active"))
}

func TestInstrumentation_BridgeDropped(t *testing.T) {
	r := record(t)
	ctx := context.Background()

	subj := newSubject[int]()
	it := Latest[int](subj).Iter(ctx)
	subj.next(1, 2, 3)
	v, _, err := it.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, v)

	assert.Equal(t, int64(1), r.sum(t, "seqkit.subscription.active"))
	require.NoError(t, it.Close())

	assert.Equal(t, int64(2), r.sum(t, "seqkit.bridge.dropped",
		attribute.String(observability.AttrPolicy, PolicyLatest)))
	assert.Equal(t, int64(0), r.sum(t, "seqkit.subscription.active"))
	require.Len(t, r.spans.Ended(), 1)
	assert.Equal(t, "blocking.latest", r.spans.Ended()[0].Name())
}

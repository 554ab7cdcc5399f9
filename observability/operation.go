package observability

import (
	"context"
	stderrors "errors"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/seqkit/errors"
)

// Operation outcomes recorded on spans and metrics.
const (
	StatusOK       = "ok"
	StatusError    = "error"
	StatusCanceled = "canceled"
)

// Instrumentation bundles the tracer and metrics used by blocking operations.
// A nil Metrics skips metric recording.
type Instrumentation struct {
	Tracer  trace.Tracer
	Metrics *Metrics
}

// Default returns instrumentation bound to the global otel providers.
func Default() *Instrumentation {
	return &Instrumentation{
		Tracer:  Tracer(InstrumentationName),
		Metrics: DefaultMetrics(),
	}
}

// Operation tracks one blocking call from start to outcome.
type Operation struct {
	name    string
	start   time.Time
	span    trace.Span
	metrics *Metrics
}

// Start opens a span for the named operation and returns the derived context.
func (i *Instrumentation) Start(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, *Operation) {
	attrs = append(attrs, attribute.String(AttrOperation, name))
	ctx, span := i.Tracer.Start(ctx, name, trace.WithAttributes(attrs...))
	return ctx, &Operation{
		name:    name,
		start:   time.Now(),
		span:    span,
		metrics: i.Metrics,
	}
}

// Span returns the operation's span.
func (o *Operation) Span() trace.Span {
	return o.span
}

// Subscribed records that the operation acquired a subscription.
func (o *Operation) Subscribed(ctx context.Context) {
	if o.metrics != nil {
		o.metrics.RecordSubscribe(ctx, o.name)
	}
}

// Disposed records that the operation released its subscription.
func (o *Operation) Disposed(ctx context.Context) {
	if o.metrics != nil {
		o.metrics.RecordDispose(ctx, o.name)
	}
}

// Dropped records values discarded by a lossy bridge policy.
func (o *Operation) Dropped(ctx context.Context, policy string, n int) {
	if o.metrics != nil {
		o.metrics.RecordDropped(ctx, policy, int64(n))
	}
}

// End closes the span and records the outcome derived from err.
func (o *Operation) End(ctx context.Context, err error) {
	duration := time.Since(o.start)
	status := StatusOf(err)

	if err != nil {
		o.span.RecordError(err)
		if status == StatusError {
			o.span.SetStatus(codes.Error, err.Error())
		}
	} else {
		o.span.SetStatus(codes.Ok, "")
	}
	o.span.SetAttributes(
		attribute.String(AttrStatus, status),
		attribute.Int64(AttrDurationMs, duration.Milliseconds()),
	)
	o.span.End()

	if o.metrics == nil {
		return
	}
	// Span context may already be done; metrics are recorded detached from cancellation.
	mctx := context.WithoutCancel(ctx)
	o.metrics.RecordOperation(mctx, o.name, status, duration)
	if err != nil {
		o.metrics.RecordError(mctx, ErrorKind(err), o.name)
	}
}

// StatusOf maps an error to an operation status.
func StatusOf(err error) string {
	switch {
	case err == nil:
		return StatusOK
	case stderrors.Is(err, errors.ErrCanceled),
		stderrors.Is(err, context.Canceled),
		stderrors.Is(err, context.DeadlineExceeded):
		return StatusCanceled
	default:
		return StatusError
	}
}

// ErrorKind returns the error code of an AppError, or "source" for errors
// produced by the sequence itself.
func ErrorKind(err error) string {
	if appErr, ok := errors.AsAppError(err); ok {
		return string(appErr.Code)
	}
	return "source"
}

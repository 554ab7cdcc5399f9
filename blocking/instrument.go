package blocking

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"

	"github.com/kbukum/seqkit/logger"
	"github.com/kbukum/seqkit/observability"
)

const component = "blocking"

// instrumentation is replaced in tests.
var instrumentation = observability.Default

// session ties one subscription to its span, metrics and log lines.
type session struct {
	id   string
	name string
	op   *observability.Operation
	log  *logger.Logger
}

func begin(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, *session) {
	id := uuid.NewString()
	attrs = append(attrs, attribute.String(observability.AttrSubscriptionID, id))
	ctx, op := instrumentation().Start(ctx, name, attrs...)
	return ctx, &session{id: id, name: name, op: op, log: logger.Get(component)}
}

func (s *session) debug(msg string, kvs ...any) {
	if !s.log.Enabled(zerolog.DebugLevel) {
		return
	}
	fields := logger.Fields(kvs...)
	fields[logger.FieldOperation] = s.name
	fields[logger.FieldSubscriptionID] = s.id
	s.log.Debug(msg, fields)
}

func (s *session) subscribed(ctx context.Context) {
	s.op.Subscribed(ctx)
	s.debug("subscribed")
}

func (s *session) disposed(ctx context.Context) {
	s.op.Disposed(context.WithoutCancel(ctx))
	s.debug("disposed")
}

func (s *session) dropped(ctx context.Context, policy string, n int) {
	if n <= 0 {
		return
	}
	s.op.Dropped(context.WithoutCancel(ctx), policy, n)
}

func (s *session) end(ctx context.Context, err error) {
	s.op.End(ctx, err)
	if err != nil {
		s.debug("finished", logger.FieldOutcome, observability.StatusOf(err), logger.FieldError, err.Error())
		return
	}
	s.debug("finished", logger.FieldOutcome, observability.StatusOK)
}

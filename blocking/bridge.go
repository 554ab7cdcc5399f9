package blocking

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel/attribute"

	"github.com/kbukum/seqkit/errors"
	"github.com/kbukum/seqkit/observability"
	"github.com/kbukum/seqkit/observable"
	"github.com/kbukum/seqkit/pipeline"
)

type kind int

const (
	kindNext kind = iota
	kindError
	kindCompleted
)

type notification[T any] struct {
	kind  kind
	value T
	err   error
}

// policy decides what a bridge keeps of the pushed notifications. All methods
// run under the bridge lock.
type policy[T, R any] interface {
	// push stores n. wake reports whether a blocked pull may now succeed;
	// dropped counts values discarded by this push.
	push(n notification[T]) (wake bool, dropped int)
	// take returns the notification for the current pull, or false when the
	// pull has to wait.
	take() (notification[R], bool)
	// arm marks the start of a pull.
	arm()
}

// bridge returns a pipeline whose every session subscribes to src and pulls
// through a fresh policy.
func bridge[T, R any](name, policyName string, src observable.Observable[T], newPolicy func() policy[T, R]) *pipeline.Pipeline[R] {
	if src == nil {
		return pipeline.Throw[R](errors.ArgumentNull("source"))
	}
	return pipeline.FromFunc(func(ctx context.Context) pipeline.Iterator[R] {
		ctx, sess := begin(ctx, name, attribute.String(observability.AttrPolicy, policyName))
		it := &bridgeIter[T, R]{
			ctx:        ctx,
			sess:       sess,
			policyName: policyName,
			policy:     newPolicy(),
			wake:       make(chan struct{}, 1),
		}
		sess.subscribed(ctx)
		it.sub.Set(src.Subscribe(&bridgeObserver[T, R]{it: it}))
		return it
	})
}

type bridgeIter[T, R any] struct {
	ctx        context.Context
	sess       *session
	policyName string
	sub        observable.SingleAssignment
	wake       chan struct{}
	closeOnce  sync.Once

	mu       sync.Mutex
	policy   policy[T, R]
	finished bool
}

func (it *bridgeIter[T, R]) push(n notification[T]) {
	it.mu.Lock()
	if it.finished {
		it.mu.Unlock()
		return
	}
	wake, dropped := it.policy.push(n)
	it.mu.Unlock()

	it.sess.dropped(it.ctx, it.policyName, dropped)
	if wake {
		select {
		case it.wake <- struct{}{}:
		default:
		}
	}
}

// Next pulls according to the policy. A captured error is returned once;
// afterwards, and after completion, Next reports exhaustion without blocking.
// A done ctx ends the session even when values are buffered.
func (it *bridgeIter[T, R]) Next(ctx context.Context) (R, bool, error) {
	var zero R

	it.mu.Lock()
	if it.finished {
		it.mu.Unlock()
		return zero, false, nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		it.finished = true
		it.mu.Unlock()
		err := errors.Canceled(ctxErr)
		it.finish(err)
		return zero, false, err
	}
	it.policy.arm()
	for {
		n, ok := it.policy.take()
		if ok {
			switch n.kind {
			case kindNext:
				it.mu.Unlock()
				return n.value, true, nil
			case kindError:
				it.finished = true
				it.mu.Unlock()
				it.finish(n.err)
				return zero, false, n.err
			default:
				it.finished = true
				it.mu.Unlock()
				it.finish(nil)
				return zero, false, nil
			}
		}
		it.mu.Unlock()

		select {
		case <-it.wake:
		case <-ctx.Done():
			err := errors.Canceled(ctx.Err())
			it.mu.Lock()
			already := it.finished
			it.finished = true
			it.mu.Unlock()
			if already {
				return zero, false, nil
			}
			it.finish(err)
			return zero, false, err
		}
		it.mu.Lock()
		if it.finished {
			it.mu.Unlock()
			return zero, false, nil
		}
	}
}

// Close disposes the subscription and releases a blocked pull. Further
// pulls report exhaustion.
func (it *bridgeIter[T, R]) Close() error {
	it.mu.Lock()
	it.finished = true
	it.mu.Unlock()
	it.finish(nil)
	select {
	case it.wake <- struct{}{}:
	default:
	}
	return nil
}

func (it *bridgeIter[T, R]) finish(err error) {
	it.closeOnce.Do(func() {
		it.sub.Dispose()
		it.sess.disposed(it.ctx)
		it.sess.end(it.ctx, err)
	})
}

type bridgeObserver[T, R any] struct {
	it *bridgeIter[T, R]
}

func (o *bridgeObserver[T, R]) OnNext(v T) {
	o.it.push(notification[T]{kind: kindNext, value: v})
}

func (o *bridgeObserver[T, R]) OnError(err error) {
	o.it.push(notification[T]{kind: kindError, err: err})
}

func (o *bridgeObserver[T, R]) OnCompleted() {
	o.it.push(notification[T]{kind: kindCompleted})
}

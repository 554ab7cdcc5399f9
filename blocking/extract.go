package blocking

import (
	"context"
	"sync"

	"github.com/kbukum/seqkit/errors"
	"github.com/kbukum/seqkit/observable"
)

type strategy int

const (
	takeFirst strategy = iota
	takeLast
	takeSingle
)

// terminalObserver captures the outcome of a push sequence for one of the
// extraction strategies and sets the gate once the outcome is known.
type terminalObserver[T any] struct {
	strategy strategy
	gate     *Gate
	sub      observable.SingleAssignment

	mu          sync.Mutex
	value       T
	hasValue    bool
	moreThanOne bool
	err         error
}

func (o *terminalObserver[T]) OnNext(v T) {
	o.mu.Lock()
	if o.gate.IsSet() {
		o.mu.Unlock()
		return
	}
	switch o.strategy {
	case takeFirst:
		o.value, o.hasValue = v, true
		o.mu.Unlock()
		o.stop()
		return
	case takeSingle:
		if o.hasValue {
			o.moreThanOne = true
			o.mu.Unlock()
			o.stop()
			return
		}
	}
	o.value, o.hasValue = v, true
	o.mu.Unlock()
}

func (o *terminalObserver[T]) OnError(err error) {
	o.mu.Lock()
	if !o.gate.IsSet() {
		o.err = err
	}
	o.mu.Unlock()
	o.gate.Set()
}

func (o *terminalObserver[T]) OnCompleted() {
	o.gate.Set()
}

// stop disposes the subscription before releasing the waiter.
func (o *terminalObserver[T]) stop() {
	o.sub.Dispose()
	o.gate.Set()
}

// extract subscribes to src, blocks until the strategy has an outcome and
// resolves it. Priority: source error, more than one element, no elements.
func extract[T any](ctx context.Context, name string, src observable.Observable[T], s strategy, orDefault bool) (result T, err error) {
	if src == nil {
		return result, errors.ArgumentNull("source")
	}

	ctx, sess := begin(ctx, name)
	defer func() { sess.end(ctx, err) }()

	if err := ctx.Err(); err != nil {
		return result, errors.Canceled(err)
	}

	o := &terminalObserver[T]{strategy: s, gate: NewGate()}
	defer o.gate.Release()

	sess.subscribed(ctx)
	o.sub.Set(src.Subscribe(o))
	defer func() {
		o.sub.Dispose()
		sess.disposed(ctx)
	}()

	if err := o.gate.Wait(ctx); err != nil {
		return result, err
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	switch {
	case o.err != nil:
		return result, o.err
	case o.moreThanOne:
		return result, errors.MoreThanOneElement()
	case !o.hasValue:
		if orDefault {
			return result, nil
		}
		return result, errors.NoElements()
	}
	return o.value, nil
}

// filtered applies predicate to src, checking both before anything subscribes.
func filtered[T any](src observable.Observable[T], predicate func(T) bool) (observable.Observable[T], error) {
	if src == nil {
		return nil, errors.ArgumentNull("source")
	}
	if predicate == nil {
		return nil, errors.ArgumentNull("predicate")
	}
	return observable.Where(src, predicate), nil
}

// First blocks until src pushes its first value and returns it. The
// subscription is disposed as soon as the value arrives. An empty sequence
// fails with errors.ErrNoElements; a source error is returned unchanged.
func First[T any](ctx context.Context, src observable.Observable[T]) (T, error) {
	return extract(ctx, "blocking.first", src, takeFirst, false)
}

// FirstWhere returns the first value satisfying predicate.
func FirstWhere[T any](ctx context.Context, src observable.Observable[T], predicate func(T) bool) (T, error) {
	where, err := filtered(src, predicate)
	if err != nil {
		var zero T
		return zero, err
	}
	return extract(ctx, "blocking.first", where, takeFirst, false)
}

// FirstOrDefault is First returning the zero value for an empty sequence.
func FirstOrDefault[T any](ctx context.Context, src observable.Observable[T]) (T, error) {
	return extract(ctx, "blocking.first_or_default", src, takeFirst, true)
}

// FirstOrDefaultWhere is FirstWhere returning the zero value when nothing matches.
func FirstOrDefaultWhere[T any](ctx context.Context, src observable.Observable[T], predicate func(T) bool) (T, error) {
	where, err := filtered(src, predicate)
	if err != nil {
		var zero T
		return zero, err
	}
	return extract(ctx, "blocking.first_or_default", where, takeFirst, true)
}

// Last blocks until src terminates and returns its last value.
func Last[T any](ctx context.Context, src observable.Observable[T]) (T, error) {
	return extract(ctx, "blocking.last", src, takeLast, false)
}

// LastWhere returns the last value satisfying predicate.
func LastWhere[T any](ctx context.Context, src observable.Observable[T], predicate func(T) bool) (T, error) {
	where, err := filtered(src, predicate)
	if err != nil {
		var zero T
		return zero, err
	}
	return extract(ctx, "blocking.last", where, takeLast, false)
}

// LastOrDefault is Last returning the zero value for an empty sequence.
func LastOrDefault[T any](ctx context.Context, src observable.Observable[T]) (T, error) {
	return extract(ctx, "blocking.last_or_default", src, takeLast, true)
}

// LastOrDefaultWhere is LastWhere returning the zero value when nothing matches.
func LastOrDefaultWhere[T any](ctx context.Context, src observable.Observable[T], predicate func(T) bool) (T, error) {
	where, err := filtered(src, predicate)
	if err != nil {
		var zero T
		return zero, err
	}
	return extract(ctx, "blocking.last_or_default", where, takeLast, true)
}

// Single blocks until src terminates and returns its only value. A second
// value fails with errors.ErrMoreThanOneElement without waiting for the end.
func Single[T any](ctx context.Context, src observable.Observable[T]) (T, error) {
	return extract(ctx, "blocking.single", src, takeSingle, false)
}

// SingleWhere returns the only value satisfying predicate.
func SingleWhere[T any](ctx context.Context, src observable.Observable[T], predicate func(T) bool) (T, error) {
	where, err := filtered(src, predicate)
	if err != nil {
		var zero T
		return zero, err
	}
	return extract(ctx, "blocking.single", where, takeSingle, false)
}

// SingleOrDefault is Single returning the zero value for an empty sequence.
// More than one value is still an error.
func SingleOrDefault[T any](ctx context.Context, src observable.Observable[T]) (T, error) {
	return extract(ctx, "blocking.single_or_default", src, takeSingle, true)
}

// SingleOrDefaultWhere is SingleWhere returning the zero value when nothing matches.
func SingleOrDefaultWhere[T any](ctx context.Context, src observable.Observable[T], predicate func(T) bool) (T, error) {
	where, err := filtered(src, predicate)
	if err != nil {
		var zero T
		return zero, err
	}
	return extract(ctx, "blocking.single_or_default", where, takeSingle, true)
}

// Wait blocks until src terminates and returns its last value. It is Last
// under the name used for awaiting a sequence.
func Wait[T any](ctx context.Context, src observable.Observable[T]) (T, error) {
	return extract(ctx, "blocking.wait", src, takeLast, false)
}

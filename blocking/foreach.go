package blocking

import (
	"context"
	"sync"

	"github.com/kbukum/seqkit/errors"
	"github.com/kbukum/seqkit/observable"
)

// drainObserver runs the callback on the pushing goroutine and records the
// first failure, either from the source or from the callback.
type drainObserver[T any] struct {
	fn    func(T, int) error
	gate  *Gate
	sub   observable.SingleAssignment
	index int

	mu  sync.Mutex
	err error
}

func (o *drainObserver[T]) OnNext(v T) {
	if o.gate.IsSet() {
		return
	}
	i := o.index
	o.index++
	if err := o.invoke(v, i); err != nil {
		o.fail(err)
		o.sub.Dispose()
		o.gate.Set()
	}
}

func (o *drainObserver[T]) invoke(v T, i int) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Recovered(r)
		}
	}()
	return o.fn(v, i)
}

func (o *drainObserver[T]) fail(err error) {
	o.mu.Lock()
	if o.err == nil {
		o.err = err
	}
	o.mu.Unlock()
}

func (o *drainObserver[T]) OnError(err error) {
	if o.gate.IsSet() {
		return
	}
	o.fail(err)
	o.gate.Set()
}

func (o *drainObserver[T]) OnCompleted() {
	o.gate.Set()
}

func drain[T any](ctx context.Context, name string, src observable.Observable[T], fn func(T, int) error) (err error) {
	if src == nil {
		return errors.ArgumentNull("source")
	}

	ctx, sess := begin(ctx, name)
	defer func() { sess.end(ctx, err) }()

	if err := ctx.Err(); err != nil {
		return errors.Canceled(err)
	}

	o := &drainObserver[T]{fn: fn, gate: NewGate()}
	defer o.gate.Release()

	sess.subscribed(ctx)
	o.sub.Set(src.Subscribe(o))
	defer func() {
		o.sub.Dispose()
		sess.disposed(ctx)
	}()

	if err := o.gate.Wait(ctx); err != nil {
		return err
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	return o.err
}

// ForEach calls fn for every value of src, in push order, on the pushing
// goroutine, and blocks until the sequence ends. An error or panic from fn
// stops the iteration and is returned; a source error is returned unchanged.
func ForEach[T any](ctx context.Context, src observable.Observable[T], fn func(T) error) error {
	if fn == nil {
		return errors.ArgumentNull("action")
	}
	return drain(ctx, "blocking.for_each", src, func(v T, _ int) error { return fn(v) })
}

// ForEachIndexed is ForEach passing the zero-based position of each value.
func ForEachIndexed[T any](ctx context.Context, src observable.Observable[T], fn func(T, int) error) error {
	if fn == nil {
		return errors.ArgumentNull("action")
	}
	return drain(ctx, "blocking.for_each", src, fn)
}

package observable

import (
	"sync/atomic"

	"github.com/kbukum/seqkit/errors"
)

// Where pushes the values that satisfy predicate. A nil source or predicate
// fails the sequence with an argument error on subscription. A panicking
// predicate fails the sequence and disposes the upstream subscription.
func Where[T any](src Observable[T], predicate func(T) bool) Observable[T] {
	if src == nil {
		return Throw[T](errors.ArgumentNull("source"))
	}
	if predicate == nil {
		return Throw[T](errors.ArgumentNull("predicate"))
	}
	return ObservableFunc[T](func(observer Observer[T]) Disposable {
		w := &whereObserver[T]{observer: observer, predicate: predicate}
		w.upstream.Set(src.Subscribe(w))
		return &w.upstream
	})
}

type whereObserver[T any] struct {
	observer  Observer[T]
	predicate func(T) bool
	upstream  SingleAssignment
	stopped   atomic.Bool
}

func (w *whereObserver[T]) OnNext(v T) {
	if w.stopped.Load() {
		return
	}
	ok, err := w.test(v)
	if err != nil {
		if w.stopped.CompareAndSwap(false, true) {
			w.observer.OnError(err)
			w.upstream.Dispose()
		}
		return
	}
	if ok {
		w.observer.OnNext(v)
	}
}

func (w *whereObserver[T]) test(v T) (ok bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Recovered(r)
		}
	}()
	return w.predicate(v), nil
}

func (w *whereObserver[T]) OnError(err error) {
	if w.stopped.CompareAndSwap(false, true) {
		w.observer.OnError(err)
	}
}

func (w *whereObserver[T]) OnCompleted() {
	if w.stopped.CompareAndSwap(false, true) {
		w.observer.OnCompleted()
	}
}

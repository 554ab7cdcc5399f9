package observable

import (
	"context"
	"sync/atomic"

	"github.com/kbukum/seqkit/errors"
	"github.com/kbukum/seqkit/pipeline"
)

// Create returns a cold Observable whose every subscription runs produce on
// its own goroutine.
//
// produce pushes values with emit, which reports false once the subscriber
// disposed or the sequence ended; emit must not be called concurrently.
// Returning nil completes the sequence, returning an error fails it, and a
// panic fails it with an errors.ErrPanic error. Dispose cancels ctx.
func Create[T any](produce func(ctx context.Context, emit func(T) bool) error) Observable[T] {
	if produce == nil {
		return Throw[T](errors.ArgumentNull("produce"))
	}
	return ObservableFunc[T](func(observer Observer[T]) Disposable {
		ctx, cancel := context.WithCancel(context.Background())
		s := &sink[T]{observer: observer, ctx: ctx}
		go s.run(produce)
		return NewDisposable(func() {
			cancel()
			s.stopped.Store(true)
		})
	})
}

// sink guards an observer against calls after a terminal notification or
// after disposal.
type sink[T any] struct {
	observer Observer[T]
	ctx      context.Context
	stopped  atomic.Bool
}

func (s *sink[T]) emit(v T) bool {
	if s.stopped.Load() {
		return false
	}
	s.observer.OnNext(v)
	return !s.stopped.Load()
}

func (s *sink[T]) run(produce func(context.Context, func(T) bool) error) {
	var err error
	defer func() {
		if r := recover(); r != nil {
			err = errors.Recovered(r)
		}
		s.terminate(err)
	}()
	err = produce(s.ctx, s.emit)
}

func (s *sink[T]) terminate(err error) {
	if !s.stopped.CompareAndSwap(false, true) {
		return
	}
	if err != nil {
		s.observer.OnError(err)
		return
	}
	s.observer.OnCompleted()
}

// FromSlice pushes items in order, then completes.
func FromSlice[T any](items []T) Observable[T] {
	return Create(func(_ context.Context, emit func(T) bool) error {
		for _, v := range items {
			if !emit(v) {
				return nil
			}
		}
		return nil
	})
}

// Return pushes a single value, then completes.
func Return[T any](value T) Observable[T] {
	return FromSlice([]T{value})
}

// Empty completes without pushing a value.
func Empty[T any]() Observable[T] {
	return FromSlice[T](nil)
}

// Throw fails with err without pushing a value.
func Throw[T any](err error) Observable[T] {
	return ObservableFunc[T](func(observer Observer[T]) Disposable {
		observer.OnError(err)
		return NewDisposable(nil)
	})
}

// Never neither pushes nor terminates.
func Never[T any]() Observable[T] {
	return ObservableFunc[T](func(Observer[T]) Disposable {
		return NewDisposable(nil)
	})
}

// FromChannel pushes every value received from ch and completes when ch is
// closed.
func FromChannel[T any](ch <-chan T) Observable[T] {
	return Create(func(ctx context.Context, emit func(T) bool) error {
		for {
			select {
			case v, ok := <-ch:
				if !ok {
					return nil
				}
				if !emit(v) {
					return nil
				}
			case <-ctx.Done():
				return nil
			}
		}
	})
}

// FromSource pushes the values of a pull sequence. Each subscription opens
// its own session, which is closed when the sequence ends or is disposed.
func FromSource[T any](src pipeline.Source[T]) Observable[T] {
	if src == nil {
		return Throw[T](errors.ArgumentNull("source"))
	}
	return Create(func(ctx context.Context, emit func(T) bool) error {
		it := src.Iter(ctx)
		defer it.Close()
		for {
			v, ok, err := it.Next(ctx)
			if err != nil {
				return err
			}
			if !ok || !emit(v) {
				return nil
			}
		}
	})
}

package blocking

import (
	"sync"
	"testing"
	"time"

	"github.com/kbukum/seqkit/observable"
)

const waitFor = 2 * time.Second

// subject is a single-subscription source driven by the test.
type subject[T any] struct {
	mu          sync.Mutex
	observer    observable.Observer[T]
	subscribed  chan struct{}
	disposed    chan struct{}
	disposeOnce sync.Once
}

func newSubject[T any]() *subject[T] {
	return &subject[T]{
		subscribed: make(chan struct{}),
		disposed:   make(chan struct{}),
	}
}

func (s *subject[T]) Subscribe(o observable.Observer[T]) observable.Disposable {
	s.mu.Lock()
	s.observer = o
	s.mu.Unlock()
	close(s.subscribed)
	return observable.NewDisposable(func() {
		s.disposeOnce.Do(func() { close(s.disposed) })
	})
}

func (s *subject[T]) current() observable.Observer[T] {
	<-s.subscribed
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.observer
}

func (s *subject[T]) next(values ...T) {
	o := s.current()
	for _, v := range values {
		o.OnNext(v)
	}
}

func (s *subject[T]) fail(err error) { s.current().OnError(err) }

func (s *subject[T]) complete() { s.current().OnCompleted() }

func (s *subject[T]) isDisposed() bool {
	select {
	case <-s.disposed:
		return true
	default:
		return false
	}
}

func waitClosed(t *testing.T, ch <-chan struct{}, what string) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(waitFor):
		t.Fatalf("timed out waiting for %s", what)
	}
}

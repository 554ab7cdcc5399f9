package observable

import "sync"

// Disposable releases a subscription. Dispose is idempotent and safe for
// concurrent use.
type Disposable interface {
	Dispose()
}

type funcDisposable struct {
	once sync.Once
	fn   func()
}

func (d *funcDisposable) Dispose() {
	d.once.Do(func() {
		if d.fn != nil {
			d.fn()
		}
	})
}

// NewDisposable returns a Disposable that runs fn on the first Dispose call.
func NewDisposable(fn func()) Disposable {
	return &funcDisposable{fn: fn}
}

// SingleAssignment holds a Disposable that becomes known only after
// Subscribe returns. Disposing before the assignment disposes the assigned
// value as soon as Set is called. The zero value is ready to use.
type SingleAssignment struct {
	mu       sync.Mutex
	current  Disposable
	assigned bool
	disposed bool
}

// Set assigns d. It panics when called twice.
func (s *SingleAssignment) Set(d Disposable) {
	s.mu.Lock()
	if s.assigned {
		s.mu.Unlock()
		panic("observable: disposable already assigned")
	}
	s.assigned = true
	if s.disposed {
		s.mu.Unlock()
		if d != nil {
			d.Dispose()
		}
		return
	}
	s.current = d
	s.mu.Unlock()
}

// Dispose disposes the assigned value, now or on assignment.
func (s *SingleAssignment) Dispose() {
	s.mu.Lock()
	if s.disposed {
		s.mu.Unlock()
		return
	}
	s.disposed = true
	d := s.current
	s.current = nil
	s.mu.Unlock()

	if d != nil {
		d.Dispose()
	}
}

// IsDisposed reports whether Dispose was called.
func (s *SingleAssignment) IsDisposed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.disposed
}

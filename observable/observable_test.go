package observable

import (
	"context"
	stderrors "errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kbukum/seqkit/errors"
	"github.com/kbukum/seqkit/pipeline"
)

const waitFor = 2 * time.Second

type outcome[T any] struct {
	values    []T
	err       error
	completed bool
}

// record subscribes and waits for the terminal notification.
func record[T any](t *testing.T, src Observable[T]) outcome[T] {
	t.Helper()
	var (
		mu  sync.Mutex
		out outcome[T]
	)
	done := make(chan struct{})
	src.Subscribe(ObserverFuncs[T]{
		Next: func(v T) {
			mu.Lock()
			out.values = append(out.values, v)
			mu.Unlock()
		},
		Error: func(err error) {
			mu.Lock()
			out.err = err
			mu.Unlock()
			close(done)
		},
		Completed: func() {
			mu.Lock()
			out.completed = true
			mu.Unlock()
			close(done)
		},
	})
	select {
	case <-done:
	case <-time.After(waitFor):
		t.Fatal("sequence did not terminate")
	}
	mu.Lock()
	defer mu.Unlock()
	return out
}

func TestFromSlice(t *testing.T) {
	out := record(t, FromSlice([]int{1, 2, 3}))
	assert.Equal(t, []int{1, 2, 3}, out.values)
	assert.True(t, out.completed)
	assert.NoError(t, out.err)
}

func TestReturnEmptyThrow(t *testing.T) {
	assert.Equal(t, []string{"x"}, record(t, Return("x")).values)

	empty := record(t, Empty[int]())
	assert.Empty(t, empty.values)
	assert.True(t, empty.completed)

	boom := stderrors.New("boom")
	failed := record(t, Throw[int](boom))
	assert.Same(t, boom, failed.err)
}

func TestNever(t *testing.T) {
	var calls atomic.Int32
	d := Never[int]().Subscribe(ObserverFuncs[int]{
		Next:      func(int) { calls.Add(1) },
		Error:     func(error) { calls.Add(1) },
		Completed: func() { calls.Add(1) },
	})
	d.Dispose()
	assert.Zero(t, calls.Load())
}

func TestCreate_ErrorIsDeliveredAsIs(t *testing.T) {
	boom := stderrors.New("boom")
	out := record(t, Create(func(_ context.Context, emit func(int) bool) error {
		emit(1)
		return boom
	}))
	assert.Equal(t, []int{1}, out.values)
	assert.Same(t, boom, out.err)
	assert.False(t, out.completed)
}

func TestCreate_PanicBecomesError(t *testing.T) {
	out := record(t, Create(func(context.Context, func(int) bool) error {
		panic("producer failed")
	}))
	require.Error(t, out.err)
	assert.ErrorIs(t, out.err, errors.ErrPanic)
}

func TestCreate_NilProducer(t *testing.T) {
	out := record(t, Create[int](nil))
	assert.ErrorIs(t, out.err, errors.ErrArgumentNull)
}

func TestCreate_DisposeStopsProducer(t *testing.T) {
	exited := make(chan error, 1)
	var terminal atomic.Int32
	first := make(chan struct{})
	var once sync.Once

	src := Create(func(ctx context.Context, emit func(int) bool) error {
		for i := 0; ; i++ {
			if !emit(i) {
				exited <- ctx.Err()
				return nil
			}
		}
	})
	d := src.Subscribe(ObserverFuncs[int]{
		Next:      func(int) { once.Do(func() { close(first) }) },
		Error:     func(error) { terminal.Add(1) },
		Completed: func() { terminal.Add(1) },
	})

	<-first
	d.Dispose()

	select {
	case err := <-exited:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(waitFor):
		t.Fatal("producer kept running after dispose")
	}
	assert.Zero(t, terminal.Load())
}

func TestCreate_DisposeFromOnNext(t *testing.T) {
	var d SingleAssignment
	var got []int
	assigned := make(chan struct{})
	done := make(chan struct{})
	src := Create(func(_ context.Context, emit func(int) bool) error {
		defer close(done)
		<-assigned
		for i := 0; i < 100; i++ {
			if !emit(i) {
				return nil
			}
		}
		return nil
	})
	d.Set(src.Subscribe(ObserverFuncs[int]{
		Next: func(v int) {
			got = append(got, v)
			d.Dispose()
		},
	}))
	close(assigned)

	<-done
	assert.Equal(t, []int{0}, got)
}

func TestWhere(t *testing.T) {
	out := record(t, Where(FromSlice([]int{1, 2, 3, 4}), func(n int) bool { return n%2 == 0 }))
	assert.Equal(t, []int{2, 4}, out.values)
	assert.True(t, out.completed)
}

func TestWhere_NilArguments(t *testing.T) {
	assert.ErrorIs(t, record(t, Where[int](nil, func(int) bool { return true })).err, errors.ErrArgumentNull)
	assert.ErrorIs(t, record(t, Where(FromSlice([]int{1}), nil)).err, errors.ErrArgumentNull)
}

func TestWhere_PanicDisposesUpstream(t *testing.T) {
	canceled := make(chan struct{})
	src := Create(func(ctx context.Context, emit func(int) bool) error {
		for i := 0; emit(i); i++ {
		}
		<-ctx.Done()
		close(canceled)
		return nil
	})

	out := record(t, Where(src, func(n int) bool {
		if n == 2 {
			panic(stderrors.New("predicate failed"))
		}
		return true
	}))
	assert.Equal(t, []int{0, 1}, out.values)
	assert.ErrorIs(t, out.err, errors.ErrPanic)

	select {
	case <-canceled:
	case <-time.After(waitFor):
		t.Fatal("upstream not disposed")
	}
}

func TestFromChannel(t *testing.T) {
	ch := make(chan int, 3)
	ch <- 1
	ch <- 2
	close(ch)
	out := record(t, FromChannel(ch))
	assert.Equal(t, []int{1, 2}, out.values)
	assert.True(t, out.completed)
}

func TestFromSource(t *testing.T) {
	out := record(t, FromSource[int](pipeline.FromSlice([]int{5, 6})))
	assert.Equal(t, []int{5, 6}, out.values)
	assert.True(t, out.completed)

	boom := stderrors.New("boom")
	failed := record(t, FromSource[int](pipeline.Throw[int](boom)))
	assert.Same(t, boom, failed.err)

	assert.ErrorIs(t, record(t, FromSource[int](nil)).err, errors.ErrArgumentNull)
}

func TestNewDisposable_RunsOnce(t *testing.T) {
	var n atomic.Int32
	d := NewDisposable(func() { n.Add(1) })
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			d.Dispose()
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(1), n.Load())
}

func TestSingleAssignment(t *testing.T) {
	t.Run("dispose before set disposes on set", func(t *testing.T) {
		var s SingleAssignment
		s.Dispose()
		assert.True(t, s.IsDisposed())

		var n atomic.Int32
		s.Set(NewDisposable(func() { n.Add(1) }))
		assert.Equal(t, int32(1), n.Load())
	})

	t.Run("dispose after set", func(t *testing.T) {
		var s SingleAssignment
		var n atomic.Int32
		s.Set(NewDisposable(func() { n.Add(1) }))
		assert.Zero(t, n.Load())
		s.Dispose()
		s.Dispose()
		assert.Equal(t, int32(1), n.Load())
	})

	t.Run("second set panics", func(t *testing.T) {
		var s SingleAssignment
		s.Set(NewDisposable(nil))
		assert.Panics(t, func() { s.Set(NewDisposable(nil)) })
	})
}

package pipeline

import (
	"context"
	stderrors "errors"
	"slices"
	"testing"

	"github.com/kbukum/seqkit/errors"
)

func TestFromSlice_Collect(t *testing.T) {
	got, err := Collect(context.Background(), FromSlice([]int{1, 2, 3}))
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(got, []int{1, 2, 3}) {
		t.Errorf("got %v, want [1 2 3]", got)
	}
}

func TestFromSlice_Empty(t *testing.T) {
	got, err := Collect(context.Background(), Empty[int]())
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Errorf("expected empty, got %v", got)
	}
}

func TestPipeline_Restartable(t *testing.T) {
	p := FromSlice([]string{"a", "b"})
	for i := 0; i < 2; i++ {
		got, err := Collect(context.Background(), p)
		if err != nil {
			t.Fatal(err)
		}
		if !slices.Equal(got, []string{"a", "b"}) {
			t.Errorf("session %d: got %v", i, got)
		}
	}
}

func TestFrom_Iterator(t *testing.T) {
	p := From[string](&sliceIter[string]{items: []string{"a", "b"}})
	got, err := Collect(context.Background(), p)
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(got, []string{"a", "b"}) {
		t.Errorf("got %v, want [a b]", got)
	}
}

func TestFromSeq(t *testing.T) {
	got, err := Collect(context.Background(), FromSeq(slices.Values([]int{4, 5})))
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(got, []int{4, 5}) {
		t.Errorf("got %v, want [4 5]", got)
	}
}

func TestFromSeq_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Collect(ctx, FromSeq(slices.Values([]int{1})))
	if !stderrors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestThrow(t *testing.T) {
	boom := stderrors.New("boom")
	it := Throw[int](boom).Iter(context.Background())
	defer it.Close()

	if _, _, err := it.Next(context.Background()); err != boom {
		t.Fatalf("expected boom, got %v", err)
	}
	if _, ok, err := it.Next(context.Background()); ok || err != nil {
		t.Errorf("expected exhausted after error, ok=%v err=%v", ok, err)
	}
}

func TestMap(t *testing.T) {
	doubled := Map(FromSlice([]int{1, 2, 3}), func(_ context.Context, n int) (int, error) {
		return n * 2, nil
	})
	got, err := Collect(context.Background(), doubled)
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(got, []int{2, 4, 6}) {
		t.Errorf("got %v, want [2 4 6]", got)
	}
}

func TestMap_Error(t *testing.T) {
	fail := Map(FromSlice([]int{1, 2, 3}), func(_ context.Context, n int) (int, error) {
		if n == 2 {
			return 0, stderrors.New("bad value")
		}
		return n, nil
	})
	got, err := Collect(context.Background(), fail)
	if err == nil {
		t.Fatal("expected error")
	}
	if !slices.Equal(got, []int{1}) {
		t.Errorf("expected [1] before error, got %v", got)
	}
}

func TestMap_NilSelector(t *testing.T) {
	_, err := Collect(context.Background(), Map[int, int](FromSlice([]int{1}), nil))
	if !stderrors.Is(err, errors.ErrArgumentNull) {
		t.Errorf("expected argument null, got %v", err)
	}
}

func TestFilter(t *testing.T) {
	evens := Filter(FromSlice([]int{1, 2, 3, 4, 5, 6}), func(n int) bool { return n%2 == 0 })
	got, err := Collect(context.Background(), evens)
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(got, []int{2, 4, 6}) {
		t.Errorf("got %v, want [2 4 6]", got)
	}
}

func TestFilter_NilPredicate(t *testing.T) {
	_, err := Collect(context.Background(), Filter(FromSlice([]int{1}), nil))
	if !stderrors.Is(err, errors.ErrArgumentNull) {
		t.Errorf("expected argument null, got %v", err)
	}
}

func TestFilter_PanickingPredicate(t *testing.T) {
	p := Filter(FromSlice([]int{1, 2}), func(n int) bool {
		if n == 2 {
			panic("predicate failed")
		}
		return true
	})
	got, err := Collect(context.Background(), p)
	if !stderrors.Is(err, errors.ErrPanic) {
		t.Fatalf("expected recovered panic, got %v", err)
	}
	if !slices.Equal(got, []int{1}) {
		t.Errorf("got %v, want [1]", got)
	}
}

func TestTap(t *testing.T) {
	var seen []int
	p := Tap(FromSlice([]int{1, 2}), func(_ context.Context, n int) error {
		seen = append(seen, n)
		return nil
	})
	got, err := Collect(context.Background(), p)
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(got, seen) {
		t.Errorf("tap saw %v, pipeline yielded %v", seen, got)
	}
}

func TestReduce_Empty(t *testing.T) {
	got, err := Collect(context.Background(), Reduce(Empty[int](), 7, func(acc, n int) int { return acc + n }))
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(got, []int{7}) {
		t.Errorf("got %v, want [7]", got)
	}
}

type countingSource struct {
	opened int
	items  []int
}

func (s *countingSource) Iter(_ context.Context) Iterator[int] {
	s.opened++
	return &sliceIter[int]{items: s.items}
}

func TestConcat_OpensLazily(t *testing.T) {
	second := &countingSource{items: []int{3}}
	p := Concat[int](FromSlice([]int{1, 2}), second)

	ctx := context.Background()
	it := p.Iter(ctx)
	defer it.Close()

	for i := 0; i < 2; i++ {
		if _, _, err := it.Next(ctx); err != nil {
			t.Fatal(err)
		}
	}
	if second.opened != 0 {
		t.Fatalf("second source opened early")
	}
	v, ok, err := it.Next(ctx)
	if err != nil || !ok || v != 3 {
		t.Errorf("got v=%d ok=%v err=%v, want 3", v, ok, err)
	}
	if second.opened != 1 {
		t.Errorf("second source opened %d times", second.opened)
	}
}

func TestFromSource_Wraps(t *testing.T) {
	src := &countingSource{items: []int{9}}
	got, err := Collect(context.Background(), FromSource[int](src))
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(got, []int{9}) || src.opened != 1 {
		t.Errorf("got %v opened=%d", got, src.opened)
	}

	p := FromSlice([]int{1})
	if FromSource[int](p) != p {
		t.Error("expected pipeline to be returned as is")
	}
}

func TestForEach_StopsOnSinkError(t *testing.T) {
	stop := stderrors.New("stop")
	var seen []int
	err := ForEach(context.Background(), FromSlice([]int{1, 2, 3}), func(_ context.Context, n int) error {
		seen = append(seen, n)
		if n == 2 {
			return stop
		}
		return nil
	})
	if err != stop {
		t.Fatalf("expected stop, got %v", err)
	}
	if !slices.Equal(seen, []int{1, 2}) {
		t.Errorf("seen %v, want [1 2]", seen)
	}
}

func TestAll(t *testing.T) {
	var got []int
	for v, err := range FromSlice([]int{1, 2, 3}).All(context.Background()) {
		if err != nil {
			t.Fatal(err)
		}
		got = append(got, v)
		if v == 2 {
			break
		}
	}
	if !slices.Equal(got, []int{1, 2}) {
		t.Errorf("got %v, want [1 2]", got)
	}
}

func TestAll_YieldsError(t *testing.T) {
	boom := stderrors.New("boom")
	var errs []error
	for _, err := range Throw[int](boom).All(context.Background()) {
		errs = append(errs, err)
	}
	if len(errs) != 1 || errs[0] != boom {
		t.Errorf("errs = %v", errs)
	}
}

func TestChained_Pipeline(t *testing.T) {
	var tapped []int
	p := FromSlice([]int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10})
	doubled := Map(p, func(_ context.Context, n int) (int, error) { return n * 2, nil })
	fours := Filter(doubled, func(n int) bool { return n%4 == 0 })
	observed := Tap(fours, func(_ context.Context, n int) error {
		tapped = append(tapped, n)
		return nil
	})
	sum := Reduce(observed, 0, func(acc, n int) int { return acc + n })

	got, err := Collect(context.Background(), sum)
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(got, []int{60}) {
		t.Errorf("expected [60], got %v", got)
	}
	if !slices.Equal(tapped, []int{4, 8, 12, 16, 20}) {
		t.Errorf("tapped = %v, want [4 8 12 16 20]", tapped)
	}
}

func TestCollect_CanceledContextStopsPulling(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	got, err := Collect(ctx, FromSlice([]int{1, 2, 3}))
	if !stderrors.Is(err, errors.ErrCanceled) {
		t.Fatalf("expected ErrCanceled, got %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected no values, got %v", got)
	}
}

package aggregate

import (
	"cmp"
	"context"

	"github.com/kbukum/seqkit/errors"
	"github.com/kbukum/seqkit/pipeline"
)

// Min returns the smallest value of src.
func Min[T cmp.Ordered](ctx context.Context, src pipeline.Source[T]) (T, error) {
	return MinFunc(ctx, src, cmp.Compare[T])
}

// Max returns the largest value of src.
func Max[T cmp.Ordered](ctx context.Context, src pipeline.Source[T]) (T, error) {
	return MaxFunc(ctx, src, cmp.Compare[T])
}

// MinFunc returns the first value that no other value compares below.
func MinFunc[T any](ctx context.Context, src pipeline.Source[T], compare func(a, b T) int) (T, error) {
	return extreme(ctx, src, compare, -1)
}

// MaxFunc returns the first value that no other value compares above.
func MaxFunc[T any](ctx context.Context, src pipeline.Source[T], compare func(a, b T) int) (T, error) {
	return extreme(ctx, src, compare, 1)
}

// extreme keeps the value that compares beyond the current best in direction.
func extreme[T any](ctx context.Context, src pipeline.Source[T], compare func(a, b T) int, direction int) (T, error) {
	var best T
	switch {
	case src == nil:
		return best, errors.ArgumentNull("source")
	case compare == nil:
		return best, errors.ArgumentNull("comparer")
	}

	found := false
	err := each(ctx, src, func(v T) (bool, error) {
		if !found || beyond(compare(v, best), direction) {
			best, found = v, true
		}
		return false, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	if !found {
		return best, errors.NoElements()
	}
	return best, nil
}

// MinBy returns every value whose key is the smallest, in encounter order.
func MinBy[T any, K cmp.Ordered](ctx context.Context, src pipeline.Source[T], key func(T) K) ([]T, error) {
	return MinByFunc(ctx, src, key, cmp.Compare[K])
}

// MaxBy returns every value whose key is the largest, in encounter order.
func MaxBy[T any, K cmp.Ordered](ctx context.Context, src pipeline.Source[T], key func(T) K) ([]T, error) {
	return MaxByFunc(ctx, src, key, cmp.Compare[K])
}

// MinByFunc is MinBy comparing keys with compare.
func MinByFunc[T, K any](ctx context.Context, src pipeline.Source[T], key func(T) K, compare func(a, b K) int) ([]T, error) {
	return extremeBy(ctx, src, key, compare, -1)
}

// MaxByFunc is MaxBy comparing keys with compare.
func MaxByFunc[T, K any](ctx context.Context, src pipeline.Source[T], key func(T) K, compare func(a, b K) int) ([]T, error) {
	return extremeBy(ctx, src, key, compare, 1)
}

func extremeBy[T, K any](ctx context.Context, src pipeline.Source[T], key func(T) K, compare func(a, b K) int, direction int) ([]T, error) {
	switch {
	case src == nil:
		return nil, errors.ArgumentNull("source")
	case key == nil:
		return nil, errors.ArgumentNull("keySelector")
	case compare == nil:
		return nil, errors.ArgumentNull("comparer")
	}

	var (
		result  []T
		bestKey K
	)
	err := each(ctx, src, func(v T) (bool, error) {
		k := key(v)
		if len(result) == 0 {
			result, bestKey = append(result, v), k
			return false, nil
		}
		switch c := compare(k, bestKey); {
		case beyond(c, direction):
			result, bestKey = []T{v}, k
		case c == 0:
			result = append(result, v)
		}
		return false, nil
	})
	if err != nil {
		return nil, err
	}
	if len(result) == 0 {
		return nil, errors.NoElements()
	}
	return result, nil
}

// beyond reports whether a comparison result c points in direction. Only the
// sign of c is used.
func beyond(c, direction int) bool {
	if direction < 0 {
		return c < 0
	}
	return c > 0
}

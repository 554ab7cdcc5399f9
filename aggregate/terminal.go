package aggregate

import (
	"context"

	"github.com/kbukum/seqkit/errors"
	"github.com/kbukum/seqkit/pipeline"
)

// each pulls every value of src into fn until fn reports stop or an error.
// ctx is checked before every pull, so a done context ends the loop with an
// errors.ErrCanceled error even over iterators that ignore it. A panic in fn
// becomes an errors.ErrPanic error. The session is always closed.
func each[T any](ctx context.Context, src pipeline.Source[T], fn func(T) (stop bool, err error)) (err error) {
	it := src.Iter(ctx)
	defer it.Close()
	defer func() {
		if r := recover(); r != nil {
			err = errors.Recovered(r)
		}
	}()

	for {
		if err := ctx.Err(); err != nil {
			return errors.Canceled(err)
		}
		v, ok, err := it.Next(ctx)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		stop, err := fn(v)
		if err != nil || stop {
			return err
		}
	}
}

func always[T any](T) bool { return true }

type outcome[T any] struct {
	value       T
	hasValue    bool
	moreThanOne bool
}

func (o outcome[T]) resolve(orDefault bool) (T, error) {
	var zero T
	switch {
	case o.moreThanOne:
		return zero, errors.MoreThanOneElement()
	case !o.hasValue && orDefault:
		return zero, nil
	case !o.hasValue:
		return zero, errors.NoElements()
	}
	return o.value, nil
}

func first[T any](ctx context.Context, src pipeline.Source[T], predicate func(T) bool, orDefault bool) (T, error) {
	var o outcome[T]
	if err := checkSource(src, predicate); err != nil {
		return o.value, err
	}
	err := each(ctx, src, func(v T) (bool, error) {
		if !predicate(v) {
			return false, nil
		}
		o.value, o.hasValue = v, true
		return true, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return o.resolve(orDefault)
}

func last[T any](ctx context.Context, src pipeline.Source[T], predicate func(T) bool, orDefault bool) (T, error) {
	var o outcome[T]
	if err := checkSource(src, predicate); err != nil {
		return o.value, err
	}
	err := each(ctx, src, func(v T) (bool, error) {
		if predicate(v) {
			o.value, o.hasValue = v, true
		}
		return false, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return o.resolve(orDefault)
}

func single[T any](ctx context.Context, src pipeline.Source[T], predicate func(T) bool, orDefault bool) (T, error) {
	var o outcome[T]
	if err := checkSource(src, predicate); err != nil {
		return o.value, err
	}
	err := each(ctx, src, func(v T) (bool, error) {
		if !predicate(v) {
			return false, nil
		}
		if o.hasValue {
			o.moreThanOne = true
			return true, nil
		}
		o.value, o.hasValue = v, true
		return false, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return o.resolve(orDefault)
}

func checkSource[T any](src pipeline.Source[T], predicate func(T) bool) error {
	if src == nil {
		return errors.ArgumentNull("source")
	}
	if predicate == nil {
		return errors.ArgumentNull("predicate")
	}
	return nil
}

// First returns the first value of src and stops pulling. An empty sequence
// fails with errors.ErrNoElements.
func First[T any](ctx context.Context, src pipeline.Source[T]) (T, error) {
	return first(ctx, src, always[T], false)
}

// FirstWhere returns the first value satisfying predicate.
func FirstWhere[T any](ctx context.Context, src pipeline.Source[T], predicate func(T) bool) (T, error) {
	return first(ctx, src, predicate, false)
}

// FirstOrDefault is First returning the zero value for an empty sequence.
func FirstOrDefault[T any](ctx context.Context, src pipeline.Source[T]) (T, error) {
	return first(ctx, src, always[T], true)
}

// FirstOrDefaultWhere is FirstWhere returning the zero value when nothing matches.
func FirstOrDefaultWhere[T any](ctx context.Context, src pipeline.Source[T], predicate func(T) bool) (T, error) {
	return first(ctx, src, predicate, true)
}

// IsEmpty reports whether src has no values. At most one value is pulled.
func IsEmpty[T any](ctx context.Context, src pipeline.Source[T]) (bool, error) {
	if src == nil {
		return false, errors.ArgumentNull("source")
	}
	empty := true
	err := each(ctx, src, func(T) (bool, error) {
		empty = false
		return true, nil
	})
	if err != nil {
		return false, err
	}
	return empty, nil
}

// Last returns the last value of src.
func Last[T any](ctx context.Context, src pipeline.Source[T]) (T, error) {
	return last(ctx, src, always[T], false)
}

// LastWhere returns the last value satisfying predicate.
func LastWhere[T any](ctx context.Context, src pipeline.Source[T], predicate func(T) bool) (T, error) {
	return last(ctx, src, predicate, false)
}

// LastOrDefault is Last returning the zero value for an empty sequence.
func LastOrDefault[T any](ctx context.Context, src pipeline.Source[T]) (T, error) {
	return last(ctx, src, always[T], true)
}

// LastOrDefaultWhere is LastWhere returning the zero value when nothing matches.
func LastOrDefaultWhere[T any](ctx context.Context, src pipeline.Source[T], predicate func(T) bool) (T, error) {
	return last(ctx, src, predicate, true)
}

// Single returns the only value of src. Pulling stops at a second value,
// which fails with errors.ErrMoreThanOneElement.
func Single[T any](ctx context.Context, src pipeline.Source[T]) (T, error) {
	return single(ctx, src, always[T], false)
}

// SingleWhere returns the only value satisfying predicate.
func SingleWhere[T any](ctx context.Context, src pipeline.Source[T], predicate func(T) bool) (T, error) {
	return single(ctx, src, predicate, false)
}

// SingleOrDefault is Single returning the zero value for an empty sequence.
func SingleOrDefault[T any](ctx context.Context, src pipeline.Source[T]) (T, error) {
	return single(ctx, src, always[T], true)
}

// SingleOrDefaultWhere is SingleWhere returning the zero value when nothing matches.
func SingleOrDefaultWhere[T any](ctx context.Context, src pipeline.Source[T], predicate func(T) bool) (T, error) {
	return single(ctx, src, predicate, true)
}

// ElementAt returns the value at the zero-based index. A negative index, or
// one past the end of the sequence, fails with errors.ErrArgumentOutOfRange.
func ElementAt[T any](ctx context.Context, src pipeline.Source[T], index int) (T, error) {
	v, found, err := elementAt(ctx, src, index)
	if err == nil && !found {
		err = errors.ArgumentOutOfRange("index", index)
	}
	return v, err
}

// ElementAtOrDefault is ElementAt returning the zero value when the sequence
// is too short. A negative index is still an error.
func ElementAtOrDefault[T any](ctx context.Context, src pipeline.Source[T], index int) (T, error) {
	v, _, err := elementAt(ctx, src, index)
	return v, err
}

func elementAt[T any](ctx context.Context, src pipeline.Source[T], index int) (result T, found bool, err error) {
	if src == nil {
		return result, false, errors.ArgumentNull("source")
	}
	if index < 0 {
		return result, false, errors.ArgumentOutOfRange("index", index)
	}
	i := 0
	err = each(ctx, src, func(v T) (bool, error) {
		if i == index {
			result, found = v, true
			return true, nil
		}
		i++
		return false, nil
	})
	if err != nil {
		var zero T
		return zero, false, err
	}
	return result, found, nil
}

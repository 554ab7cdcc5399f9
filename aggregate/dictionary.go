package aggregate

import (
	"context"
	"iter"
	"slices"

	"github.com/kbukum/seqkit/errors"
	"github.com/kbukum/seqkit/pipeline"
)

// Dictionary maps each key to exactly one value and keeps keys in insertion
// order.
type Dictionary[K, V any] struct {
	index  table[K]
	values []V
}

// Get returns the value stored for k.
func (d *Dictionary[K, V]) Get(k K) (V, bool) {
	if i := d.index.find(k); i >= 0 {
		return d.values[i], true
	}
	var zero V
	return zero, false
}

// Contains reports whether k is present.
func (d *Dictionary[K, V]) Contains(k K) bool {
	return d.index.find(k) >= 0
}

// Len returns the number of keys.
func (d *Dictionary[K, V]) Len() int {
	return len(d.values)
}

// Keys returns the keys in insertion order.
func (d *Dictionary[K, V]) Keys() []K {
	return slices.Clone(d.index.keys)
}

// All iterates the entries in insertion order.
func (d *Dictionary[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for i, k := range d.index.keys {
			if !yield(k, d.values[i]) {
				return
			}
		}
	}
}

func (d *Dictionary[K, V]) add(k K, v V) error {
	if d.index.find(k) >= 0 {
		return errors.DuplicateKey(k)
	}
	d.index.insert(k)
	d.values = append(d.values, v)
	return nil
}

func identity[T any](v T) T { return v }

// ToDictionary drains src into a Dictionary keyed by key. A repeated key
// fails with errors.ErrDuplicateKey.
func ToDictionary[T any, K comparable](ctx context.Context, src pipeline.Source[T], key func(T) K) (*Dictionary[K, T], error) {
	return ToDictionaryFunc(ctx, src, key, identity[T], DefaultEquality[K]())
}

// ToDictionarySelect is ToDictionary storing value(v) instead of v.
func ToDictionarySelect[T any, K comparable, V any](ctx context.Context, src pipeline.Source[T], key func(T) K, value func(T) V) (*Dictionary[K, V], error) {
	return ToDictionaryFunc(ctx, src, key, value, DefaultEquality[K]())
}

// ToDictionaryFunc is ToDictionarySelect comparing keys with eq.
func ToDictionaryFunc[T, K, V any](ctx context.Context, src pipeline.Source[T], key func(T) K, value func(T) V, eq Equality[K]) (*Dictionary[K, V], error) {
	switch {
	case src == nil:
		return nil, errors.ArgumentNull("source")
	case key == nil:
		return nil, errors.ArgumentNull("keySelector")
	case value == nil:
		return nil, errors.ArgumentNull("elementSelector")
	case eq == nil:
		return nil, errors.ArgumentNull("comparer")
	}

	d := &Dictionary[K, V]{index: newTable(eq)}
	err := each(ctx, src, func(v T) (bool, error) {
		return false, d.add(key(v), value(v))
	})
	if err != nil {
		return nil, err
	}
	return d, nil
}

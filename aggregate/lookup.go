package aggregate

import (
	"context"
	"iter"
	"slices"

	"github.com/kbukum/seqkit/errors"
	"github.com/kbukum/seqkit/pipeline"
)

// Grouping is a key with the values that share it, in arrival order.
type Grouping[K, V any] struct {
	Key    K
	Values []V
}

// Lookup maps each key to one or more values. Groups are ordered by the first
// occurrence of their key.
type Lookup[K, V any] struct {
	index  table[K]
	groups [][]V
}

// Contains reports whether k has a group.
func (l *Lookup[K, V]) Contains(k K) bool {
	return l.index.find(k) >= 0
}

// Get returns the values for k, or an empty slice when k is absent.
func (l *Lookup[K, V]) Get(k K) []V {
	if i := l.index.find(k); i >= 0 {
		return slices.Clone(l.groups[i])
	}
	return []V{}
}

// Len returns the number of distinct keys.
func (l *Lookup[K, V]) Len() int {
	return len(l.groups)
}

// Keys returns the keys in first-occurrence order.
func (l *Lookup[K, V]) Keys() []K {
	return slices.Clone(l.index.keys)
}

// Groups iterates the groupings in first-occurrence order.
func (l *Lookup[K, V]) Groups() iter.Seq[Grouping[K, V]] {
	return func(yield func(Grouping[K, V]) bool) {
		for i, k := range l.index.keys {
			if !yield(Grouping[K, V]{Key: k, Values: slices.Clone(l.groups[i])}) {
				return
			}
		}
	}
}

func (l *Lookup[K, V]) add(k K, v V) {
	i := l.index.find(k)
	if i < 0 {
		i = l.index.insert(k)
		l.groups = append(l.groups, nil)
	}
	l.groups[i] = append(l.groups[i], v)
}

// ToLookup drains src into a Lookup keyed by key.
func ToLookup[T any, K comparable](ctx context.Context, src pipeline.Source[T], key func(T) K) (*Lookup[K, T], error) {
	return ToLookupFunc(ctx, src, key, identity[T], DefaultEquality[K]())
}

// ToLookupSelect is ToLookup storing value(v) instead of v.
func ToLookupSelect[T any, K comparable, V any](ctx context.Context, src pipeline.Source[T], key func(T) K, value func(T) V) (*Lookup[K, V], error) {
	return ToLookupFunc(ctx, src, key, value, DefaultEquality[K]())
}

// ToLookupFunc is ToLookupSelect comparing keys with eq.
func ToLookupFunc[T, K, V any](ctx context.Context, src pipeline.Source[T], key func(T) K, value func(T) V, eq Equality[K]) (*Lookup[K, V], error) {
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

	l := &Lookup[K, V]{index: newTable(eq)}
	err := each(ctx, src, func(v T) (bool, error) {
		l.add(key(v), value(v))
		return false, nil
	})
	if err != nil {
		return nil, err
	}
	return l, nil
}

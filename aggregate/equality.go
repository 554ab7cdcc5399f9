package aggregate

import "hash/maphash"

// Equality decides key identity for Dictionary and Lookup. Keys that are
// Equal must have the same Hash.
type Equality[K any] interface {
	Equal(a, b K) bool
	Hash(k K) uint64
}

type comparableEquality[K comparable] struct {
	seed maphash.Seed
}

func (e comparableEquality[K]) Equal(a, b K) bool { return a == b }

func (e comparableEquality[K]) Hash(k K) uint64 { return maphash.Comparable(e.seed, k) }

// DefaultEquality compares keys with == and hashes them with hash/maphash.
func DefaultEquality[K comparable]() Equality[K] {
	return comparableEquality[K]{seed: maphash.MakeSeed()}
}

type funcEquality[K any] struct {
	equal func(a, b K) bool
	hash  func(K) uint64
}

func (e funcEquality[K]) Equal(a, b K) bool { return e.equal(a, b) }

func (e funcEquality[K]) Hash(k K) uint64 { return e.hash(k) }

// EqualityFunc builds an Equality from an equality test and a matching hash.
// It returns nil if either function is nil.
func EqualityFunc[K any](equal func(a, b K) bool, hash func(K) uint64) Equality[K] {
	if equal == nil || hash == nil {
		return nil
	}
	return funcEquality[K]{equal: equal, hash: hash}
}

// table is an insertion-ordered hash index over keys compared with an Equality.
type table[K any] struct {
	eq      Equality[K]
	buckets map[uint64][]int
	keys    []K
}

func newTable[K any](eq Equality[K]) table[K] {
	return table[K]{eq: eq, buckets: make(map[uint64][]int)}
}

// find returns the position of k, or -1.
func (t *table[K]) find(k K) int {
	for _, i := range t.buckets[t.eq.Hash(k)] {
		if t.eq.Equal(t.keys[i], k) {
			return i
		}
	}
	return -1
}

// insert appends k and returns its position. k must not be present.
func (t *table[K]) insert(k K) int {
	i := len(t.keys)
	h := t.eq.Hash(k)
	t.buckets[h] = append(t.buckets[h], i)
	t.keys = append(t.keys, k)
	return i
}

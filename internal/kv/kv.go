// Package kv provides a small associative container abstraction with
// several backing implementations.
//
// The kernel operations are Insert, ContainsKey, Value, Remove and Size.
// Entries is the one secondary operation: a full traversal that yields
// every binding exactly once. None of the implementations are safe for
// concurrent use. A traversal in progress is invalidated by any
// successful Insert or Remove on the same container; the iterator panics
// with ErrConcurrentModification on its next step.
package kv

import "iter"

// Map is a mutable mapping from K to V with unique keys.
type Map[K comparable, V any] interface {
	// Insert adds a new binding. It fails with ErrDuplicateKey if key is
	// already bound, leaving the map unchanged.
	Insert(key K, value V) error

	// ContainsKey reports whether key is bound.
	ContainsKey(key K) bool

	// Value returns the value bound to key, or ErrKeyNotFound.
	Value(key K) (V, error)

	// Remove unbinds key and returns its value, or ErrKeyNotFound.
	Remove(key K) (V, error)

	// Size returns the number of bound keys.
	Size() int

	// Entries returns a fresh single-pass traversal over all bindings.
	Entries() iter.Seq2[K, V]
}

// Entry is one key/value binding.
type Entry[K comparable, V any] struct {
	Key   K
	Value V
}

// Keys returns the bound keys in traversal order.
func Keys[K comparable, V any](m Map[K, V]) []K {
	keys := make([]K, 0, m.Size())
	for k := range m.Entries() {
		keys = append(keys, k)
	}
	return keys
}

// Collect returns every binding in traversal order.
func Collect[K comparable, V any](m Map[K, V]) []Entry[K, V] {
	out := make([]Entry[K, V], 0, m.Size())
	for k, v := range m.Entries() {
		out = append(out, Entry[K, V]{Key: k, Value: v})
	}
	return out
}

// FromEntries inserts entries into m in order. It stops at the first
// failed insertion and returns that error; earlier entries stay bound.
func FromEntries[K comparable, V any](m Map[K, V], entries ...Entry[K, V]) error {
	for _, e := range entries {
		if err := m.Insert(e.Key, e.Value); err != nil {
			return err
		}
	}
	return nil
}

// Equal reports whether a and b hold the same set of bindings, comparing
// values with eq. Traversal order is ignored.
func Equal[K comparable, V any](a, b Map[K, V], eq func(V, V) bool) bool {
	if a.Size() != b.Size() {
		return false
	}
	for k, av := range a.Entries() {
		bv, err := b.Value(k)
		if err != nil || !eq(av, bv) {
			return false
		}
	}
	return true
}

// MustInsert is Insert for callers that treat a duplicate key as a bug.
func MustInsert[K comparable, V any](m Map[K, V], key K, value V) {
	if err := m.Insert(key, value); err != nil {
		panic(err)
	}
}

// MustValue is Value for callers that have already checked ContainsKey.
func MustValue[K comparable, V any](m Map[K, V], key K) V {
	v, err := m.Value(key)
	if err != nil {
		panic(err)
	}
	return v
}

// guard tracks structural modifications so traversals can fail fast.
type guard struct {
	mods uint64
}

func (g *guard) touch() { g.mods++ }

// check panics if the container changed since the traversal captured want.
func (g *guard) check(want uint64) {
	if g.mods != want {
		panic(ErrConcurrentModification)
	}
}

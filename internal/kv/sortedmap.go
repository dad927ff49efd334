package kv

import (
	"cmp"
	"iter"
	"slices"
)

// SortedMap keeps its bindings ordered by key and traverses in that order.
// The zero value is not usable; call NewSortedMap or NewOrdered.
type SortedMap[K comparable, V any] struct {
	entries []Entry[K, V]
	cmp     func(a, b K) int
	g       guard
}

// NewSortedMap returns an empty SortedMap ordered by compare, which must
// return 0 exactly when its arguments are equal. A nil compare panics.
func NewSortedMap[K comparable, V any](compare func(a, b K) int) *SortedMap[K, V] {
	if compare == nil {
		panic("kv: NewSortedMap called with nil compare")
	}
	return &SortedMap[K, V]{cmp: compare}
}

// NewOrdered returns an empty SortedMap for naturally ordered keys.
func NewOrdered[K cmp.Ordered, V any]() *SortedMap[K, V] {
	return NewSortedMap[K, V](cmp.Compare[K])
}

func (m *SortedMap[K, V]) search(key K) (int, bool) {
	return slices.BinarySearchFunc(m.entries, key, func(e Entry[K, V], k K) int {
		return m.cmp(e.Key, k)
	})
}

func (m *SortedMap[K, V]) Insert(key K, value V) error {
	i, found := m.search(key)
	if found {
		return duplicateKey(key)
	}
	m.entries = slices.Insert(m.entries, i, Entry[K, V]{Key: key, Value: value})
	m.g.touch()
	return nil
}

func (m *SortedMap[K, V]) ContainsKey(key K) bool {
	_, found := m.search(key)
	return found
}

func (m *SortedMap[K, V]) Value(key K) (V, error) {
	i, found := m.search(key)
	if !found {
		var zero V
		return zero, keyNotFound("value", key)
	}
	return m.entries[i].Value, nil
}

func (m *SortedMap[K, V]) Remove(key K) (V, error) {
	i, found := m.search(key)
	if !found {
		var zero V
		return zero, keyNotFound("remove", key)
	}
	v := m.entries[i].Value
	m.entries = slices.Delete(m.entries, i, i+1)
	m.g.touch()
	return v, nil
}

func (m *SortedMap[K, V]) Size() int {
	return len(m.entries)
}

func (m *SortedMap[K, V]) Entries() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		want := m.g.mods
		for i := 0; i < len(m.entries); i++ {
			e := m.entries[i]
			if !yield(e.Key, e.Value) {
				return
			}
			m.g.check(want)
		}
	}
}

var _ Map[int, string] = (*SortedMap[int, string])(nil)

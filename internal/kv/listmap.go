package kv

import "iter"

// ListMap is an association list. Lookups are linear, which is fine for
// the handful of keys it is meant for. Traversal is in insertion order.
// The zero value is an empty map ready to use.
type ListMap[K comparable, V any] struct {
	head, tail *node[K, V]
	size       int
	g          guard
}

type node[K comparable, V any] struct {
	key   K
	value V
	next  *node[K, V]
}

// NewListMap returns an empty ListMap.
func NewListMap[K comparable, V any]() *ListMap[K, V] {
	return &ListMap[K, V]{}
}

// find returns the node holding key and its predecessor.
func (m *ListMap[K, V]) find(key K) (prev, n *node[K, V]) {
	for n = m.head; n != nil; prev, n = n, n.next {
		if n.key == key {
			return prev, n
		}
	}
	return nil, nil
}

func (m *ListMap[K, V]) Insert(key K, value V) error {
	if _, n := m.find(key); n != nil {
		return duplicateKey(key)
	}
	n := &node[K, V]{key: key, value: value}
	if m.tail == nil {
		m.head = n
	} else {
		m.tail.next = n
	}
	m.tail = n
	m.size++
	m.g.touch()
	return nil
}

func (m *ListMap[K, V]) ContainsKey(key K) bool {
	_, n := m.find(key)
	return n != nil
}

func (m *ListMap[K, V]) Value(key K) (V, error) {
	_, n := m.find(key)
	if n == nil {
		var zero V
		return zero, keyNotFound("value", key)
	}
	return n.value, nil
}

func (m *ListMap[K, V]) Remove(key K) (V, error) {
	prev, n := m.find(key)
	if n == nil {
		var zero V
		return zero, keyNotFound("remove", key)
	}
	if prev == nil {
		m.head = n.next
	} else {
		prev.next = n.next
	}
	if m.tail == n {
		m.tail = prev
	}
	m.size--
	m.g.touch()
	return n.value, nil
}

func (m *ListMap[K, V]) Size() int {
	return m.size
}

func (m *ListMap[K, V]) Entries() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		want := m.g.mods
		for n := m.head; n != nil; n = n.next {
			if !yield(n.key, n.value) {
				return
			}
			m.g.check(want)
		}
	}
}

var _ Map[string, int] = (*ListMap[string, int])(nil)

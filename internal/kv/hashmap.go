package kv

import "iter"

// HashMap is a hash-backed Map that traverses in insertion order.
// The zero value is not usable; call NewHashMap.
type HashMap[K comparable, V any] struct {
	keys   []K
	values map[K]V
	g      guard
}

// NewHashMap returns an empty HashMap.
func NewHashMap[K comparable, V any]() *HashMap[K, V] {
	return &HashMap[K, V]{values: make(map[K]V)}
}

// NewHashMapWithCapacity returns an empty HashMap sized for n keys.
func NewHashMapWithCapacity[K comparable, V any](n int) *HashMap[K, V] {
	return &HashMap[K, V]{
		keys:   make([]K, 0, n),
		values: make(map[K]V, n),
	}
}

func (m *HashMap[K, V]) Insert(key K, value V) error {
	if _, ok := m.values[key]; ok {
		return duplicateKey(key)
	}
	m.keys = append(m.keys, key)
	m.values[key] = value
	m.g.touch()
	return nil
}

func (m *HashMap[K, V]) ContainsKey(key K) bool {
	_, ok := m.values[key]
	return ok
}

func (m *HashMap[K, V]) Value(key K) (V, error) {
	v, ok := m.values[key]
	if !ok {
		return v, keyNotFound("value", key)
	}
	return v, nil
}

func (m *HashMap[K, V]) Remove(key K) (V, error) {
	v, ok := m.values[key]
	if !ok {
		return v, keyNotFound("remove", key)
	}
	delete(m.values, key)
	for i, k := range m.keys {
		if k == key {
			m.keys = append(m.keys[:i], m.keys[i+1:]...)
			break
		}
	}
	m.g.touch()
	return v, nil
}

func (m *HashMap[K, V]) Size() int {
	return len(m.keys)
}

func (m *HashMap[K, V]) Entries() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		want := m.g.mods
		for i := 0; i < len(m.keys); i++ {
			k := m.keys[i]
			if !yield(k, m.values[k]) {
				return
			}
			m.g.check(want)
		}
	}
}

var _ Map[string, int] = (*HashMap[string, int])(nil)

package ordered

import (
	"iter"
	"slices"
)

// Map is a hash-indexed map that enumerates in first-insertion order.
// It is not safe for concurrent mutation.
type Map[K comparable, V any] struct {
	keys   []K
	values []V
	index  map[K]int
}

// NewMap returns an empty map with room for capacity entries.
func NewMap[K comparable, V any](capacity int) *Map[K, V] {
	if capacity < 0 {
		capacity = 0
	}
	return &Map[K, V]{
		keys:   make([]K, 0, capacity),
		values: make([]V, 0, capacity),
		index:  make(map[K]int, capacity),
	}
}

// Set stores value under key. An existing key keeps its position and
// reports the value it held.
func (m *Map[K, V]) Set(key K, value V) (V, bool) {
	m.lazyInit()
	if i, ok := m.index[key]; ok {
		old := m.values[i]
		m.values[i] = value
		return old, true
	}
	m.index[key] = len(m.keys)
	m.keys = append(m.keys, key)
	m.values = append(m.values, value)
	var zero V
	return zero, false
}

func (m *Map[K, V]) Get(key K) (V, bool) {
	if i, ok := m.index[key]; ok {
		return m.values[i], true
	}
	var zero V
	return zero, false
}

func (m *Map[K, V]) Has(key K) bool {
	_, ok := m.index[key]
	return ok
}

// Delete removes key and shifts later entries down, preserving order.
func (m *Map[K, V]) Delete(key K) bool {
	i, ok := m.index[key]
	if !ok {
		return false
	}
	delete(m.index, key)
	m.keys = slices.Delete(m.keys, i, i+1)
	m.values = slices.Delete(m.values, i, i+1)
	for j := i; j < len(m.keys); j++ {
		m.index[m.keys[j]] = j
	}
	return true
}

func (m *Map[K, V]) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// All yields entries in enumeration order.
func (m *Map[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		if m == nil {
			return
		}
		for i, k := range m.keys {
			if !yield(k, m.values[i]) {
				return
			}
		}
	}
}

// Keys returns a copy of the keys in enumeration order.
func (m *Map[K, V]) Keys() []K {
	if m == nil {
		return nil
	}
	return slices.Clone(m.keys)
}

func (m *Map[K, V]) lazyInit() {
	if m.index == nil {
		m.index = make(map[K]int)
	}
}

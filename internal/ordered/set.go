package ordered

import "iter"

// Set is an insertion-ordered set backed by Map with the value elided.
type Set[T comparable] struct {
	m Map[T, struct{}]
}

func NewSet[T comparable](capacity int) *Set[T] {
	return &Set[T]{m: *NewMap[T, struct{}](capacity)}
}

// SetOf builds a set from values in order; repeats collapse to the first position.
func SetOf[T comparable](values ...T) *Set[T] {
	s := NewSet[T](len(values))
	for _, v := range values {
		s.Insert(v)
	}
	return s
}

// Insert adds v and reports whether it was not already present.
func (s *Set[T]) Insert(v T) bool {
	_, existed := s.m.Set(v, struct{}{})
	return !existed
}

func (s *Set[T]) Has(v T) bool { return s.m.Has(v) }

func (s *Set[T]) Delete(v T) bool { return s.m.Delete(v) }

func (s *Set[T]) Len() int {
	if s == nil {
		return 0
	}
	return s.m.Len()
}

// All yields elements in enumeration order.
func (s *Set[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		if s == nil {
			return
		}
		for v := range s.m.All() {
			if !yield(v) {
				return
			}
		}
	}
}

func (s *Set[T]) Values() []T {
	if s == nil {
		return nil
	}
	return s.m.Keys()
}

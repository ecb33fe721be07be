package sets

import (
	"fmt"
	"iter"
)

// CappedSet is a set holding at most a fixed number of elements in a single
// backing array allocated at construction. It never grows: once full, Add
// rejects every element, duplicate or not.
//
// Elements are compared with E only; no ordering is required.
// The zero value is not usable, create one with NewCappedSet.
type CappedSet[T any, E Equaler[T]] struct {
	items []T
	n     int
}

// NewCappedSet returns an empty set that accepts up to capacity elements.
// It panics if capacity is not positive.
func NewCappedSet[T any, E Equaler[T]](capacity int) *CappedSet[T, E] {
	if capacity <= 0 {
		panic(fmt.Errorf("%w: %d", ErrInvalidCapacity, capacity))
	}
	return &CappedSet[T, E]{
		items: make([]T, capacity),
	}
}

// Len returns the number of elements in the set.
func (s *CappedSet[T, E]) Len() int {
	return s.n
}

// Cap returns the maximum number of elements the set can hold.
func (s *CappedSet[T, E]) Cap() int {
	return len(s.items)
}

// Full reports whether Add would reject any new element.
func (s *CappedSet[T, E]) Full() bool {
	return s.n == len(s.items)
}

// Add inserts item and reports whether the set changed.
// It returns false if the set is full or item is already present.
func (s *CappedSet[T, E]) Add(item T) bool {
	return tryInsert(s.items, &s.n, item, equalsFn[T, E]())
}

// Has returns true if and only if item is contained in the set.
func (s *CappedSet[T, E]) Has(item T) bool {
	return contains(s.items, s.n, item, equalsFn[T, E]())
}

// Remove deletes item and reports whether it was present.
// The last element takes the removed element's position.
func (s *CappedSet[T, E]) Remove(item T) bool {
	return swapErase(s.items, &s.n, item, equalsFn[T, E]())
}

// Clear removes all elements, keeping the capacity.
func (s *CappedSet[T, E]) Clear() {
	clearStore(s.items, s.n)
	s.n = 0
}

// Items returns the live elements in storage order.
// The slice aliases the set's storage; writes through it must keep the
// elements pairwise distinct and are invalidated by the next Remove.
func (s *CappedSet[T, E]) Items() []T {
	return s.items[:s.n:s.n]
}

// All iterates the live elements in storage order.
func (s *CappedSet[T, E]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for i := 0; i < s.n; i++ {
			if !yield(s.items[i]) {
				return
			}
		}
	}
}

// UnsortedList returns a copy of the elements in storage order.
func (s *CappedSet[T, E]) UnsortedList() []T {
	list := make([]T, s.n)
	copy(list, s.items[:s.n])
	return list
}

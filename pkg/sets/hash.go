package sets

import (
	"slices"

	"github.com/zyedidia/generic/mapset"
)

// Hash is an unordered set of comparable values, implemented via a map.
// It is the reference the differential checker compares Tiny against.
// Create one with NewHash, the zero value is not usable.
type Hash[T comparable] struct {
	m mapset.Set[T]
}

// NewHash creates a Hash from a list of values.
func NewHash[T comparable](items ...T) Hash[T] {
	return Hash[T]{m: mapset.Of(items...)}
}

// Insert adds item and reports whether the set changed.
func (s Hash[T]) Insert(item T) bool {
	if s.m.Has(item) {
		return false
	}
	s.m.Put(item)
	return true
}

// Delete removes item and reports whether it was present.
func (s Hash[T]) Delete(item T) bool {
	if !s.m.Has(item) {
		return false
	}
	s.m.Remove(item)
	return true
}

// Has returns true if and only if item is contained in the set.
func (s Hash[T]) Has(item T) bool {
	return s.m.Has(item)
}

// Clear removes all items.
func (s Hash[T]) Clear() {
	s.m.Clear()
}

// Len returns the size of the set.
func (s Hash[T]) Len() int {
	return s.m.Size()
}

// UnsortedList returns the slice with contents in random order.
func (s Hash[T]) UnsortedList() []T {
	res := make([]T, 0, s.m.Size())
	s.m.Each(func(item T) {
		res = append(res, item)
	})
	return res
}

// SortedList returns the contents ordered by cmp.
func (s Hash[T]) SortedList(cmp func(a, b T) int) []T {
	res := s.UnsortedList()
	slices.SortFunc(res, cmp)
	return res
}

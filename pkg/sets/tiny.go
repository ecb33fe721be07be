// Package sets provides generic set containers tuned for holding few elements.
package sets

import (
	"iter"
	"slices"

	"golang.org/x/exp/constraints"
)

// Capacity is the number of elements a Tiny set stores inline
// before it promotes itself to a tree.
const Capacity = 4

// delegated is the discriminant value of a Tiny set that owns a tree.
const delegated = -1

// Tiny is an ordered set optimized for holding only a few elements.
//
// Up to Capacity distinct elements are kept inline in the struct itself,
// without any heap allocation, and are compared with O's Equal. Inserting
// one more distinct element promotes the set, once and for good, to a
// heap-allocated Sorted set which then serves all operations. Removing
// elements or clearing never demotes a promoted set; only Reset, Assign and
// Move replace its state wholesale.
//
// The zero value is an empty set ready to use.
//
// A Tiny value must not be copied by assignment once it may have been
// promoted, since both copies would then share one tree. Use Clone, Assign or
// Move instead. Tiny is not safe for concurrent use; callers sharing a set
// between goroutines must synchronize access themselves.
type Tiny[T any, O Ordering[T]] struct {
	full  *Sorted[T, O]
	items [Capacity]T
	n     int8 // live inline elements, or delegated
}

// Of is a Tiny set of naturally ordered values.
type Of[T constraints.Ordered] = Tiny[T, Natural[T]]

// IsTiny reports whether the elements are still stored inline.
func (s *Tiny[T, O]) IsTiny() bool {
	return s.n != delegated
}

// Len returns the number of elements.
func (s *Tiny[T, O]) Len() int {
	if s.IsTiny() {
		return int(s.n)
	}
	return s.full.Len()
}

// Insert adds item and reports whether the set changed.
// It returns false if an equal element is already present.
func (s *Tiny[T, O]) Insert(item T) bool {
	if !s.IsTiny() {
		return s.full.Insert(item)
	}
	eq := equalsFn[T, O]()
	if s.n < Capacity {
		n := int(s.n)
		ok := tryInsert(s.items[:], &n, item, eq)
		s.n = int8(n)
		return ok
	}
	// A duplicate at capacity must not promote.
	if contains(s.items[:], Capacity, item, eq) {
		return false
	}
	return s.promote(item)
}

// promote moves the inline elements and item into a new tree.
// The tree is complete before inline storage is released.
func (s *Tiny[T, O]) promote(item T) bool {
	full := NewSorted[T, O]()
	for _, v := range s.items {
		full.Insert(v)
	}
	ok := full.Insert(item)
	clear(s.items[:])
	s.full = full
	s.n = delegated
	return ok
}

// InsertAll adds all items and returns how many of them were new.
func (s *Tiny[T, O]) InsertAll(items ...T) (inserted int) {
	for _, item := range items {
		if s.Insert(item) {
			inserted++
		}
	}
	return inserted
}

// Has returns true if and only if item is contained in the set.
func (s *Tiny[T, O]) Has(item T) bool {
	if s.IsTiny() {
		return contains(s.items[:], int(s.n), item, equalsFn[T, O]())
	}
	return s.full.Has(item)
}

// HasAll returns true if and only if all items are contained in the set.
func (s *Tiny[T, O]) HasAll(items ...T) bool {
	for _, item := range items {
		if !s.Has(item) {
			return false
		}
	}
	return true
}

// Remove deletes item and reports whether it was present.
// While inline, the last element takes the removed element's position.
func (s *Tiny[T, O]) Remove(item T) bool {
	if !s.IsTiny() {
		return s.full.Remove(item)
	}
	n := int(s.n)
	ok := swapErase(s.items[:], &n, item, equalsFn[T, O]())
	s.n = int8(n)
	return ok
}

// Clear removes all elements. A promoted set stays promoted.
func (s *Tiny[T, O]) Clear() {
	if !s.IsTiny() {
		s.full.Clear()
		return
	}
	clearStore(s.items[:], int(s.n))
	s.n = 0
}

// Reset releases the current storage and leaves s as an empty inline set.
func (s *Tiny[T, O]) Reset() {
	*s = Tiny[T, O]{}
}

// ToSorted returns a new Sorted set holding the same elements.
func (s *Tiny[T, O]) ToSorted() *Sorted[T, O] {
	if !s.IsTiny() {
		return s.full.Clone()
	}
	full := NewSorted[T, O]()
	for item := range s.All() {
		full.Insert(item)
	}
	return full
}

// Clone returns an independent deep copy of s in the same mode.
func (s *Tiny[T, O]) Clone() Tiny[T, O] {
	var c Tiny[T, O]
	c.Assign(s)
	return c
}

// Assign replaces the contents of s with a deep copy of src, taking over
// src's mode. The previous storage of s is released first.
func (s *Tiny[T, O]) Assign(src *Tiny[T, O]) {
	if s == src {
		return
	}
	s.Reset()
	if src.IsTiny() {
		s.items = src.items
		s.n = src.n
		return
	}
	s.full = src.full.Clone()
	s.n = delegated
}

// Move transfers the contents of src to s and leaves src empty and inline.
// For a promoted src the tree itself changes owner; nothing is copied.
func (s *Tiny[T, O]) Move(src *Tiny[T, O]) {
	if s == src {
		return
	}
	*s = *src
	src.Reset()
}

// Begin returns an iterator at the first element. Inline elements are
// visited in storage order, delegated ones in ascending order.
func (s *Tiny[T, O]) Begin() Iterator[T] {
	if s.IsTiny() {
		return inlineIterator(s.items[:s.n], 0)
	}
	return s.full.Begin()
}

// End returns the iterator one past the last element.
func (s *Tiny[T, O]) End() Iterator[T] {
	if s.IsTiny() {
		return inlineIterator(s.items[:s.n], int(s.n))
	}
	return s.full.End()
}

// All iterates the elements in the order of Begin.
// The set must not be modified during iteration.
func (s *Tiny[T, O]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for it, end := s.Begin(), s.End(); !it.Equal(end); it.Next() {
			if !yield(it.Value()) {
				return
			}
		}
	}
}

// Values returns a copy of the elements in the order of Begin.
func (s *Tiny[T, O]) Values() []T {
	return slices.Collect(s.All())
}

func (s *Tiny[T, O]) String() string {
	return formatSeq(s.All())
}

package sets

import (
	"fmt"
	"iter"
	"strings"

	"github.com/emirpasic/gods/trees/redblacktree"
	"github.com/emirpasic/gods/utils"
	g "github.com/zyedidia/generic"
)

// Sorted is a duplicate-free set kept in ascending order of O,
// backed by a red-black tree.
type Sorted[T any, O Ordering[T]] struct {
	tree *redblacktree.Tree
}

// NewSorted returns an empty Sorted set.
func NewSorted[T any, O Ordering[T]](items ...T) *Sorted[T, O] {
	s := &Sorted[T, O]{tree: redblacktree.NewWith(comparator[T, O]())}
	for _, item := range items {
		s.Insert(item)
	}
	return s
}

func comparator[T any, O Ordering[T]]() utils.Comparator {
	less := lessFn[T, O]()
	return func(a, b interface{}) int {
		return g.Compare(a.(T), b.(T), less)
	}
}

// Insert adds item if no equal element is present and reports whether the set changed.
func (s *Sorted[T, O]) Insert(item T) bool {
	if _, found := s.tree.Get(item); found {
		return false
	}
	s.tree.Put(item, struct{}{})
	return true
}

// Has returns true if and only if item is contained in the set.
func (s *Sorted[T, O]) Has(item T) bool {
	_, found := s.tree.Get(item)
	return found
}

// Remove deletes item and reports whether it was present.
func (s *Sorted[T, O]) Remove(item T) bool {
	if _, found := s.tree.Get(item); !found {
		return false
	}
	s.tree.Remove(item)
	return true
}

// Len returns the size of the set.
func (s *Sorted[T, O]) Len() int {
	return s.tree.Size()
}

// Clear removes all elements.
func (s *Sorted[T, O]) Clear() {
	s.tree.Clear()
}

// Clone returns a deep copy that shares no nodes with s.
func (s *Sorted[T, O]) Clone() *Sorted[T, O] {
	c := NewSorted[T, O]()
	for item := range s.All() {
		c.tree.Put(item, struct{}{})
	}
	return c
}

// Min returns the smallest element, or false if the set is empty.
func (s *Sorted[T, O]) Min() (T, bool) {
	return nodeKey[T](s.tree.Left())
}

// Max returns the largest element, or false if the set is empty.
func (s *Sorted[T, O]) Max() (T, bool) {
	return nodeKey[T](s.tree.Right())
}

func nodeKey[T any](n *redblacktree.Node) (T, bool) {
	if n == nil {
		var zero T
		return zero, false
	}
	return n.Key.(T), true
}

// All iterates the elements in ascending order.
func (s *Sorted[T, O]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		it := s.tree.Iterator()
		for it.Next() {
			if !yield(it.Key().(T)) {
				return
			}
		}
	}
}

// Values returns the elements in ascending order.
func (s *Sorted[T, O]) Values() []T {
	values := make([]T, 0, s.Len())
	for item := range s.All() {
		values = append(values, item)
	}
	return values
}

// Equal reports whether both sets hold the same elements.
func (s *Sorted[T, O]) Equal(other *Sorted[T, O]) bool {
	if s.Len() != other.Len() {
		return false
	}
	var o O
	a, b := s.tree.Iterator(), other.tree.Iterator()
	for a.Next() && b.Next() {
		if !o.Equal(a.Key().(T), b.Key().(T)) {
			return false
		}
	}
	return true
}

// Begin returns an iterator at the smallest element.
func (s *Sorted[T, O]) Begin() Iterator[T] {
	it := s.tree.Iterator()
	it.Next()
	return treeIterator[T](it)
}

// End returns the iterator one past the largest element.
func (s *Sorted[T, O]) End() Iterator[T] {
	it := s.tree.Iterator()
	it.End()
	return treeIterator[T](it)
}

func (s *Sorted[T, O]) String() string {
	return formatSeq(s.All())
}

func formatSeq[T any](seq iter.Seq[T]) string {
	var sb strings.Builder
	sb.WriteByte('[')
	first := true
	for item := range seq {
		if !first {
			sb.WriteByte(' ')
		}
		first = false
		fmt.Fprint(&sb, item)
	}
	sb.WriteByte(']')
	return sb.String()
}

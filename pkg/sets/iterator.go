package sets

import (
	"fmt"

	"github.com/emirpasic/gods/trees/redblacktree"
)

// Iterator is a forward cursor over either the inline array of a Tiny set
// or the tree of a delegated one. Cursors are obtained from Begin and End
// and are invalidated by any mutation of the set they came from.
//
//	for it, end := s.Begin(), s.End(); !it.Equal(end); it.Next() {
//		use(it.Value())
//	}
type Iterator[T any] struct {
	items []T // inline live region, cap is the whole inline array
	pos   int
	tree  redblacktree.Iterator
	full  bool
}

func inlineIterator[T any](items []T, pos int) Iterator[T] {
	return Iterator[T]{items: items, pos: pos}
}

func treeIterator[T any](it redblacktree.Iterator) Iterator[T] {
	return Iterator[T]{tree: it, full: true}
}

// Equal reports whether both cursors point at the same position.
// Comparing a cursor over inline storage with one over a tree is a
// programming error and panics with ErrMixedIterators.
func (it Iterator[T]) Equal(other Iterator[T]) bool {
	if it.full != other.full {
		panic(fmt.Errorf("%w (inline=%t, other inline=%t)", ErrMixedIterators, !it.full, !other.full))
	}
	if it.full {
		return it.tree.Node() == other.tree.Node()
	}
	return base(it.items) == base(other.items) && it.pos == other.pos
}

// base identifies the backing array of an inline cursor.
func base[T any](items []T) *T {
	if cap(items) == 0 {
		return nil
	}
	return &items[:1][0]
}

// Valid reports whether Value may be called.
func (it Iterator[T]) Valid() bool {
	if it.full {
		return it.tree.Node() != nil
	}
	return it.pos < len(it.items)
}

// Next advances the cursor by one element.
func (it *Iterator[T]) Next() {
	if !it.Valid() {
		panic(ErrIteratorExhausted)
	}
	if it.full {
		it.tree.Next()
		return
	}
	it.pos++
}

// Value returns the element at the cursor.
func (it Iterator[T]) Value() T {
	if !it.Valid() {
		panic(ErrIteratorExhausted)
	}
	if it.full {
		return it.tree.Key().(T)
	}
	return it.items[it.pos]
}

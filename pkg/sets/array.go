package sets

import g "github.com/zyedidia/generic"

// Primitives shared by CappedSet and the inline mode of Tiny.
// store is the complete backing array (len == capacity) and n the number of
// live slots at its front. Slots at or beyond n always hold the zero value.

// tryInsert adds v unless the store is full or v is already live.
// The capacity check happens before v is written anywhere.
func tryInsert[T any](store []T, n *int, v T, eq g.EqualsFn[T]) bool {
	if *n == len(store) {
		return false
	}
	store[*n] = v
	for i := 0; i < *n; i++ {
		if eq(store[i], store[*n]) {
			var zero T
			store[*n] = zero
			return false
		}
	}
	*n++
	return true
}

func indexOf[T any](store []T, n int, v T, eq g.EqualsFn[T]) int {
	for i := 0; i < n; i++ {
		if eq(store[i], v) {
			return i
		}
	}
	return -1
}

func contains[T any](store []T, n int, v T, eq g.EqualsFn[T]) bool {
	return indexOf(store, n, v, eq) >= 0
}

// swapErase removes v by moving the last live element into its slot.
// Element positions are therefore not stable across removals.
func swapErase[T any](store []T, n *int, v T, eq g.EqualsFn[T]) bool {
	i := indexOf(store, *n, v, eq)
	if i < 0 {
		return false
	}
	var zero T
	last := *n - 1
	if i == last {
		// The match is the last live slot: nothing to move into the gap.
		store[i] = zero
	} else {
		store[i] = store[last]
		store[last] = zero
	}
	*n = last
	return true
}

// clearStore zeroes the first n slots so they no longer retain memory.
func clearStore[T any](store []T, n int) {
	clear(store[:n])
}

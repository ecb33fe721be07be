package sets

import (
	g "github.com/zyedidia/generic"
	"golang.org/x/exp/constraints"
)

// Equaler is the equality relation used while a set stores its elements inline.
type Equaler[T any] interface {
	Equal(a, b T) bool
}

// Ordering is a strict total order that agrees with its equality relation:
// Equal(a, b) must hold exactly when neither Less(a, b) nor Less(b, a).
//
// Implementations are meant to be zero-size types so they can be passed
// as a type parameter without adding bytes to every set instance.
type Ordering[T any] interface {
	Equaler[T]
	Less(a, b T) bool
}

// Natural orders values with the built-in == and < operators.
type Natural[T constraints.Ordered] struct{}

func (Natural[T]) Equal(a, b T) bool { return g.Equals(a, b) }
func (Natural[T]) Less(a, b T) bool  { return g.Less(a, b) }

// equalsFn returns the equality relation of E as a plain function.
func equalsFn[T any, E Equaler[T]]() g.EqualsFn[T] {
	var e E
	return e.Equal
}

// lessFn returns the order relation of O as a plain function.
func lessFn[T any, O Ordering[T]]() g.LessFn[T] {
	var o O
	return o.Less
}

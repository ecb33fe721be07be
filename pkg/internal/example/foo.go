// Package example holds a small value type used to exercise the sets
// with a relation that ignores part of the value.
package example

import "fmt"

// Foo is a compact value identified by Key alone; Tag is payload.
type Foo struct {
	Key uint16
	Tag uint8
}

func (f Foo) String() string {
	return fmt.Sprintf("%d/%d", f.Key, f.Tag)
}

// FooOrder compares Foo values by Key.
type FooOrder struct{}

func (FooOrder) Equal(a, b Foo) bool { return a.Key == b.Key }
func (FooOrder) Less(a, b Foo) bool  { return a.Key < b.Key }

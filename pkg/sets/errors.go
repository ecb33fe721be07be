package sets

import "errors"

// Programming errors. They are raised as panics wrapping these values and
// never returned from set operations.
var (
	ErrInvalidCapacity   = errors.New("capacity must be positive")
	ErrMixedIterators    = errors.New("cannot compare inline and delegated iterators")
	ErrIteratorExhausted = errors.New("iterator is exhausted")
)

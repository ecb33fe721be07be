// Package bench measures lookups in small sets: the inline Tiny set against
// a tree-backed Sorted set holding the same elements.
package bench

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-logr/logr"

	"go.minekube.com/tiny/pkg/internal/example"
	"go.minekube.com/tiny/pkg/sets"
)

// Options configure a benchmark run.
type Options struct {
	Iterations int    // Lookup rounds per variant.
	Needle     uint16 // Key looked up in every round.
}

// Result is the measurement of one variant.
type Result struct {
	Name    string
	Lookups int
	Elapsed time.Duration
	Found   bool
}

// NsPerOp returns the average duration of a single lookup.
func (r Result) NsPerOp() float64 {
	if r.Lookups == 0 {
		return 0
	}
	return float64(r.Elapsed.Nanoseconds()) / float64(r.Lookups)
}

func (r Result) String() string {
	return fmt.Sprintf("%s: %d lookups in %s (%.2f ns/op, found=%t)",
		r.Name, r.Lookups, r.Elapsed, r.NsPerOp(), r.Found)
}

var ErrInvalidIterations = errors.New("iterations must be positive")

// Fixtures shared by both variants: two sets of four elements each.
var (
	first  = []example.Foo{{Key: 1, Tag: 2}, {Key: 3, Tag: 4}, {Key: 5, Tag: 6}, {Key: 7, Tag: 8}}
	second = []example.Foo{{Key: 7, Tag: 8}, {Key: 5, Tag: 6}, {Key: 3, Tag: 4}, {Key: 9, Tag: 2}}
)

// lookups per round, alternating between both sets
const lookupsPerRound = 8

// checkEvery is the number of rounds between context checks.
const checkEvery = 1 << 14

type hasser interface {
	Has(example.Foo) bool
}

// Run measures the tiny and the sorted variant and returns one Result each.
func Run(ctx context.Context, opts Options) ([]Result, error) {
	if opts.Iterations <= 0 {
		return nil, fmt.Errorf("%w, got %d", ErrInvalidIterations, opts.Iterations)
	}
	log := logr.FromContextOrDiscard(ctx).WithName("bench")
	needle := example.Foo{Key: opts.Needle, Tag: 8}

	var t1, t2 sets.Tiny[example.Foo, example.FooOrder]
	t1.InsertAll(first...)
	t2.InsertAll(second...)
	s1 := sets.NewSorted[example.Foo, example.FooOrder](first...)
	s2 := sets.NewSorted[example.Foo, example.FooOrder](second...)

	variants := []struct {
		name string
		a, b hasser
	}{
		{"tiny", &t1, &t2},
		{"sorted", s1, s2},
	}

	results := make([]Result, 0, len(variants))
	for _, v := range variants {
		r, err := measure(ctx, v.name, v.a, v.b, needle, opts.Iterations)
		if err != nil {
			return results, err
		}
		log.V(1).Info("measured", "variant", r.Name, "elapsed", r.Elapsed.String(), "nsPerOp", r.NsPerOp())
		results = append(results, r)
	}
	return results, nil
}

func measure(ctx context.Context, name string, a, b hasser, needle example.Foo, iterations int) (Result, error) {
	var found bool
	start := time.Now()
	for i := 0; i < iterations; i++ {
		if i%checkEvery == 0 {
			if err := ctx.Err(); err != nil {
				return Result{}, err
			}
		}
		for j := 0; j < lookupsPerRound/2; j++ {
			found = a.Has(needle)
			found = b.Has(needle) || found
		}
	}
	return Result{
		Name:    name,
		Lookups: iterations * lookupsPerRound,
		Elapsed: time.Since(start),
		Found:   found,
	}, nil
}

// Package difftest cross-checks sets.Tiny against a reference set by
// applying the same random operations to both.
package difftest

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"
	"strconv"
	"strings"

	"github.com/go-logr/logr"
	"github.com/rs/xid"
	"go.uber.org/atomic"
	"golang.org/x/sync/errgroup"

	"go.minekube.com/tiny/pkg/sets"
)

// Op is an operation applied to both sets.
type Op int

const (
	OpInsert Op = iota
	OpHas
	OpRemove
)

func (o Op) String() string {
	switch o {
	case OpInsert:
		return "insert"
	case OpHas:
		return "has"
	case OpRemove:
		return "remove"
	}
	return "Op(" + strconv.Itoa(int(o)) + ")"
}

// Options configure a differential run.
type Options struct {
	Rounds      int    // Number of fresh set pairs.
	OpsPerRound int    // Random operations applied to each pair.
	Modulo      int    // Number of distinct values drawn from.
	Seed        uint64 // Seed of the random sources, runs are reproducible.
	Workers     int    // Rounds checked concurrently, at least 1.
}

// Report summarizes a successful run.
type Report struct {
	Rounds     int
	Inserts    int
	Lookups    int
	Removes    int
	Promotions int
}

// Ops returns the total number of operations applied.
func (r Report) Ops() int {
	return r.Inserts + r.Lookups + r.Removes
}

// tally collects the counts of concurrently checked rounds.
type tally struct {
	rounds, inserts, lookups, removes, promotions atomic.Int64
}

func (t *tally) report() Report {
	return Report{
		Rounds:     int(t.rounds.Load()),
		Inserts:    int(t.inserts.Load()),
		Lookups:    int(t.lookups.Load()),
		Removes:    int(t.removes.Load()),
		Promotions: int(t.promotions.Load()),
	}
}

var ErrInvalidOptions = errors.New("invalid differential options")

// MismatchError reports the first operation after which the sets disagreed.
type MismatchError struct {
	Round, Step int
	Op          Op
	Value       string
	Reason      string
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("round %d step %d: %s %q: %s", e.Round, e.Step, e.Op, short(e.Value), e.Reason)
}

// prefix makes values long enough that string comparisons are not trivially cheap.
var prefix = "prefix" + strings.Repeat(" ", 80)

// RandomValue returns prefix followed by a number in [0, modulo).
func RandomValue(rng *rand.Rand, modulo int) string {
	return prefix + strconv.Itoa(rng.IntN(modulo))
}

// Run applies opts.Rounds x opts.OpsPerRound random operations and returns
// a *MismatchError on the first divergence.
//
// Every round draws from its own random source derived from opts.Seed and
// the round number, so the result does not depend on opts.Workers.
func Run(ctx context.Context, opts Options) (Report, error) {
	if err := opts.validate(); err != nil {
		return Report{}, err
	}
	log := logr.FromContextOrDiscard(ctx).WithName("difftest").WithValues("run", xid.New().String())
	log.V(1).Info("starting differential check",
		"rounds", opts.Rounds, "opsPerRound", opts.OpsPerRound, "modulo", opts.Modulo,
		"seed", opts.Seed, "workers", opts.workers())

	var t tally
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(opts.workers())
	for round := 0; round < opts.Rounds; round++ {
		if egCtx.Err() != nil {
			break
		}
		eg.Go(func() error {
			return runRound(egCtx, log, opts, round, &t)
		})
	}
	if err := eg.Wait(); err != nil {
		return t.report(), err
	}
	if err := ctx.Err(); err != nil {
		return t.report(), err
	}

	report := t.report()
	log.Info("differential check passed",
		"rounds", report.Rounds, "ops", report.Ops(), "promotions", report.Promotions)
	return report, nil
}

func runRound(ctx context.Context, log logr.Logger, opts Options, round int, t *tally) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	rng := rand.New(rand.NewPCG(opts.Seed, uint64(round)))
	var s sets.Of[string]
	ref := sets.NewHash[string]()
	for step := 0; step < opts.OpsPerRound; step++ {
		op := Op(rng.IntN(3))
		v := RandomValue(rng, opts.Modulo)
		wasTiny := s.IsTiny()
		if reason := apply(&s, ref, op, v, t); reason != "" {
			return &MismatchError{Round: round, Step: step, Op: op, Value: v, Reason: reason}
		}
		if wasTiny && !s.IsTiny() {
			t.promotions.Inc()
		}
	}
	t.rounds.Inc()
	log.V(1).Info("round passed", "round", round, "size", s.Len(), "tiny", s.IsTiny())
	return nil
}

func apply(s *sets.Of[string], ref sets.Hash[string], op Op, v string, t *tally) string {
	wasTiny := s.IsTiny()
	switch op {
	case OpInsert:
		t.inserts.Inc()
		want := ref.Insert(v)
		if got := s.Insert(v); got != want {
			return fmt.Sprintf("insert returned %t, reference %t", got, want)
		}
	case OpHas:
		t.lookups.Inc()
		if got, want := s.Has(v), ref.Has(v); got != want {
			return fmt.Sprintf("has returned %t, reference %t", got, want)
		}
	case OpRemove:
		t.removes.Inc()
		want := ref.Delete(v)
		if got := s.Remove(v); got != want {
			return fmt.Sprintf("remove returned %t, reference %t", got, want)
		}
		if s.IsTiny() != wasTiny {
			return "remove changed the storage mode"
		}
	}
	if !wasTiny && s.IsTiny() {
		return "promoted set reverted to inline storage"
	}
	if s.IsTiny() && s.Len() > sets.Capacity {
		return fmt.Sprintf("inline set holds %d elements", s.Len())
	}
	return compare(s, ref)
}

func compare(s *sets.Of[string], ref sets.Hash[string]) string {
	if s.Len() != ref.Len() {
		return fmt.Sprintf("size %d, reference %d", s.Len(), ref.Len())
	}
	got := s.ToSorted().Values()
	want := ref.SortedList(strings.Compare)
	if !slices.Equal(got, want) {
		return fmt.Sprintf("contents %v, reference %v", trim(got), trim(want))
	}
	return ""
}

func trim(values []string) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = short(v)
	}
	return out
}

func short(v string) string {
	return strings.TrimPrefix(v, prefix)
}

func (o Options) validate() error {
	switch {
	case o.Rounds <= 0:
		return fmt.Errorf("%w: rounds must be positive, got %d", ErrInvalidOptions, o.Rounds)
	case o.OpsPerRound <= 0:
		return fmt.Errorf("%w: ops per round must be positive, got %d", ErrInvalidOptions, o.OpsPerRound)
	case o.Modulo <= 0:
		return fmt.Errorf("%w: modulo must be positive, got %d", ErrInvalidOptions, o.Modulo)
	case o.Workers < 0:
		return fmt.Errorf("%w: workers must not be negative, got %d", ErrInvalidOptions, o.Workers)
	}
	return nil
}

func (o Options) workers() int {
	return max(o.Workers, 1)
}

package difftest

import (
	"context"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/go-logr/logr"
	"github.com/go-logr/logr/testr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.minekube.com/tiny/pkg/sets"
)

func TestRun(t *testing.T) {
	ctx := logr.NewContext(context.Background(), testr.New(t))
	report, err := Run(ctx, Options{Rounds: 50, OpsPerRound: 100, Modulo: 10, Seed: 42})
	require.NoError(t, err)

	assert.Equal(t, 50, report.Rounds)
	assert.Equal(t, 5000, report.Ops())
	assert.Positive(t, report.Inserts)
	assert.Positive(t, report.Lookups)
	assert.Positive(t, report.Removes)
	// with 10 distinct values most rounds exceed the inline capacity
	assert.Positive(t, report.Promotions)
	assert.LessOrEqual(t, report.Promotions, report.Rounds)
}

func TestRun_Reproducible(t *testing.T) {
	opts := Options{Rounds: 10, OpsPerRound: 30, Modulo: 6, Seed: 7}
	a, err := Run(context.Background(), opts)
	require.NoError(t, err)
	b, err := Run(context.Background(), opts)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestRun_WorkersDoNotChangeReport(t *testing.T) {
	opts := Options{Rounds: 40, OpsPerRound: 60, Modulo: 9, Seed: 3}
	serial, err := Run(context.Background(), opts)
	require.NoError(t, err)

	opts.Workers = 8
	parallel, err := Run(context.Background(), opts)
	require.NoError(t, err)
	assert.Equal(t, serial, parallel)
}

func TestRun_SmallModuloNeverPromotes(t *testing.T) {
	report, err := Run(context.Background(), Options{Rounds: 20, OpsPerRound: 50, Modulo: sets.Capacity, Seed: 1})
	require.NoError(t, err)
	assert.Zero(t, report.Promotions)
}

func TestRun_InvalidOptions(t *testing.T) {
	for _, opts := range []Options{
		{Rounds: 0, OpsPerRound: 1, Modulo: 1},
		{Rounds: 1, OpsPerRound: 0, Modulo: 1},
		{Rounds: 1, OpsPerRound: 1, Modulo: 0},
		{Rounds: 1, OpsPerRound: 1, Modulo: 1, Workers: -1},
	} {
		_, err := Run(context.Background(), opts)
		assert.ErrorIs(t, err, ErrInvalidOptions)
	}
}

func TestRun_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Run(ctx, Options{Rounds: 1, OpsPerRound: 1, Modulo: 1})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCompare_DetectsMismatch(t *testing.T) {
	var s sets.Of[string]
	ref := sets.NewHash[string]()
	s.Insert("a")
	ref.Insert("b")

	reason := compare(&s, ref)
	assert.Contains(t, reason, "contents")

	ref.Insert("c")
	assert.Contains(t, compare(&s, ref), "size")
}

func TestMismatchError(t *testing.T) {
	err := &MismatchError{Round: 1, Step: 2, Op: OpRemove, Value: prefix + "3", Reason: "boom"}
	assert.Equal(t, `round 1 step 2: remove "3": boom`, err.Error())
}

func TestRandomValue(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 1))
	for i := 0; i < 100; i++ {
		v := RandomValue(rng, 3)
		assert.True(t, strings.HasPrefix(v, prefix))
		assert.Contains(t, []string{prefix + "0", prefix + "1", prefix + "2"}, v)
	}
}

func TestOp_String(t *testing.T) {
	assert.Equal(t, "insert", OpInsert.String())
	assert.Equal(t, "has", OpHas.String())
	assert.Equal(t, "remove", OpRemove.String())
	assert.Equal(t, "Op(7)", Op(7).String())
}

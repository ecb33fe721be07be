package bench

import (
	"context"
	"testing"
	"time"

	"github.com/go-logr/logr"
	"github.com/go-logr/logr/testr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	ctx := logr.NewContext(context.Background(), testr.New(t))
	results, err := Run(ctx, Options{Iterations: 1000, Needle: 7})
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, "tiny", results[0].Name)
	assert.Equal(t, "sorted", results[1].Name)
	for _, r := range results {
		assert.True(t, r.Found, r.Name)
		assert.Equal(t, 8000, r.Lookups)
	}
}

func TestRun_Miss(t *testing.T) {
	results, err := Run(context.Background(), Options{Iterations: 10, Needle: 42})
	require.NoError(t, err)
	for _, r := range results {
		assert.False(t, r.Found, r.Name)
	}
}

func TestRun_FoundInSecondSetOnly(t *testing.T) {
	results, err := Run(context.Background(), Options{Iterations: 1, Needle: 9})
	require.NoError(t, err)
	for _, r := range results {
		assert.True(t, r.Found, r.Name)
	}
}

func TestRun_Invalid(t *testing.T) {
	_, err := Run(context.Background(), Options{})
	assert.ErrorIs(t, err, ErrInvalidIterations)
}

func TestRun_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Run(ctx, Options{Iterations: 1})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestResult(t *testing.T) {
	r := Result{Name: "tiny", Lookups: 4, Elapsed: 10 * time.Nanosecond, Found: true}
	assert.Equal(t, 2.5, r.NsPerOp())
	assert.Equal(t, "tiny: 4 lookups in 10ns (2.50 ns/op, found=true)", r.String())
	assert.Zero(t, Result{}.NsPerOp())
}

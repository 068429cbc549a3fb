package search

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voxelsplace/vlay/vlay"
)

func TestSweep_KeepsBestRestart(t *testing.T) {
	opts := Options{
		Restarts: 4,
		Steps:    512,
		Seed:     9,
		Policy:   vlay.CostDistance,
	}
	best, res, err := Sweep(context.Background(), opts)
	require.NoError(t, err)
	require.NotNil(t, best)

	assert.Equal(t, res.Cost, best.Cost())
	assert.LessOrEqual(t, res.Cost, res.Initial)
	assert.GreaterOrEqual(t, res.Restart, 0)
	assert.Less(t, res.Restart, opts.Restarts)
	assert.True(t, isBijection(best))
}

func TestSweep_Deterministic(t *testing.T) {
	opts := Options{
		Restarts: 3,
		Steps:    512,
		Workers:  2,
		Seed:     21,
		Policy:   vlay.CostCacheLines,
	}
	l1, r1, err := Sweep(context.Background(), opts)
	require.NoError(t, err)
	l2, r2, err := Sweep(context.Background(), opts)
	require.NoError(t, err)

	assert.Equal(t, r1, r2)
	assert.Equal(t, l1.Slots(), l2.Slots())
}

func TestSweep_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := Sweep(ctx, Options{Restarts: 2, Steps: 1 << 20, Seed: 1})
	require.ErrorIs(t, err, context.Canceled)
}

func TestSweep_NeedsRestarts(t *testing.T) {
	_, _, err := Sweep(context.Background(), Options{Steps: 16})
	require.Error(t, err)
}

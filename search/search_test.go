package search

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voxelsplace/vlay/vlay"
)

func testRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed))
}

func isBijection(l *vlay.Layout) bool {
	var seen [vlay.Volume]bool
	for _, s := range l.Slots() {
		if int(s) >= vlay.Volume || seen[s] {
			return false
		}
		seen[s] = true
	}
	return true
}

func TestNewRand_Deterministic(t *testing.T) {
	a := NewRand(7)
	b := NewRand(7)
	for range 8 {
		require.Equal(t, a.Uint64(), b.Uint64())
	}
}

func TestNewRand_ZeroSeedDiverges(t *testing.T) {
	a := NewRand(0)
	b := NewRand(0)
	var av, bv [8]uint64
	for i := range av {
		av[i] = a.Uint64()
		bv[i] = b.Uint64()
	}
	assert.NotEqual(t, av, bv)
}

func TestSearch_BestMatchesLayoutCost(t *testing.T) {
	l := vlay.NewRandomLayout(vlay.CostDistance, testRand(11))
	s := New(l, Config{Seed: 5, StepsPerCall: 64})
	for range 20 {
		s.Step(l)
		require.Equal(t, s.Best(), l.Cost())
	}
}

func TestSearch_BestIsMonotone(t *testing.T) {
	l := vlay.NewRandomLayout(vlay.CostDistance, testRand(2))
	s := New(l, Config{Seed: 3, StepsPerCall: 32})
	prev := s.Best()
	for range 30 {
		s.Step(l)
		require.LessOrEqual(t, s.Best(), prev)
		prev = s.Best()
	}
	assert.Equal(t, uint64(30*32), s.Iteration())
}

func TestSearch_ImprovesRandomLayout(t *testing.T) {
	l := vlay.NewRandomLayout(vlay.CostDistance, testRand(8))
	s := New(l, Config{Seed: 8, StepsPerCall: 1024})
	s.Step(l)
	s.Step(l)
	assert.Less(t, s.Best(), s.Initial())
	assert.True(t, isBijection(l))
}

func TestSearch_PausedStepIsNoOp(t *testing.T) {
	l := vlay.NewRandomLayout(vlay.CostDistance, testRand(4))
	before := l.Slots()
	s := New(l, Config{Seed: 4, StepsPerCall: 128})
	require.True(t, s.Running())

	s.SetRunning(false)
	s.Step(l)
	assert.Equal(t, uint64(0), s.Iteration())
	assert.Equal(t, before, l.Slots())

	require.True(t, s.Toggle())
	s.Step(l)
	assert.Equal(t, uint64(128), s.Iteration())
}

func TestSearch_ProgressCadence(t *testing.T) {
	l := vlay.NewRandomLayout(vlay.CostDistance, testRand(6))
	s := New(l, Config{Seed: 6, StepsPerCall: 200, ProgressEvery: 50})

	var seen []uint64
	s.SetObserver(func(p Progress) {
		seen = append(seen, p.Iteration)
		if p.Iteration == 0 {
			assert.Zero(t, p.VsInitial)
		}
	})

	s.Step(l)
	require.Equal(t, []uint64{0, 50, 100, 150}, seen)
	s.Step(l)
	require.Equal(t, []uint64{0, 50, 100, 150, 200, 250, 300, 350}, seen)
}

func TestSearch_ResetFrom(t *testing.T) {
	l := vlay.NewRandomLayout(vlay.CostDistance, testRand(9))
	s := New(l, Config{Seed: 9, StepsPerCall: 256})
	s.Step(l)
	require.NotZero(t, s.Iteration())

	fresh := vlay.NewMortonLayout(vlay.CostDistance)
	s.ResetFrom(fresh)
	assert.Equal(t, uint64(0), s.Iteration())
	assert.Equal(t, fresh.Cost(), s.Best())
	assert.Equal(t, fresh.Cost(), s.Initial())
}

func TestSearch_ControlRecord(t *testing.T) {
	l := vlay.NewLinearLayout(vlay.CostDistance)
	s := New(l, Config{Seed: 1})

	c := s.Control()
	assert.True(t, c.Running)
	assert.Equal(t, 1024, c.StepsPerCall)
	assert.Equal(t, uint64(10_000), c.ProgressEvery)
	assert.Equal(t, uint64(16518600), c.Best)
	assert.Equal(t, uint64(16518600), c.Initial)
	assert.Equal(t, map[string]uint64{
		"linear": 16518600,
		"morton": 16067304,
	}, c.References)
}

func TestSearch_SeedDeterminism(t *testing.T) {
	a := vlay.NewRandomLayout(vlay.CostDistance, testRand(3))
	b := a.Clone()

	s1 := New(a, Config{Seed: 42, StepsPerCall: 256})
	s2 := New(b, Config{Seed: 42, StepsPerCall: 256})
	for range 4 {
		s1.Step(a)
		s2.Step(b)
	}
	require.Equal(t, s1.Best(), s2.Best())
	require.Equal(t, a.Slots(), b.Slots())
}

func TestSearch_StatusLine(t *testing.T) {
	l := vlay.NewLinearLayout(vlay.CostDistance)
	s := New(l, Config{Seed: 1})
	assert.Equal(t, "iter: 0, best: 16518600, initial: 16518600", s.Status())
}

func TestSearch_ConfigDefaults(t *testing.T) {
	l := vlay.NewLinearLayout(vlay.CostDistance)
	s := New(l, Config{MaxSwaps: 1})

	cfg := s.Config()
	assert.Equal(t, 1024, cfg.StepsPerCall)
	assert.Equal(t, 5, cfg.MaxSwaps)
	assert.Equal(t, uint64(10_000), cfg.ProgressEvery)
	assert.Equal(t, uint64(1_000_000), cfg.SaveEvery)
}

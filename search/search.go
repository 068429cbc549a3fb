package search

import (
	"fmt"
	"math/rand/v2"

	"github.com/voxelsplace/vlay/vlay"
)

// Config controls one optimization run.
type Config struct {
	// Seed for the random number generator (0 draws an entropy seed).
	Seed uint64
	// StepsPerCall is the work budget of a single Step invocation.
	StepsPerCall int
	// MaxSwaps bounds the batch size: each step draws k in [1, MaxSwaps) swaps.
	MaxSwaps int
	// ProgressEvery is the reporting interval in iterations.
	ProgressEvery uint64
	// SaveEvery is the checkpoint interval in iterations, consumed by drivers.
	SaveEvery uint64
}

// DefaultConfig returns the standard run parameters.
func DefaultConfig() Config {
	return Config{
		StepsPerCall:  1024,
		MaxSwaps:      5,
		ProgressEvery: 10_000,
		SaveEvery:     1_000_000,
	}
}

// NewRand returns a deterministic generator for seed, or an entropy-seeded
// one when seed is 0.
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return rand.New(rand.NewPCG(seed, seed))
}

// Progress is one observation of a running search.
type Progress struct {
	Iteration uint64
	Best      uint64
	VsInitial float64 // percent deviation from the run's initial cost
	VsLinear  float64
	VsMorton  float64
}

// ProgressFunc receives an observation every Config.ProgressEvery iterations.
type ProgressFunc func(Progress)

// Control is the state record exposed to external collaborators.
type Control struct {
	Running       bool
	StepsPerCall  int
	ProgressEvery uint64
	Best          uint64
	Initial       uint64
	References    map[string]uint64
}

// Search drives randomized batch-swap hill-climbing over a layout. A batch is
// either kept or reverted in full before Step returns, so the layout always
// carries the best cost found so far.
type Search struct {
	cfg Config
	rng *rand.Rand

	best    uint64
	initial uint64
	linear  uint64
	morton  uint64

	iteration uint64
	running   bool
	observer  ProgressFunc
}

// New creates a running search over l's current state. The linear and Morton
// reference costs are evaluated once, under l's policy.
func New(l *vlay.Layout, cfg Config) *Search {
	def := DefaultConfig()
	if cfg.StepsPerCall <= 0 {
		cfg.StepsPerCall = def.StepsPerCall
	}
	if cfg.MaxSwaps < 2 {
		cfg.MaxSwaps = def.MaxSwaps
	}
	if cfg.ProgressEvery == 0 {
		cfg.ProgressEvery = def.ProgressEvery
	}
	if cfg.SaveEvery == 0 {
		cfg.SaveEvery = def.SaveEvery
	}
	cost := l.Cost()
	return &Search{
		cfg:     cfg,
		rng:     NewRand(cfg.Seed),
		best:    cost,
		initial: cost,
		linear:  vlay.NewLinearLayout(l.Policy()).Cost(),
		morton:  vlay.NewMortonLayout(l.Policy()).Cost(),
		running: true,
	}
}

type swapPair struct {
	a, b vlay.Point
}

func (s *Search) randomPoint() vlay.Point {
	return vlay.Point{
		X: s.rng.IntN(vlay.Width),
		Y: s.rng.IntN(vlay.Height),
		Z: s.rng.IntN(vlay.Depth),
	}
}

// Step runs up to StepsPerCall search iterations against l and returns. A
// paused search returns immediately; pausing never interrupts a batch.
func (s *Search) Step(l *vlay.Layout) {
	if !s.running {
		return
	}

	batch := make([]swapPair, 0, s.cfg.MaxSwaps)
	for range s.cfg.StepsPerCall {
		if s.observer != nil && s.iteration%s.cfg.ProgressEvery == 0 {
			s.observer(s.progress())
		}

		batch = batch[:0]
		for range 1 + s.rng.IntN(s.cfg.MaxSwaps-1) {
			a := s.randomPoint()
			b := s.randomPoint()
			for b == a {
				b = s.randomPoint()
			}
			batch = append(batch, swapPair{a, b})
		}

		for _, sw := range batch {
			l.Swap(sw.a, sw.b)
		}
		cost := l.Cost()
		if cost <= s.best {
			s.best = cost
		} else {
			for i := len(batch) - 1; i >= 0; i-- {
				l.Swap(batch[i].a, batch[i].b)
			}
		}
		s.iteration++
	}
}

func (s *Search) progress() Progress {
	return Progress{
		Iteration: s.iteration,
		Best:      s.best,
		VsInitial: deviation(s.best, s.initial),
		VsLinear:  deviation(s.best, s.linear),
		VsMorton:  deviation(s.best, s.morton),
	}
}

// deviation is |cost/ref - 1| as a percentage.
func deviation(cost, ref uint64) float64 {
	if ref == 0 {
		return 0
	}
	d := float64(cost)/float64(ref) - 1
	if d < 0 {
		d = -d
	}
	return d * 100
}

// SetObserver installs fn as the progress observer. A nil fn disables
// reporting.
func (s *Search) SetObserver(fn ProgressFunc) { s.observer = fn }

// Running reports whether Step will perform work.
func (s *Search) Running() bool { return s.running }

// SetRunning flips the run flag. It takes effect at the next Step invocation.
func (s *Search) SetRunning(v bool) { s.running = v }

// Toggle switches between running and paused and returns the new state.
func (s *Search) Toggle() bool {
	s.running = !s.running
	return s.running
}

// Iteration returns the number of completed search iterations.
func (s *Search) Iteration() uint64 { return s.iteration }

// Best returns the lowest cost seen so far.
func (s *Search) Best() uint64 { return s.best }

// Initial returns the cost of the layout the search started from.
func (s *Search) Initial() uint64 { return s.initial }

// Config returns the effective configuration after defaulting.
func (s *Search) Config() Config { return s.cfg }

// ResetFrom restarts the search trajectory from l, typically after the caller
// replaced its layout with a loaded snapshot.
func (s *Search) ResetFrom(l *vlay.Layout) {
	cost := l.Cost()
	s.best = cost
	s.initial = cost
	s.linear = vlay.NewLinearLayout(l.Policy()).Cost()
	s.morton = vlay.NewMortonLayout(l.Policy()).Cost()
	s.iteration = 0
}

// Status returns a one-line summary of the search state.
func (s *Search) Status() string {
	return fmt.Sprintf("iter: %d, best: %d, initial: %d", s.iteration, s.best, s.initial)
}

// Control returns the externally visible state record.
func (s *Search) Control() Control {
	return Control{
		Running:       s.running,
		StepsPerCall:  s.cfg.StepsPerCall,
		ProgressEvery: s.cfg.ProgressEvery,
		Best:          s.best,
		Initial:       s.initial,
		References: map[string]uint64{
			"linear": s.linear,
			"morton": s.morton,
		},
	}
}

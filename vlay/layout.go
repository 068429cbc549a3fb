package vlay

import (
	"fmt"
	"math/rand/v2"
)

// Layout is the bijection between grid coordinates and storage slots:
// slots[id] is the slot of the coordinate with canonical linear id, and every
// value in [0, Volume) appears exactly once. The cost policy is bound when
// the layout is built.
type Layout struct {
	slots   [Volume]uint16
	policy  CostPolicy
	penalty penaltyFunc
}

func newLayout(policy CostPolicy) *Layout {
	return &Layout{policy: policy, penalty: penaltyFor(policy)}
}

// NewLinearLayout seeds the row-major baseline: slot = x + z*Width + y*Width*Depth.
func NewLinearLayout(policy CostPolicy) *Layout {
	l := newLayout(policy)
	for id := range l.slots {
		l.slots[id] = uint16(id)
	}
	return l
}

// NewMortonLayout seeds every coordinate with its Z-order index.
func NewMortonLayout(policy CostPolicy) *Layout {
	l := newLayout(policy)
	for id := range l.slots {
		p := pointAt(id)
		l.slots[id] = uint16(morton3(uint32(p.X), uint32(p.Y), uint32(p.Z)))
	}
	return l
}

// NewRandomLayout seeds a uniformly random permutation drawn from rng.
func NewRandomLayout(policy CostPolicy, rng *rand.Rand) *Layout {
	l := newLayout(policy)
	for id, slot := range rng.Perm(Volume) {
		l.slots[id] = uint16(slot)
	}
	return l
}

// NewSeedLayout builds a layout from a seed policy name: "linear", "morton"
// or "random". Random seeding draws from rng.
func NewSeedLayout(kind string, policy CostPolicy, rng *rand.Rand) (*Layout, error) {
	switch kind {
	case "linear":
		return NewLinearLayout(policy), nil
	case "morton":
		return NewMortonLayout(policy), nil
	case "random":
		return NewRandomLayout(policy, rng), nil
	}
	return nil, fmt.Errorf("unknown seed policy %q", kind)
}

// Policy returns the cost policy bound at construction.
func (l *Layout) Policy() CostPolicy { return l.policy }

// Position returns the storage slot assigned to p, with ok=false when p lies
// outside the cube.
func (l *Layout) Position(p Point) (uint16, bool) {
	if !InBounds(p) {
		return 0, false
	}
	return l.slots[linearIndex(p)], true
}

// Swap exchanges the slots of a and b. Both must be in bounds: the optimizer
// only generates in-bounds candidates, so a violation is a defect in the
// caller.
func (l *Layout) Swap(a, b Point) {
	if !InBounds(a) || !InBounds(b) {
		panic(fmt.Sprintf("vlay: swap out of bounds: %v, %v", a, b))
	}
	ia, ib := linearIndex(a), linearIndex(b)
	l.slots[ia], l.slots[ib] = l.slots[ib], l.slots[ia]
}

// Clone returns an independent copy of the layout.
func (l *Layout) Clone() *Layout {
	c := *l
	return &c
}

// Slots returns a copy of the slot assignment in canonical coordinate order.
func (l *Layout) Slots() []uint16 {
	out := make([]uint16, Volume)
	copy(out, l.slots[:])
	return out
}

// Order returns the grid coordinates in storage order: element i is the
// coordinate whose slot is i.
func (l *Layout) Order() []Point {
	out := make([]Point, Volume)
	for id, slot := range l.slots {
		out[slot] = pointAt(id)
	}
	return out
}

// isPermutation reports whether vals covers [0, Volume) exactly once.
func isPermutation(vals []uint16) bool {
	if len(vals) != Volume {
		return false
	}
	var seen [Volume]bool
	for _, v := range vals {
		if int(v) >= Volume || seen[v] {
			return false
		}
		seen[v] = true
	}
	return true
}

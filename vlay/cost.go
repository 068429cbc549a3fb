package vlay

import "fmt"

// Cache geometry for the threshold policy. A slot holds one element of
// ElementBytes, so slots at least SlotsPerLine apart can never share a line.
const (
	ElementBytes   = 4
	CacheLineBytes = 64
	SlotsPerLine   = CacheLineBytes / ElementBytes
)

// CostPolicy selects the per-pair penalty behind Layout.Cost.
type CostPolicy uint8

const (
	// CostDistance charges |Δslot|-1 per neighbor pair: index-adjacent slots
	// are free, wider separations cost proportionally.
	CostDistance CostPolicy = 0
	// CostCacheLines charges 1 per neighbor pair at least SlotsPerLine apart.
	CostCacheLines CostPolicy = 1
)

func (p CostPolicy) String() string {
	switch p {
	case CostDistance:
		return "distance"
	case CostCacheLines:
		return "cachelines"
	}
	return fmt.Sprintf("policy(%d)", uint8(p))
}

// ParseCostPolicy resolves a policy name from the command line.
func ParseCostPolicy(s string) (CostPolicy, error) {
	switch s {
	case "distance":
		return CostDistance, nil
	case "cachelines":
		return CostCacheLines, nil
	}
	return 0, fmt.Errorf("unknown cost policy %q", s)
}

// penaltyFunc scores one ordered neighbor pair by the two slots involved.
// Slots of distinct coordinates are distinct, so the deltas are never zero.
type penaltyFunc func(a, b uint16) uint64

func distancePenalty(a, b uint16) uint64 {
	if a > b {
		return uint64(a-b) - 1
	}
	return uint64(b-a) - 1
}

func cacheLinePenalty(a, b uint16) uint64 {
	d := int(a) - int(b)
	if d < 0 {
		d = -d
	}
	if d >= SlotsPerLine {
		return 1
	}
	return 0
}

func penaltyFor(p CostPolicy) penaltyFunc {
	switch p {
	case CostDistance:
		return distancePenalty
	case CostCacheLines:
		return cacheLinePenalty
	}
	panic(fmt.Sprintf("vlay: unknown cost policy %d", p))
}

// Cost sums the bound penalty over every coordinate and each of its in-bounds
// neighbors. Pairs are ordered, so every unordered pair is counted twice.
func (l *Layout) Cost() uint64 {
	return l.costWith(l.penalty)
}

// CostUnder evaluates the layout under a policy other than the bound one, for
// reports and comparisons.
func (l *Layout) CostUnder(p CostPolicy) uint64 {
	return l.costWith(penaltyFor(p))
}

func (l *Layout) costWith(pen penaltyFunc) uint64 {
	var total uint64
	for id := 0; id < Volume; id++ {
		a := l.slots[id]
		for _, nid := range neighborIDs[id] {
			total += pen(a, l.slots[nid])
		}
	}
	return total
}

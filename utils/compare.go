package utils

import (
	"fmt"

	"github.com/voxelsplace/vlay/search"
	"github.com/voxelsplace/vlay/vlay"
)

// percentVs is the signed relative difference of cost against ref, in percent.
func percentVs(cost, ref uint64) float64 {
	return (float64(cost)/float64(ref) - 1) * 100
}

// RunCompareBases prints the cost of the linear, Morton and a seeded random
// layout under both policies, with percentages relative to linear.
func RunCompareBases(seed uint64) error {
	rng := search.NewRand(seed)
	for _, policy := range []vlay.CostPolicy{vlay.CostDistance, vlay.CostCacheLines} {
		linear := vlay.NewLinearLayout(policy).Cost()
		morton := vlay.NewMortonLayout(policy).Cost()
		random := vlay.NewRandomLayout(policy, rng).Cost()
		fmt.Printf("%s: linear: %d, morton: %d (%+.2f%%), random: %d (%+.2f%%)\n",
			policy, linear, morton, percentVs(morton, linear), random, percentVs(random, linear))
	}
	return nil
}

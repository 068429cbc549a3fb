package utils

import (
	"fmt"

	"github.com/voxelsplace/vlay/search"
	"github.com/voxelsplace/vlay/vlay"
)

// RunGenLayout writes a fresh seed layout ("linear", "morton" or "random") to
// outPath. The seed only matters for the random kind.
func RunGenLayout(kind, outPath string, seed uint64) error {
	l, err := vlay.NewSeedLayout(kind, vlay.CostDistance, search.NewRand(seed))
	if err != nil {
		return err
	}
	fmt.Printf("%s layout cost: %d (distance), %d (cachelines)\n",
		kind, l.Cost(), l.CostUnder(vlay.CostCacheLines))
	return vlay.SaveLayout(l, outPath, vlay.CompZstd)
}

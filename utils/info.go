package utils

import (
	"fmt"
	"os"

	"github.com/voxelsplace/vlay/vlay"
)

// RunInfo prints the header of a saved layout and its cost under both
// policies.
func RunInfo(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	hdr, _, err := vlay.ParseHeader(data)
	if err != nil {
		return err
	}
	l, err := vlay.UnmarshalLayout(data, vlay.CostDistance)
	if err != nil {
		return err
	}

	fmt.Printf("%s: %dx%dx%d layout, version %d, compression %d, %d bits per slot, digest %016x\n",
		path, hdr.W, hdr.H, hdr.D, hdr.Ver, hdr.Comp, hdr.Bits, hdr.Digest)
	fmt.Printf("distance cost: %d (%+.2f%% vs linear)\n",
		l.Cost(), percentVs(l.Cost(), vlay.NewLinearLayout(vlay.CostDistance).Cost()))
	fmt.Printf("cacheline cost: %d (%+.2f%% vs linear)\n",
		l.CostUnder(vlay.CostCacheLines),
		percentVs(l.CostUnder(vlay.CostCacheLines), vlay.NewLinearLayout(vlay.CostCacheLines).Cost()))
	return nil
}

package utils

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/voxelsplace/vlay/search"
	"github.com/voxelsplace/vlay/vlay"
)

// RunSweep optimizes several random restarts concurrently and writes the best
// layout found to outPath.
func RunSweep(restarts int, steps uint64, outPath string, seed uint64, policy vlay.CostPolicy) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	start := time.Now()
	best, res, err := search.Sweep(ctx, search.Options{
		Restarts: restarts,
		Steps:    steps,
		Seed:     seed,
		Policy:   policy,
	})
	if err != nil {
		return err
	}
	dur := time.Since(start)
	fmt.Printf("Varredura (sweep) levou %d ms\n", dur.Milliseconds())
	fmt.Printf("restart %d won: %d -> %d (%+.2f%%)\n",
		res.Restart, res.Initial, res.Cost, percentVs(res.Cost, res.Initial))
	return vlay.SaveLayout(best, outPath, vlay.CompZstd)
}

//go:build !(js && wasm)

package main

import (
	"fmt"
	"math"
	"os"

	"github.com/voxelsplace/vlay/utils"
	"github.com/voxelsplace/vlay/vlay"
)

func usage() {
	fmt.Println("Usage: vlaytool <command> [args]")
	fmt.Println("Commands:")
	fmt.Println("  optimize <dir> [maxIters] [policy]             (resume the hill-climb over <dir>/" + utils.CurrentLayoutName + ")")
	fmt.Println("  sweep <restarts> <steps> <out.vlay> [seed] [policy]  (optimize N random restarts, keep the best)")
	fmt.Println("  gen <linear|morton|random> <out.vlay> [seed]   (write a fresh seed layout)")
	fmt.Println("  info <in.vlay>                                 (print header and costs of a saved layout)")
	fmt.Println("  vlay2glb <in.vlay> <out.glb>                   (render the storage order as a GLB line strip)")
	fmt.Println("  compare [seed]                                 (print baseline costs under both policies)")
	fmt.Println("Policies: distance (default), cachelines")
}

func parsePolicy(arg string) vlay.CostPolicy {
	policy, err := vlay.ParseCostPolicy(arg)
	if err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}
	return policy
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "optimize":
		if len(os.Args) < 3 || len(os.Args) > 5 {
			usage()
			os.Exit(1)
		}
		maxIters := uint64(math.MaxUint64)
		if len(os.Args) > 3 {
			if _, err := fmt.Sscan(os.Args[3], &maxIters); err != nil {
				fmt.Println("Error:", err)
				os.Exit(1)
			}
		}
		policy := vlay.CostDistance
		if len(os.Args) > 4 {
			policy = parsePolicy(os.Args[4])
		}
		if err := utils.RunOptimize(os.Args[2], maxIters, policy); err != nil {
			fmt.Println("Error:", err)
			os.Exit(1)
		}
	case "sweep":
		if len(os.Args) < 5 || len(os.Args) > 7 {
			usage()
			os.Exit(1)
		}
		var restarts int
		var steps uint64
		if _, err := fmt.Sscan(os.Args[2], &restarts); err != nil {
			fmt.Println("Error:", err)
			os.Exit(1)
		}
		if _, err := fmt.Sscan(os.Args[3], &steps); err != nil {
			fmt.Println("Error:", err)
			os.Exit(1)
		}
		var seed uint64
		if len(os.Args) > 5 {
			if _, err := fmt.Sscan(os.Args[5], &seed); err != nil {
				fmt.Println("Error:", err)
				os.Exit(1)
			}
		}
		policy := vlay.CostDistance
		if len(os.Args) > 6 {
			policy = parsePolicy(os.Args[6])
		}
		if err := utils.RunSweep(restarts, steps, os.Args[4], seed, policy); err != nil {
			fmt.Println("Error:", err)
			os.Exit(1)
		}
	case "gen":
		if len(os.Args) < 4 || len(os.Args) > 5 {
			usage()
			os.Exit(1)
		}
		var seed uint64
		if len(os.Args) > 4 {
			if _, err := fmt.Sscan(os.Args[4], &seed); err != nil {
				fmt.Println("Error:", err)
				os.Exit(1)
			}
		}
		if err := utils.RunGenLayout(os.Args[2], os.Args[3], seed); err != nil {
			fmt.Println("Error:", err)
			os.Exit(1)
		}
	case "info":
		if len(os.Args) != 3 {
			usage()
			os.Exit(1)
		}
		if err := utils.RunInfo(os.Args[2]); err != nil {
			fmt.Println("Error:", err)
			os.Exit(1)
		}
	case "vlay2glb":
		if len(os.Args) != 4 {
			usage()
			os.Exit(1)
		}
		if err := utils.RunVlay2GLB(os.Args[2], os.Args[3]); err != nil {
			fmt.Println("Error:", err)
			os.Exit(1)
		}
	case "compare":
		if len(os.Args) > 3 {
			usage()
			os.Exit(1)
		}
		var seed uint64
		if len(os.Args) > 2 {
			if _, err := fmt.Sscan(os.Args[2], &seed); err != nil {
				fmt.Println("Error:", err)
				os.Exit(1)
			}
		}
		if err := utils.RunCompareBases(seed); err != nil {
			fmt.Println("Error:", err)
			os.Exit(1)
		}
	default:
		usage()
		os.Exit(1)
	}

	fmt.Println("Operation completed!")
}

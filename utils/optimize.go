package utils

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/voxelsplace/vlay/search"
	"github.com/voxelsplace/vlay/vlay"
)

// CurrentLayoutName is the snapshot RunOptimize keeps up to date in its
// working directory. Timestamped copies go to the backup subdirectory.
const CurrentLayoutName = "layout-16x16x16.vlay"

const backupDirName = "backup"

// RunOptimize starts or resumes the hill-climb over the layout stored in dir.
// A missing current snapshot starts a fresh run from the linear layout; a
// corrupt one is an error. The run stops once at least maxIters iterations
// have completed, or earlier on SIGINT/SIGTERM, and saves on the way out.
func RunOptimize(dir string, maxIters uint64, policy vlay.CostPolicy) error {
	if err := os.MkdirAll(filepath.Join(dir, backupDirName), 0o755); err != nil {
		return err
	}

	current := filepath.Join(dir, CurrentLayoutName)
	l, err := vlay.LoadLayout(current, policy)
	resumed := err == nil
	switch {
	case resumed:
	case errors.Is(err, fs.ErrNotExist):
		fmt.Printf("no %s saved, starting from the linear layout\n", current)
		l = vlay.NewLinearLayout(policy)
	default:
		return err
	}

	cfg := search.DefaultConfig()
	s := search.New(l, cfg)
	if resumed {
		fmt.Printf("loaded %s, resetting search: %s\n", current, s.Status())
	}
	s.SetObserver(func(p search.Progress) {
		fmt.Printf("iteration: %d: current best: %d (%.2f%% initial, %.2f%% linear, %.2f%% morton)\n",
			p.Iteration, p.Best, p.VsInitial, p.VsLinear, p.VsMorton)
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var saves uint64
	for s.Iteration() < maxIters {
		if ctx.Err() != nil {
			fmt.Println("interrupted")
			break
		}
		s.Step(l)
		if n := s.Iteration() / cfg.SaveEvery; n > saves {
			saves = n
			if err := saveWithBackup(l, dir); err != nil {
				return err
			}
		}
	}

	if err := saveWithBackup(l, dir); err != nil {
		return err
	}
	fmt.Println(s.Status())
	return nil
}

// saveWithBackup writes the current snapshot and a timestamped copy under
// backup/.
func saveWithBackup(l *vlay.Layout, dir string) error {
	data, err := vlay.MarshalLayout(l, vlay.CompZstd)
	if err != nil {
		return err
	}
	now := time.Now().Format("2006-01-02-15-04-05")
	backup := filepath.Join(dir, backupDirName, fmt.Sprintf("layout-16x16x16-%s.vlay", now))
	current := filepath.Join(dir, CurrentLayoutName)
	if err := os.WriteFile(current, data, 0o644); err != nil {
		return fmt.Errorf("falha ao salvar %s: %w", current, err)
	}
	if err := os.WriteFile(backup, data, 0o644); err != nil {
		return fmt.Errorf("falha ao salvar %s: %w", backup, err)
	}
	return nil
}

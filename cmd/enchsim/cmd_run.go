package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/udisondev/monench/internal/save"
)

var runFlags struct {
	levels   int
	turns    int
	monsters int
	perMon   int
	interval time.Duration
	snapshot bool
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Simulate levels turn by turn",
	RunE:  runRun,
}

func init() {
	f := runCmd.Flags()
	f.IntVar(&runFlags.levels, "levels", 0, "Levels to run in parallel (default from config)")
	f.IntVar(&runFlags.turns, "turns", 0, "Turns per level (default from config)")
	f.IntVar(&runFlags.monsters, "monsters", 0, "Monsters per level (default from config)")
	f.IntVar(&runFlags.perMon, "enchantments", 4, "Max enchantments applied to each monster")
	f.DurationVar(&runFlags.interval, "interval", 0, "Delay between turns")
	f.BoolVar(&runFlags.snapshot, "snapshot", false, "Write a zstd snapshot of every level when done")
}

func runRun(cmd *cobra.Command, _ []string) error {
	levels := pick(runFlags.levels, cfg.Levels)
	turns := pick(runFlags.turns, cfg.Turns)
	monsters := pick(runFlags.monsters, cfg.Monsters)

	if runFlags.snapshot {
		if err := os.MkdirAll(cfg.SnapshotDir, 0o755); err != nil {
			return fmt.Errorf("creating snapshot dir: %w", err)
		}
	}

	slog.Info("simulation starting", "levels", levels, "turns", turns, "monsters", monsters, "seed", seed())

	g, ctx := errgroup.WithContext(cmd.Context())
	for i := range levels {
		g.Go(func() error {
			l := buildLevel(i, monsters)
			l.EnchantAll(runFlags.perMon)
			if _, err := l.Run(ctx, turns, runFlags.interval); err != nil {
				return fmt.Errorf("running %s: %w", l.Name(), err)
			}
			if !runFlags.snapshot {
				return nil
			}
			path := filepath.Join(cfg.SnapshotDir, l.Name()+".ench.zst")
			if err := save.WriteSnapshot(path, compressionLevel(), l.Entries()); err != nil {
				return err
			}
			slog.Info("snapshot written", "level", l.Name(), "path", path)
			return nil
		})
	}
	return g.Wait()
}

// pick prefers a flag value over the configured one.
func pick(flag, configured int) int {
	if flag > 0 {
		return flag
	}
	return configured
}

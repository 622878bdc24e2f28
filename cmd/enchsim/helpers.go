package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/klauspost/compress/zstd"

	"github.com/udisondev/monench/internal/db"
	"github.com/udisondev/monench/internal/engine"
	"github.com/udisondev/monench/internal/sim"
)

// seed returns the configured master seed, or one from the clock.
func seed() uint64 {
	if cfg.Seed != 0 {
		return cfg.Seed
	}
	s := uint64(time.Now().UnixNano())
	slog.Info("using clock seed", "seed", s)
	cfg.Seed = s
	return s
}

func levelName(i int) string { return fmt.Sprintf("level-%d", i+1) }

// buildLevel creates the i-th level of a run. Levels built from the same
// seed and index are identical, which is what lets load find its monsters.
func buildLevel(i, monsters int) *sim.Level {
	l := sim.NewLevel(levelName(i), cfg.LevelWidth, cfg.LevelHeight, seed()+uint64(i),
		engine.WithNotifier(engine.SlogNotifier{Logger: slog.Default().With("level", levelName(i))}))
	l.Populate(monsters)
	return l
}

func openStore(ctx context.Context) (db.Store, error) {
	st, err := db.Open(ctx, cfg.Database.Driver, cfg.Database.DSN())
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return st, nil
}

func compressionLevel() zstd.EncoderLevel {
	return zstd.EncoderLevelFromZstd(cfg.CompressionLevel)
}

// printTables writes each living monster's enchantments, one per line.
func printTables(out io.Writer, l *sim.Level) {
	fmt.Fprintf(out, "%s (%d monsters)\n", l.Name(), l.World().Len())
	for _, m := range l.World().Monsters() {
		fmt.Fprintf(out, "  #%d %-16s hp %d/%d speed %d\n", m.ID(), m.Name(), m.HP(), m.MaxHP(), m.Speed())
		for _, rec := range m.Enchantments().Records() {
			fmt.Fprintf(out, "      %s\n", rec)
		}
	}
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/udisondev/monench/internal/save"
)

var loadFlags struct {
	monsters int
	snapshot string
}

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Rebuild a level from its seed and restore saved enchantments",
	Long: "Rebuilds level-1 from the configured seed, then restores its\n" +
		"enchantments from the store, or from a zstd snapshot with --snapshot.",
	RunE: runLoad,
}

func init() {
	f := loadCmd.Flags()
	f.IntVar(&loadFlags.monsters, "monsters", 0, "Monsters on the level (default from config)")
	f.StringVar(&loadFlags.snapshot, "snapshot", "", "Snapshot file to read instead of the store")
}

func runLoad(cmd *cobra.Command, _ []string) error {
	if cfg.Seed == 0 {
		return fmt.Errorf("load needs the seed the level was saved with")
	}
	ctx := cmd.Context()
	l := buildLevel(0, pick(loadFlags.monsters, cfg.Monsters))

	if loadFlags.snapshot != "" {
		entries, err := save.ReadSnapshot(loadFlags.snapshot)
		if err != nil {
			return err
		}
		l.Restore(entries)
	} else {
		st, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()
		if _, err := l.LoadFrom(ctx, st); err != nil {
			return err
		}
	}

	printTables(cmd.OutOrStdout(), l)
	return nil
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var saveFlags struct {
	turns    int
	monsters int
}

var saveCmd = &cobra.Command{
	Use:   "save",
	Short: "Simulate one level and write its enchantments to the store",
	RunE:  runSave,
}

func init() {
	f := saveCmd.Flags()
	f.IntVar(&saveFlags.turns, "turns", 0, "Turns to simulate before saving (default from config)")
	f.IntVar(&saveFlags.monsters, "monsters", 0, "Monsters on the level (default from config)")
}

func runSave(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	st, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close()

	l := buildLevel(0, pick(saveFlags.monsters, cfg.Monsters))
	l.EnchantAll(4)
	if _, err := l.Run(ctx, pick(saveFlags.turns, cfg.Turns), 0); err != nil {
		return err
	}
	if err := l.Persist(ctx, st); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "saved %s: %d monsters, seed %d\n", l.Name(), l.World().Len(), cfg.Seed)
	return nil
}

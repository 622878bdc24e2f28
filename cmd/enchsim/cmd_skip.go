package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var skipFlags struct {
	ticks    int
	monsters int
}

var skipCmd = &cobra.Command{
	Use:   "skip",
	Short: "Enchant a level, leave it for a while and show what is left",
	RunE:  runSkip,
}

func init() {
	f := skipCmd.Flags()
	f.IntVar(&skipFlags.ticks, "ticks", 100, "Baseline ticks spent away from the level")
	f.IntVar(&skipFlags.monsters, "monsters", 0, "Monsters on the level (default from config)")
}

func runSkip(cmd *cobra.Command, _ []string) error {
	if skipFlags.ticks < 0 {
		return fmt.Errorf("--ticks must not be negative")
	}
	l := buildLevel(0, pick(skipFlags.monsters, cfg.Monsters))
	l.EnchantAll(4)

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "before:")
	printTables(out, l)

	st := l.Resume(skipFlags.ticks)
	fmt.Fprintf(out, "after %d ticks (%d died):\n", skipFlags.ticks, st.Died)
	printTables(out, l)
	return nil
}

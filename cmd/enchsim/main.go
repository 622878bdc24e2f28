// enchsim drives monster enchantments through simulated levels.
//
// Usage:
//
//	enchsim run [--levels=N] [--turns=N] [--monsters=N] [--snapshot]
//	enchsim skip --ticks=N
//	enchsim save [--turns=N]
//	enchsim load [--snapshot=<path>]
//	enchsim migrate
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/udisondev/monench/internal/config"
)

// DefaultConfigPath is read unless --config or MONENCH_CONFIG says otherwise.
const DefaultConfigPath = "config/enchsim.yaml"

// version is set at build time via -ldflags.
var version = "dev"

var (
	configPath string
	cfg        config.Sim
)

var rootCmd = &cobra.Command{
	Use:           "enchsim",
	Short:         "Monster enchantment simulator",
	SilenceUsage:  true,
	SilenceErrors: true,
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		path := configPath
		if p := os.Getenv("MONENCH_CONFIG"); p != "" && !cmd.Flags().Changed("config") {
			path = p
		}
		loaded, err := config.Load(path)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		cfg = loaded

		level, _ := config.ParseLevel(cfg.LogLevel)
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: level,
		})))
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", DefaultConfigPath, "Config file path")
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(skipCmd)
	rootCmd.AddCommand(saveCmd)
	rootCmd.AddCommand(loadCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.Version = version
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("shutting down", "signal", sig)
		cancel()
	}()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

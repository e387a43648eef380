package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gridline-labs/gridline/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "gridline",
	Short: "Matchup analytics pipeline",
	Long:  "Evaluates per-game stat snapshots against threshold rules, enriches findings into betting alerts via Claude, and assembles correlated scripts and risk ladders.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

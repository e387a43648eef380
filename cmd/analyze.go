package main

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gridline-labs/gridline/internal/model"
)

var (
	analyzeFile string
	analyzeOut  string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze a single matchup snapshot",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		raw, err := os.ReadFile(analyzeFile)
		if err != nil {
			return eris.Wrap(err, "read matchup file")
		}

		var matchup model.MatchupContext
		if err := json.Unmarshal(raw, &matchup); err != nil {
			return eris.Wrap(err, "parse matchup file")
		}

		env, err := initPipeline(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		result, err := env.Pipeline.Analyze(ctx, &matchup)
		if err != nil {
			return err
		}

		zap.L().Info("analysis complete",
			zap.String("run_id", result.RunID),
			zap.String("game_id", result.GameID),
			zap.Int("alerts", len(result.Alerts)),
			zap.Bool("fallback", result.Fallback),
			zap.Bool("cached", result.Cached),
		)

		out, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return eris.Wrap(err, "marshal result")
		}

		if analyzeOut != "" {
			if err := os.WriteFile(analyzeOut, out, 0o644); err != nil {
				return eris.Wrap(err, "write output file")
			}
			return nil
		}

		_, err = os.Stdout.Write(append(out, '\n'))
		return err
	},
}

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeFile, "file", "f", "", "path to matchup snapshot JSON")
	analyzeCmd.Flags().StringVarP(&analyzeOut, "out", "o", "", "write result JSON to file instead of stdout")
	analyzeCmd.MarkFlagRequired("file") //nolint:errcheck
	rootCmd.AddCommand(analyzeCmd)
}

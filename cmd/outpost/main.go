// Command outpost runs the OUTPOST / Farlight Gate checkpoint simulation
// headless: ship encounters at the gate, player verdicts, and the narrative
// fallout, with saves in a local SQLite file.
package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var (
	savePath    string
	contentPath string
	verbose     bool
)

func main() {
	root := &cobra.Command{
		Use:   "outpost",
		Short: "Farlight Gate checkpoint simulation",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
				Level: level,
			}))
			slog.SetDefault(logger)
		},
	}

	root.PersistentFlags().StringVar(&savePath, "save", "data/outpost.db", "save file path")
	root.PersistentFlags().StringVar(&contentPath, "content", "", "content yaml (empty = built-in seed content)")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(newRunCmd(), newReportCmd(), newGameCmd())

	if err := root.Execute(); err != nil {
		slog.Error("command failed", "error", err)
		os.Exit(1)
	}
}

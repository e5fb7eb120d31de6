// Package main is the entry point for tidewatch.
package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:          "tidewatch",
		Short:        "Coastal climate scenarios in the terminal",
		SilenceUsage: true,
	}
	root.Version = version
	root.SetVersionTemplate("{{.Version}}\n")

	opts := &globalOptions{}
	root.PersistentFlags().StringVar(&opts.scenarioDir, "scenarios", "", "directory of extra scenario files (overrides TIDEWATCH_SCENARIOS)")
	root.PersistentFlags().StringVar(&opts.journalPath, "journal", "", "journal database path (overrides TIDEWATCH_JOURNAL)")
	root.PersistentFlags().BoolVar(&opts.noJournal, "no-journal", false, "do not record finished runs")

	root.AddCommand(playCmd(opts))
	root.AddCommand(listCmd(opts))
	root.AddCommand(validateCmd())
	root.AddCommand(historyCmd(opts))
	root.AddCommand(versionCmd())
	if err := root.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

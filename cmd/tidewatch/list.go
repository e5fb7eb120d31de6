package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func listCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List playable scenarios",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			registry, err := loadRegistry(cfg)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tKIND\tTURNS\tSTART\tTITLE")
			for _, def := range registry.All() {
				fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%s\n", def.ID, def.Kind, def.Turns(), def.StartScore(), def.Title)
			}
			return w.Flush()
		},
	}
}

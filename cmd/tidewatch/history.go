package main

import (
	"errors"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

func historyCmd(opts *globalOptions) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history <scenario-id>",
		Short: "Show recent finished runs from the journal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			j, err := openJournal(cfg)
			if err != nil {
				return err
			}
			if j == nil {
				return errors.New("journal is disabled")
			}
			defer j.Close()

			runs, err := j.List(ctx, args[0], limit)
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				cmd.Printf("no finished runs for %s\n", args[0])
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "FINISHED\tSCORE\tTIER\tRUN")
			for _, r := range runs {
				fmt.Fprintf(w, "%s\t%d\t%s\t%s\n", r.FinishedAt.Local().Format(time.DateTime), r.Score, r.Tier, r.ID)
			}
			return w.Flush()
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 10, "maximum runs to show (0 for all)")
	return cmd
}

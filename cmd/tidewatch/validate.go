package main

import (
	"github.com/spf13/cobra"

	"github.com/samdwyer/tidewatch/internal/scenario"
)

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <dir>",
		Short: "Validate a directory of scenario files",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			defs, err := scenario.LoadDir(args[0])
			if err != nil {
				return err
			}

			// Building a registry with the built-ins catches id clashes
			builtins, err := scenario.LoadBuiltins()
			if err != nil {
				return err
			}
			if _, err := scenario.NewRegistry(append(builtins, defs...)); err != nil {
				return err
			}

			for _, def := range defs {
				cmd.Printf("ok  %s (%s, %d turns)\n", def.ID, def.Kind, def.Turns())
			}
			cmd.Printf("%d scenarios valid\n", len(defs))
			return nil
		},
	}
}

package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/samdwyer/tidewatch/internal/game"
)

func playCmd(opts *globalOptions) *cobra.Command {
	var seed int64

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play the scenarios in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("seed") {
				cfg.Seed = seed
			}

			// The screen belongs to tcell while playing
			if cfg.LogPath != "" {
				logFile, err := os.OpenFile(cfg.LogPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
				if err != nil {
					return fmt.Errorf("opening log file: %w", err)
				}
				defer logFile.Close()
				log.SetOutput(logFile)
			}

			shutdown := setupTelemetry(ctx, cfg)
			defer shutdown()

			registry, err := loadRegistry(cfg)
			if err != nil {
				return err
			}
			j, err := openJournal(cfg)
			if err != nil {
				return err
			}
			defer j.Close()

			g, err := game.New(ctx, game.Config{
				Seed:     cfg.Seed,
				Registry: registry,
				Journal:  j,
			})
			if err != nil {
				return fmt.Errorf("initializing game: %w", err)
			}
			return g.Run(ctx)
		},
	}

	cmd.Flags().Int64Var(&seed, "seed", 0, "seed for card draws (overrides TIDEWATCH_SEED; 0 is random)")
	return cmd
}

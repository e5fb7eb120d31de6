package main

import (
	"context"
	"log"

	"github.com/samdwyer/tidewatch/internal/config"
	"github.com/samdwyer/tidewatch/internal/journal"
	"github.com/samdwyer/tidewatch/internal/scenario"
	"github.com/samdwyer/tidewatch/internal/telemetry"
)

// globalOptions are the persistent flags shared by every subcommand.
type globalOptions struct {
	scenarioDir string
	journalPath string
	noJournal   bool
}

// loadConfig reads .env and the environment, then applies flag overrides.
func loadConfig(opts *globalOptions) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if opts.scenarioDir != "" {
		cfg.ScenarioDir = opts.scenarioDir
	}
	if opts.journalPath != "" {
		cfg.JournalPath = opts.journalPath
	}
	if opts.noJournal {
		cfg.JournalPath = ""
	}
	return cfg, nil
}

// setupTelemetry installs the exporter when configured. Failure is not
// fatal: the app still works without observability.
func setupTelemetry(ctx context.Context, cfg *config.Config) func() {
	if !cfg.TelemetryEnabled() {
		telemetry.Disable()
		return func() {}
	}

	telemetry.ConfigureHoneycomb(cfg.HoneycombAPIKey, cfg.HoneycombDataset)
	shutdown, err := telemetry.Setup(ctx, version)
	if err != nil {
		log.Printf("Warning: telemetry setup failed: %v", err)
		log.Printf("Running without observability")
		telemetry.Disable()
		return func() {}
	}
	return func() {
		if err := shutdown(ctx); err != nil {
			log.Printf("Error shutting down telemetry: %v", err)
		}
	}
}

func loadRegistry(cfg *config.Config) (*scenario.Registry, error) {
	return scenario.LoadRegistry(cfg.ScenarioDir)
}

func openJournal(cfg *config.Config) (*journal.Journal, error) {
	return journal.Open(cfg.JournalPath)
}

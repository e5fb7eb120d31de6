// Package config loads runtime settings from the environment.
package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds tidewatch settings. Command-line flags override these.
type Config struct {
	// Seed for card draws. 0 picks a time-based seed.
	Seed int64 `env:"TIDEWATCH_SEED" envDefault:"0"`
	// ScenarioDir holds extra .yaml/.json scenario files. Empty loads built-ins only.
	ScenarioDir string `env:"TIDEWATCH_SCENARIOS"`
	// JournalPath is the bolt file for finished runs.
	JournalPath string `env:"TIDEWATCH_JOURNAL" envDefault:"tidewatch.db"`
	// LogPath receives the log while the terminal UI owns the screen.
	LogPath string `env:"TIDEWATCH_LOG" envDefault:"tidewatch.log"`

	Telemetry        bool   `env:"TIDEWATCH_TELEMETRY" envDefault:"true"`
	HoneycombAPIKey  string `env:"HONEYCOMB_TIDEWATCH_API_KEY"`
	HoneycombDataset string `env:"HONEYCOMB_TIDEWATCH_DATASET" envDefault:"tidewatch"`
}

// Load reads the optional .env files and then parses the environment.
// Missing .env files are not an error; anything else is.
func Load(dotenvFiles ...string) (*Config, error) {
	if err := loadDotenv(dotenvFiles...); err != nil {
		return nil, err
	}
	return Parse()
}

// Parse builds a Config from the current environment only.
func Parse() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return &cfg, nil
}

// TelemetryEnabled reports whether spans should be exported.
func (c *Config) TelemetryEnabled() bool {
	return c.Telemetry && c.HoneycombAPIKey != ""
}

func loadDotenv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	existing := make([]string, 0, len(files))
	for _, f := range files {
		if fileExists(f) {
			existing = append(existing, f)
		}
	}
	if len(existing) == 0 {
		return nil
	}
	// godotenv.Load never overrides variables already set in the environment
	if err := godotenv.Load(existing...); err != nil {
		return fmt.Errorf("loading .env: %w", err)
	}
	return nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

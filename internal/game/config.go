package game

import (
	"github.com/samdwyer/tidewatch/internal/journal"
	"github.com/samdwyer/tidewatch/internal/scenario"
)

// Config holds game configuration options.
type Config struct {
	// Seed for random number generation. Used for reproducible card draws.
	// A seed of 0 means a random seed will be generated.
	Seed int64

	// Registry lists the playable scenarios, one tab each.
	Registry *scenario.Registry

	// Journal receives finished runs. Nil disables recording.
	Journal *journal.Journal
}

package engine

import (
	"math/rand"
	"time"
)

// Config holds session options.
type Config struct {
	// Seed for random number generation. Used for reproducible card draws.
	// A seed of 0 means a random seed will be generated.
	Seed int64
}

// NewRand returns the random source for the configured seed.
func (c Config) NewRand() *rand.Rand {
	seed := c.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// Package engine runs session-scoped scenarios: finite sequences of turns
// with a running score, advanced by choices or random draws and reset on
// request.
package engine

// Record is one entry of a run's history.
type Record struct {
	Turn     int    `json:"turn"`
	Label    string `json:"label"`
	Delta    int    `json:"delta"`
	Category string `json:"category,omitempty"` // Set for card draws
}

// State is a snapshot of one scenario run. Snapshots are copies: later
// operations on the session never change one already handed out.
type State struct {
	ScenarioID string
	Cursor     int // Current step index, or draws taken
	Score      int
	Turns      int // Events accepted before the run is terminal
	History    []Record
}

// Terminal reports whether the turn budget is spent.
func (s State) Terminal() bool {
	return s.Cursor >= s.Turns
}

// Phase returns the lifecycle phase derived from the cursor.
func (s State) Phase() Phase {
	if s.Terminal() {
		return PhaseTerminal
	}
	return PhaseAdvancing
}

// Last returns the most recent history record, or false if there is none.
func (s State) Last() (Record, bool) {
	if len(s.History) == 0 {
		return Record{}, false
	}
	return s.History[len(s.History)-1], true
}

// Tier classifies the current score.
func (s State) Tier() OutcomeTier {
	return Classify(s.Score)
}

// clone returns a copy that shares no memory with s.
func (s State) clone() State {
	c := s
	if s.History != nil {
		c.History = make([]Record, len(s.History))
		copy(c.History, s.History)
	}
	return c
}

package engine

// Phase represents where a scenario run is in its lifecycle.
type Phase int

const (
	// PhaseAdvancing - the run accepts advance or draw events
	PhaseAdvancing Phase = iota
	// PhaseTerminal - the turn budget is spent, only reset is accepted
	PhaseTerminal
)

// String returns a human-readable phase name.
func (p Phase) String() string {
	switch p {
	case PhaseAdvancing:
		return "advancing"
	case PhaseTerminal:
		return "terminal"
	default:
		return "unknown"
	}
}

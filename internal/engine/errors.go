package engine

import "errors"

// Contract violations. The front end should only ever offer valid actions,
// so any of these reaching it indicates a bug and is logged, not shown.
var (
	// ErrInvalidChoice is returned when a label is not among the current step's choices.
	ErrInvalidChoice = errors.New("invalid choice")
	// ErrScenarioExhausted is returned when advancing a terminal scenario.
	ErrScenarioExhausted = errors.New("scenario exhausted")
	// ErrUnknownScenario is returned for a scenario id with no state or definition.
	ErrUnknownScenario = errors.New("unknown scenario")
	// ErrUnsupportedEvent is returned for an event the scenario kind does not
	// accept, such as drawing from a decision scenario.
	ErrUnsupportedEvent = errors.New("unsupported event")
)

package scenario

import (
	"errors"
	"fmt"
	"strings"
)

// Kind selects how a scenario advances.
type Kind string

const (
	// KindDecision scenarios advance when the player picks one of the
	// current step's choices.
	KindDecision Kind = "decision"
	// KindDraw scenarios advance by drawing a random card from the deck.
	KindDraw Kind = "draw"
)

// DefaultBaseline is the starting score when a definition does not set one.
const DefaultBaseline = 50

// outcomeKeys are the tier names accepted as keys of Definition.Outcomes.
var outcomeKeys = []string{"excellent", "good", "marginal", "failed"}

// Choice is one selectable option of a decision step.
type Choice struct {
	Label string `json:"label" yaml:"label"`
	Delta int    `json:"delta" yaml:"delta"` // Score change when picked
}

// Step is one prompt of a decision scenario.
type Step struct {
	Prompt  string   `json:"prompt" yaml:"prompt"`
	Choices []Choice `json:"choices,omitempty" yaml:"choices,omitempty"`
}

// Choice returns the choice with the given label.
func (s Step) Choice(label string) (Choice, bool) {
	for _, c := range s.Choices {
		if c.Label == label {
			return c, true
		}
	}
	return Choice{}, false
}

// Labels returns the choice labels in presentation order.
func (s Step) Labels() []string {
	labels := make([]string, len(s.Choices))
	for i, c := range s.Choices {
		labels[i] = c.Label
	}
	return labels
}

// Card is one entry of a draw scenario's deck.
type Card struct {
	Label    string `json:"label" yaml:"label"`
	Delta    int    `json:"delta" yaml:"delta"`
	Category string `json:"category" yaml:"category"` // e.g. "policy", "disaster"
}

// Definition is an authored scenario. It is never mutated after loading.
type Definition struct {
	ID          string            `json:"id" yaml:"id"`
	Title       string            `json:"title" yaml:"title"`
	Description string            `json:"description,omitempty" yaml:"description,omitempty"`
	Kind        Kind              `json:"kind" yaml:"kind"`
	Baseline    *int              `json:"baseline,omitempty" yaml:"baseline,omitempty"`
	Steps       []Step            `json:"steps,omitempty" yaml:"steps,omitempty"`
	Deck        []Card            `json:"deck,omitempty" yaml:"deck,omitempty"`
	MaxDraws    int               `json:"maxDraws,omitempty" yaml:"maxDraws,omitempty"`
	DrawPrompt  string            `json:"drawPrompt,omitempty" yaml:"drawPrompt,omitempty"`
	Outcomes    map[string]string `json:"outcomes,omitempty" yaml:"outcomes,omitempty"` // Summary text keyed by tier name
}

// StartScore returns the score a fresh run begins with.
func (d *Definition) StartScore() int {
	if d.Baseline == nil {
		return DefaultBaseline
	}
	return *d.Baseline
}

// Turns returns how many advancing events the scenario accepts before it
// becomes terminal.
func (d *Definition) Turns() int {
	switch d.Kind {
	case KindDecision:
		return len(d.Steps)
	case KindDraw:
		return d.MaxDraws
	default:
		return 0
	}
}

// StepAt returns the prompt for the given turn. Draw scenarios have no
// authored steps, so their prompt is synthesized from DrawPrompt.
func (d *Definition) StepAt(turn int) (Step, bool) {
	if turn < 0 || turn >= d.Turns() {
		return Step{}, false
	}
	if d.Kind == KindDraw {
		prompt := d.DrawPrompt
		if prompt == "" {
			prompt = "Draw a card"
		}
		return Step{Prompt: fmt.Sprintf("%s (%d of %d)", prompt, turn+1, d.MaxDraws)}, true
	}
	return d.Steps[turn], true
}

// Summary returns the outcome text for a tier name, or "" if none is authored.
func (d *Definition) Summary(tier string) string {
	return d.Outcomes[tier]
}

// Validate checks that the definition can be played.
func (d *Definition) Validate() error {
	if strings.TrimSpace(d.ID) == "" {
		return errors.New("scenario id is required")
	}
	if strings.TrimSpace(d.Title) == "" {
		return fmt.Errorf("scenario %s: title is required", d.ID)
	}

	switch d.Kind {
	case KindDecision:
		if err := d.validateSteps(); err != nil {
			return fmt.Errorf("scenario %s: %w", d.ID, err)
		}
	case KindDraw:
		if err := d.validateDeck(); err != nil {
			return fmt.Errorf("scenario %s: %w", d.ID, err)
		}
	default:
		return fmt.Errorf("scenario %s: unknown kind %q", d.ID, d.Kind)
	}

	for key := range d.Outcomes {
		if !isOutcomeKey(key) {
			return fmt.Errorf("scenario %s: unknown outcome tier %q", d.ID, key)
		}
	}
	return nil
}

func (d *Definition) validateSteps() error {
	if len(d.Steps) == 0 {
		return errors.New("at least one step is required")
	}
	for i, step := range d.Steps {
		if strings.TrimSpace(step.Prompt) == "" {
			return fmt.Errorf("step %d prompt is required", i)
		}
		if len(step.Choices) == 0 {
			return fmt.Errorf("step %d needs at least one choice", i)
		}
		seen := make(map[string]struct{}, len(step.Choices))
		for _, c := range step.Choices {
			if strings.TrimSpace(c.Label) == "" {
				return fmt.Errorf("step %d has a choice without a label", i)
			}
			if _, exists := seen[c.Label]; exists {
				return fmt.Errorf("step %d has duplicate choice %q", i, c.Label)
			}
			seen[c.Label] = struct{}{}
		}
	}
	return nil
}

func (d *Definition) validateDeck() error {
	if len(d.Deck) == 0 {
		return errors.New("deck must not be empty")
	}
	if d.MaxDraws <= 0 {
		return fmt.Errorf("maxDraws must be positive, got %d", d.MaxDraws)
	}
	for i, c := range d.Deck {
		if strings.TrimSpace(c.Label) == "" {
			return fmt.Errorf("card %d label is required", i)
		}
	}
	return nil
}

func isOutcomeKey(key string) bool {
	for _, k := range outcomeKeys {
		if k == key {
			return true
		}
	}
	return false
}

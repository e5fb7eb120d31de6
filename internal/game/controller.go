package game

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/samdwyer/tidewatch/internal/engine"
	"github.com/samdwyer/tidewatch/internal/journal"
	"github.com/samdwyer/tidewatch/internal/scenario"
	"github.com/samdwyer/tidewatch/internal/ui"
)

// Controller turns user commands into engine operations and builds the
// view for each frame. It only issues operations that are valid for the
// active run, so an engine error here is a bug and is logged.
type Controller struct {
	session *engine.Session
	journal *journal.Journal

	tabs     []string
	active   int
	lastCard map[string]scenario.Card
	best     map[string]string
	feedback string
}

// NewController starts a session with one run per registered scenario.
func NewController(ctx context.Context, cfg Config) (*Controller, error) {
	if cfg.Registry == nil || cfg.Registry.Count() == 0 {
		return nil, errors.New("no scenarios to play")
	}

	rng := engine.Config{Seed: cfg.Seed}.NewRand()
	c := &Controller{
		session:  engine.NewSession(uuid.NewString(), cfg.Registry, rng),
		journal:  cfg.Journal,
		tabs:     cfg.Registry.IDs(),
		lastCard: make(map[string]scenario.Card),
		best:     make(map[string]string),
	}
	for _, id := range c.tabs {
		if _, err := c.session.Ensure(ctx, id); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// SessionID returns the id of the engine session.
func (c *Controller) SessionID() string {
	return c.session.ID()
}

// ActiveID returns the scenario id of the selected tab.
func (c *Controller) ActiveID() string {
	return c.tabs[c.active]
}

// Apply executes one command. It returns false when the user asked to quit.
func (c *Controller) Apply(ctx context.Context, cmd Command) bool {
	switch cmd.Kind {
	case CmdQuit:
		return false
	case CmdNextTab:
		c.active = (c.active + 1) % len(c.tabs)
		c.feedback = ""
	case CmdPrevTab:
		c.active = (c.active - 1 + len(c.tabs)) % len(c.tabs)
		c.feedback = ""
	case CmdChoose:
		c.choose(ctx, cmd.Index)
	case CmdDraw:
		c.draw(ctx)
	case CmdReset:
		c.reset(ctx)
	}
	return true
}

func (c *Controller) choose(ctx context.Context, index int) {
	id := c.ActiveID()
	def := c.session.Definition(id)
	if def == nil || def.Kind != scenario.KindDecision {
		return
	}

	step, ok, err := c.session.CurrentStep(id)
	if err != nil {
		log.Printf("current step for %s: %v", id, err)
		return
	}
	if !ok {
		c.feedback = "This run is over. Press r to play again."
		return
	}
	if index < 0 || index >= len(step.Choices) {
		return
	}

	choice := step.Choices[index]
	state, err := c.session.Advance(ctx, id, choice.Label)
	if err != nil {
		log.Printf("advance %s: %v", id, err)
		return
	}
	c.feedback = fmt.Sprintf("%s: %s", choice.Label, ui.SignedDelta(choice.Delta))
	if state.Terminal() {
		c.finish(ctx, state)
	}
}

func (c *Controller) draw(ctx context.Context) {
	id := c.ActiveID()
	def := c.session.Definition(id)
	if def == nil || def.Kind != scenario.KindDraw {
		return
	}
	if current, ok := c.session.State(id); !ok || current.Terminal() {
		c.feedback = "No draws left. Press r to play again."
		return
	}

	card, state, err := c.session.Draw(ctx, id)
	if err != nil {
		log.Printf("draw %s: %v", id, err)
		return
	}
	c.lastCard[id] = card
	c.feedback = fmt.Sprintf("%s: %s", card.Label, ui.SignedDelta(card.Delta))
	if state.Terminal() {
		c.finish(ctx, state)
	}
}

func (c *Controller) reset(ctx context.Context) {
	id := c.ActiveID()
	c.session.Reset(ctx, id)
	delete(c.lastCard, id)
	delete(c.best, id)
	c.feedback = "Restarted."
}

// finish records a terminal run and looks up the best score on record.
func (c *Controller) finish(ctx context.Context, state engine.State) {
	tier := state.Tier()
	log.Printf("run finished: session=%s scenario=%s score=%d tier=%s",
		c.session.ID(), state.ScenarioID, state.Score, tier)

	if _, err := c.journal.RecordState(ctx, c.session.ID(), state); err != nil {
		log.Printf("journal: %v", err)
		return
	}
	best, ok, err := c.journal.Best(ctx, state.ScenarioID)
	if err != nil {
		log.Printf("journal: %v", err)
		return
	}
	if ok {
		c.best[state.ScenarioID] = fmt.Sprintf("Best on record: %d (%s)",
			best.Score, engine.Classify(best.Score).Title())
	}
}

// View builds the frame for the active tab.
func (c *Controller) View() ui.View {
	id := c.ActiveID()
	def := c.session.Definition(id)
	state, _ := c.session.State(id)

	v := ui.View{
		Title:       def.Title,
		Description: def.Description,
		Score:       state.Score,
		Turn:        state.Cursor,
		Turns:       state.Turns,
		Terminal:    state.Terminal(),
		Feedback:    c.feedback,
	}

	for i, tabID := range c.tabs {
		tabState, _ := c.session.State(tabID)
		v.Tabs = append(v.Tabs, ui.Tab{
			Title:  c.session.Definition(tabID).Title,
			Active: i == c.active,
			Done:   tabState.Terminal(),
		})
	}

	for _, rec := range state.History {
		v.History = append(v.History, ui.HistoryLine{Turn: rec.Turn, Label: rec.Label, Delta: rec.Delta})
	}

	if card, ok := c.lastCard[id]; ok {
		v.LastCard = fmt.Sprintf("%s (%s)", card.Label, ui.SignedDelta(card.Delta))
		v.LastCategory = card.Category
	}

	if v.Terminal {
		tier := state.Tier()
		v.Tier = tier.Title()
		v.Summary = def.Summary(tier.String())
		v.Best = c.best[id]
		return v
	}

	step, ok, err := c.session.CurrentStep(id)
	if err != nil || !ok {
		return v
	}
	v.Prompt = step.Prompt
	switch def.Kind {
	case scenario.KindDecision:
		v.Choices = step.Labels()
	case scenario.KindDraw:
		v.DrawHint = "Press d to draw a card"
	}
	return v
}

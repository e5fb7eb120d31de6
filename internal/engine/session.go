package engine

import (
	"context"
	"fmt"
	"math/rand"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/samdwyer/tidewatch/internal/scenario"
	"github.com/samdwyer/tidewatch/internal/telemetry"
)

// Catalog looks up scenario definitions by id.
type Catalog interface {
	GetByID(id string) *scenario.Definition
}

// run pairs a live state with the definition it instantiates.
type run struct {
	def   *scenario.Definition
	state State
}

// Session holds the scenario runs of one user session. It is not safe for
// concurrent use; hosts serving several users create one Session each.
type Session struct {
	id      string
	catalog Catalog
	rng     *rand.Rand
	runs    map[string]*run
}

// NewSession creates an empty session. The catalog may be nil, in which
// case only definitions passed to GetOrInit are known. A nil rng is
// replaced with a time-seeded source.
func NewSession(id string, catalog Catalog, rng *rand.Rand) *Session {
	if rng == nil {
		rng = Config{}.NewRand()
	}
	return &Session{
		id:      id,
		catalog: catalog,
		rng:     rng,
		runs:    make(map[string]*run),
	}
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// GetOrInit returns the run state for def, creating it at the baseline on
// first access.
func (s *Session) GetOrInit(ctx context.Context, def *scenario.Definition) State {
	if r, ok := s.runs[def.ID]; ok {
		return r.state.clone()
	}

	_, span := s.start(ctx, "scenario.init", def.ID)
	defer span.End()

	r := &run{def: def, state: initialState(def)}
	s.runs[def.ID] = r
	span.SetAttributes(
		attribute.String("scenario.kind", string(def.Kind)),
		attribute.Int("scenario.turns", r.state.Turns),
		attribute.Int("score", r.state.Score),
	)
	return r.state.clone()
}

// Ensure is GetOrInit by id, resolving the definition through the catalog.
func (s *Session) Ensure(ctx context.Context, id string) (State, error) {
	if r, ok := s.runs[id]; ok {
		return r.state.clone(), nil
	}
	def := s.lookup(id)
	if def == nil {
		return State{}, fmt.Errorf("init %s: %w", id, ErrUnknownScenario)
	}
	return s.GetOrInit(ctx, def), nil
}

// State returns the current snapshot for id, if the run exists.
func (s *Session) State(id string) (State, bool) {
	r, ok := s.runs[id]
	if !ok {
		return State{}, false
	}
	return r.state.clone(), true
}

// Definition returns the definition backing a run, if the run exists.
func (s *Session) Definition(id string) *scenario.Definition {
	if r, ok := s.runs[id]; ok {
		return r.def
	}
	return nil
}

// CurrentStep returns the prompt for the current turn. The boolean is
// false once the run is terminal, which tells the caller to show the
// final summary instead.
func (s *Session) CurrentStep(id string) (scenario.Step, bool, error) {
	r, ok := s.runs[id]
	if !ok {
		return scenario.Step{}, false, fmt.Errorf("current step %s: %w", id, ErrUnknownScenario)
	}
	if r.state.Terminal() {
		return scenario.Step{}, false, nil
	}
	step, ok := r.def.StepAt(r.state.Cursor)
	return step, ok, nil
}

// Advance applies the choice with the given label to a decision scenario.
// On error the run is left unchanged.
func (s *Session) Advance(ctx context.Context, id, label string) (State, error) {
	_, span := s.start(ctx, "scenario.advance", id)
	defer span.End()
	span.SetAttributes(attribute.String("choice", label))

	r, err := s.accepting(id, scenario.KindDecision)
	if err != nil {
		span.RecordError(err)
		return State{}, fmt.Errorf("advance %s: %w", id, err)
	}

	step := r.def.Steps[r.state.Cursor]
	choice, ok := step.Choice(label)
	if !ok {
		err := fmt.Errorf("advance %s with %q at turn %d: %w", id, label, r.state.Cursor, ErrInvalidChoice)
		span.RecordError(err)
		return State{}, err
	}

	r.apply(Record{Label: choice.Label, Delta: choice.Delta})
	s.annotate(span, r.state, choice.Delta)
	return r.state.clone(), nil
}

// Draw picks a card uniformly at random, with replacement, and applies it.
// The drawn card is returned alongside the new state for immediate feedback.
func (s *Session) Draw(ctx context.Context, id string) (scenario.Card, State, error) {
	_, span := s.start(ctx, "scenario.draw", id)
	defer span.End()

	r, err := s.accepting(id, scenario.KindDraw)
	if err != nil {
		span.RecordError(err)
		return scenario.Card{}, State{}, fmt.Errorf("draw %s: %w", id, err)
	}

	card := r.def.Deck[s.rng.Intn(len(r.def.Deck))]
	r.apply(Record{Label: card.Label, Delta: card.Delta, Category: card.Category})

	span.SetAttributes(
		attribute.String("card", card.Label),
		attribute.String("card.category", card.Category),
	)
	s.annotate(span, r.state, card.Delta)
	return card, r.state.clone(), nil
}

// Reset returns a run to its baseline, abandoning any progress. A run that
// does not exist yet is created when its definition is known; an id with
// no definition is ignored and yields an empty state.
func (s *Session) Reset(ctx context.Context, id string) State {
	_, span := s.start(ctx, "scenario.reset", id)
	defer span.End()

	def := s.lookup(id)
	if def == nil {
		span.SetAttributes(attribute.Bool("unknown", true))
		return State{ScenarioID: id}
	}

	if r, ok := s.runs[id]; ok {
		span.SetAttributes(
			attribute.Int("abandoned_cursor", r.state.Cursor),
			attribute.Int("abandoned_score", r.state.Score),
		)
	}
	r := &run{def: def, state: initialState(def)}
	s.runs[id] = r
	return r.state.clone()
}

// accepting returns the run for id if it accepts an advancing event of kind.
func (s *Session) accepting(id string, kind scenario.Kind) (*run, error) {
	r, ok := s.runs[id]
	if !ok {
		return nil, ErrUnknownScenario
	}
	if r.def.Kind != kind {
		return nil, fmt.Errorf("%s scenario does not accept %s events: %w", r.def.Kind, kind, ErrUnsupportedEvent)
	}
	if r.state.Terminal() {
		return nil, ErrScenarioExhausted
	}
	return r, nil
}

// lookup prefers the definition a run was created with over the catalog.
func (s *Session) lookup(id string) *scenario.Definition {
	if r, ok := s.runs[id]; ok {
		return r.def
	}
	if s.catalog == nil {
		return nil
	}
	return s.catalog.GetByID(id)
}

func (s *Session) start(ctx context.Context, name, id string) (context.Context, trace.Span) {
	tracer := telemetry.Tracer("engine")
	ctx, span := tracer.Start(ctx, name)
	span.SetAttributes(
		attribute.String("session.id", s.id),
		attribute.String("scenario.id", id),
	)
	return ctx, span
}

func (s *Session) annotate(span trace.Span, state State, delta int) {
	span.SetAttributes(
		attribute.Int("delta", delta),
		attribute.Int("cursor", state.Cursor),
		attribute.Int("score", state.Score),
		attribute.Bool("terminal", state.Terminal()),
	)
}

// apply records one advancing event. It is the only place score and
// cursor change outside of initialisation.
func (r *run) apply(rec Record) {
	rec.Turn = r.state.Cursor
	r.state.Score += rec.Delta
	r.state.History = append(r.state.History, rec)
	r.state.Cursor++
}

func initialState(def *scenario.Definition) State {
	return State{
		ScenarioID: def.ID,
		Cursor:     0,
		Score:      def.StartScore(),
		Turns:      def.Turns(),
		History:    []Record{},
	}
}

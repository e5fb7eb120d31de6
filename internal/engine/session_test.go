package engine

import (
	"context"
	"errors"
	"math/rand"
	"testing"

	"github.com/samdwyer/tidewatch/internal/scenario"
)

func newTestSession(t *testing.T, seed int64) (*Session, *scenario.Registry) {
	t.Helper()
	registry := scenario.MustLoadRegistry()
	return NewSession("test-session", registry, rand.New(rand.NewSource(seed))), registry
}

// labelWithDelta returns the label of the first choice in step with the given delta.
func labelWithDelta(t *testing.T, step scenario.Step, delta int) string {
	t.Helper()
	for _, c := range step.Choices {
		if c.Delta == delta {
			return c.Label
		}
	}
	t.Fatalf("no choice with delta %d in step %q", delta, step.Prompt)
	return ""
}

func checkHistoryInvariant(t *testing.T, s State) {
	t.Helper()
	if len(s.History) != s.Cursor {
		t.Errorf("len(History) = %d, Cursor = %d; want equal", len(s.History), s.Cursor)
	}
}

func TestPhaseString(t *testing.T) {
	tests := []struct {
		phase    Phase
		expected string
	}{
		{PhaseAdvancing, "advancing"},
		{PhaseTerminal, "terminal"},
		{Phase(99), "unknown"},
	}

	for _, tt := range tests {
		got := tt.phase.String()
		if got != tt.expected {
			t.Errorf("Phase(%d).String() = %q, want %q", tt.phase, got, tt.expected)
		}
	}
}

func TestGetOrInit(t *testing.T) {
	ctx := context.Background()
	session, registry := newTestSession(t, 1)
	mayor := registry.GetByID("mayor")

	s := session.GetOrInit(ctx, mayor)

	if s.ScenarioID != "mayor" {
		t.Errorf("ScenarioID = %q, want %q", s.ScenarioID, "mayor")
	}
	if s.Cursor != 0 {
		t.Errorf("Cursor = %d, want 0", s.Cursor)
	}
	if s.Score != 50 {
		t.Errorf("Score = %d, want 50", s.Score)
	}
	if len(s.History) != 0 {
		t.Errorf("History length = %d, want 0", len(s.History))
	}
	if s.Terminal() {
		t.Error("fresh run should not be terminal")
	}
	if s.Phase() != PhaseAdvancing {
		t.Errorf("Phase() = %v, want %v", s.Phase(), PhaseAdvancing)
	}

	// Idempotent: a second call returns the existing run, not a fresh one
	step, _, _ := session.CurrentStep("mayor")
	if _, err := session.Advance(ctx, "mayor", step.Choices[0].Label); err != nil {
		t.Fatalf("Advance() error: %v", err)
	}
	again := session.GetOrInit(ctx, mayor)
	if again.Cursor != 1 {
		t.Errorf("GetOrInit after advance Cursor = %d, want 1", again.Cursor)
	}
}

func TestEnsure(t *testing.T) {
	ctx := context.Background()
	session, _ := newTestSession(t, 1)

	s, err := session.Ensure(ctx, "cards")
	if err != nil {
		t.Fatalf("Ensure(cards) error: %v", err)
	}
	if s.Turns != 7 {
		t.Errorf("Turns = %d, want 7", s.Turns)
	}

	if _, err := session.Ensure(ctx, "nope"); !errors.Is(err, ErrUnknownScenario) {
		t.Errorf("Ensure(nope) error = %v, want ErrUnknownScenario", err)
	}
}

func TestMayorScenario(t *testing.T) {
	ctx := context.Background()
	session, registry := newTestSession(t, 1)
	mayor := registry.GetByID("mayor")
	session.GetOrInit(ctx, mayor)

	s, err := session.Advance(ctx, "mayor", labelWithDelta(t, mayor.Steps[0], -15))
	if err != nil {
		t.Fatalf("first Advance() error: %v", err)
	}
	s, err = session.Advance(ctx, "mayor", labelWithDelta(t, mayor.Steps[1], 20))
	if err != nil {
		t.Fatalf("second Advance() error: %v", err)
	}

	if s.Score != 55 {
		t.Errorf("Score = %d, want 55", s.Score)
	}
	if s.Cursor != 2 {
		t.Errorf("Cursor = %d, want 2", s.Cursor)
	}
	if s.Terminal() {
		t.Error("run should not be terminal after 2 of 7 steps")
	}
	checkHistoryInvariant(t, s)

	last, ok := s.Last()
	if !ok || last.Turn != 1 || last.Delta != 20 {
		t.Errorf("Last() = %+v, %v; want turn 1 delta 20", last, ok)
	}
}

func TestMayorRunsToTerminal(t *testing.T) {
	ctx := context.Background()
	session, registry := newTestSession(t, 1)
	mayor := registry.GetByID("mayor")
	session.GetOrInit(ctx, mayor)

	for i := 0; i < len(mayor.Steps); i++ {
		step, ok, err := session.CurrentStep("mayor")
		if err != nil || !ok {
			t.Fatalf("CurrentStep() at turn %d = %v, %v; want a step", i, ok, err)
		}
		s, err := session.Advance(ctx, "mayor", step.Choices[0].Label)
		if err != nil {
			t.Fatalf("Advance() at turn %d error: %v", i, err)
		}
		checkHistoryInvariant(t, s)
		wantTerminal := i == len(mayor.Steps)-1
		if s.Terminal() != wantTerminal {
			t.Errorf("Terminal() after turn %d = %v, want %v", i, s.Terminal(), wantTerminal)
		}
	}

	if _, ok, err := session.CurrentStep("mayor"); ok || err != nil {
		t.Errorf("CurrentStep() on terminal run = %v, %v; want false, nil", ok, err)
	}

	before, _ := session.State("mayor")
	_, err := session.Advance(ctx, "mayor", mayor.Steps[0].Choices[0].Label)
	if !errors.Is(err, ErrScenarioExhausted) {
		t.Errorf("Advance() on terminal run error = %v, want ErrScenarioExhausted", err)
	}
	after, _ := session.State("mayor")
	if after.Cursor != before.Cursor || after.Score != before.Score || len(after.History) != len(before.History) {
		t.Error("failed Advance() should leave the run unchanged")
	}
	if !after.Terminal() {
		t.Error("run should stay terminal without a reset")
	}
}

func TestAdvanceInvalidChoice(t *testing.T) {
	ctx := context.Background()
	session, registry := newTestSession(t, 1)
	mayor := registry.GetByID("mayor")
	session.GetOrInit(ctx, mayor)

	// A label from a later step is not valid at turn 0
	_, err := session.Advance(ctx, "mayor", labelWithDelta(t, mayor.Steps[1], 20))
	if !errors.Is(err, ErrInvalidChoice) {
		t.Fatalf("Advance() error = %v, want ErrInvalidChoice", err)
	}

	s, _ := session.State("mayor")
	if s.Cursor != 0 || s.Score != 50 || len(s.History) != 0 {
		t.Errorf("state after invalid choice = %+v, want untouched baseline", s)
	}
}

func TestAdvanceUnknownScenario(t *testing.T) {
	session, _ := newTestSession(t, 1)
	if _, err := session.Advance(context.Background(), "mayor", "x"); !errors.Is(err, ErrUnknownScenario) {
		t.Errorf("Advance() before init error = %v, want ErrUnknownScenario", err)
	}
	if _, _, err := session.Draw(context.Background(), "cards"); !errors.Is(err, ErrUnknownScenario) {
		t.Errorf("Draw() before init error = %v, want ErrUnknownScenario", err)
	}
	if _, _, err := session.CurrentStep("cards"); !errors.Is(err, ErrUnknownScenario) {
		t.Errorf("CurrentStep() before init error = %v, want ErrUnknownScenario", err)
	}
}

func TestWrongEventKind(t *testing.T) {
	ctx := context.Background()
	session, _ := newTestSession(t, 1)
	session.Ensure(ctx, "mayor")
	session.Ensure(ctx, "cards")

	if _, _, err := session.Draw(ctx, "mayor"); !errors.Is(err, ErrUnsupportedEvent) {
		t.Errorf("Draw(mayor) error = %v, want ErrUnsupportedEvent", err)
	}
	if _, err := session.Advance(ctx, "cards", "Beach cleanup day"); !errors.Is(err, ErrUnsupportedEvent) {
		t.Errorf("Advance(cards) error = %v, want ErrUnsupportedEvent", err)
	}
}

func TestCardScenario(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		ctx := context.Background()
		session, registry := newTestSession(t, seed)
		cards := registry.GetByID("cards")
		session.GetOrInit(ctx, cards)

		score := 50
		var s State
		for i := 0; i < 7; i++ {
			card, next, err := session.Draw(ctx, "cards")
			if err != nil {
				t.Fatalf("seed %d: Draw() %d error: %v", seed, i, err)
			}
			score += card.Delta
			s = next
			checkHistoryInvariant(t, s)
		}

		if !s.Terminal() {
			t.Errorf("seed %d: Terminal() = false after 7 draws", seed)
		}
		if s.Cursor != 7 {
			t.Errorf("seed %d: Cursor = %d, want 7", seed, s.Cursor)
		}
		if s.Score != score {
			t.Errorf("seed %d: Score = %d, want sum of drawn deltas %d", seed, s.Score, score)
		}

		before := s
		_, _, err := session.Draw(ctx, "cards")
		if !errors.Is(err, ErrScenarioExhausted) {
			t.Errorf("seed %d: Draw() on terminal run error = %v, want ErrScenarioExhausted", seed, err)
		}
		after, _ := session.State("cards")
		if after.Cursor != before.Cursor || after.Score != before.Score || len(after.History) != len(before.History) {
			t.Errorf("seed %d: failed Draw() should leave the run unchanged", seed)
		}
	}
}

func TestDrawReproducibleWithSeed(t *testing.T) {
	ctx := context.Background()
	s1, _ := newTestSession(t, 12345)
	s2, _ := newTestSession(t, 12345)
	s1.Ensure(ctx, "cards")
	s2.Ensure(ctx, "cards")

	for i := 0; i < 7; i++ {
		c1, _, _ := s1.Draw(ctx, "cards")
		c2, _, _ := s2.Draw(ctx, "cards")
		if c1 != c2 {
			t.Errorf("Draw %d mismatch: %q != %q", i, c1.Label, c2.Label)
		}
	}
}

func TestDrawWithReplacement(t *testing.T) {
	ctx := context.Background()
	deck := &scenario.Definition{
		ID:       "single",
		Title:    "Single",
		Kind:     scenario.KindDraw,
		Deck:     []scenario.Card{{Label: "only", Delta: 3, Category: "science"}},
		MaxDraws: 4,
	}
	session := NewSession("s", nil, rand.New(rand.NewSource(7)))
	session.GetOrInit(ctx, deck)

	var s State
	for i := 0; i < 4; i++ {
		card, next, err := session.Draw(ctx, "single")
		if err != nil {
			t.Fatalf("Draw() %d error: %v", i, err)
		}
		if card.Label != "only" {
			t.Errorf("Draw() %d = %q, want %q", i, card.Label, "only")
		}
		s = next
	}
	if s.Score != 50+4*3 {
		t.Errorf("Score = %d, want %d", s.Score, 50+4*3)
	}
	if s.History[3].Category != "science" {
		t.Errorf("History[3].Category = %q, want %q", s.History[3].Category, "science")
	}
}

func TestReset(t *testing.T) {
	ctx := context.Background()
	session, registry := newTestSession(t, 1)
	mayor := registry.GetByID("mayor")
	session.GetOrInit(ctx, mayor)

	for i := 0; i < len(mayor.Steps); i++ {
		step, _, _ := session.CurrentStep("mayor")
		session.Advance(ctx, "mayor", step.Choices[len(step.Choices)-1].Label)
	}

	s := session.Reset(ctx, "mayor")
	if s.Cursor != 0 || s.Score != 50 || len(s.History) != 0 {
		t.Errorf("Reset() = %+v, want baseline", s)
	}
	if s.Terminal() {
		t.Error("Reset() run should not be terminal")
	}

	current, _ := session.State("mayor")
	if current.Cursor != 0 || current.Score != 50 {
		t.Errorf("State() after reset = %+v, want baseline", current)
	}

	// Reset mid-run abandons progress
	step, _, _ := session.CurrentStep("mayor")
	session.Advance(ctx, "mayor", step.Choices[0].Label)
	s = session.Reset(ctx, "mayor")
	if s.Cursor != 0 || s.Score != 50 || len(s.History) != 0 {
		t.Errorf("Reset() mid-run = %+v, want baseline", s)
	}
}

func TestResetWithoutPriorState(t *testing.T) {
	ctx := context.Background()
	session, _ := newTestSession(t, 1)

	s := session.Reset(ctx, "cards")
	if s.ScenarioID != "cards" || s.Cursor != 0 || s.Score != 50 || s.Turns != 7 {
		t.Errorf("Reset() without prior state = %+v, want fresh cards run", s)
	}
	if _, ok := session.State("cards"); !ok {
		t.Error("Reset() should create the run")
	}

	unknown := session.Reset(ctx, "nope")
	if unknown.ScenarioID != "nope" || unknown.Cursor != 0 {
		t.Errorf("Reset(nope) = %+v, want empty state", unknown)
	}
	if _, ok := session.State("nope"); ok {
		t.Error("Reset() of an unknown id should not create a run")
	}
}

func TestSnapshotsAreIndependent(t *testing.T) {
	ctx := context.Background()
	session, _ := newTestSession(t, 1)
	session.Ensure(ctx, "cards")

	_, first, _ := session.Draw(ctx, "cards")
	session.Draw(ctx, "cards")

	if first.Cursor != 1 || len(first.History) != 1 {
		t.Errorf("earlier snapshot changed: %+v", first)
	}

	first.History[0].Delta = 1000
	current, _ := session.State("cards")
	if current.History[0].Delta == 1000 {
		t.Error("mutating a snapshot should not affect the session")
	}
}

func TestSessionsAreIsolated(t *testing.T) {
	ctx := context.Background()
	a, _ := newTestSession(t, 1)
	b, _ := newTestSession(t, 1)
	a.Ensure(ctx, "cards")
	b.Ensure(ctx, "cards")

	a.Draw(ctx, "cards")

	sb, _ := b.State("cards")
	if sb.Cursor != 0 {
		t.Errorf("session b Cursor = %d, want 0", sb.Cursor)
	}
}

func TestNewSessionNilRand(t *testing.T) {
	ctx := context.Background()
	session := NewSession("s", scenario.MustLoadRegistry(), nil)
	session.Ensure(ctx, "cards")
	if _, _, err := session.Draw(ctx, "cards"); err != nil {
		t.Errorf("Draw() with default rng error: %v", err)
	}
	if session.ID() != "s" {
		t.Errorf("ID() = %q, want %q", session.ID(), "s")
	}
}

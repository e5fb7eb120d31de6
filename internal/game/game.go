// Package game provides the terminal front end: the input loop and the
// controller that drives the scenario engine.
package game

import (
	"context"

	"github.com/gdamore/tcell/v2"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/tidewatch/internal/telemetry"
	"github.com/samdwyer/tidewatch/internal/ui"
)

// Game owns the screen and runs the input loop.
type Game struct {
	screen     *ui.Screen
	renderer   *ui.Renderer
	controller *Controller
	running    bool
}

// New creates a new game instance.
func New(ctx context.Context, cfg Config) (*Game, error) {
	controller, err := NewController(ctx, cfg)
	if err != nil {
		return nil, err
	}

	screen, err := ui.NewScreen()
	if err != nil {
		return nil, err
	}

	return &Game{
		screen:     screen,
		renderer:   ui.NewRenderer(screen),
		controller: controller,
		running:    true,
	}, nil
}

// Run executes the main game loop until the user quits.
func (g *Game) Run(ctx context.Context) error {
	tracer := telemetry.Tracer("game")
	ctx, span := tracer.Start(ctx, "game.session")
	span.SetAttributes(
		attribute.String("session.id", g.controller.SessionID()),
		attribute.Int("scenario_count", len(g.controller.tabs)),
	)
	defer span.End()

	for g.running {
		g.renderer.Render(g.controller.View())

		// Handle input (blocking)
		g.handleInput(ctx)
	}

	g.screen.Close()
	return nil
}

// handleInput processes a single input event.
func (g *Game) handleInput(ctx context.Context) {
	ev := g.screen.PollEvent()

	switch ev := ev.(type) {
	case *tcell.EventKey:
		cmd := commandForKey(ev)
		if cmd.Kind == CmdNone {
			return
		}
		g.running = g.controller.Apply(ctx, cmd)
	case *tcell.EventResize:
		g.screen.Sync()
	case nil:
		// Screen finalized
		g.running = false
	}
}

package ui

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
)

const (
	marginX        = 2
	historyLines   = 7
	footerControls = "Tab/←/→ switch  1-9 choose  d/Enter draw  r restart  q quit"
)

var (
	styleText     = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleDim      = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleTitle    = tcell.StyleDefault.Foreground(tcell.ColorAqua).Bold(true)
	styleTab      = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleTabOn    = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorAqua).Bold(true)
	styleChoice   = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleGain     = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	styleLoss     = tcell.StyleDefault.Foreground(tcell.ColorRed)
	styleFeedback = tcell.StyleDefault.Foreground(tcell.ColorFuchsia)
)

// Renderer handles drawing scenario views to the screen.
type Renderer struct {
	screen *Screen
}

// NewRenderer creates a new renderer for the given screen.
func NewRenderer(screen *Screen) *Renderer {
	return &Renderer{screen: screen}
}

// Render draws one frame.
func (r *Renderer) Render(v View) {
	r.screen.Clear()
	_, height := r.screen.Size()

	y := 0
	r.renderTabs(v.Tabs, y)
	y += 2

	r.screen.DrawText(marginX, y, v.Title, styleTitle)
	y++
	if v.Description != "" {
		r.screen.DrawText(marginX, y, v.Description, styleDim)
		y++
	}
	y++

	status := fmt.Sprintf("Score %d   Turn %d/%d", v.Score, v.Turn, v.Turns)
	r.screen.DrawText(marginX, y, status, styleText)
	y += 2

	if v.Terminal {
		y = r.renderSummary(v, y)
	} else {
		y = r.renderPrompt(v, y)
	}

	if v.LastCard != "" {
		y++
		x := r.screen.DrawText(marginX, y, "Drew: ", styleDim)
		x = r.screen.DrawText(x, y, v.LastCard, styleText)
		if v.LastCategory != "" {
			r.screen.DrawText(x+1, y, "["+v.LastCategory+"]", styleDim)
		}
		y++
	}

	if len(v.History) > 0 {
		y++
		r.screen.DrawText(marginX, y, "History", styleDim)
		y++
		for _, h := range tail(v.History, historyLines) {
			x := r.screen.DrawText(marginX, y, fmt.Sprintf("%2d. ", h.Turn+1), styleDim)
			x = r.screen.DrawText(x, y, h.Label+" ", styleText)
			r.screen.DrawText(x, y, SignedDelta(h.Delta), deltaStyle(h.Delta))
			y++
		}
	}

	if v.Feedback != "" {
		r.screen.DrawText(marginX, height-2, v.Feedback, styleFeedback)
	}
	r.screen.DrawText(marginX, height-1, footerControls, styleDim)

	r.screen.Show()
}

func (r *Renderer) renderTabs(tabs []Tab, y int) {
	x := marginX
	for i, tab := range tabs {
		label := fmt.Sprintf(" %d %s ", i+1, tab.Title)
		if tab.Done {
			label = fmt.Sprintf(" %d %s ✓ ", i+1, tab.Title)
		}
		style := styleTab
		if tab.Active {
			style = styleTabOn
		}
		x = r.screen.DrawText(x, y, label, style) + 1
	}
}

func (r *Renderer) renderPrompt(v View, y int) int {
	r.screen.DrawText(marginX, y, v.Prompt, styleText)
	y += 2
	for i, c := range v.Choices {
		r.screen.DrawText(marginX+2, y, fmt.Sprintf("%d) %s", i+1, c), styleChoice)
		y++
	}
	if v.DrawHint != "" {
		r.screen.DrawText(marginX+2, y, v.DrawHint, styleChoice)
		y++
	}
	return y
}

func (r *Renderer) renderSummary(v View, y int) int {
	x := r.screen.DrawText(marginX, y, "Outcome: ", styleText)
	r.screen.DrawText(x, y, v.Tier, tierStyle(v.Tier))
	y++
	if v.Summary != "" {
		r.screen.DrawText(marginX, y, v.Summary, styleText)
		y++
	}
	if v.Best != "" {
		r.screen.DrawText(marginX, y, v.Best, styleDim)
		y++
	}
	r.screen.DrawText(marginX, y+1, "Press r to play again.", styleChoice)
	return y + 2
}

func tierStyle(tier string) tcell.Style {
	switch strings.ToLower(tier) {
	case "excellent", "good":
		return styleGain.Bold(true)
	case "failed":
		return styleLoss.Bold(true)
	default:
		return styleChoice.Bold(true)
	}
}

func deltaStyle(delta int) tcell.Style {
	switch {
	case delta > 0:
		return styleGain
	case delta < 0:
		return styleLoss
	default:
		return styleDim
	}
}

// SignedDelta formats a score change with an explicit sign.
func SignedDelta(delta int) string {
	if delta > 0 {
		return fmt.Sprintf("+%d", delta)
	}
	return fmt.Sprintf("%d", delta)
}

func tail(lines []HistoryLine, n int) []HistoryLine {
	if len(lines) <= n {
		return lines
	}
	return lines[len(lines)-n:]
}

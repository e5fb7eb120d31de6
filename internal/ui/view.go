package ui

// View is everything the renderer needs for one frame. It is plain data so
// the controller can be tested without a terminal.
type View struct {
	Tabs        []Tab
	Title       string
	Description string

	Prompt   string
	Choices  []string // Numbered from 1 on screen
	DrawHint string   // Set for draw scenarios that can still draw

	Score int
	Turn  int // Turns taken so far
	Turns int

	LastCard     string
	LastCategory string
	History      []HistoryLine

	Terminal bool
	Tier     string
	Summary  string
	Best     string

	Feedback string
}

// Tab is one entry of the scenario tab bar.
type Tab struct {
	Title  string
	Active bool
	Done   bool
}

// HistoryLine is one past turn shown under the prompt.
type HistoryLine struct {
	Turn  int
	Label string
	Delta int
}

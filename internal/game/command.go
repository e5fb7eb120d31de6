package game

import "github.com/gdamore/tcell/v2"

// CommandKind identifies a user action.
type CommandKind int

const (
	CmdNone CommandKind = iota
	CmdQuit
	CmdNextTab
	CmdPrevTab
	CmdChoose
	CmdDraw
	CmdReset
)

// String returns a human-readable command name.
func (k CommandKind) String() string {
	switch k {
	case CmdNone:
		return "none"
	case CmdQuit:
		return "quit"
	case CmdNextTab:
		return "next_tab"
	case CmdPrevTab:
		return "prev_tab"
	case CmdChoose:
		return "choose"
	case CmdDraw:
		return "draw"
	case CmdReset:
		return "reset"
	default:
		return "unknown"
	}
}

// Command is a decoded user action. Index is the zero-based choice for CmdChoose.
type Command struct {
	Kind  CommandKind
	Index int
}

// commandForKey maps a key event to a command.
func commandForKey(ev *tcell.EventKey) Command {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return Command{Kind: CmdQuit}
	case tcell.KeyTab, tcell.KeyRight:
		return Command{Kind: CmdNextTab}
	case tcell.KeyBacktab, tcell.KeyLeft:
		return Command{Kind: CmdPrevTab}
	case tcell.KeyEnter:
		return Command{Kind: CmdDraw}
	case tcell.KeyRune:
		return commandForRune(ev.Rune())
	}
	return Command{Kind: CmdNone}
}

func commandForRune(ch rune) Command {
	switch {
	case ch >= '1' && ch <= '9':
		return Command{Kind: CmdChoose, Index: int(ch - '1')}
	case ch == 'd' || ch == 'D' || ch == ' ':
		return Command{Kind: CmdDraw}
	case ch == 'r' || ch == 'R':
		return Command{Kind: CmdReset}
	case ch == 'q' || ch == 'Q':
		return Command{Kind: CmdQuit}
	}
	return Command{Kind: CmdNone}
}

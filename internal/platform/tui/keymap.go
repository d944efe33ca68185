package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/seawar/internal/core"
)

// KeyMap holds the in-game key bindings. Lowercase q is a steering key, so
// quitting takes a capital Q.
type KeyMap struct {
	North     key.Binding
	NorthEast key.Binding
	East      key.Binding
	SouthEast key.Binding
	South     key.Binding
	SouthWest key.Binding
	West      key.Binding
	NorthWest key.Binding

	Wait    key.Binding
	Fire    key.Binding
	Ahead   key.Binding
	Pause   key.Binding
	Restart key.Binding
	Back    key.Binding
	Quit    key.Binding
}

// DefaultKeyMap returns the standard layout: the qweadzxc block steers in
// eight directions, arrows and hjkl steer on the axes.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		North: key.NewBinding(
			key.WithKeys("w", "up", "k"),
			key.WithHelp("w/↑", "north"),
		),
		NorthEast: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "north-east"),
		),
		East: key.NewBinding(
			key.WithKeys("d", "right", "l"),
			key.WithHelp("d/→", "east"),
		),
		SouthEast: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "south-east"),
		),
		South: key.NewBinding(
			key.WithKeys("x", "down", "j"),
			key.WithHelp("x/↓", "south"),
		),
		SouthWest: key.NewBinding(
			key.WithKeys("z"),
			key.WithHelp("z", "south-west"),
		),
		West: key.NewBinding(
			key.WithKeys("a", "left", "h"),
			key.WithHelp("a/←", "west"),
		),
		NorthWest: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "north-west"),
		),
		Wait: key.NewBinding(
			key.WithKeys("s", "."),
			key.WithHelp("s", "hold"),
		),
		Fire: key.NewBinding(
			key.WithKeys("f", " "),
			key.WithHelp("f/space", "arm torpedo"),
		),
		Ahead: key.NewBinding(
			key.WithKeys("g", "tab"),
			key.WithHelp("g/tab", "full ahead"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "pause"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "new patrol"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "menu"),
		),
		Quit: key.NewBinding(
			key.WithKeys("Q", "ctrl+c"),
			key.WithHelp("Q", "quit"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.North, k.East, k.South, k.West, k.Fire, k.Ahead, k.Wait, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.North, k.NorthEast, k.East, k.SouthEast},
		{k.South, k.SouthWest, k.West, k.NorthWest},
		{k.Wait, k.Fire, k.Ahead},
		{k.Pause, k.Restart, k.Back, k.Quit},
	}
}

type boundAction struct {
	action  core.Action
	binding key.Binding
}

// bindings pairs every action with its binding, in lookup order.
func (k KeyMap) bindings() []boundAction {
	return []boundAction{
		{core.ActionQuit, k.Quit},
		{core.ActionNorth, k.North},
		{core.ActionNorthEast, k.NorthEast},
		{core.ActionEast, k.East},
		{core.ActionSouthEast, k.SouthEast},
		{core.ActionSouth, k.South},
		{core.ActionSouthWest, k.SouthWest},
		{core.ActionWest, k.West},
		{core.ActionNorthWest, k.NorthWest},
		{core.ActionWait, k.Wait},
		{core.ActionFire, k.Fire},
		{core.ActionAhead, k.Ahead},
		{core.ActionPause, k.Pause},
		{core.ActionRestart, k.Restart},
		{core.ActionBack, k.Back},
	}
}

// MapKey translates a key message to a game action. ActionNone means the
// key is unbound.
func (k KeyMap) MapKey(msg tea.KeyMsg) core.Action {
	for _, b := range k.bindings() {
		if key.Matches(msg, b.binding) {
			return b.action
		}
	}
	return core.ActionNone
}

// MapKeyToFrame records the action bound to msg in frame. It returns true
// for a quit request.
func (k KeyMap) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame) bool {
	action := k.MapKey(msg)
	if action == core.ActionQuit {
		return true
	}
	frame.Set(action)
	return false
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionScoreboard
	MenuActionBack
	MenuActionQuit
)

// MenuKeyMap holds the bindings of the mode menu.
type MenuKeyMap struct {
	Up         key.Binding
	Down       key.Binding
	Select     key.Binding
	Scoreboard key.Binding
	Back       key.Binding
	Quit       key.Binding
}

// DefaultMenuKeyMap returns the menu bindings.
func DefaultMenuKeyMap() MenuKeyMap {
	return MenuKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k", "w"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j", "s"),
			key.WithHelp("↓/j", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "start"),
		),
		Scoreboard: key.NewBinding(
			key.WithKeys("tab", "l"),
			key.WithHelp("tab", "patrol log"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "Q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k MenuKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Scoreboard, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k MenuKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Select},
		{k.Scoreboard, k.Back, k.Quit},
	}
}

// MapKey translates a key to a menu action.
func (k MenuKeyMap) MapKey(msg tea.KeyMsg) MenuAction {
	switch {
	case key.Matches(msg, k.Quit):
		return MenuActionQuit
	case key.Matches(msg, k.Up):
		return MenuActionUp
	case key.Matches(msg, k.Down):
		return MenuActionDown
	case key.Matches(msg, k.Select):
		return MenuActionSelect
	case key.Matches(msg, k.Scoreboard):
		return MenuActionScoreboard
	case key.Matches(msg, k.Back):
		return MenuActionBack
	}
	return MenuActionNone
}

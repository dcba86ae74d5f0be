package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-2048/internal/core"
)

// GameKeys holds the in-game key bindings. It implements help.KeyMap.
type GameKeys struct {
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	Pause    key.Binding
	Restart  key.Binding
	Continue key.Binding
	Back     key.Binding
	Quit     key.Binding
}

// DefaultGameKeys returns arrows, WASD and vim-style hjkl for movement.
func DefaultGameKeys() GameKeys {
	return GameKeys{
		Up:       key.NewBinding(key.WithKeys("up", "w", "k"), key.WithHelp("↑/w/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "s", "j"), key.WithHelp("↓/s/j", "down")),
		Left:     key.NewBinding(key.WithKeys("left", "a", "h"), key.WithHelp("←/a/h", "left")),
		Right:    key.NewBinding(key.WithKeys("right", "d", "l"), key.WithHelp("→/d/l", "right")),
		Pause:    key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "pause")),
		Restart:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "new game")),
		Continue: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "keep going")),
		Back:     key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc", "menu")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k GameKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Left, k.Right, k.Restart, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k GameKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Pause, k.Restart, k.Continue, k.Back, k.Quit},
	}
}

// KeyMapper translates Bubble Tea key messages to game actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct {
	keys GameKeys
}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{keys: DefaultGameKeys()}
}

// MapKey translates a key message to an action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	k := km.keys
	switch {
	case key.Matches(msg, k.Quit):
		return core.ActionQuit, true
	case key.Matches(msg, k.Up):
		return core.ActionUp, false
	case key.Matches(msg, k.Down):
		return core.ActionDown, false
	case key.Matches(msg, k.Left):
		return core.ActionLeft, false
	case key.Matches(msg, k.Right):
		return core.ActionRight, false
	case key.Matches(msg, k.Pause):
		return core.ActionPause, false
	case key.Matches(msg, k.Restart):
		return core.ActionRestart, false
	case key.Matches(msg, k.Continue):
		return core.ActionContinue, false
	case key.Matches(msg, k.Back):
		return core.ActionBack, false
	case msg.String() == "enter":
		return core.ActionConfirm, false
	}

	return core.ActionNone, false
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionScores
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab":
		return MenuActionScores
	}

	return MenuActionNone
}

package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-2048/internal/core"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		name   string
		msg    tea.KeyMsg
		action core.Action
		quit   bool
	}{
		{"arrow up", tea.KeyMsg{Type: tea.KeyUp}, core.ActionUp, false},
		{"arrow down", tea.KeyMsg{Type: tea.KeyDown}, core.ActionDown, false},
		{"arrow left", tea.KeyMsg{Type: tea.KeyLeft}, core.ActionLeft, false},
		{"arrow right", tea.KeyMsg{Type: tea.KeyRight}, core.ActionRight, false},
		{"w", runeKey('w'), core.ActionUp, false},
		{"a", runeKey('a'), core.ActionLeft, false},
		{"s", runeKey('s'), core.ActionDown, false},
		{"d", runeKey('d'), core.ActionRight, false},
		{"vim h", runeKey('h'), core.ActionLeft, false},
		{"vim j", runeKey('j'), core.ActionDown, false},
		{"vim k", runeKey('k'), core.ActionUp, false},
		{"vim l", runeKey('l'), core.ActionRight, false},
		{"pause", runeKey('p'), core.ActionPause, false},
		{"restart", runeKey('r'), core.ActionRestart, false},
		{"continue", runeKey('c'), core.ActionContinue, false},
		{"escape", tea.KeyMsg{Type: tea.KeyEsc}, core.ActionBack, false},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, core.ActionConfirm, false},
		{"quit", runeKey('q'), core.ActionQuit, true},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, true},
		{"unbound", runeKey('z'), core.ActionNone, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action, quit := km.MapKey(tt.msg)
			if action != tt.action || quit != tt.quit {
				t.Errorf("MapKey(%q) = (%s, %v), want (%s, %v)", tt.msg.String(), action, quit, tt.action, tt.quit)
			}
		})
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		msg  tea.KeyMsg
		want MenuAction
	}{
		{tea.KeyMsg{Type: tea.KeyUp}, MenuActionUp},
		{runeKey('j'), MenuActionDown},
		{tea.KeyMsg{Type: tea.KeyEnter}, MenuActionSelect},
		{tea.KeyMsg{Type: tea.KeyTab}, MenuActionScores},
		{tea.KeyMsg{Type: tea.KeyEsc}, MenuActionBack},
		{runeKey('q'), MenuActionQuit},
		{runeKey('x'), MenuActionNone},
	}
	for _, tt := range tests {
		if got := km.MapKeyToMenuAction(tt.msg); got != tt.want {
			t.Errorf("MapKeyToMenuAction(%q) = %d, want %d", tt.msg.String(), got, tt.want)
		}
	}
}

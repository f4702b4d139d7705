package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/trapsweep/internal/core"
)

// KeyMapper translates Bubble Tea key messages to game actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct {
	bindings map[string]core.Action
}

// NewKeyMapper creates a new key mapper with default bindings.
// WASD walks, arrows and hjkl aim.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{
		bindings: map[string]core.Action{
			"w":      core.ActionMoveUp,
			"s":      core.ActionMoveDown,
			"a":      core.ActionMoveLeft,
			"d":      core.ActionMoveRight,
			"up":     core.ActionAimUp,
			"k":      core.ActionAimUp,
			"down":   core.ActionAimDown,
			"j":      core.ActionAimDown,
			"left":   core.ActionAimLeft,
			"h":      core.ActionAimLeft,
			"right":  core.ActionAimRight,
			"l":      core.ActionAimRight,
			" ":      core.ActionReveal,
			"f":      core.ActionFlag,
			"c":      core.ActionCast,
			"e":      core.ActionInteract,
			"?":      core.ActionHint,
			"enter":  core.ActionConfirm,
			"esc":    core.ActionBack,
			"b":      core.ActionBack,
			"r":      core.ActionRestart,
			"p":      core.ActionPause,
			"q":      core.ActionQuit,
			"ctrl+c": core.ActionQuit,
		},
	}
}

// MapKey translates a key message to an action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	action, ok := km.bindings[msg.String()]
	if !ok {
		return core.ActionNone, false
	}
	return action, action == core.ActionQuit
}

// MapKeyToFrame updates an input frame based on a key message.
// Returns true if the key was a quit request.
func (km *KeyMapper) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame) bool {
	action, isQuit := km.MapKey(msg)
	if action != core.ActionNone && !isQuit {
		frame.Set(action)
	}
	return isQuit
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionLeft
	MenuActionRight
	MenuActionSelect
	MenuActionBack
	MenuActionQuit
	MenuActionScoreboard
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
	case "a", "left", "h":
		return MenuActionLeft
	case "d", "right", "l":
		return MenuActionRight
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab":
		return MenuActionScoreboard
	}

	return MenuActionNone
}

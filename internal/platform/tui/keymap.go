package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tiletwist/internal/core"
)

// KeyMapper translates Bubble Tea key messages to game actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key message to a game action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	key := msg.String()

	// Global quit keys
	switch key {
	case "ctrl+c", "q":
		return core.ActionQuit, true
	}

	switch key {
	case "w", "k", "up":
		return core.ActionUp, false
	case "s", "j", "down":
		return core.ActionDown, false
	case "a", "h", "left":
		return core.ActionLeft, false
	case "d", "l", "right":
		return core.ActionRight, false
	case " ", "r":
		return core.ActionRotate, false
	case "enter":
		return core.ActionPick, false
	case "i":
		return core.ActionHint, false
	case "?":
		return core.ActionTutorial, false
	case "n":
		return core.ActionRestart, false
	case "p":
		return core.ActionPause, false
	case "b", "esc":
		return core.ActionBack, false
	}

	return core.ActionNone, false
}

// MapKeyToFrame updates an input frame based on a key message.
// Returns true if the key was a quit request.
func (km *KeyMapper) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame) bool {
	action, isQuit := km.MapKey(msg)
	if action != core.ActionNone && action != core.ActionBack {
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
	MenuActionSelect
	MenuActionBack
	MenuActionQuit
	MenuActionScoreboard
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	key := msg.String()

	switch key {
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
		return MenuActionScoreboard
	}

	return MenuActionNone
}

// PointerTracker turns left-button press/release pairs into gestures:
// release on the pressed slot is a tap, release on another slot a drag.
type PointerTracker struct {
	pressed int
	down    bool
}

// Handle feeds a mouse event. slotAt maps cells to slots (-1 off the board).
// It returns the completed gesture, if any.
func (p *PointerTracker) Handle(msg tea.MouseMsg, slotAt func(x, y int) int) (core.Gesture, bool) {
	if msg.Button != tea.MouseButtonLeft && msg.Action != tea.MouseActionRelease {
		return core.Gesture{}, false
	}

	switch msg.Action {
	case tea.MouseActionPress:
		slot := slotAt(msg.X, msg.Y)
		p.down = slot >= 0
		p.pressed = slot
	case tea.MouseActionRelease:
		if !p.down {
			return core.Gesture{}, false
		}
		p.down = false
		slot := slotAt(msg.X, msg.Y)
		switch {
		case slot < 0:
			return core.Gesture{}, false
		case slot == p.pressed:
			return core.Gesture{Kind: core.GestureTap, From: slot, To: slot}, true
		default:
			return core.Gesture{Kind: core.GestureDrag, From: p.pressed, To: slot}, true
		}
	}
	return core.Gesture{}, false
}

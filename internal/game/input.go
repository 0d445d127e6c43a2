package game

import (
	"hungry-horace/internal/component"

	"github.com/gdamore/tcell/v2"
)

// Action represents a player-requested game action.
type Action uint8

const (
	ActionNone Action = iota
	ActionMoveUp
	ActionMoveDown
	ActionMoveRight
	ActionMoveLeft
	ActionPause
	ActionSave
	ActionLoad
	ActionQuit
)

// keyToAction maps a tcell key event to a game action.
func keyToAction(ev *tcell.EventKey) Action {
	// Named keys.
	switch ev.Key() {
	case tcell.KeyUp:
		return ActionMoveUp
	case tcell.KeyDown:
		return ActionMoveDown
	case tcell.KeyRight:
		return ActionMoveRight
	case tcell.KeyLeft:
		return ActionMoveLeft
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return ActionQuit
	case tcell.KeyCtrlS:
		return ActionSave
	case tcell.KeyCtrlL:
		return ActionLoad
	}

	if ev.Modifiers()&tcell.ModCtrl != 0 {
		switch ev.Rune() {
		case 's', 'S':
			return ActionSave
		case 'l', 'L':
			return ActionLoad
		}
	}

	// Rune keys.
	switch ev.Rune() {
	case 'k', 'K', 'w', 'W':
		return ActionMoveUp
	case 'j', 'J', 's', 'S':
		return ActionMoveDown
	case 'l', 'L', 'd', 'D':
		return ActionMoveRight
	case 'h', 'H', 'a', 'A':
		return ActionMoveLeft
	case ' ', 'p', 'P':
		return ActionPause
	case 'q', 'Q':
		return ActionQuit
	}
	return ActionNone
}

// actionToDirection converts a movement action to a facing.
func actionToDirection(a Action) (component.Direction, bool) {
	switch a {
	case ActionMoveUp:
		return component.DirUp, true
	case ActionMoveDown:
		return component.DirDown, true
	case ActionMoveRight:
		return component.DirRight, true
	case ActionMoveLeft:
		return component.DirLeft, true
	}
	return 0, false
}

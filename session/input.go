package session

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownAction = errors.New("session: unknown action")

type Action int

const (
	ActionNone Action = iota
	ActionMoveLeft
	ActionMoveRight
	ActionJump
)

func (a Action) String() string {
	switch a {
	case ActionMoveLeft:
		return "left"
	case ActionMoveRight:
		return "right"
	case ActionJump:
		return "jump"
	default:
		return "none"
	}
}

func ParseAction(s string) (Action, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "left":
		return ActionMoveLeft, nil
	case "right":
		return ActionMoveRight, nil
	case "jump":
		return ActionJump, nil
	default:
		return ActionNone, fmt.Errorf("%q: %w", s, ErrUnknownAction)
	}
}

// applyKey records a key edge on the intent. A release of either direction
// stops horizontal movement, matching a single shared velocity field. Jump
// only reacts to presses.
func applyKey(in Intent, a Action, pressed bool) Intent {
	switch a {
	case ActionMoveLeft:
		if pressed {
			in.MoveX = -1
		} else {
			in.MoveX = 0
		}
	case ActionMoveRight:
		if pressed {
			in.MoveX = 1
		} else {
			in.MoveX = 0
		}
	case ActionJump:
		if pressed {
			in.JumpQueued = true
		}
	}
	return in
}

package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/findthekeys/session"
)

type keyBinding struct {
	keys   []ebiten.Key
	action session.Action
}

var bindings = []keyBinding{
	{keys: []ebiten.Key{ebiten.KeyArrowLeft, ebiten.KeyA}, action: session.ActionMoveLeft},
	{keys: []ebiten.Key{ebiten.KeyArrowRight, ebiten.KeyD}, action: session.ActionMoveRight},
	{keys: []ebiten.Key{ebiten.KeyArrowUp, ebiten.KeyW, ebiten.KeySpace}, action: session.ActionJump},
}

// actionForKey returns the session action bound to k.
func actionForKey(k ebiten.Key) (session.Action, bool) {
	for _, b := range bindings {
		for _, bk := range b.keys {
			if bk == k {
				return b.action, true
			}
		}
	}
	return session.ActionNone, false
}

// pollKeys turns this tick's key edges into HandleKey calls. Presses are
// applied before releases so a tap within one tick still registers.
func pollKeys(c *session.Controller, s session.State) session.State {
	for _, k := range inpututil.AppendJustPressedKeys(nil) {
		if a, ok := actionForKey(k); ok {
			s = c.HandleKey(s, a, true)
		}
	}
	for _, k := range inpututil.AppendJustReleasedKeys(nil) {
		if a, ok := actionForKey(k); ok {
			s = c.HandleKey(s, a, false)
		}
	}
	return s
}

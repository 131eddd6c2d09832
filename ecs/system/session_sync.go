package system

import (
	"github.com/milk9111/findthekeys/ecs"
	"github.com/milk9111/findthekeys/ecs/component"
	"github.com/milk9111/findthekeys/session"
)

// SessionSyncSystem copies the session state into the scene each frame:
// the player and camera transforms follow the state and collected pickups
// lose their entities.
type SessionSyncSystem struct{}

func NewSessionSyncSystem() *SessionSyncSystem {
	return &SessionSyncSystem{}
}

func (s *SessionSyncSystem) Update(w *ecs.World, f ecs.Frame) {
	if w == nil {
		return
	}
	state := f.State

	if player, ok := ecs.First(w, component.PlayerTagComponent.Kind()); ok {
		if t, ok := ecs.Get(w, player, component.TransformComponent.Kind()); ok {
			t.X = state.Player.Pos.X
			t.Y = state.Player.Pos.Y
		}
		if sprite, ok := ecs.Get(w, player, component.SpriteComponent.Kind()); ok {
			if state.Player.Vel.X < 0 {
				sprite.FacingLeft = true
			} else if state.Player.Vel.X > 0 {
				sprite.FacingLeft = false
			}
			sprite.Hidden = !state.Player.Alive
		}
	}

	if cam, ok := ecs.First(w, component.CameraComponent.Kind()); ok {
		if t, ok := ecs.Get(w, cam, component.TransformComponent.Kind()); ok {
			t.X = state.Camera.X
			t.Y = state.Camera.Y
		}
	}

	var collected []ecs.Entity
	ecs.ForEach(w, component.PickupComponent.Kind(), func(e ecs.Entity, p *component.Pickup) {
		if !state.HasPickup(p.ID) {
			collected = append(collected, e)
		}
	})
	for _, e := range collected {
		ecs.DestroyEntity(w, e)
	}
}

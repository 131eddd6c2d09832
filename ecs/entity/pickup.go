package entity

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/findthekeys/ecs"
	"github.com/milk9111/findthekeys/ecs/component"
	"github.com/milk9111/findthekeys/session"
)

func NewPickup(w *ecs.World, p session.Pickup, img *ebiten.Image) (ecs.Entity, error) {
	e := ecs.CreateEntity(w)
	// Spread the bob so a row of keys does not move in lockstep.
	if err := ecs.Add(w, e, component.PickupComponent.Kind(), &component.Pickup{
		ID:       p.ID,
		BobPhase: float64(p.ID) * 0.7,
	}); err != nil {
		return 0, fmt.Errorf("pickup %d: add pickup: %w", p.ID, err)
	}
	if err := addBody(w, e, p.Pos, p.Width, p.Height, img, component.LayerPickups); err != nil {
		return 0, fmt.Errorf("pickup %d: %w", p.ID, err)
	}
	return e, nil
}

package entity

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/findthekeys/ecs"
	"github.com/milk9111/findthekeys/ecs/component"
	"github.com/milk9111/findthekeys/session"
)

func NewWall(w *ecs.World, wall session.Wall, img *ebiten.Image) (ecs.Entity, error) {
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.WallTagComponent.Kind(), &component.WallTag{Crate: wall.Kind == session.WallCrate}); err != nil {
		return 0, fmt.Errorf("wall: add tag: %w", err)
	}
	if err := addBody(w, e, wall.Pos, wall.Width, wall.Height, img, component.LayerWalls); err != nil {
		return 0, fmt.Errorf("wall: %w", err)
	}
	return e, nil
}

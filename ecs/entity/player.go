package entity

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/findthekeys/ecs"
	"github.com/milk9111/findthekeys/ecs/component"
	"github.com/milk9111/findthekeys/session"
)

func NewPlayer(w *ecs.World, p session.Player, img *ebiten.Image) (ecs.Entity, error) {
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{}); err != nil {
		return 0, fmt.Errorf("player: add tag: %w", err)
	}
	if err := addBody(w, e, p.Pos, p.Width, p.Height, img, component.LayerPlayer); err != nil {
		return 0, fmt.Errorf("player: %w", err)
	}
	return e, nil
}

func addBody(w *ecs.World, e ecs.Entity, pos session.Vec, width, height float64, img *ebiten.Image, layer int) error {
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{
		X:      pos.X,
		Y:      pos.Y,
		ScaleX: 1,
		ScaleY: 1,
	}); err != nil {
		return fmt.Errorf("add transform: %w", err)
	}
	if err := ecs.Add(w, e, component.SpriteComponent.Kind(), &component.Sprite{
		Image:  img,
		Width:  width,
		Height: height,
	}); err != nil {
		return fmt.Errorf("add sprite: %w", err)
	}
	if err := ecs.Add(w, e, component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: layer}); err != nil {
		return fmt.Errorf("add render layer: %w", err)
	}
	return nil
}

package entity

import (
	"fmt"

	"github.com/milk9111/findthekeys/ecs"
	"github.com/milk9111/findthekeys/ecs/component"
	"github.com/milk9111/findthekeys/session"
)

func NewCamera(w *ecs.World, offset session.Vec, viewportW, viewportH float64) (ecs.Entity, error) {
	camera := ecs.CreateEntity(w)
	if err := ecs.Add(w, camera, component.TransformComponent.Kind(), &component.Transform{
		X: offset.X,
		Y: offset.Y,
	}); err != nil {
		return 0, fmt.Errorf("camera: add transform: %w", err)
	}
	if err := ecs.Add(w, camera, component.CameraComponent.Kind(), &component.Camera{
		ViewportW: viewportW,
		ViewportH: viewportH,
	}); err != nil {
		return 0, fmt.Errorf("camera: add camera component: %w", err)
	}
	return camera, nil
}

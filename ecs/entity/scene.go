package entity

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/findthekeys/assets"
	"github.com/milk9111/findthekeys/ecs"
	"github.com/milk9111/findthekeys/ecs/component"
	"github.com/milk9111/findthekeys/prefabs"
	"github.com/milk9111/findthekeys/session"
)

// SceneAssets holds what the scene needs from disk. Nil images are allowed
// and simply draw nothing.
type SceneAssets struct {
	Player *ebiten.Image
	Wall   *ebiten.Image
	Crate  *ebiten.Image
	Pickup *ebiten.Image
	Audio  *component.Audio
}

func LoadSceneAssets(spec *prefabs.SceneSpec) (*SceneAssets, error) {
	if spec == nil {
		return nil, fmt.Errorf("scene assets: nil spec")
	}
	load := func(name, file string) (*ebiten.Image, error) {
		img, err := assets.LoadImage(file)
		if err != nil {
			return nil, fmt.Errorf("scene assets: %s sprite %q: %w", name, file, err)
		}
		return img, nil
	}

	var (
		out SceneAssets
		err error
	)
	if out.Player, err = load("player", spec.Sprites.Player); err != nil {
		return nil, err
	}
	if out.Wall, err = load("wall", spec.Sprites.Wall); err != nil {
		return nil, err
	}
	if out.Crate, err = load("crate", spec.Sprites.Crate); err != nil {
		return nil, err
	}
	if out.Pickup, err = load("pickup", spec.Sprites.Pickup); err != nil {
		return nil, err
	}
	if out.Audio, err = LoadAudio(spec.Audio); err != nil {
		return nil, fmt.Errorf("scene assets: %w", err)
	}
	return &out, nil
}

// BuildScene fills w with one entity per wall, pickup and the player, plus
// the camera and, when clips were loaded, an audio entity.
func BuildScene(w *ecs.World, s session.State, a *SceneAssets, viewportW, viewportH float64) error {
	if a == nil {
		a = &SceneAssets{}
	}

	for _, wall := range s.Walls {
		img := a.Wall
		if wall.Kind == session.WallCrate {
			img = a.Crate
		}
		if _, err := NewWall(w, wall, img); err != nil {
			return err
		}
	}
	for _, p := range s.Pickups {
		if _, err := NewPickup(w, p, a.Pickup); err != nil {
			return err
		}
	}
	if _, err := NewPlayer(w, s.Player, a.Player); err != nil {
		return err
	}
	if _, err := NewCamera(w, s.Camera, viewportW, viewportH); err != nil {
		return err
	}
	if a.Audio != nil {
		e := ecs.CreateEntity(w)
		if err := ecs.Add(w, e, component.AudioComponent.Kind(), a.Audio); err != nil {
			return fmt.Errorf("audio: add audio component: %w", err)
		}
	}
	return nil
}

package system

import (
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/findthekeys/common"
	"github.com/milk9111/findthekeys/ecs"
	"github.com/milk9111/findthekeys/ecs/component"
)

type RenderSystem struct{}

func NewRenderSystem() *RenderSystem {
	return &RenderSystem{}
}

// ScreenPos maps a world-space point to screen space for a camera whose
// bottom-left corner sits at (camX, camY).
func ScreenPos(x, y, camX, camY, viewportH float64) (float64, float64) {
	return x - camX, viewportH - (y - camY)
}

func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if r == nil || w == nil || screen == nil {
		return
	}

	camX, camY := 0.0, 0.0
	viewportH := float64(common.BaseHeight)
	if cam, ok := ecs.First(w, component.CameraComponent.Kind()); ok {
		if camTransform, ok := ecs.Get(w, cam, component.TransformComponent.Kind()); ok {
			camX = camTransform.X
			camY = camTransform.Y
		}
		if camComp, ok := ecs.Get(w, cam, component.CameraComponent.Kind()); ok && camComp.ViewportH > 0 {
			viewportH = camComp.ViewportH
		}
	}

	entities := ecs.Query(w, component.TransformComponent.Kind().ID(), component.SpriteComponent.Kind().ID())
	sort.SliceStable(entities, func(i, j int) bool {
		li := 0
		if layer, ok := ecs.Get(w, entities[i], component.RenderLayerComponent.Kind()); ok {
			li = layer.Index
		}
		lj := 0
		if layer, ok := ecs.Get(w, entities[j], component.RenderLayerComponent.Kind()); ok {
			lj = layer.Index
		}
		if li != lj {
			return li < lj
		}
		return uint64(entities[i]) < uint64(entities[j])
	})

	for _, e := range entities {
		t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
		if !ok {
			continue
		}

		s, ok := ecs.Get(w, e, component.SpriteComponent.Kind())
		if !ok || s.Image == nil || s.Hidden {
			continue
		}

		imgW := float64(s.Image.Bounds().Dx())
		imgH := float64(s.Image.Bounds().Dy())
		if imgW == 0 || imgH == 0 {
			continue
		}

		width, height := s.Width, s.Height
		if width == 0 {
			width = imgW
		}
		if height == 0 {
			height = imgH
		}
		if t.ScaleX != 0 {
			width *= t.ScaleX
		}
		if t.ScaleY != 0 {
			height *= t.ScaleY
		}

		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(-imgW/2, -imgH/2)
		sx := width / imgW
		if s.FacingLeft {
			sx = -sx
		}
		op.GeoM.Scale(sx, height/imgH)

		cx, cy := ScreenPos(t.X, t.Y, camX, camY, viewportH)
		op.GeoM.Translate(cx, cy)

		screen.DrawImage(s.Image, op)
	}
}

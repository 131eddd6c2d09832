package physics

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/findthekeys/common"
)

// DebugDraw renders the chipmunk shapes on top of the scene. camX/camY is
// the world-space bottom-left of the view.
func (e *Engine) DebugDraw(screen *ebiten.Image, camX, camY float64) {
	if e == nil || e.space == nil || screen == nil {
		return
	}
	cp.DrawSpace(e.space, &chipmunkDrawer{
		screen:  screen,
		camX:    camX,
		camY:    camY,
		screenH: float64(screen.Bounds().Dy()),
	})
}

type chipmunkDrawer struct {
	screen  *ebiten.Image
	camX    float64
	camY    float64
	screenH float64
}

func (d *chipmunkDrawer) toScreen(v cp.Vector) (float32, float32) {
	return float32(v.X - d.camX), float32(d.screenH - (v.Y - d.camY))
}

func (d *chipmunkDrawer) line(a, b cp.Vector, c color.Color) {
	x0, y0 := d.toScreen(a)
	x1, y1 := d.toScreen(b)
	vector.StrokeLine(d.screen, x0, y0, x1, y1, 1, c, false)
}

func (d *chipmunkDrawer) DrawCircle(pos cp.Vector, angle, radius float64, outline, fill cp.FColor, data interface{}) {
	x, y := d.toScreen(pos)
	vector.StrokeCircle(d.screen, x, y, float32(radius), 1, fcolorToRGBA(outline), false)
}

func (d *chipmunkDrawer) DrawSegment(a, b cp.Vector, fill cp.FColor, data interface{}) {
	d.line(a, b, fcolorToRGBA(fill))
}

func (d *chipmunkDrawer) DrawFatSegment(a, b cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	d.line(a, b, fcolorToRGBA(outline))
}

func (d *chipmunkDrawer) DrawPolygon(count int, verts []cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	if count == 0 {
		return
	}
	c := fcolorToRGBA(outline)
	for i := 0; i < count; i++ {
		d.line(verts[i], verts[(i+1)%count], c)
	}
}

func (d *chipmunkDrawer) DrawDot(size float64, pos cp.Vector, fill cp.FColor, data interface{}) {
	x, y := d.toScreen(pos)
	vector.FillCircle(d.screen, x, y, float32(size/2), fcolorToRGBA(fill), false)
}

func (d *chipmunkDrawer) Flags() uint {
	return cp.DRAW_SHAPES
}

func (d *chipmunkDrawer) OutlineColor() cp.FColor {
	return cp.FColor{R: 0.2, G: 1.0, B: 0.2, A: 1.0}
}

func (d *chipmunkDrawer) ShapeColor(shape *cp.Shape, data interface{}) cp.FColor {
	if shape == nil {
		return cp.FColor{R: 1, G: 1, B: 1, A: 1}
	}
	if shape.Sensor() {
		return cp.FColor{R: 1.0, G: 0.85, B: 0.2, A: 1.0}
	}
	if shape.Body() != nil && shape.Body().GetType() == cp.BODY_STATIC {
		return cp.FColor{R: 0.3, G: 0.5, B: 1.0, A: 1.0}
	}
	return cp.FColor{R: 1.0, G: 0.3, B: 0.6, A: 1.0}
}

func (d *chipmunkDrawer) ConstraintColor() cp.FColor {
	return cp.FColor{R: 0.7, G: 0.7, B: 0.7, A: 1.0}
}

func (d *chipmunkDrawer) CollisionPointColor() cp.FColor {
	return cp.FColor{R: 1.0, G: 0.1, B: 0.1, A: 1.0}
}

func (d *chipmunkDrawer) Data() interface{} {
	return nil
}

func fcolorToRGBA(c cp.FColor) color.RGBA {
	channel := func(v float32) uint8 {
		return uint8(common.Clamp(float64(v), 0, 1) * 255)
	}
	return color.RGBA{R: channel(c.R), G: channel(c.G), B: channel(c.B), A: channel(c.A)}
}

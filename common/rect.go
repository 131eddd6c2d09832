package common

// Rect is an axis aligned box in world space. X/Y is the bottom-left corner
// because the world is y-up.
type Rect struct {
	X, Y          float64
	Width, Height float64
}

// RectFromCenter builds a Rect around a center point.
func RectFromCenter(cx, cy, w, h float64) Rect {
	return Rect{X: cx - w/2, Y: cy - h/2, Width: w, Height: h}
}

func (r Rect) Intersects(other Rect) bool {
	return r.X < other.X+other.Width &&
		r.X+r.Width > other.X &&
		r.Y < other.Y+other.Height &&
		r.Y+r.Height > other.Y
}

func (r Rect) Right() float64 { return r.X + r.Width }
func (r Rect) Top() float64   { return r.Y + r.Height }

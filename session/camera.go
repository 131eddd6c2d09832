package session

import "github.com/milk9111/findthekeys/common"

// FollowCamera centers the viewport on target, clamped so the view never
// shows negative world coordinates.
func FollowCamera(target Vec, viewportW, viewportH float64) Vec {
	return Vec{
		X: common.NonNegative(target.X - viewportW/2),
		Y: common.NonNegative(target.Y - viewportH/2),
	}
}

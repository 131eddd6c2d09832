package component

// Camera marks the view entity. Its transform holds the world-space
// bottom-left corner of the viewport.
type Camera struct {
	ViewportW float64
	ViewportH float64
}

var CameraComponent = NewComponent[Camera]()

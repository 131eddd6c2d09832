package component

// Draw order, back to front.
const (
	LayerWalls = iota
	LayerPickups
	LayerPlayer
)

// RenderLayer sorts draws; ties fall back to entity order.
type RenderLayer struct {
	Index int
}

var RenderLayerComponent = NewComponent[RenderLayer]()

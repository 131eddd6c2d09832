package component

// Pickup mirrors a session pickup. The bob fields only move the sprite; the
// session keeps the collision box where it was placed.
type Pickup struct {
	ID           int
	BaseY        float64
	BobAmplitude float64
	BobSpeed     float64
	BobPhase     float64
	Initialized  bool
}

var PickupComponent = NewComponent[Pickup]()

package session

type EventKind int

const (
	EventJump EventKind = iota + 1
	EventPickup
	EventLost
	EventWon
)

func (k EventKind) String() string {
	switch k {
	case EventJump:
		return "jump"
	case EventPickup:
		return "pickup"
	case EventLost:
		return "lost"
	case EventWon:
		return "won"
	default:
		return "unknown"
	}
}

// Event is emitted by Advance for the presentation layer (sounds, logs).
type Event struct {
	Kind EventKind
	// PickupID is set for EventPickup.
	PickupID int
}

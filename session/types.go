package session

import "github.com/milk9111/findthekeys/common"

type Vec struct {
	X, Y float64
}

// Player is the only dynamic entity. Pos is the body center.
type Player struct {
	Pos      Vec
	Vel      Vec
	Width    float64
	Height   float64
	Grounded bool
	Alive    bool
}

func (p Player) Bounds() common.Rect {
	return common.RectFromCenter(p.Pos.X, p.Pos.Y, p.Width, p.Height)
}

type WallKind int

const (
	WallTile WallKind = iota
	WallCrate
)

// Wall is immutable once the level is set up.
type Wall struct {
	Kind   WallKind
	Pos    Vec
	Width  float64
	Height float64
}

func (w Wall) Bounds() common.Rect {
	return common.RectFromCenter(w.Pos.X, w.Pos.Y, w.Width, w.Height)
}

type Pickup struct {
	ID     int
	Pos    Vec
	Width  float64
	Height float64
}

func (p Pickup) Bounds() common.Rect {
	return common.RectFromCenter(p.Pos.X, p.Pos.Y, p.Width, p.Height)
}

type Terminal int

const (
	TerminalNone Terminal = iota
	TerminalLost
	TerminalWon
)

func (t Terminal) String() string {
	switch t {
	case TerminalLost:
		return "lost"
	case TerminalWon:
		return "won"
	default:
		return "none"
	}
}

// Intent is the input recorded between frames.
type Intent struct {
	// MoveX is -1, 0 or +1.
	MoveX      float64
	JumpQueued bool
}

// State is a full snapshot of a play session. Advance never mutates the
// State it is given; Walls is shared between snapshots and must be treated
// as read-only.
type State struct {
	Frame        int
	Score        int
	TotalPickups int
	Terminal     Terminal
	Camera       Vec
	Player       Player
	Walls        []Wall
	Pickups      []Pickup
	Intent       Intent
}

func (s State) Playing() bool {
	return s.Terminal == TerminalNone
}

// HasPickup reports whether a pickup with the given id is still active.
func (s State) HasPickup(id int) bool {
	for _, p := range s.Pickups {
		if p.ID == id {
			return true
		}
	}
	return false
}

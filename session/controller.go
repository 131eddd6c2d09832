package session

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/milk9111/findthekeys/levels"
)

var ErrNilLevel = errors.New("session: level is nil")

// Controller runs the play rules. It holds no play state of its own; every
// call takes a State and returns the next one.
type Controller struct {
	physics Physics
	cfg     Config
}

func NewController(physics Physics, cfg Config) *Controller {
	return &Controller{physics: physics, cfg: cfg}
}

func (c *Controller) Config() Config {
	return c.cfg
}

// SetConfig swaps tuning between frames. Entity sizes already placed are
// left alone until the next Setup.
func (c *Controller) SetConfig(cfg Config) {
	c.cfg = cfg
}

// Setup builds a fresh session from a level definition and loads its walls
// into the physics collaborator. Calling it again restarts the game.
func (c *Controller) Setup(lvl *levels.Level) (State, error) {
	if lvl == nil {
		return State{}, ErrNilLevel
	}
	if err := lvl.Validate(); err != nil {
		return State{}, err
	}

	walls, err := buildWalls(lvl)
	if err != nil {
		return State{}, fmt.Errorf("session: build walls: %w", err)
	}
	pickups, err := buildPickups(lvl)
	if err != nil {
		return State{}, fmt.Errorf("session: build pickups: %w", err)
	}

	player := Player{
		Pos:    Vec{X: lvl.PlayerStart.X, Y: lvl.PlayerStart.Y},
		Width:  c.cfg.PlayerWidth,
		Height: c.cfg.PlayerHeight,
		Alive:  true,
	}

	if c.physics != nil {
		c.physics.Load(walls)
	}

	s := State{
		TotalPickups: len(pickups),
		Terminal:     TerminalNone,
		Player:       player,
		Walls:        walls,
		Pickups:      pickups,
	}
	s.Camera = FollowCamera(player.Pos, c.cfg.ViewportW, c.cfg.ViewportH)

	log.Info("session setup", "level", lvl.Name, "walls", len(walls), "pickups", len(pickups))
	return s, nil
}

func buildWalls(lvl *levels.Level) ([]Wall, error) {
	tiles, err := lvl.Walls.Expand()
	if err != nil {
		return nil, err
	}
	crates, err := lvl.Crates.Expand()
	if err != nil {
		return nil, err
	}

	walls := make([]Wall, 0, len(tiles)+len(crates))
	for _, pt := range tiles {
		walls = append(walls, Wall{Kind: WallTile, Pos: Vec{X: pt.X, Y: pt.Y}, Width: lvl.WallSize.W, Height: lvl.WallSize.H})
	}
	for _, pt := range crates {
		walls = append(walls, Wall{Kind: WallCrate, Pos: Vec{X: pt.X, Y: pt.Y}, Width: lvl.CrateSize.W, Height: lvl.CrateSize.H})
	}
	return walls, nil
}

func buildPickups(lvl *levels.Level) ([]Pickup, error) {
	pts, err := lvl.Pickups.Expand()
	if err != nil {
		return nil, err
	}
	pickups := make([]Pickup, 0, len(pts))
	for i, pt := range pts {
		pickups = append(pickups, Pickup{
			ID:     i + 1,
			Pos:    Vec{X: pt.X, Y: pt.Y},
			Width:  lvl.PickupSize.W,
			Height: lvl.PickupSize.H,
		})
	}
	return pickups, nil
}

// HandleKey records an input edge. It has no effect once the session has
// ended.
func (c *Controller) HandleKey(s State, a Action, pressed bool) State {
	if !s.Playing() {
		return s
	}
	s.Intent = applyKey(s.Intent, a, pressed)
	return s
}

// Advance runs one frame: movement intent, physics, pickups, the death and
// win checks and the camera. Once the session is lost or won it returns s
// untouched.
func (c *Controller) Advance(s State, dt float64) (State, []Event) {
	if !s.Playing() {
		return s, nil
	}

	next := s
	next.Frame++
	var events []Event

	p := next.Player
	p.Vel.X = next.Intent.MoveX * c.cfg.MoveSpeed
	if next.Intent.JumpQueued {
		if p.Grounded {
			p.Vel.Y = c.cfg.JumpSpeed
			events = append(events, Event{Kind: EventJump})
		}
		next.Intent.JumpQueued = false
	}

	if c.physics != nil {
		p = c.physics.Step(p, dt)
	}
	next.Player = p

	bounds := p.Bounds()
	remaining := make([]Pickup, 0, len(s.Pickups))
	for _, k := range s.Pickups {
		if bounds.Intersects(k.Bounds()) {
			next.Score++
			events = append(events, Event{Kind: EventPickup, PickupID: k.ID})
			log.Debug("pickup collected", "id", k.ID, "score", next.Score, "frame", next.Frame)
			continue
		}
		remaining = append(remaining, k)
	}
	next.Pickups = remaining

	switch {
	case p.Pos.Y < c.cfg.DeathY:
		next.Terminal = TerminalLost
		next.Player.Alive = false
		events = append(events, Event{Kind: EventLost})
		log.Info("session lost", "frame", next.Frame, "score", next.Score)
	case next.TotalPickups > 0 && next.Score >= next.TotalPickups:
		next.Terminal = TerminalWon
		events = append(events, Event{Kind: EventWon})
		log.Info("session won", "frame", next.Frame, "score", next.Score)
	}

	next.Camera = FollowCamera(next.Player.Pos, c.cfg.ViewportW, c.cfg.ViewportH)
	return next, events
}

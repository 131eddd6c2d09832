package physics

import (
	"math"
	"testing"

	"github.com/milk9111/findthekeys/common"
	"github.com/milk9111/findthekeys/levels"
	"github.com/milk9111/findthekeys/prefabs"
	"github.com/milk9111/findthekeys/session"
)

func groundRow(start, stop, step float64) []session.Wall {
	var walls []session.Wall
	for x := start; x < stop; x += step {
		walls = append(walls, session.Wall{Kind: session.WallTile, Pos: session.Vec{X: x, Y: 32}, Width: 64, Height: 64})
	}
	return walls
}

func newPlayer(x, y float64) session.Player {
	return session.Player{Pos: session.Vec{X: x, Y: y}, Width: 40, Height: 64, Alive: true}
}

func crate(x, y float64) session.Wall {
	return session.Wall{Kind: session.WallCrate, Pos: session.Vec{X: x, Y: y}, Width: 64, Height: 64}
}

// restingOn reports whether the player's feet sit on top of one of solids.
func restingOn(p session.Player, solids []common.Rect) bool {
	b := p.Bounds()
	for _, s := range solids {
		if b.X < s.Right() && b.Right() > s.X && math.Abs(b.Y-s.Top()) <= 1 {
			return true
		}
	}
	return false
}

func TestEngineLoadMergesGround(t *testing.T) {
	e := NewEngine(DefaultConfig())
	e.Load(groundRow(0, 640, 64))
	if got := len(e.Solids()); got != 1 {
		t.Fatalf("expected ground row merged into 1 box, got %d", got)
	}
}

func TestEngineLandsAndGrounds(t *testing.T) {
	e := NewEngine(DefaultConfig())
	e.Load(groundRow(0, 640, 64))

	p := newPlayer(200, 300)
	for i := 0; i < 120; i++ {
		p = e.Step(p, 1)
	}
	if !p.Grounded {
		t.Fatalf("expected grounded after landing, got %+v", p)
	}
	bottom := p.Pos.Y - p.Height/2
	if math.Abs(bottom-64) > 1 {
		t.Fatalf("expected feet near ground top 64, got %v", bottom)
	}
}

func TestEngineNoFallThrough(t *testing.T) {
	e := NewEngine(DefaultConfig())
	e.Load(groundRow(0, 640, 64))

	p := newPlayer(300, 200)
	p.Vel.Y = -30
	for i := 0; i < 200; i++ {
		p = e.Step(p, 1)
		if p.Pos.Y-p.Height/2 < 64-1e-6 {
			t.Fatalf("frame %d: player sank into ground, y=%v", i, p.Pos.Y)
		}
	}
}

func TestEngineHorizontalMoveIsExact(t *testing.T) {
	e := NewEngine(DefaultConfig())
	e.Load(groundRow(0, 1280, 64))

	p := newPlayer(64, 96)
	for i := 0; i < 30; i++ {
		p = e.Step(p, 1)
	}
	startX := p.Pos.X
	const frames = 50
	for i := 0; i < frames; i++ {
		p.Vel.X = 5
		p = e.Step(p, 1)
	}
	want := startX + 5*frames
	if math.Abs(p.Pos.X-want) > 1e-3 {
		t.Fatalf("expected x=%v, got %v", want, p.Pos.X)
	}
	if !p.Grounded {
		t.Fatalf("expected to stay grounded while walking")
	}
}

func TestEngineStopsAtWall(t *testing.T) {
	tests := []struct {
		name   string
		startX float64
		velX   float64
		// edge returns how far the player reaches past the crate face;
		// it must never be positive.
		edge func(b common.Rect) float64
	}{
		{"right into crate", 64, 5, func(b common.Rect) float64 { return b.Right() - 224 }},
		{"left into crate", 480, -5, func(b common.Rect) float64 { return 288 - b.X }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewEngine(DefaultConfig())
			e.Load(append(groundRow(0, 1280, 64), crate(256, 96)))

			p := newPlayer(tt.startX, 96)
			for i := 0; i < 10; i++ {
				p = e.Step(p, 1)
			}
			for i := 0; i < 80; i++ {
				p.Vel.X = tt.velX
				p = e.Step(p, 1)
				b := p.Bounds()
				if d := tt.edge(b); d > 1e-6 {
					t.Fatalf("frame %d: player %v px inside the crate", i, d)
				}
				if b.Y < 64-1e-6 {
					t.Fatalf("frame %d: feet sank to %v", i, b.Y)
				}
			}
			if d := tt.edge(p.Bounds()); math.Abs(d) > 1e-6 {
				t.Fatalf("expected player flush with the crate, gap %v", d)
			}
			if !p.Grounded {
				t.Fatalf("expected grounded while pushing the crate")
			}
		})
	}
}

func TestEngineWallSideDoesNotGround(t *testing.T) {
	e := NewEngine(DefaultConfig())
	e.Load([]session.Wall{crate(256, 400)})

	// Falling past the crate face while pressing into it.
	p := newPlayer(200, 420)
	for i := 0; i < 20; i++ {
		p.Vel.X = 5
		p = e.Step(p, 1)
		if p.Bounds().Right() > 224+1e-6 {
			t.Fatalf("frame %d: player inside the crate, right=%v", i, p.Bounds().Right())
		}
		if p.Grounded && !restingOn(p, e.Solids()) {
			t.Fatalf("frame %d: grounded against the crate side at y=%v", i, p.Pos.Y)
		}
	}
}

func TestEngineFallsThroughGap(t *testing.T) {
	e := NewEngine(DefaultConfig())
	walls := append(groundRow(0, 1250, 64), groundRow(1500, 2800, 250)...)
	e.Load(walls)

	p := newPlayer(1360, 96)
	for i := 0; i < 60; i++ {
		p = e.Step(p, 1)
	}
	if p.Pos.Y >= 10 {
		t.Fatalf("expected player to fall below 10 in the gap, got %v", p.Pos.Y)
	}
	if p.Grounded {
		t.Fatalf("expected airborne while falling")
	}
}

func TestEngineGroundGrace(t *testing.T) {
	cfg := DefaultConfig()
	cfg.GroundGraceFrames = 5
	e := NewEngine(cfg)
	e.Load(groundRow(0, 128, 64))

	p := newPlayer(64, 96)
	for i := 0; i < 10; i++ {
		p = e.Step(p, 1)
	}
	if !p.Grounded {
		t.Fatalf("expected grounded on the ledge")
	}

	// Teleport off the ledge; grace keeps grounded for a few frames.
	p.Pos.X = 400
	p = e.Step(p, 1)
	if !p.Grounded {
		t.Fatalf("expected grace to keep grounded on the first airborne frame")
	}
	for i := 0; i < 10; i++ {
		p = e.Step(p, 1)
	}
	if p.Grounded {
		t.Fatalf("expected grace to run out")
	}
}

func TestConfigFromSpec(t *testing.T) {
	if got := ConfigFromSpec(nil); got != DefaultConfig() {
		t.Fatalf("expected defaults for nil spec, got %+v", got)
	}
	got := ConfigFromSpec(&prefabs.WorldSpec{Gravity: 2, GroundGraceFrames: 3, WallFriction: 0.5})
	want := Config{Gravity: 2, Iterations: 20, GroundGraceFrames: 3, WallFriction: 0.5}
	if got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

func TestControllerWithEngine(t *testing.T) {
	lvl, err := levels.Default()
	if err != nil {
		t.Fatalf("load default level: %v", err)
	}
	c := session.NewController(NewEngine(DefaultConfig()), session.DefaultConfig())
	s, err := c.Setup(lvl)
	if err != nil {
		t.Fatalf("setup: %v", err)
	}

	// Settle on the ground, then jump.
	for i := 0; i < 5; i++ {
		s, _ = c.Advance(s, 1)
	}
	if !s.Player.Grounded {
		t.Fatalf("expected grounded at start, got %+v", s.Player)
	}
	s = c.HandleKey(s, session.ActionJump, true)
	s, events := c.Advance(s, 1)
	if len(events) == 0 || events[0].Kind != session.EventJump {
		t.Fatalf("expected jump event, got %v", events)
	}
	if s.Player.Pos.Y <= 96 {
		t.Fatalf("expected player to rise, got y=%v", s.Player.Pos.Y)
	}

	for i := 0; i < 120 && s.Playing(); i++ {
		s, _ = c.Advance(s, 1)
	}
	if !s.Player.Grounded {
		t.Fatalf("expected to land again")
	}
	if s.Camera.X < 0 || s.Camera.Y < 0 {
		t.Fatalf("camera went negative: %+v", s.Camera)
	}
}

func TestControllerNoAirJumpAgainstCrate(t *testing.T) {
	lvl, err := levels.Default()
	if err != nil {
		t.Fatalf("load default level: %v", err)
	}
	e := NewEngine(DefaultConfig())
	c := session.NewController(e, session.DefaultConfig())
	s, err := c.Setup(lvl)
	if err != nil {
		t.Fatalf("setup: %v", err)
	}

	s = c.HandleKey(s, session.ActionMoveRight, true)
	for i := 0; i < 60; i++ {
		s, _ = c.Advance(s, 1)
	}
	if right := s.Player.Bounds().Right(); math.Abs(right-224) > 1e-6 {
		t.Fatalf("expected to be pressed against the crate at 224, right edge %v", right)
	}

	jumps := 0
	for i := 0; i < 120 && s.Playing(); i++ {
		prev := s.Player
		s = c.HandleKey(s, session.ActionJump, true)
		var events []session.Event
		s, events = c.Advance(s, 1)
		for _, ev := range events {
			if ev.Kind != session.EventJump {
				continue
			}
			jumps++
			if prev.Vel.Y > 1 {
				t.Fatalf("frame %d: jumped while rising, vy=%v", i, prev.Vel.Y)
			}
			if !restingOn(prev, e.Solids()) {
				t.Fatalf("frame %d: jumped in mid-air, feet=%v", i, prev.Bounds().Y)
			}
		}
	}
	if jumps == 0 {
		t.Fatalf("expected at least one jump from the ground")
	}
}

package physics

import (
	"math"

	"github.com/charmbracelet/log"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/findthekeys/common"
	"github.com/milk9111/findthekeys/prefabs"
	"github.com/milk9111/findthekeys/session"
)

const (
	collisionTypePlayer cp.CollisionType = iota + 1
	collisionTypePlayerGround
	collisionTypeSolid
)

// sensorDepth is how far below the feet the ground sensor reaches.
const sensorDepth = 2.0

const (
	overlapEpsilon = 1e-6
	maxPushPasses  = 4
	// risingSpeed is the upward speed above which contacts never ground.
	risingSpeed = 0.5
)

type wallSide int

const (
	wallNone wallSide = iota
	wallLeft
	wallRight
)

type Config struct {
	// Gravity is the downward acceleration in pixels per frame squared.
	Gravity           float64
	Iterations        int
	GroundGraceFrames int
	WallFriction      float64
}

func DefaultConfig() Config {
	return Config{Gravity: 1, Iterations: 20, WallFriction: 0.8}
}

func ConfigFromSpec(w *prefabs.WorldSpec) Config {
	cfg := DefaultConfig()
	if w == nil {
		return cfg
	}
	cfg.Gravity = w.Gravity
	if w.SolverIterations > 0 {
		cfg.Iterations = w.SolverIterations
	}
	cfg.GroundGraceFrames = w.GroundGraceFrames
	cfg.WallFriction = w.WallFriction
	return cfg
}

// Engine is a chipmunk backed session.Physics. The world is y-up, so
// gravity points towards negative Y.
type Engine struct {
	cfg   Config
	space *cp.Space

	playerBody  *cp.Body
	playerShape *cp.Shape
	groundShape *cp.Shape
	playerW     float64
	playerH     float64

	solids []common.Rect

	grounded    bool
	groundGrace int
	wall        wallSide
}

var _ session.Physics = (*Engine)(nil)

func NewEngine(cfg Config) *Engine {
	e := &Engine{cfg: cfg}
	e.reset()
	return e
}

// SetConfig applies new tuning to the running space.
func (e *Engine) SetConfig(cfg Config) {
	e.cfg = cfg
	if e.space != nil {
		e.space.Iterations = uint(cfg.Iterations)
		e.space.SetGravity(cp.Vector{X: 0, Y: -cfg.Gravity})
	}
}

func (e *Engine) reset() {
	space := cp.NewSpace()
	space.Iterations = uint(e.cfg.Iterations)
	space.SetGravity(cp.Vector{X: 0, Y: -e.cfg.Gravity})
	e.space = space
	e.playerBody = nil
	e.playerShape = nil
	e.groundShape = nil
	e.solids = nil
	e.grounded = false
	e.groundGrace = 0
	e.wall = wallNone
	e.setupHandlers()
}

// Load rebuilds the space from scratch with the given walls as static
// boxes. Touching walls in the same row are merged first.
func (e *Engine) Load(walls []session.Wall) {
	e.reset()

	rects := make([]common.Rect, 0, len(walls))
	for _, w := range walls {
		rects = append(rects, w.Bounds())
	}
	e.solids = MergeRows(rects)

	for _, r := range e.solids {
		bb := cp.BB{L: r.X, B: r.Y, R: r.Right(), T: r.Top()}
		shape := cp.NewBox2(e.space.StaticBody, bb, 0)
		shape.SetFriction(e.cfg.WallFriction)
		shape.SetCollisionType(collisionTypeSolid)
		e.space.AddShape(shape)
	}
	log.Debug("physics: loaded walls", "walls", len(walls), "shapes", len(e.solids))
}

// Solids returns the static boxes in the space.
func (e *Engine) Solids() []common.Rect {
	return e.solids
}

func (e *Engine) ensurePlayer(p session.Player) {
	if e.playerBody != nil && e.playerW == p.Width && e.playerH == p.Height {
		return
	}
	if e.playerBody != nil {
		e.space.RemoveShape(e.playerShape)
		e.space.RemoveShape(e.groundShape)
		e.space.RemoveBody(e.playerBody)
	}

	mass := 1.0
	body := cp.NewBody(mass, math.Inf(1))
	body.SetAngle(0)
	body.SetAngularVelocity(0)

	shape := cp.NewBox(body, p.Width, p.Height, 0)
	shape.SetFriction(0)
	shape.SetCollisionType(collisionTypePlayer)

	groundBB := cp.BB{
		L: -p.Width * 0.45,
		B: -p.Height/2 - sensorDepth,
		R: p.Width * 0.45,
		T: -p.Height / 2,
	}
	groundShape := cp.NewBox2(body, groundBB, 0)
	groundShape.SetSensor(true)
	groundShape.SetCollisionType(collisionTypePlayerGround)

	e.space.AddBody(body)
	e.space.AddShape(shape)
	e.space.AddShape(groundShape)

	e.playerBody = body
	e.playerShape = shape
	e.groundShape = groundShape
	e.playerW = p.Width
	e.playerH = p.Height
	log.Debug("physics: created player body", "w", p.Width, "h", p.Height)
}

func (e *Engine) setupHandlers() {
	wallHandler := e.space.NewCollisionHandler(collisionTypePlayer, collisionTypeSolid)
	wallHandler.UserData = e
	wallHandler.PreSolveFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		eng, ok := userData.(*Engine)
		if !ok || eng == nil {
			return true
		}
		// The normal points from the first shape to the second.
		n := arb.Normal()
		if a, _ := arb.Shapes(); a != eng.playerShape {
			n = n.Neg()
		}
		if n.X > 0.5 {
			eng.wall = wallRight
		} else if n.X < -0.5 {
			eng.wall = wallLeft
		}
		return true
	}

	groundHandler := e.space.NewCollisionHandler(collisionTypePlayerGround, collisionTypeSolid)
	groundHandler.UserData = e
	groundHandler.PreSolveFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		eng, ok := userData.(*Engine)
		if !ok || eng == nil {
			return true
		}
		n := arb.Normal()
		if a, _ := arb.Shapes(); a != eng.groundShape {
			n = n.Neg()
		}
		// Only support from below counts; the sensor brushing a wall side
		// does not.
		if n.Y > -0.5 || eng.playerBody.Velocity().Y > risingSpeed {
			return true
		}
		eng.grounded = true
		eng.groundGrace = eng.cfg.GroundGraceFrames
		return true
	}
}

// Step moves the player by dt frames. The session owns position and
// velocity, so both are pushed into the body before stepping and read back
// afterwards. Velocity into a wall touched last step is dropped, and any
// overlap left by the solver is pushed out before returning.
func (e *Engine) Step(p session.Player, dt float64) session.Player {
	e.ensurePlayer(p)

	vel := cp.Vector{X: p.Vel.X, Y: p.Vel.Y}
	if (e.wall == wallRight && vel.X > 0) || (e.wall == wallLeft && vel.X < 0) {
		vel.X = 0
	}
	e.playerBody.SetPosition(cp.Vector{X: p.Pos.X, Y: p.Pos.Y})
	e.playerBody.SetVelocityVector(vel)

	if e.groundGrace > 0 {
		e.groundGrace--
	}
	e.grounded = false
	e.wall = wallNone

	e.space.Step(dt)

	pos := e.playerBody.Position()
	vel = e.playerBody.Velocity()
	box := common.RectFromCenter(pos.X, pos.Y, p.Width, p.Height)
	if e.pushOut(&box, &vel) {
		e.grounded = true
		e.groundGrace = e.cfg.GroundGraceFrames
	}
	pos = cp.Vector{X: box.X + box.Width/2, Y: box.Y + box.Height/2}
	e.playerBody.SetPosition(pos)
	e.playerBody.SetVelocityVector(vel)

	p.Pos = session.Vec{X: pos.X, Y: pos.Y}
	p.Vel = session.Vec{X: vel.X, Y: vel.Y}
	p.Grounded = e.grounded || e.groundGrace > 0
	return p
}

// pushOut separates box from every solid along the axis of least overlap
// and cancels the velocity pointing into it. It reports whether the box was
// lifted onto a surface.
func (e *Engine) pushOut(box *common.Rect, vel *cp.Vector) bool {
	landed := false
	for pass := 0; pass < maxPushPasses; pass++ {
		moved := false
		for _, s := range e.solids {
			ox := math.Min(box.Right()-s.X, s.Right()-box.X)
			oy := math.Min(box.Top()-s.Y, s.Top()-box.Y)
			if ox <= overlapEpsilon || oy <= overlapEpsilon {
				continue
			}
			moved = true
			if ox < oy {
				if box.X+box.Width/2 < s.X+s.Width/2 {
					box.X = s.X - box.Width
					vel.X = math.Min(vel.X, 0)
					e.wall = wallRight
				} else {
					box.X = s.Right()
					vel.X = math.Max(vel.X, 0)
					e.wall = wallLeft
				}
				continue
			}
			if box.Y+box.Height/2 >= s.Y+s.Height/2 {
				box.Y = s.Top()
				if vel.Y <= risingSpeed {
					landed = true
				}
				vel.Y = math.Max(vel.Y, 0)
			} else {
				box.Y = s.Y - box.Height
				vel.Y = math.Min(vel.Y, 0)
			}
		}
		if !moved {
			break
		}
	}
	return landed
}

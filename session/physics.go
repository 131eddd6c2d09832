package session

// Physics integrates the player against the level walls.
//
// Load replaces the static walls. Step advances the player by dt frames
// under gravity, resolves wall contacts so the player never ends up inside
// a wall, and reports ground contact through Player.Grounded.
type Physics interface {
	Load(walls []Wall)
	Step(p Player, dt float64) Player
}

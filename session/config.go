package session

import "github.com/milk9111/findthekeys/prefabs"

// Config carries the tuning the controller needs. Speeds are in pixels per
// frame, so a dt of 1 is one frame at common.TPS.
type Config struct {
	PlayerWidth  float64
	PlayerHeight float64
	MoveSpeed    float64
	JumpSpeed    float64
	DeathY       float64
	ViewportW    float64
	ViewportH    float64
}

func DefaultConfig() Config {
	return Config{
		PlayerWidth:  40,
		PlayerHeight: 64,
		MoveSpeed:    5,
		JumpSpeed:    15,
		DeathY:       10,
		ViewportW:    1000,
		ViewportH:    600,
	}
}

func NewConfig(player *prefabs.PlayerSpec, world *prefabs.WorldSpec) Config {
	cfg := DefaultConfig()
	if player != nil {
		cfg.PlayerWidth = player.Width
		cfg.PlayerHeight = player.Height
		cfg.MoveSpeed = player.MoveSpeed
		cfg.JumpSpeed = player.JumpSpeed
	}
	if world != nil {
		cfg.DeathY = world.DeathY
		cfg.ViewportW = world.Viewport.Width
		cfg.ViewportH = world.Viewport.Height
	}
	return cfg
}

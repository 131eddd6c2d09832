package prefabs

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
	"gopkg.in/yaml.v3"
)

const (
	PlayerSpecFile = "player.yaml"
	WorldSpecFile  = "world.yaml"
	SceneSpecFile  = "scene.yaml"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// PlayerSpec tunes the player body. Speeds are pixels per frame.
type PlayerSpec struct {
	Name      string  `yaml:"name"`
	Width     float64 `yaml:"width"`
	Height    float64 `yaml:"height"`
	MoveSpeed float64 `yaml:"move_speed"`
	JumpSpeed float64 `yaml:"jump_speed"`
}

func LoadPlayerSpec() (*PlayerSpec, error) {
	spec, err := LoadSpec[PlayerSpec](PlayerSpecFile)
	if err != nil {
		return nil, err
	}
	if spec.Width <= 0 || spec.Height <= 0 {
		return nil, fmt.Errorf("prefabs: %s: player size must be positive", PlayerSpecFile)
	}
	return &spec, nil
}

type ViewportSpec struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// WorldSpec holds the physics and camera constants shared by every level.
type WorldSpec struct {
	Gravity           float64      `yaml:"gravity"`
	DeathY            float64      `yaml:"death_y"`
	SolverIterations  int          `yaml:"solver_iterations"`
	GroundGraceFrames int          `yaml:"ground_grace_frames"`
	WallFriction      float64      `yaml:"wall_friction"`
	Viewport          ViewportSpec `yaml:"viewport"`
}

func LoadWorldSpec() (*WorldSpec, error) {
	spec, err := LoadSpec[WorldSpec](WorldSpecFile)
	if err != nil {
		return nil, err
	}
	if spec.Viewport.Width <= 0 || spec.Viewport.Height <= 0 {
		return nil, fmt.Errorf("prefabs: %s: viewport must be positive", WorldSpecFile)
	}
	if spec.SolverIterations <= 0 {
		spec.SolverIterations = 20
	}
	return &spec, nil
}

type SpriteSet struct {
	Player string `yaml:"player"`
	Wall   string `yaml:"wall"`
	Crate  string `yaml:"crate"`
	Pickup string `yaml:"pickup"`
}

type AudioSpec struct {
	Name   string  `yaml:"name"`
	File   string  `yaml:"file"`
	Volume float64 `yaml:"volume"`
}

type TextSpec struct {
	Text  string    `yaml:"text"`
	X     float64   `yaml:"x"`
	Y     float64   `yaml:"y"`
	Size  float64   `yaml:"size"`
	Color YAMLColor `yaml:"color"`
}

// SceneSpec describes how the session is presented: sprites, sounds and
// the screen-space overlays.
type SceneSpec struct {
	Background YAMLColor   `yaml:"background"`
	Sprites    SpriteSet   `yaml:"sprites"`
	Audio      []AudioSpec `yaml:"audio"`
	Score      TextSpec    `yaml:"score"`
	Lost       TextSpec    `yaml:"lost"`
	Won        TextSpec    `yaml:"won"`
}

func LoadSceneSpec() (*SceneSpec, error) {
	spec, err := LoadSpec[SceneSpec](SceneSpecFile)
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

// YAMLColor accepts "#rrggbb", "#rrggbbaa" or a CSS color name.
type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	if named, ok := colornames.Map[strings.ToLower(value.Value)]; ok {
		c.Color = named
		return nil
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}

// Or returns the wrapped color, or fallback when none was set.
func (c YAMLColor) Or(fallback color.Color) color.Color {
	if c.Color == nil {
		return fallback
	}
	return c.Color
}

package levels

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Level describes a hand-placed layout. Coordinates are entity centers in a
// y-up world.
type Level struct {
	Name        string    `yaml:"name"`
	PlayerStart *Point    `yaml:"player_start"`
	WallSize    Size      `yaml:"wall_size"`
	CrateSize   Size      `yaml:"crate_size"`
	PickupSize  Size      `yaml:"pickup_size"`
	Walls       Placement `yaml:"walls"`
	Crates      Placement `yaml:"crates"`
	Pickups     Placement `yaml:"pickups"`
}

type Size struct {
	W float64 `yaml:"w"`
	H float64 `yaml:"h"`
}

// Point unmarshals from either `[x, y]` or `{x: .., y: ..}`.
type Point struct {
	X float64
	Y float64
}

func (p *Point) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.SequenceNode:
		var xy []float64
		if err := node.Decode(&xy); err != nil {
			return err
		}
		if len(xy) != 2 {
			return fmt.Errorf("levels: point at line %d needs 2 values, got %d", node.Line, len(xy))
		}
		p.X, p.Y = xy[0], xy[1]
		return nil
	case yaml.MappingNode:
		var m struct {
			X float64 `yaml:"x"`
			Y float64 `yaml:"y"`
		}
		if err := node.Decode(&m); err != nil {
			return err
		}
		p.X, p.Y = m.X, m.Y
		return nil
	default:
		return fmt.Errorf("levels: point at line %d must be a sequence or mapping", node.Line)
	}
}

// Run places one entity every Step pixels on [Start, Stop) at height Y.
type Run struct {
	Start float64 `yaml:"start"`
	Stop  float64 `yaml:"stop"`
	Step  float64 `yaml:"step"`
	Y     float64 `yaml:"y"`
}

func (r Run) Points() ([]Point, error) {
	if r.Step <= 0 {
		return nil, fmt.Errorf("run %v..%v: %w", r.Start, r.Stop, ErrInvalidRun)
	}
	var out []Point
	for x := r.Start; x < r.Stop; x += r.Step {
		out = append(out, Point{X: x, Y: r.Y})
	}
	return out, nil
}

// Placement combines stride-based runs with a literal coordinate list.
type Placement struct {
	Runs   []Run   `yaml:"runs"`
	Points []Point `yaml:"points"`
}

// Expand returns every coordinate of the placement, runs first, with exact
// duplicates dropped.
func (p Placement) Expand() ([]Point, error) {
	seen := make(map[Point]struct{})
	var out []Point
	add := func(pt Point) {
		if _, ok := seen[pt]; ok {
			return
		}
		seen[pt] = struct{}{}
		out = append(out, pt)
	}
	for _, r := range p.Runs {
		pts, err := r.Points()
		if err != nil {
			return nil, err
		}
		for _, pt := range pts {
			add(pt)
		}
	}
	for _, pt := range p.Points {
		add(pt)
	}
	return out, nil
}

func (l *Level) Validate() error {
	if l.PlayerStart == nil {
		return ErrNoPlayerStart
	}
	sizes := map[string]Size{"wall_size": l.WallSize, "crate_size": l.CrateSize, "pickup_size": l.PickupSize}
	for name, s := range sizes {
		if s.W <= 0 || s.H <= 0 {
			return fmt.Errorf("%s: %w", name, ErrInvalidSize)
		}
	}
	for _, p := range []Placement{l.Walls, l.Crates, l.Pickups} {
		for _, r := range p.Runs {
			if r.Step <= 0 {
				return fmt.Errorf("run %v..%v: %w", r.Start, r.Stop, ErrInvalidRun)
			}
		}
	}
	return nil
}

package session

import (
	"fmt"
	"sort"
)

// Issue is a problem found in a freshly set up session that makes the
// level unfair or unwinnable.
type Issue struct {
	Message string
}

func (i Issue) String() string {
	return i.Message
}

// Lint checks the state Setup produced: the player must start clear of
// walls and above the death line, and every pickup must be reachable by
// touch.
func Lint(s State, cfg Config) []Issue {
	var issues []Issue

	if s.TotalPickups == 0 {
		issues = append(issues, Issue{Message: "no pickups placed, the level can never be won"})
	}
	if s.Player.Pos.Y < cfg.DeathY {
		issues = append(issues, Issue{Message: fmt.Sprintf("player starts at y=%.0f, below the death line %.0f", s.Player.Pos.Y, cfg.DeathY)})
	}

	pb := s.Player.Bounds()
	for _, w := range s.Walls {
		if pb.Intersects(w.Bounds()) {
			issues = append(issues, Issue{Message: fmt.Sprintf("player start overlaps wall at (%.0f,%.0f)", w.Pos.X, w.Pos.Y)})
		}
	}

	for _, k := range s.Pickups {
		kb := k.Bounds()
		for _, w := range s.Walls {
			wb := w.Bounds()
			if wb.X <= kb.X && wb.Y <= kb.Y && wb.Right() >= kb.Right() && wb.Top() >= kb.Top() {
				issues = append(issues, Issue{Message: fmt.Sprintf("pickup %d at (%.0f,%.0f) is buried in a wall", k.ID, k.Pos.X, k.Pos.Y)})
				break
			}
		}
		if k.Pos.Y < cfg.DeathY {
			issues = append(issues, Issue{Message: fmt.Sprintf("pickup %d at (%.0f,%.0f) is below the death line", k.ID, k.Pos.X, k.Pos.Y)})
		}
	}

	sort.SliceStable(issues, func(i, j int) bool { return issues[i].Message < issues[j].Message })
	return issues
}

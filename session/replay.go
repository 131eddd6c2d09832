package session

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// ReplayAction is one recorded key edge, applied before the frame with the
// same number is advanced.
type ReplayAction struct {
	Frame   int    `yaml:"frame"`
	Action  string `yaml:"action"`
	Release bool   `yaml:"release"`

	action Action
}

// Replay is a scripted input sequence for headless runs.
type Replay struct {
	Level   string         `yaml:"level"`
	Frames  int            `yaml:"frames"`
	Actions []ReplayAction `yaml:"actions"`
}

func LoadReplay(path string) (*Replay, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read replay %s: %w", path, err)
	}
	return ParseReplay(data)
}

func ParseReplay(data []byte) (*Replay, error) {
	var r Replay
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("unmarshal replay: %w", err)
	}
	for i := range r.Actions {
		a, err := ParseAction(r.Actions[i].Action)
		if err != nil {
			return nil, fmt.Errorf("replay action %d: %w", i, err)
		}
		if r.Actions[i].Frame < 0 {
			return nil, fmt.Errorf("replay action %d: negative frame %d", i, r.Actions[i].Frame)
		}
		r.Actions[i].action = a
	}
	sort.SliceStable(r.Actions, func(i, j int) bool {
		return r.Actions[i].Frame < r.Actions[j].Frame
	})
	if r.Frames <= 0 && len(r.Actions) > 0 {
		r.Frames = r.Actions[len(r.Actions)-1].Frame + 1
	}
	return &r, nil
}

// Play feeds a replay through the controller, one Advance per frame, and
// stops early once the session ends. Events from every frame are returned
// in order.
func (c *Controller) Play(s State, r *Replay, dt float64) (State, []Event) {
	if r == nil {
		return s, nil
	}
	var all []Event
	next := 0
	for frame := 0; frame < r.Frames && s.Playing(); frame++ {
		for next < len(r.Actions) && r.Actions[next].Frame <= frame {
			act := r.Actions[next]
			s = c.HandleKey(s, act.action, !act.Release)
			next++
		}
		var events []Event
		s, events = c.Advance(s, dt)
		all = append(all, events...)
	}
	return s, all
}

package ecs

import "github.com/milk9111/findthekeys/session"

// Frame is what one game tick hands to the scene systems: the state after
// Advance and the events it produced.
type Frame struct {
	State  session.State
	Events []session.Event
}

type System interface {
	Update(w *World, f Frame)
}

// Scheduler runs its systems in order once per frame.
type Scheduler struct {
	systems []System
}

func NewScheduler(systems ...System) *Scheduler {
	s := &Scheduler{systems: make([]System, 0, len(systems))}
	for _, system := range systems {
		if system != nil {
			s.systems = append(s.systems, system)
		}
	}
	return s
}

func (s *Scheduler) Update(w *World, f Frame) {
	for _, system := range s.systems {
		system.Update(w, f)
	}
}

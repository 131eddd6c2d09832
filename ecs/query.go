package ecs

import "github.com/milk9111/findthekeys/ecs/component"

// ForEach visits every entity that has the component. fn must not add or
// remove components of the same kind.
func ForEach[T any](w *World, kind component.ComponentKind[T], fn func(Entity, *T)) {
	if w == nil {
		return
	}
	s := w.store(kind.ID(), false)
	if s == nil {
		return
	}
	ids := append([]entityID(nil), s.denseIDs...)
	for _, id := range ids {
		v, ok := s.get(id)
		if !ok {
			continue
		}
		if cast, ok := v.(*T); ok {
			fn(w.entityFor(id), cast)
		}
	}
}

func ForEach2[A, B any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], fn func(Entity, *A, *B)) {
	for _, e := range Query(w, ka.ID(), kb.ID()) {
		a, okA := Get(w, e, ka)
		b, okB := Get(w, e, kb)
		if okA && okB {
			fn(e, a, b)
		}
	}
}

func ForEach3[A, B, C any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], kc component.ComponentKind[C], fn func(Entity, *A, *B, *C)) {
	for _, e := range Query(w, ka.ID(), kb.ID(), kc.ID()) {
		a, okA := Get(w, e, ka)
		b, okB := Get(w, e, kb)
		c, okC := Get(w, e, kc)
		if okA && okB && okC {
			fn(e, a, b, c)
		}
	}
}

// Query returns the entities that have every listed component, iterating
// the smallest store.
func Query(w *World, ids ...component.ComponentID) []Entity {
	if w == nil || len(ids) == 0 {
		return nil
	}
	sets := make([]*sparseSet, 0, len(ids))
	for _, id := range ids {
		s := w.store(id, false)
		if s == nil {
			return nil
		}
		sets = append(sets, s)
	}
	smallest := sets[0]
	for _, s := range sets[1:] {
		if s.len() < smallest.len() {
			smallest = s
		}
	}

	out := make([]Entity, 0, smallest.len())
outer:
	for _, id := range smallest.denseIDs {
		for _, s := range sets {
			if !s.has(id) {
				continue outer
			}
		}
		out = append(out, w.entityFor(id))
	}
	return out
}

func First[T any](w *World, kind component.ComponentKind[T]) (Entity, bool) {
	if w == nil {
		return 0, false
	}
	s := w.store(kind.ID(), false)
	if s.len() == 0 {
		return 0, false
	}
	return w.entityFor(s.denseIDs[0]), true
}

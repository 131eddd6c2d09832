package ecs

import "github.com/milk9111/findthekeys/ecs/component"

// World owns entities and their component stores.
type World struct {
	gens   []generation
	alive  []bool
	free   []entityID
	stores map[component.ComponentID]*sparseSet
}

func NewWorld() *World {
	return &World{stores: make(map[component.ComponentID]*sparseSet)}
}

func CreateEntity(w *World) Entity {
	var id entityID
	if n := len(w.free); n > 0 {
		id = w.free[n-1]
		w.free = w.free[:n-1]
	} else {
		w.gens = append(w.gens, 0)
		w.alive = append(w.alive, false)
		id = entityID(len(w.gens))
	}
	w.alive[id-1] = true
	return makeEntity(id, w.gens[id-1])
}

// DestroyEntity drops e and all its components. It returns false when e was
// already dead.
func DestroyEntity(w *World, e Entity) bool {
	if !IsAlive(w, e) {
		return false
	}
	id := e.id()
	for _, store := range w.stores {
		store.remove(id)
	}
	w.alive[id-1] = false
	w.gens[id-1]++
	w.free = append(w.free, id)
	return true
}

func IsAlive(w *World, e Entity) bool {
	if w == nil || !e.Valid() {
		return false
	}
	id := e.id()
	if int(id) > len(w.gens) {
		return false
	}
	return w.alive[id-1] && w.gens[id-1] == e.generation()
}

// Entities returns every live entity in slot order.
func Entities(w *World) []Entity {
	if w == nil {
		return nil
	}
	out := make([]Entity, 0, len(w.gens))
	for i, ok := range w.alive {
		if ok {
			out = append(out, makeEntity(entityID(i+1), w.gens[i]))
		}
	}
	return out
}

func (w *World) entityFor(id entityID) Entity {
	return makeEntity(id, w.gens[id-1])
}

func (w *World) store(id component.ComponentID, create bool) *sparseSet {
	s, ok := w.stores[id]
	if !ok && create {
		s = newSparseSet()
		w.stores[id] = s
	}
	return s
}

package system

import (
	"github.com/milk9111/findthekeys/ecs"
	"github.com/milk9111/findthekeys/ecs/component"
	"github.com/milk9111/findthekeys/session"
)

// Clip names the scene spec binds to session events.
const (
	ClipJump   = "jump"
	ClipPickup = "pickup"
)

func clipFor(kind session.EventKind) (string, bool) {
	switch kind {
	case session.EventJump:
		return ClipJump, true
	case session.EventPickup:
		return ClipPickup, true
	}
	return "", false
}

// SoundCueSystem flags the clips for the frame's events. AudioSystem plays
// them when it runs after it.
type SoundCueSystem struct{}

func NewSoundCueSystem() *SoundCueSystem {
	return &SoundCueSystem{}
}

func (s *SoundCueSystem) Update(w *ecs.World, f ecs.Frame) {
	if w == nil || len(f.Events) == 0 {
		return
	}
	ecs.ForEach(w, component.AudioComponent.Kind(), func(_ ecs.Entity, audioComp *component.Audio) {
		for _, evt := range f.Events {
			clip, ok := clipFor(evt.Kind)
			if !ok {
				continue
			}
			if i := audioComp.Index(clip); i >= 0 && i < len(audioComp.Play) {
				audioComp.Play[i] = true
			}
		}
	})
}

type AudioSystem struct{}

func NewAudioSystem() *AudioSystem {
	return &AudioSystem{}
}

func (a *AudioSystem) Update(w *ecs.World, _ ecs.Frame) {
	if w == nil {
		return
	}
	ecs.ForEach(w, component.AudioComponent.Kind(), func(_ ecs.Entity, audioComp *component.Audio) {
		count := len(audioComp.Play)
		if len(audioComp.Players) < count {
			count = len(audioComp.Players)
		}

		for i := 0; i < count; i++ {
			if !audioComp.Play[i] {
				continue
			}

			player := audioComp.Players[i]
			if player != nil {
				player.SetVolume(audioComp.Volume[i])
				if err := player.Rewind(); err == nil {
					player.Play()
				}
			}

			audioComp.Play[i] = false
		}
	})
}

package system

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/milk9111/findthekeys/ecs"
	"github.com/milk9111/findthekeys/ecs/component"
	"github.com/milk9111/findthekeys/ecs/entity"
	"github.com/milk9111/findthekeys/session"
)

func testState() session.State {
	return session.State{
		TotalPickups: 3,
		Player:       session.Player{Pos: session.Vec{X: 64, Y: 96}, Width: 40, Height: 64, Alive: true},
		Walls: []session.Wall{
			{Kind: session.WallTile, Pos: session.Vec{X: 0, Y: 32}, Width: 64, Height: 64},
			{Kind: session.WallCrate, Pos: session.Vec{X: 300, Y: 96}, Width: 64, Height: 64},
		},
		Pickups: []session.Pickup{
			{ID: 1, Pos: session.Vec{X: 128, Y: 100}, Width: 32, Height: 32},
			{ID: 2, Pos: session.Vec{X: 388, Y: 100}, Width: 32, Height: 32},
			{ID: 3, Pos: session.Vec{X: 648, Y: 100}, Width: 32, Height: 32},
		},
	}
}

func buildWorld(t *testing.T, s session.State) *ecs.World {
	t.Helper()
	w := ecs.NewWorld()
	if err := entity.BuildScene(w, s, nil, 1000, 600); err != nil {
		t.Fatalf("build scene: %v", err)
	}
	return w
}

func pickupIDs(w *ecs.World) map[int]bool {
	ids := map[int]bool{}
	ecs.ForEach(w, component.PickupComponent.Kind(), func(_ ecs.Entity, p *component.Pickup) {
		ids[p.ID] = true
	})
	return ids
}

func TestBuildSceneEntities(t *testing.T) {
	w := buildWorld(t, testState())
	// 2 walls + 3 pickups + player + camera
	if got := len(ecs.Entities(w)); got != 7 {
		t.Fatalf("expected 7 entities, got %d", got)
	}
	if got := len(ecs.Query(w, component.WallTagComponent.Kind().ID())); got != 2 {
		t.Fatalf("expected 2 walls, got %d", got)
	}
	crates := 0
	ecs.ForEach(w, component.WallTagComponent.Kind(), func(_ ecs.Entity, tag *component.WallTag) {
		if tag.Crate {
			crates++
		}
	})
	if crates != 1 {
		t.Fatalf("expected 1 crate, got %d", crates)
	}
}

func TestSessionSyncRemovesCollectedPickups(t *testing.T) {
	s := testState()
	w := buildWorld(t, s)

	next := s
	next.Pickups = []session.Pickup{s.Pickups[0], s.Pickups[2]}
	next.Score = 1
	next.Player.Pos = session.Vec{X: 390, Y: 100}
	next.Player.Vel = session.Vec{X: -5}
	next.Camera = session.Vec{X: 12, Y: 0}

	NewSessionSyncSystem().Update(w, ecs.Frame{State: next})

	ids := pickupIDs(w)
	if ids[2] || !ids[1] || !ids[3] {
		t.Fatalf("expected pickups 1 and 3 to remain, got %v", ids)
	}

	player, ok := ecs.First(w, component.PlayerTagComponent.Kind())
	if !ok {
		t.Fatalf("player entity missing")
	}
	tr, _ := ecs.Get(w, player, component.TransformComponent.Kind())
	if tr.X != 390 || tr.Y != 100 {
		t.Fatalf("player transform not synced: %+v", tr)
	}
	sprite, _ := ecs.Get(w, player, component.SpriteComponent.Kind())
	if !sprite.FacingLeft {
		t.Fatalf("expected player to face left when moving left")
	}

	cam, _ := ecs.First(w, component.CameraComponent.Kind())
	camT, _ := ecs.Get(w, cam, component.TransformComponent.Kind())
	if camT.X != 12 || camT.Y != 0 {
		t.Fatalf("camera transform not synced: %+v", camT)
	}
}

func TestSessionSyncHidesDeadPlayer(t *testing.T) {
	s := testState()
	w := buildWorld(t, s)

	s.Player.Alive = false
	s.Terminal = session.TerminalLost
	NewSessionSyncSystem().Update(w, ecs.Frame{State: s})

	player, _ := ecs.First(w, component.PlayerTagComponent.Kind())
	sprite, _ := ecs.Get(w, player, component.SpriteComponent.Kind())
	if !sprite.Hidden {
		t.Fatalf("expected dead player sprite to be hidden")
	}
}

func TestPickupHoverKeepsAroundBase(t *testing.T) {
	s := testState()
	w := buildWorld(t, s)
	hover := NewPickupHoverSystem()
	for i := 0; i < 200; i++ {
		hover.Update(w, ecs.Frame{State: s})
		ecs.ForEach2(w, component.PickupComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, p *component.Pickup, tr *component.Transform) {
			if d := tr.Y - p.BaseY; d > p.BobAmplitude+1e-9 || d < -p.BobAmplitude-1e-9 {
				t.Fatalf("pickup %d bobbed %v away from base", p.ID, d)
			}
		})
	}
}

func TestSoundCuesThenPlayback(t *testing.T) {
	w := ecs.NewWorld()
	audioComp := &component.Audio{
		Names:   []string{ClipJump, ClipPickup},
		Players: make([]*audio.Player, 2),
		Volume:  []float64{1, 1},
		Play:    make([]bool, 2),
	}
	if err := ecs.Add(w, ecs.CreateEntity(w), component.AudioComponent.Kind(), audioComp); err != nil {
		t.Fatal(err)
	}

	f := ecs.Frame{Events: []session.Event{{Kind: session.EventPickup, PickupID: 4}, {Kind: session.EventWon}}}
	NewSoundCueSystem().Update(w, f)
	if audioComp.Play[0] || !audioComp.Play[1] {
		t.Fatalf("expected only pickup clip queued, got %v", audioComp.Play)
	}

	// No players are attached, so playback only clears the flags.
	NewAudioSystem().Update(w, f)
	if audioComp.Play[1] {
		t.Fatalf("expected play flag cleared after update")
	}
}

func TestSchedulerRunsFrameSystems(t *testing.T) {
	s := testState()
	w := buildWorld(t, s)

	next := s
	next.Pickups = s.Pickups[1:]
	next.Score = 1
	sched := ecs.NewScheduler(NewSessionSyncSystem(), nil, NewSoundCueSystem(), NewAudioSystem())
	sched.Update(w, ecs.Frame{State: next, Events: []session.Event{{Kind: session.EventPickup, PickupID: 1}}})

	if ids := pickupIDs(w); ids[1] || len(ids) != 2 {
		t.Fatalf("expected pickup 1 removed, got %v", ids)
	}
}

func TestScreenPos(t *testing.T) {
	tests := []struct {
		name         string
		x, y, cx, cy float64
		wantX, wantY float64
	}{
		{"origin camera", 64, 96, 0, 0, 64, 504},
		{"scrolled", 700, 400, 200, 100, 500, 300},
		{"top edge", 10, 600, 0, 0, 10, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gx, gy := ScreenPos(tt.x, tt.y, tt.cx, tt.cy, 600)
			if gx != tt.wantX || gy != tt.wantY {
				t.Fatalf("expected (%v,%v), got (%v,%v)", tt.wantX, tt.wantY, gx, gy)
			}
		})
	}
}

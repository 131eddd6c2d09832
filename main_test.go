package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/findthekeys/autopilot"
	"github.com/milk9111/findthekeys/session"
)

func TestActionForKey(t *testing.T) {
	tests := []struct {
		key  ebiten.Key
		want session.Action
		ok   bool
	}{
		{ebiten.KeyArrowLeft, session.ActionMoveLeft, true},
		{ebiten.KeyA, session.ActionMoveLeft, true},
		{ebiten.KeyArrowRight, session.ActionMoveRight, true},
		{ebiten.KeyD, session.ActionMoveRight, true},
		{ebiten.KeyArrowUp, session.ActionJump, true},
		{ebiten.KeyW, session.ActionJump, true},
		{ebiten.KeySpace, session.ActionJump, true},
		{ebiten.KeyR, session.ActionNone, false},
		{ebiten.KeyEscape, session.ActionNone, false},
	}
	for _, tt := range tests {
		t.Run(tt.key.String(), func(t *testing.T) {
			got, ok := actionForKey(tt.key)
			if got != tt.want || ok != tt.ok {
				t.Fatalf("actionForKey(%v) = %v,%v want %v,%v", tt.key, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestTextOrigin(t *testing.T) {
	tests := []struct {
		name       string
		x, y, size float64
		wantX      float64
		wantY      float64
	}{
		{"score", 10, 570, 18, 10, 12},
		{"banner", 100, 300, 100, 100, 200},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y := textOrigin(tt.x, tt.y, tt.size, 600)
			if x != tt.wantX || y != tt.wantY {
				t.Fatalf("expected (%v,%v), got (%v,%v)", tt.wantX, tt.wantY, x, y)
			}
		})
	}
}

func TestSimulateIdleStaysPlaying(t *testing.T) {
	s, events, err := simulate(simOptions{Level: "default", Frames: 120})
	if err != nil {
		t.Fatalf("simulate: %v", err)
	}
	if s.Frame != 120 {
		t.Fatalf("expected 120 frames, got %d", s.Frame)
	}
	if !s.Playing() {
		t.Fatalf("expected idle player to still be playing, got %v", s.Terminal)
	}
	if s.Score != 0 || len(events) != 0 {
		t.Fatalf("expected no score and no events, got %d %v", s.Score, events)
	}
	if s.Player.Pos.Y < 90 || s.Player.Pos.Y > 100 {
		t.Fatalf("expected player resting near start height, got %v", s.Player.Pos.Y)
	}
}

func TestSimulateWalkRightStopsAtCrate(t *testing.T) {
	replay, err := session.ParseReplay([]byte(`
frames: 200
actions:
  - frame: 0
    action: right
`))
	if err != nil {
		t.Fatalf("parse replay: %v", err)
	}
	s, events, err := simulate(simOptions{Level: "default", Replay: replay})
	if err != nil {
		t.Fatalf("simulate: %v", err)
	}
	if !s.Playing() {
		t.Fatalf("expected to still be playing, got %v", s.Terminal)
	}
	// The first key sits at x=128 and the first crate's left face at x=224.
	if s.Score != 1 {
		t.Fatalf("expected the first key collected, got score %d", s.Score)
	}
	if len(events) != 1 || events[0].Kind != session.EventPickup {
		t.Fatalf("expected a single pickup event, got %v", events)
	}
	right := s.Player.Pos.X + s.Player.Width/2
	if right > 225 || right < 220 {
		t.Fatalf("expected player pressed against the crate at x=224, right edge %v", right)
	}
}

func TestSampleReplayParses(t *testing.T) {
	r, err := session.LoadReplay(filepath.Join("replays", "walk_right.yaml"))
	if err != nil {
		t.Fatalf("load sample replay: %v", err)
	}
	if r.Level != "default" || r.Frames != 900 {
		t.Fatalf("unexpected replay header %+v", r)
	}
}

func TestSimulateUnknownLevel(t *testing.T) {
	if _, err := os.Stat(filepath.Join("levels", "nope.yaml")); err == nil {
		t.Skip("nope.yaml exists on disk")
	}
	if _, _, err := simulate(simOptions{Level: "nope", Frames: 10}); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}

func TestSimulateWithPilot(t *testing.T) {
	p, err := autopilot.Load(filepath.Join("bots", "hop_right.tengo"))
	if err != nil {
		t.Fatalf("load bot: %v", err)
	}
	s, _, err := simulate(simOptions{Level: "default", Frames: 120, Pilot: p})
	if err != nil {
		t.Fatalf("simulate: %v", err)
	}
	if s.Player.Pos.X <= 64 {
		t.Fatalf("expected the bot to move right, x=%v", s.Player.Pos.X)
	}
	if s.Score < 1 {
		t.Fatalf("expected the first key collected, got %d", s.Score)
	}
}

func TestLevelReport(t *testing.T) {
	report, bad := levelReport([]string{"default", "missing"})
	if bad != 1 {
		t.Fatalf("expected only the missing level to fail, got %d\n%s", bad, report)
	}
	if !strings.Contains(report, "default: 39 walls, 11 keys, start (64,96)") {
		t.Fatalf("unexpected report:\n%s", report)
	}
	if !strings.Contains(report, "missing: error:") {
		t.Fatalf("expected an error line for the missing level:\n%s", report)
	}
}

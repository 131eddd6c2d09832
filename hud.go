package main

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/findthekeys/common"
	"github.com/milk9111/findthekeys/prefabs"
	"github.com/milk9111/findthekeys/session"
	"golang.org/x/image/colornames"
	"golang.org/x/image/font/basicfont"
)

// HUD draws the screen-space overlays. Positions come from the scene spec
// and, like the world, are measured up from the bottom of the screen.
type HUD struct {
	face  ebtext.Face
	score prefabs.TextSpec
	lost  prefabs.TextSpec
	won   prefabs.TextSpec
}

func NewHUD(scene *prefabs.SceneSpec) *HUD {
	h := &HUD{face: ebtext.NewGoXFace(basicfont.Face7x13)}
	if scene != nil {
		h.score = scene.Score
		h.lost = scene.Lost
		h.won = scene.Won
	}
	return h
}

func (h *HUD) Draw(screen *ebiten.Image, s session.State) {
	h.drawText(screen, h.score, fmt.Sprintf(scoreFormat(h.score.Text), s.Score), colornames.White)

	switch s.Terminal {
	case session.TerminalLost:
		h.drawText(screen, h.lost, h.lost.Text, colornames.Darkred)
	case session.TerminalWon:
		h.drawText(screen, h.won, h.won.Text, colornames.Ghostwhite)
	}
}

func scoreFormat(f string) string {
	if f == "" {
		return "Score: %d"
	}
	return f
}

// textOrigin converts a bottom-left anchored position and glyph size to the
// top-left corner text/v2 draws from.
func textOrigin(x, y, size, screenH float64) (float64, float64) {
	return x, screenH - y - size
}

func (h *HUD) drawText(screen *ebiten.Image, spec prefabs.TextSpec, msg string, fallback color.Color) {
	if msg == "" {
		return
	}
	size := spec.Size
	if size <= 0 {
		size = 18
	}
	scale := size / float64(basicfont.Face7x13.Height)

	x, y := textOrigin(spec.X, spec.Y, size, float64(common.BaseHeight))
	op := &ebtext.DrawOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(spec.Color.Or(fallback))
	ebtext.Draw(screen, msg, h.face, op)
}

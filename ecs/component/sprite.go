package component

import "github.com/hajimehoshi/ebiten/v2"

// Sprite draws Image stretched to Width x Height around the transform.
type Sprite struct {
	Image      *ebiten.Image
	Width      float64
	Height     float64
	FacingLeft bool
	Hidden     bool
}

var SpriteComponent = NewComponent[Sprite]()

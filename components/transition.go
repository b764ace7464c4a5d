package components

import (
	"github.com/tanema/gween"
	"github.com/yohamta/donburi"
)

// FadeData is the overlay that fades a freshly installed map in.
type FadeData struct {
	Tween *gween.Tween
	Alpha float32
	Done  bool
}

var Fade = donburi.NewComponentType[FadeData]()

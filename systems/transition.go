package systems

import (
	"github.com/automoto/tilewalk/archetypes"
	"github.com/automoto/tilewalk/components"
	cfg "github.com/automoto/tilewalk/config"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	"github.com/yohamta/donburi/ecs"
)

// StartFade covers the screen and fades it back in over FadeSeconds. A fade
// already running starts over.
func StartFade(e *ecs.ECS) {
	if cfg.Transition.FadeSeconds <= 0 {
		return
	}
	entry, ok := components.Fade.First(e.World)
	if !ok {
		entry = archetypes.Fade.Spawn(e)
	}
	components.Fade.SetValue(entry, components.FadeData{
		Tween: gween.New(1, 0, float32(cfg.Transition.FadeSeconds), ease.Linear),
		Alpha: 1,
	})
}

func UpdateFade(e *ecs.ECS) {
	entry, ok := components.Fade.First(e.World)
	if !ok {
		return
	}
	fade := components.Fade.Get(entry)
	if fade.Done || fade.Tween == nil {
		return
	}
	fade.Alpha, fade.Done = fade.Tween.Update(float32(frameDelta()))
}

func DrawFade(e *ecs.ECS, screen *ebiten.Image) {
	entry, ok := components.Fade.First(e.World)
	if !ok {
		return
	}
	fade := components.Fade.Get(entry)
	if fade.Done || fade.Alpha <= 0 {
		return
	}
	// color.RGBA is premultiplied, so every channel scales.
	c := cfg.Transition.Color
	c.R = uint8(float32(c.R) * fade.Alpha)
	c.G = uint8(float32(c.G) * fade.Alpha)
	c.B = uint8(float32(c.B) * fade.Alpha)
	c.A = uint8(float32(c.A) * fade.Alpha)
	b := screen.Bounds()
	vector.FillRect(screen, 0, 0, float32(b.Dx()), float32(b.Dy()), c, false)
}

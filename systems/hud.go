package systems

import (
	"fmt"
	"image/color"
	"path"

	"github.com/automoto/tilewalk/components"
	cfg "github.com/automoto/tilewalk/config"
	"github.com/automoto/tilewalk/fonts"
	"github.com/automoto/tilewalk/tags"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text" //nolint:staticcheck // TODO: migrate to text/v2
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/yohamta/donburi/ecs"
)

const (
	hudMargin     = 4
	hudLineHeight = 10
	hudWidth      = 150
)

var hudLines []string

// DrawHUD prints the player's movement state in the top-left corner while
// the debug overlay is on.
func DrawHUD(e *ecs.ECS, screen *ebiten.Image) {
	if !GetOrCreateSettings(e).Debug {
		return
	}
	playerEntry, ok := tags.Player.First(e.World)
	if !ok {
		return
	}
	actor := components.Actor.Get(playerEntry)

	hudLines = hudLines[:0]
	hudLines = append(hudLines,
		fmt.Sprintf("pos %.0f,%.0f %s", actor.Pos.X, actor.Pos.Y, actor.Facing),
		fmt.Sprintf("%s %s %s", actor.Mode, actor.State(), actor.LastOutcome),
	)
	if level, ok := GetLevel(e); ok {
		hudLines = append(hudLines, path.Base(level.Path))
	}
	hudLines = append(hudLines, fmt.Sprintf("fps %.0f tps %.0f", ebiten.ActualFPS(), ebiten.ActualTPS()))

	vector.FillRect(screen, hudMargin, hudMargin,
		hudWidth, float32(len(hudLines)*hudLineHeight+hudMargin),
		color.RGBA{0, 0, 0, 160}, false)

	face := fonts.Small.Get()
	for i, line := range hudLines {
		text.Draw(screen, line, face, hudMargin*2, hudMargin+(i+1)*hudLineHeight, cfg.Debug.HUDColor)
	}
}

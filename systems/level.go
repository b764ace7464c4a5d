package systems

import (
	"time"

	"github.com/automoto/tilewalk/components"
	cfg "github.com/automoto/tilewalk/config"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/yohamta/donburi/ecs"
)

// frameDelta is the fixed simulation step in seconds.
func frameDelta() float64 {
	tps := ebiten.TPS()
	if tps <= 0 {
		tps = cfg.C.TPS
	}
	return 1 / float64(tps)
}

// GetLevel returns the installed map, if any.
func GetLevel(e *ecs.ECS) (*components.LevelData, bool) {
	entry, ok := components.Level.First(e.World)
	if !ok {
		return nil, false
	}
	level := components.Level.Get(entry)
	if level.Map == nil {
		return nil, false
	}
	return level, true
}

// UpdateLevel advances the map clock and with it every animated tile.
func UpdateLevel(e *ecs.ECS) {
	level, ok := GetLevel(e)
	if !ok {
		return
	}
	level.Clock += time.Duration(frameDelta() * float64(time.Second))
	level.Map.Animations.Advance(level.Clock)
}

// ReloadRequested reports whether the reload key was pressed this frame.
func ReloadRequested(e *ecs.ECS) bool {
	return GetAction(getOrCreateInput(e), cfg.ActionReload).JustPressed
}

package systems

import (
	"github.com/automoto/tilewalk/components"
	cfg "github.com/automoto/tilewalk/config"
	"github.com/automoto/tilewalk/shared/movement"
	"github.com/automoto/tilewalk/tags"
	"github.com/yohamta/donburi/ecs"
)

// UpdatePlayer feeds the input snapshot to the player's movement state
// machine. Grid stepping is the default; free movement slides along walls.
func UpdatePlayer(e *ecs.ECS) {
	level, ok := GetLevel(e)
	if !ok {
		return
	}
	playerEntry, ok := tags.Player.First(e.World)
	if !ok {
		return
	}
	actor := components.Actor.Get(playerEntry)
	in := MovementInput(getOrCreateInput(e))
	dt := frameDelta()

	mode := actor.Mode
	if cfg.Movement.FreeMove {
		actor.ApplyToggles(in)
		actor.LastOutcome = actor.MoveFree(in, dt, level.Space)
	} else {
		actor.LastOutcome = actor.Drive(in, dt, level.Space)
	}

	if actor.Mode != mode {
		settings := GetOrCreateSettings(e)
		settings.Mode = actor.Mode
		settings.Dirty = true
	}
}

// PlayerActor returns the player's movement state.
func PlayerActor(e *ecs.ECS) (*movement.Actor, bool) {
	playerEntry, ok := tags.Player.First(e.World)
	if !ok {
		return nil, false
	}
	return components.Actor.Get(playerEntry).Actor, true
}

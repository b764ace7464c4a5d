package systems

import (
	"github.com/automoto/tilewalk/components"
	cfg "github.com/automoto/tilewalk/config"
	"github.com/yohamta/donburi/ecs"
)

// UpdateCamera centres the viewport on the player and keeps it inside the map.
func UpdateCamera(e *ecs.ECS) {
	cameraEntry, ok := components.Camera.First(e.World)
	if !ok {
		return
	}
	camera := components.Camera.Get(cameraEntry)

	actor, ok := PlayerActor(e)
	if !ok {
		return // no player, keep the last view
	}

	camera.Focus.X = actor.Pos.X + cfg.Camera.FocusX
	camera.Focus.Y = actor.Pos.Y + cfg.Camera.FocusY
	camera.Follow(camera.Focus.X, camera.Focus.Y)
}

package factory

import (
	"github.com/automoto/tilewalk/archetypes"
	"github.com/automoto/tilewalk/components"
	cfg "github.com/automoto/tilewalk/config"
	"github.com/automoto/tilewalk/shared/camera"
	"github.com/yohamta/donburi/ecs"
)

// GetOrCreateCamera returns the camera, creating a screen-sized one over an
// empty world the first time.
func GetOrCreateCamera(ecs *ecs.ECS) *components.CameraData {
	entry, ok := components.Camera.First(ecs.World)
	if !ok {
		entry = archetypes.Camera.Spawn(ecs)
		components.Camera.Set(entry, &components.CameraData{
			Camera: camera.New(float64(cfg.C.Width), float64(cfg.C.Height), 0, 0),
		})
	}
	return components.Camera.Get(entry)
}

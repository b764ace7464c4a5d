package components

import (
	"github.com/automoto/tilewalk/shared/camera"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/math"
)

type CameraData struct {
	*camera.Camera
	Focus math.Vec2 // World point the camera last centred on
}

var Camera = donburi.NewComponentType[CameraData]()

package components

import (
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/math"
)

type PlayerData struct {
	Spawn math.Vec2 // Sprite position the player was placed at on map load
}

var Player = donburi.NewComponentType[PlayerData]()

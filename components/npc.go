package components

import (
	"github.com/automoto/tilewalk/shared/gamemath"
	"github.com/automoto/tilewalk/shared/navgrid"
	"github.com/automoto/tilewalk/shared/tilemap"
	"github.com/yohamta/donburi"
)

type NPCData struct {
	*tilemap.NPC

	// Patrol lists the points the NPC walks between, starting with its spawn.
	// Empty for NPCs that stand still.
	Patrol      []gamemath.Point
	PatrolIndex int
	Route       *navgrid.Route
	Wait        float64 // Seconds left idling before the next leg
}

var NPC = donburi.NewComponentType[NPCData]()

package components

import (
	"github.com/automoto/tilewalk/shared/movement"
	"github.com/yohamta/donburi"
)

// ActorData is the movement state shared by the player and NPCs. NPC entries
// point at the actor owned by the loaded map.
type ActorData struct {
	*movement.Actor
	LastOutcome movement.Outcome
}

var Actor = donburi.NewComponentType[ActorData]()

package systems

import (
	"github.com/automoto/tilewalk/components"
	cfg "github.com/automoto/tilewalk/config"
	"github.com/automoto/tilewalk/shared/movement"
	"github.com/automoto/tilewalk/shared/navgrid"
	"github.com/automoto/tilewalk/tags"
	"github.com/charmbracelet/log"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// UpdateNPCs moves every NPC. A pending scripted target is followed first;
// otherwise patrolling NPCs plan a route to their next patrol point and walk
// it waypoint by waypoint.
func UpdateNPCs(e *ecs.ECS) {
	level, ok := GetLevel(e)
	if !ok {
		return
	}
	dt := frameDelta()

	tags.NPC.Each(e.World, func(entry *donburi.Entry) {
		npc := components.NPC.Get(entry)
		actor := components.Actor.Get(entry)

		switch {
		case npc.Route != nil:
			actor.LastOutcome = npc.Route.Drive(actor.Actor, dt, level.Space)
			if npc.Route.Done() {
				npc.Route = nil
				npc.Wait = cfg.NPC.PatrolPause
				if len(npc.Patrol) > 0 {
					npc.PatrolIndex = (npc.PatrolIndex + 1) % len(npc.Patrol)
				}
			}
		case actor.HasTarget() || len(npc.Patrol) < 2:
			actor.LastOutcome = actor.Update(dt, level.Space)
		case npc.Wait > 0:
			npc.Wait -= dt
			actor.LastOutcome = actor.Update(dt, level.Space)
		default:
			npc.Route = planLeg(level.Nav, npc, actor.Actor)
			if npc.Route == nil {
				npc.Wait = cfg.NPC.PatrolPause
				npc.PatrolIndex = (npc.PatrolIndex + 1) % len(npc.Patrol)
			}
		}
	})
}

func planLeg(nav *navgrid.Grid, npc *components.NPCData, actor *movement.Actor) *navgrid.Route {
	if nav == nil {
		return nil
	}
	goal := npc.Patrol[npc.PatrolIndex]
	path, ok := nav.Path(actor.Pos, goal)
	if !ok || len(path) > cfg.NPC.MaxPathSteps {
		log.Debug("no patrol route", "npc", npc.Name, "from", actor.Pos, "to", goal)
		return nil
	}
	if len(path) == 0 {
		return nil
	}
	return navgrid.NewRoute(path)
}

package factory

import (
	"path"

	"github.com/automoto/tilewalk/archetypes"
	"github.com/automoto/tilewalk/components"
	cfg "github.com/automoto/tilewalk/config"
	"github.com/automoto/tilewalk/shared/gamemath"
	"github.com/automoto/tilewalk/shared/tilemap"
	"github.com/automoto/tilewalk/tags"
	"github.com/charmbracelet/log"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// CreateNPCs spawns an entity for every NPC the map declares.
func CreateNPCs(ecs *ecs.ECS, level *components.LevelData) {
	for _, npc := range level.Map.NPCs {
		CreateNPC(ecs, level, npc)
	}
}

func CreateNPC(ecs *ecs.ECS, level *components.LevelData, npc *tilemap.NPC) *donburi.Entry {
	entry := archetypes.NPC.Spawn(ecs)
	logger := log.With("npc", npc.Name)

	if npc.Sprite != "" {
		// Sprite paths are relative to the map file.
		name := path.Join(path.Dir(level.Map.Path), npc.Sprite)
		spec, err := LoadCharacter(level.Images.FS(), name)
		if err != nil {
			logger.Warn("npc sprite unavailable, drawing nothing", "sprite", name, "err", err)
		} else {
			if h := spec.Hitbox; h.Width > 0 && h.Height > 0 {
				npc.Actor.Hitbox = gamemath.Rect{X: h.OffsetX, Y: h.OffsetY, W: h.Width, H: h.Height}
			}
			anim, err := newAnimation(level.Images, spec)
			if err != nil {
				logger.Warn("npc sprite unavailable, drawing nothing", "sprite", name, "err", err)
			}
			components.Animation.SetValue(entry, anim)
		}
	}
	npc.Actor.Arrival = cfg.Movement.Arrival

	components.Actor.SetValue(entry, components.ActorData{Actor: npc.Actor})
	components.NPC.SetValue(entry, components.NPCData{
		NPC:    npc,
		Patrol: patrolFor(level.Map, npc, logger),
	})
	return entry
}

// patrolFor reads the NPC's patrol property. It names a map object: a point
// or rectangle adds its position, a polygon adds each vertex. The NPC's own
// position is the first stop.
func patrolFor(m *tilemap.TileMap, npc *tilemap.NPC, logger *log.Logger) []gamemath.Point {
	target, ok := npc.Properties.Get(cfg.NPC.PatrolProperty)
	if !ok || target == "" {
		return nil
	}
	obj, ok := m.ObjectByName(target)
	if !ok {
		logger.Warn("patrol target not found, standing still", "target", target)
		return nil
	}

	patrol := []gamemath.Point{npc.Actor.Pos}
	if obj.Shape == tilemap.ShapePolygon {
		return append(patrol, obj.Polygon...)
	}
	return append(patrol, gamemath.Point{X: obj.X, Y: obj.Y})
}

// RemoveNPCs deletes every NPC entity.
func RemoveNPCs(ecs *ecs.ECS) {
	var doomed []donburi.Entity
	tags.NPC.Each(ecs.World, func(entry *donburi.Entry) {
		doomed = append(doomed, entry.Entity())
	})
	for _, e := range doomed {
		ecs.World.Remove(e)
	}
}

package factory

import (
	"time"

	"github.com/automoto/tilewalk/archetypes"
	"github.com/automoto/tilewalk/components"
	cfg "github.com/automoto/tilewalk/config"
	"github.com/automoto/tilewalk/shared/gamemath"
	"github.com/automoto/tilewalk/shared/movement"
	"github.com/automoto/tilewalk/shared/sprite"
	"github.com/automoto/tilewalk/tags"
	"github.com/charmbracelet/log"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
	"github.com/yohamta/donburi/features/math"
)

// SpawnPoint is where the player sprite is placed on level: the spawn object
// shifted by the configured offset so the feet land on it.
func SpawnPoint(level *components.LevelData) gamemath.Point {
	return gamemath.Point{
		X: level.Map.PlayerSpawn.X + cfg.Map.SpawnOffsetX,
		Y: level.Map.PlayerSpawn.Y + cfg.Map.SpawnOffsetY,
	}
}

func CreatePlayer(ecs *ecs.ECS, level *components.LevelData) *donburi.Entry {
	player := archetypes.Player.Spawn(ecs)

	spawn := SpawnPoint(level)
	actor := movement.NewActor(spawn.X, spawn.Y, Hitbox(), PlayerSpeeds())
	actor.Grid = cfg.Movement.Grid
	actor.Arrival = cfg.Movement.Arrival

	components.Actor.SetValue(player, components.ActorData{Actor: actor})
	components.Player.SetValue(player, components.PlayerData{
		Spawn: math.Vec2{X: spawn.X, Y: spawn.Y},
	})
	components.Animation.SetValue(player, playerAnimation(level))
	return player
}

// PlacePlayer puts the player into a freshly installed level, creating it on
// the first install. A player whose hitbox is free in the new map stays put.
func PlacePlayer(ecs *ecs.ECS, level *components.LevelData) *donburi.Entry {
	player, ok := tags.Player.First(ecs.World)
	if !ok {
		return CreatePlayer(ecs, level)
	}

	actor := components.Actor.Get(player)
	spawn := SpawnPoint(level)
	world := gamemath.Rect{W: float64(level.Map.PixelWidth()), H: float64(level.Map.PixelHeight())}
	if level.Space.Blocked(actor.Bounds()) || !world.Contains(actor.Pos) {
		actor.Place(spawn.X, spawn.Y)
	} else {
		actor.Cancel()
	}
	actor.LastOutcome = movement.None

	components.Player.Get(player).Spawn = math.Vec2{X: spawn.X, Y: spawn.Y}
	// The previous sheet belongs to the old level's image cache.
	components.Animation.SetValue(player, playerAnimation(level))
	return player
}

func playerAnimation(level *components.LevelData) components.AnimationData {
	spec := sprite.CharacterSpec(cfg.Sprite.PlayerSheet,
		cfg.Sprite.FrameWidth, cfg.Sprite.FrameHeight,
		time.Duration(cfg.Sprite.FrameMS)*time.Millisecond,
	)
	anim, err := newAnimation(level.Images, spec)
	if err != nil {
		log.Warn("player sprite unavailable, drawing nothing", "sheet", spec.Sheet, "err", err)
	}
	return anim
}

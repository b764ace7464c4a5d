package factory

import (
	"fmt"
	"io/fs"

	"github.com/automoto/tilewalk/archetypes"
	"github.com/automoto/tilewalk/assets"
	"github.com/automoto/tilewalk/components"
	cfg "github.com/automoto/tilewalk/config"
	"github.com/automoto/tilewalk/shared/collision"
	"github.com/automoto/tilewalk/shared/compositor"
	"github.com/automoto/tilewalk/shared/gamemath"
	"github.com/automoto/tilewalk/shared/movement"
	"github.com/automoto/tilewalk/shared/navgrid"
	"github.com/automoto/tilewalk/shared/tilemap"
	"github.com/charmbracelet/log"
	"github.com/yohamta/donburi/ecs"
)

// MapNames are the reserved layer and object names from the map config.
func MapNames() tilemap.Names {
	return tilemap.Names{
		CollisionLayer: cfg.Map.CollisionLayer,
		PlayerLayer:    cfg.Map.PlayerLayer,
		PlayerSpawn:    cfg.Map.PlayerSpawn,
		NPCLayer:       cfg.Map.NPCLayer,
		NPCPrefix:      cfg.Map.NPCPrefix,
		SpriteProperty: cfg.Map.SpriteProperty,
		FacingProperty: cfg.Map.FacingProperty,
	}
}

// Hitbox is the configured actor hitbox, relative to the sprite's top-left.
func Hitbox() gamemath.Rect {
	return gamemath.Rect{
		X: cfg.Movement.HitboxX,
		Y: cfg.Movement.HitboxY,
		W: cfg.Movement.HitboxW,
		H: cfg.Movement.HitboxH,
	}
}

// PlayerSpeeds are the per-mode player speeds.
func PlayerSpeeds() movement.Speeds {
	var s movement.Speeds
	s[movement.Walk] = cfg.Movement.Walk
	s[movement.Run] = cfg.Movement.Run
	s[movement.Ride] = cfg.Movement.Ride
	return s
}

// LoadLevel loads the map at mapPath and derives its collision space, path
// grid and compositor. view is the viewport the compositor culls against.
func LoadLevel(fsys fs.FS, mapPath string, view compositor.Viewport) (*components.LevelData, error) {
	m, err := tilemap.Load(fsys, mapPath,
		tilemap.WithNames(MapNames()),
		tilemap.WithLogger(log.Default()),
		tilemap.WithNPCActor(Hitbox(), movement.Uniform(cfg.Movement.NPCSpeed), cfg.Movement.Grid),
	)
	if err != nil {
		return nil, err
	}

	space := collision.NewSpace(m, cfg.Map.CellSize)
	nav := navgrid.New(space,
		float64(m.PixelWidth()), float64(m.PixelHeight()),
		float64(cfg.Map.CellSize), Hitbox(),
	)

	return &components.LevelData{
		Path:       mapPath,
		Map:        m,
		Compositor: compositor.New(m, view),
		Space:      space,
		Nav:        nav,
		Images:     assets.NewImageCache(fsys),
	}, nil
}

// InstallLevel loads mapPath and swaps it in for the current map, if any.
// NPCs are respawned from the new map; the player keeps its position when it
// still fits, otherwise it moves to the new spawn. On error nothing changes.
func InstallLevel(e *ecs.ECS, fsys fs.FS, mapPath string) error {
	cam := GetOrCreateCamera(e)
	next, err := LoadLevel(fsys, mapPath, cam.Camera)
	if err != nil {
		return fmt.Errorf("install %s: %w", mapPath, err)
	}

	var prev *components.LevelData
	entry, ok := components.Level.First(e.World)
	if ok {
		prev = components.Level.Get(entry)
	} else {
		entry = archetypes.Level.Spawn(e)
	}
	components.Level.Set(entry, next)

	cam.Resize(float64(next.Map.PixelWidth()), float64(next.Map.PixelHeight()))

	RemoveNPCs(e)
	CreateNPCs(e, next)
	PlacePlayer(e, next)

	if prev != nil {
		prev.Map.Close()
		prev.Images.Dispose()
	}

	log.Info("map installed", "map", mapPath, "npcs", len(next.Map.NPCs), "collisions", next.Space.Len())
	return nil
}

package components

import (
	"time"

	"github.com/automoto/tilewalk/assets"
	"github.com/automoto/tilewalk/shared/collision"
	"github.com/automoto/tilewalk/shared/compositor"
	"github.com/automoto/tilewalk/shared/navgrid"
	"github.com/automoto/tilewalk/shared/tilemap"
	"github.com/yohamta/donburi"
)

// LevelData owns the loaded map and everything derived from it.
type LevelData struct {
	Path       string
	Map        *tilemap.TileMap
	Compositor *compositor.Compositor
	Space      *collision.Space
	Nav        *navgrid.Grid
	Images     *assets.ImageCache
	Clock      time.Duration // Time since the map was installed, drives tile animations
}

var Level = donburi.NewComponentType[LevelData]()

// Command mapinfo loads a map the way the game does and prints what it found:
// layer paint order, tilesets, collision shapes, spawn and NPCs. With -png it
// also bakes the visible tile layers into an image.
package main

import (
	"flag"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/automoto/tilewalk/assets"
	"github.com/automoto/tilewalk/config"
	"github.com/automoto/tilewalk/shared/collision"
	"github.com/automoto/tilewalk/shared/compositor"
	"github.com/automoto/tilewalk/shared/tilemap"
	"github.com/automoto/tilewalk/systems/factory"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/lafriks/go-tiled"
	"github.com/lafriks/go-tiled/render"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00FFFF"))
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888")).Width(12)
	boxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

func main() {
	configPath := flag.String("config", "", "YAML file overriding the built-in configuration")
	assetRoot := flag.String("assets", "", "Asset directory (default: bundled assets)")
	pngPath := flag.String("png", "", "Write a preview of the visible tile layers to this file")
	flag.Parse()

	if *configPath != "" {
		if err := config.LoadFile(*configPath); err != nil {
			log.Fatal("could not load config", "err", err)
		}
	}
	if *assetRoot != "" {
		config.Map.AssetRoot = *assetRoot
	}
	mapPath := config.Map.Start
	if flag.NArg() > 0 {
		mapPath = flag.Arg(0)
	}

	var fsys fs.FS = assets.Embedded()
	if config.Map.AssetRoot != "" {
		fsys = os.DirFS(config.Map.AssetRoot)
	}

	m, err := tilemap.Load(fsys, mapPath, tilemap.WithNames(factory.MapNames()))
	if err != nil {
		log.Fatal("could not load map", "map", mapPath, "err", err)
	}
	defer m.Close()

	fmt.Println(boxStyle.Render(summary(m)))

	if *pngPath != "" {
		if err := bake(fsys, mapPath, *pngPath); err != nil {
			log.Fatal("could not write preview", "png", *pngPath, "err", err)
		}
		log.Info("preview written", "png", *pngPath)
	}
}

func summary(m *tilemap.TileMap) string {
	var b strings.Builder
	row := func(label, format string, args ...any) {
		b.WriteString(labelStyle.Render(label))
		fmt.Fprintf(&b, format+"\n", args...)
	}

	b.WriteString(titleStyle.Render(m.Path) + "\n")
	row("size", "%dx%d tiles of %dx%d (%dx%d px)", m.Width, m.Height, m.TileWidth, m.TileHeight, m.PixelWidth(), m.PixelHeight())
	row("paint", "%s", strings.Join(compositor.New(m, nil).Order(), " > "))
	for _, ts := range m.Tilesets {
		state := "ok"
		if ts.Image == nil && len(ts.TileImages) == 0 {
			state = "no image"
		}
		row("tileset", "%s gid %d+%d %s (%s)", ts.Name, ts.FirstGID, ts.TileCount, ts.ImagePath, state)
	}

	shapes := map[tilemap.Shape]int{}
	for _, o := range m.Collisions {
		shapes[o.Shape]++
	}
	space := collision.NewSpace(m, config.Map.CellSize)
	row("collisions", "%d (%d rect, %d polygon, %d ellipse)", space.Len(),
		shapes[tilemap.ShapeRect], shapes[tilemap.ShapePolygon], shapes[tilemap.ShapeEllipse])

	if m.HasPlayerSpawn {
		row("spawn", "%.0f,%.0f", m.PlayerSpawn.X, m.PlayerSpawn.Y)
	} else {
		row("spawn", "none, using origin")
	}
	for _, npc := range m.NPCs {
		row("npc", "%s at %.0f,%.0f facing %s sprite %q", npc.Name, npc.Actor.Pos.X, npc.Actor.Pos.Y, npc.Actor.Facing, npc.Sprite)
	}
	row("animated", "%d tiles", m.Animations.Len())
	return strings.TrimRight(b.String(), "\n")
}

// bake renders the visible tile layers with go-tiled's software renderer.
func bake(fsys fs.FS, mapPath, out string) error {
	levelMap, err := tiled.LoadFile(mapPath, tiled.WithFileSystem(fsys))
	if err != nil {
		return err
	}
	renderer, err := render.NewRendererWithFileSystem(levelMap, fsys)
	if err != nil {
		return err
	}
	if err := renderer.RenderVisibleLayers(); err != nil {
		return err
	}

	f, err := os.Create(out)
	if err != nil {
		return err
	}
	if err := renderer.SaveAsPng(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

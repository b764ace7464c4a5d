package main

import (
	"flag"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/automoto/tilewalk/assets"
	"github.com/automoto/tilewalk/config"
	"github.com/automoto/tilewalk/fonts"
	"github.com/automoto/tilewalk/scenes"
	"github.com/automoto/tilewalk/systems"
	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
)

type Game struct {
	scene scenes.Scene
}

func (g *Game) Update() error {
	g.scene.Update()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.scene.Draw(screen)
}

func (g *Game) Layout(width, height int) (int, int) {
	return config.C.Width, config.C.Height
}

func main() {
	configPath := flag.String("config", "", "YAML file overriding the built-in configuration")
	assetRoot := flag.String("assets", "", "Asset directory (default: bundled assets)")
	mapPath := flag.String("map", "", "Map to load, relative to the asset directory")
	watch := flag.Bool("watch", false, "Reload the map when its files change (needs -assets)")
	debug := flag.Bool("debug", false, "Start with the collision overlay and HUD on")
	verbose := flag.Bool("v", false, "Verbose logging")
	flag.Parse()

	if *verbose {
		log.SetLevel(log.DebugLevel)
	}

	if *configPath != "" {
		if err := config.LoadFile(*configPath); err != nil {
			log.Fatal("could not load config", "err", err)
		}
	}
	if *assetRoot != "" {
		config.Map.AssetRoot = *assetRoot
	}
	if *mapPath != "" {
		config.Map.Start = *mapPath
	}
	config.Watch.Enabled = config.Watch.Enabled || *watch
	config.Debug.Enabled = config.Debug.Enabled || *debug

	if err := fonts.LoadDefaults(config.Debug.HUDFontSize); err != nil {
		log.Fatal("could not load fonts", "err", err)
	}

	// Initialize persistence and load saved settings
	if err := systems.InitPersistence(); err != nil {
		log.Warn("could not initialize persistence", "err", err)
	}
	if saved, err := systems.LoadSettings(); err != nil {
		log.Warn("ignoring saved settings", "err", err)
	} else if saved != nil {
		systems.ApplySavedSettingsGlobal(saved)
	} else {
		ebiten.SetWindowSize(config.WindowSize(config.Window.DefaultScaleIndex))
	}

	var fsys fs.FS = assets.Embedded()
	if config.Map.AssetRoot != "" {
		fsys = os.DirFS(config.Map.AssetRoot)
	}

	// A map that does not load never reaches the frame loop.
	world, err := scenes.NewWorldScene(fsys, config.Map.Start)
	if err != nil {
		log.Fatal("could not load map", "map", config.Map.Start, "err", err)
	}
	defer world.Close()

	if config.Watch.Enabled {
		startWatching(world)
	}

	ebiten.SetWindowTitle(config.C.Title)
	ebiten.SetTPS(config.C.TPS)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeOnlyFullscreenEnabled)

	if err := ebiten.RunGame(&Game{scene: world}); err != nil {
		log.Error("game stopped", "err", err)
	}
}

func startWatching(world *scenes.WorldScene) {
	if config.Map.AssetRoot == "" {
		log.Warn("bundled assets cannot be watched, pass -assets to enable hot reload")
		return
	}
	var dirs []string
	for _, dir := range world.WatchDirs() {
		dirs = append(dirs, filepath.Join(config.Map.AssetRoot, filepath.FromSlash(dir)))
	}
	w, err := assets.NewWatcher(time.Duration(config.Watch.DebounceMS)*time.Millisecond, dirs...)
	if err != nil {
		log.Warn("hot reload disabled", "err", err)
		return
	}
	world.Watch(w)
	log.Info("watching for changes", "dirs", dirs)
}

package scenes

import (
	"image/color"
	"io/fs"
	"path"

	"github.com/automoto/tilewalk/assets"
	cfg "github.com/automoto/tilewalk/config"
	"github.com/automoto/tilewalk/systems"
	"github.com/automoto/tilewalk/systems/factory"
	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// Scene is a unit the game loop updates and draws once per frame.
type Scene interface {
	Update()
	Draw(screen *ebiten.Image)
}

// WorldScene walks the player and NPCs around one map.
type WorldScene struct {
	ecs     *ecs.ECS
	fsys    fs.FS
	mapPath string
	watcher *assets.Watcher
}

// NewWorldScene loads mapPath from fsys. A map that fails to load is
// returned as an error so the caller never starts the frame loop.
func NewWorldScene(fsys fs.FS, mapPath string) (*WorldScene, error) {
	ws := &WorldScene{fsys: fsys, mapPath: mapPath}
	ws.configure()

	if err := factory.InstallLevel(ws.ecs, fsys, mapPath); err != nil {
		return nil, err
	}
	if actor, ok := systems.PlayerActor(ws.ecs); ok {
		actor.SetMode(systems.GetOrCreateSettings(ws.ecs).Mode)
	}
	systems.StartFade(ws.ecs)
	return ws, nil
}

// Watch reloads the map whenever w reports a change. The scene owns w from
// now on and closes it on Close.
func (ws *WorldScene) Watch(w *assets.Watcher) {
	ws.watcher = w
}

// WatchDirs lists the fs directories holding the current map, its tilesets
// and the character sprites.
func (ws *WorldScene) WatchDirs() []string {
	level, ok := systems.GetLevel(ws.ecs)
	if !ok {
		return nil
	}
	seen := map[string]bool{}
	var dirs []string
	add := func(p string) {
		dir := path.Dir(p)
		if !seen[dir] {
			seen[dir] = true
			dirs = append(dirs, dir)
		}
	}
	add(level.Map.Path)
	for _, ts := range level.Map.Tilesets {
		if ts.ImagePath != "" {
			add(ts.ImagePath)
		}
	}
	add(cfg.Sprite.PlayerSheet)
	for _, npc := range level.Map.NPCs {
		if npc.Sprite != "" {
			add(path.Join(path.Dir(level.Map.Path), npc.Sprite))
		}
	}
	return dirs
}

func (ws *WorldScene) Update() {
	ws.ecs.Update()

	if ws.changed() || systems.ReloadRequested(ws.ecs) {
		ws.reload()
	}
}

func (ws *WorldScene) Draw(screen *ebiten.Image) {
	// Always clear screen to prevent white flashes from OS window background
	screen.Fill(color.Black)

	if ws.ecs == nil {
		return
	}
	ws.ecs.Draw(screen)
}

// Close stops watching for changes.
func (ws *WorldScene) Close() error {
	if ws.watcher == nil {
		return nil
	}
	return ws.watcher.Close()
}

// changed drains pending watcher events and reports whether any arrived.
func (ws *WorldScene) changed() bool {
	if ws.watcher == nil {
		return false
	}
	changed := false
	for {
		select {
		case name, ok := <-ws.watcher.Events:
			if !ok {
				ws.watcher = nil
				return changed
			}
			log.Debug("asset changed", "file", name)
			changed = true
		case err, ok := <-ws.watcher.Errors:
			if !ok {
				ws.watcher = nil
				return changed
			}
			log.Warn("watcher error", "err", err)
		default:
			return changed
		}
	}
}

func (ws *WorldScene) reload() {
	if err := factory.InstallLevel(ws.ecs, ws.fsys, ws.mapPath); err != nil {
		log.Warn("reload failed, keeping the current map", "map", ws.mapPath, "err", err)
		return
	}
	systems.StartFade(ws.ecs)
}

func (ws *WorldScene) configure() {
	ecs := ecs.NewECS(donburi.NewWorld())

	// Input first, then the world, then the camera that follows it
	ecs.AddSystem(systems.UpdateInput)
	ecs.AddSystem(systems.UpdateSettings)
	ecs.AddSystem(systems.UpdatePlayer)
	ecs.AddSystem(systems.UpdateNPCs)
	ecs.AddSystem(systems.UpdateLevel)
	ecs.AddSystem(systems.UpdateAnimations)
	ecs.AddSystem(systems.UpdateCamera)
	ecs.AddSystem(systems.UpdateFade)
	ecs.AddSystem(systems.UpdatePersistence)

	// Add renderers
	ecs.AddRenderer(cfg.Default, systems.DrawLevelBackground)
	ecs.AddRenderer(cfg.Default, systems.DrawActors)
	ecs.AddRenderer(cfg.Default, systems.DrawLevelForeground)
	ecs.AddRenderer(cfg.Default, systems.DrawDebug)
	ecs.AddRenderer(cfg.Default, systems.DrawHUD)
	ecs.AddRenderer(cfg.Default, systems.DrawFade)

	ws.ecs = ecs
}

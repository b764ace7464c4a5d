package systems

import (
	"github.com/automoto/tilewalk/components"
	cfg "github.com/automoto/tilewalk/config"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/yohamta/donburi/ecs"
)

// GetOrCreateSettings returns the singleton settings, seeded from the saved
// preferences and the -debug flag on first use.
func GetOrCreateSettings(e *ecs.ECS) *components.SettingsData {
	entry, ok := components.Settings.First(e.World)
	if !ok {
		entry = e.World.Entry(e.World.Create(components.Settings))
		settings := components.SettingsData{
			Debug:      cfg.Debug.Enabled,
			ScaleIndex: cfg.Window.DefaultScaleIndex,
		}
		if globalSettings != nil {
			settings.Debug = settings.Debug || globalSettings.Debug
			settings.ScaleIndex = globalSettings.ScaleIndex
			settings.Mode, _ = modeFromInt(globalSettings.Mode)
		}
		components.Settings.SetValue(entry, settings)
	}
	return components.Settings.Get(entry)
}

// UpdateSettings handles the debug overlay and window scale hotkeys.
func UpdateSettings(e *ecs.ECS) {
	input := getOrCreateInput(e)
	settings := GetOrCreateSettings(e)

	if GetAction(input, cfg.ActionToggleDebug).JustPressed {
		settings.Debug = !settings.Debug
		settings.Dirty = true
	}
	if GetAction(input, cfg.ActionCycleScale).JustPressed && len(cfg.Window.Scales) > 0 {
		settings.ScaleIndex = (settings.ScaleIndex + 1) % len(cfg.Window.Scales)
		setWindowScale(settings.ScaleIndex)
		settings.Dirty = true
	}
}

func setWindowScale(index int) {
	ebiten.SetWindowSize(cfg.WindowSize(index))
}

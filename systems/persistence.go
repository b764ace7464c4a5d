package systems

import (
	"encoding/json"

	"github.com/automoto/tilewalk/components"
	cfg "github.com/automoto/tilewalk/config"
	"github.com/automoto/tilewalk/shared/movement"
	"github.com/charmbracelet/log"
	"github.com/quasilyte/gdata"
	"github.com/yohamta/donburi/ecs"
)

const settingsKey = "settings"

// SavedSettings represents the settings data stored on disk
type SavedSettings struct {
	Debug      bool `json:"debug"`
	ScaleIndex int  `json:"scaleIndex"`
	Mode       int  `json:"mode"`
}

var gdataManager *gdata.Manager

// globalSettings carries preferences loaded before the first scene exists.
var globalSettings *SavedSettings

// InitPersistence initializes the gdata manager for settings storage
func InitPersistence() error {
	m, err := gdata.Open(gdata.Config{
		AppName: cfg.AppName,
	})
	if err != nil {
		return err
	}
	gdataManager = m
	return nil
}

// LoadSettings loads settings from disk. It returns nil, nil when nothing
// has been saved yet or persistence is unavailable.
func LoadSettings() (*SavedSettings, error) {
	if gdataManager == nil {
		return nil, nil
	}

	data, err := gdataManager.LoadItem(settingsKey)
	if err != nil {
		log.Warn("could not load settings", "err", err)
		return nil, nil
	}
	if len(data) == 0 {
		return nil, nil
	}

	return decodeSettings(data)
}

func decodeSettings(data []byte) (*SavedSettings, error) {
	var settings SavedSettings
	if err := json.Unmarshal(data, &settings); err != nil {
		return nil, err
	}
	if settings.ScaleIndex < 0 || settings.ScaleIndex >= len(cfg.Window.Scales) {
		settings.ScaleIndex = cfg.Window.DefaultScaleIndex
	}
	if _, ok := modeFromInt(settings.Mode); !ok {
		settings.Mode = int(movement.Walk)
	}
	return &settings, nil
}

// SaveSettings saves settings to disk
func SaveSettings(s *SavedSettings) error {
	if gdataManager == nil {
		return nil
	}

	data, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return gdataManager.SaveItem(settingsKey, data)
}

// ApplySavedSettingsGlobal applies settings without needing an ECS reference.
// Used during initial game startup before scenes are created
func ApplySavedSettingsGlobal(saved *SavedSettings) {
	if saved == nil {
		return
	}
	globalSettings = saved
	setWindowScale(saved.ScaleIndex)
}

// UpdatePersistence writes the settings back whenever they change.
func UpdatePersistence(e *ecs.ECS) {
	settings := GetOrCreateSettings(e)
	if !settings.Dirty {
		return
	}
	settings.Dirty = false
	if err := SaveSettings(savedFrom(settings)); err != nil {
		log.Warn("could not save settings", "err", err)
	}
}

func savedFrom(s *components.SettingsData) *SavedSettings {
	return &SavedSettings{
		Debug:      s.Debug,
		ScaleIndex: s.ScaleIndex,
		Mode:       int(s.Mode),
	}
}

func modeFromInt(v int) (movement.Mode, bool) {
	m := movement.Mode(v)
	switch m {
	case movement.Walk, movement.Run, movement.Ride:
		return m, true
	}
	return movement.Walk, false
}

package components

import (
	"github.com/automoto/tilewalk/shared/movement"
	"github.com/yohamta/donburi"
)

// SettingsData holds the user preferences that survive restarts.
type SettingsData struct {
	Debug      bool
	ScaleIndex int
	Mode       movement.Mode
	Dirty      bool // Changed since the last save
}

var Settings = donburi.NewComponentType[SettingsData]()

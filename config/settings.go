package config

// Scale is a window size expressed as a multiple of the logical screen
type Scale struct {
	Factor int    `yaml:"factor"`
	Label  string `yaml:"label"`
}

// WindowConfig contains the window scales the player can cycle through
type WindowConfig struct {
	Scales            []Scale `yaml:"scales"`
	DefaultScaleIndex int     `yaml:"defaultScaleIndex"`
}

// Window is the global window configuration
var Window WindowConfig

func defaultWindow() WindowConfig {
	return WindowConfig{
		Scales: []Scale{
			{Factor: 1, Label: "1x"},
			{Factor: 2, Label: "2x"},
			{Factor: 3, Label: "3x"},
			{Factor: 4, Label: "4x"},
		},
		DefaultScaleIndex: 2,
	}
}

// WindowSize returns the window dimensions for a scale index, falling back to
// the default scale when the index is out of range.
func WindowSize(index int) (int, int) {
	if index < 0 || index >= len(Window.Scales) {
		index = Window.DefaultScaleIndex
	}
	factor := 1
	if index >= 0 && index < len(Window.Scales) && Window.Scales[index].Factor > 0 {
		factor = Window.Scales[index].Factor
	}
	return C.Width * factor, C.Height * factor
}

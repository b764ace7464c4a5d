package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// file mirrors the override document. Sections point at the live globals so
// keys absent from the document keep their current values.
type file struct {
	Window     *Config           `yaml:"window"`
	Scales     *WindowConfig     `yaml:"scales"`
	Movement   *MovementConfig   `yaml:"movement"`
	NPC        *NPCConfig        `yaml:"npc"`
	Camera     *CameraConfig     `yaml:"camera"`
	Map        *MapConfig        `yaml:"map"`
	Sprite     *SpriteConfig     `yaml:"sprite"`
	Transition *TransitionConfig `yaml:"transition"`
	Watch      *WatchConfig      `yaml:"watch"`
	Debug      *DebugConfig      `yaml:"debug"`
	Input      *InputConfig      `yaml:"input"`
}

// LoadFile applies a YAML override file on top of the current configuration.
func LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: load %s: %w", path, err)
	}
	if err := Apply(data); err != nil {
		return fmt.Errorf("config: load %s: %w", path, err)
	}
	return nil
}

// Apply merges a YAML override document into the globals. Nothing is changed
// when the document is malformed or fails validation.
func Apply(data []byte) error {
	window := *C
	scales := Window
	scales.Scales = append([]Scale(nil), Window.Scales...)
	f := file{
		Window:     &window,
		Scales:     &scales,
		Movement:   ptr(Movement),
		NPC:        ptr(NPC),
		Camera:     ptr(Camera),
		Map:        ptr(Map),
		Sprite:     ptr(Sprite),
		Transition: ptr(Transition),
		Watch:      ptr(Watch),
		Debug:      ptr(Debug),
		Input:      ptr(Input),
	}
	if err := yaml.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}
	if err := f.validate(); err != nil {
		return err
	}

	C = f.Window
	Window = *f.Scales
	Movement = *f.Movement
	NPC = *f.NPC
	Camera = *f.Camera
	Map = *f.Map
	Sprite = *f.Sprite
	Transition = *f.Transition
	Watch = *f.Watch
	Debug = *f.Debug
	Input = *f.Input
	return nil
}

func ptr[T any](v T) *T { return &v }

func (f *file) validate() error {
	var errs []error
	if f.Window.Width <= 0 || f.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window: size %dx%d must be positive", f.Window.Width, f.Window.Height))
	}
	if f.Window.TPS <= 0 {
		errs = append(errs, fmt.Errorf("window: tps %d must be positive", f.Window.TPS))
	}
	if f.Movement.Grid <= 0 {
		errs = append(errs, fmt.Errorf("movement: grid %v must be positive", f.Movement.Grid))
	}
	if f.Movement.Walk < 0 || f.Movement.Run < 0 || f.Movement.Ride < 0 || f.Movement.NPCSpeed < 0 {
		errs = append(errs, errors.New("movement: speeds must not be negative"))
	}
	if f.Map.CellSize <= 0 {
		errs = append(errs, fmt.Errorf("map: cellSize %d must be positive", f.Map.CellSize))
	}
	if f.Sprite.FrameWidth <= 0 || f.Sprite.FrameHeight <= 0 {
		errs = append(errs, fmt.Errorf("sprite: frame %dx%d must be positive", f.Sprite.FrameWidth, f.Sprite.FrameHeight))
	}
	return errors.Join(errs...)
}

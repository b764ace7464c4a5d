package sprite

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/automoto/tilewalk/shared/movement"
)

// Spec is the on-disk description of a character sheet and its animations.
type Spec struct {
	Sheet   string             `yaml:"sheet"`
	FrameW  int                `yaml:"frame_w"`
	FrameH  int                `yaml:"frame_h"`
	Columns int                `yaml:"columns"`
	Rows    int                `yaml:"rows"`
	Hitbox  HitboxSpec         `yaml:"hitbox"`
	Defs    map[string]DefSpec `yaml:"defs"`
}

// HitboxSpec places the collision box inside the frame. A zero size means
// the whole frame.
type HitboxSpec struct {
	OffsetX float64 `yaml:"offset_x"`
	OffsetY float64 `yaml:"offset_y"`
	Width   float64 `yaml:"width"`
	Height  float64 `yaml:"height"`
}

// DefSpec is one animation. Frames lists sheet indices directly; otherwise
// FrameCount frames are taken from Row starting at ColStart.
type DefSpec struct {
	Frames      []int `yaml:"frames"`
	Row         int   `yaml:"row"`
	ColStart    int   `yaml:"col_start"`
	FrameCount  int   `yaml:"frame_count"`
	DurationMS  int   `yaml:"duration_ms"`
	DurationsMS []int `yaml:"durations_ms"`
	Loop        bool  `yaml:"loop"`
}

// LoadSpec reads and decodes a YAML spec from fsys.
func LoadSpec(fsys fs.FS, name string) (Spec, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return Spec{}, fmt.Errorf("sprite: load %s: %w", name, err)
	}
	var spec Spec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return Spec{}, fmt.Errorf("sprite: unmarshal %s: %w", name, err)
	}
	return spec, nil
}

// SheetGrid returns the frame grid of the spec.
func (s Spec) SheetGrid() Sheet {
	return Sheet{FrameW: s.FrameW, FrameH: s.FrameH, Columns: s.Columns, Rows: s.Rows}
}

// Animations resolves every definition against the sheet. A frame outside
// the sheet is an error.
func (s Spec) Animations() (map[string]Animation, error) {
	grid := s.SheetGrid()
	if grid.Len() == 0 {
		return nil, errors.New("sprite: sheet has no frames")
	}
	out := make(map[string]Animation, len(s.Defs))
	for name, def := range s.Defs {
		frames := def.Frames
		if len(frames) == 0 {
			for i := 0; i < def.FrameCount; i++ {
				frames = append(frames, grid.Index(def.Row, def.ColStart+i))
			}
		}
		if len(frames) == 0 {
			return nil, fmt.Errorf("sprite: animation %q has no frames", name)
		}
		for _, f := range frames {
			if f < 0 || f >= grid.Len() {
				return nil, fmt.Errorf("sprite: animation %q: frame %d outside %dx%d sheet", name, f, grid.Columns, grid.Rows)
			}
		}
		var durations []time.Duration
		for _, ms := range def.DurationsMS {
			durations = append(durations, time.Duration(ms)*time.Millisecond)
		}
		if len(durations) == 0 {
			durations = []time.Duration{time.Duration(def.DurationMS) * time.Millisecond}
		}
		out[name] = Animation{Name: name, Frames: frames, Durations: durations, Loop: def.Loop}
	}
	return out, nil
}

// CharacterSpec is the four-direction walking layout: one row per
// direction with down on row 0, then left, right and up. Idle is the first
// frame of the row.
func CharacterSpec(sheet string, frameW, frameH int, frame time.Duration) Spec {
	rows := map[movement.Direction]int{movement.Down: 0, movement.Left: 1, movement.Right: 2, movement.Up: 3}
	s := Spec{
		Sheet:   sheet,
		FrameW:  frameW,
		FrameH:  frameH,
		Columns: 4,
		Rows:    5,
		Defs:    make(map[string]DefSpec, 8),
	}
	ms := int(frame / time.Millisecond)
	for d, row := range rows {
		s.Defs[d.IdleAnimation()] = DefSpec{Frames: []int{row * 4}, DurationMS: ms, Loop: true}
		s.Defs[d.WalkAnimation()] = DefSpec{Row: row, FrameCount: 4, DurationMS: ms, Loop: true}
	}
	return s
}

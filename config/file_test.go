package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestApplyMergesSections(t *testing.T) {
	t.Cleanup(Reset)
	Reset()

	doc := []byte(`
window:
  width: 480
movement:
  run: 120
  freeMove: true
map:
  start: maps/cave.tmx
  foregroundGroups: [Roof]
debug:
  hudColor: {r: 1, g: 2, b: 3, a: 4}
input:
  analogDeadzone: 0.5
`)
	if err := Apply(doc); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	if C.Width != 480 || C.Height != 240 {
		t.Fatalf("window = %dx%d, want 480x240", C.Width, C.Height)
	}
	if Movement.Run != 120 || Movement.Walk != 50 || !Movement.FreeMove {
		t.Fatalf("movement = %+v", Movement)
	}
	if Map.Start != "maps/cave.tmx" || Map.CollisionLayer != "CollisionObject" {
		t.Fatalf("map = %+v", Map)
	}
	if len(Map.ForegroundGroups) != 1 || Map.ForegroundGroups[0] != "Roof" {
		t.Fatalf("foreground groups = %v", Map.ForegroundGroups)
	}
	if Debug.HUDColor.R != 1 || Debug.HUDColor.A != 4 {
		t.Fatalf("hud color = %+v", Debug.HUDColor)
	}
	if Input.AnalogDeadzone != 0.5 || len(Input.Bindings) == 0 {
		t.Fatalf("input deadzone=%v bindings=%d", Input.AnalogDeadzone, len(Input.Bindings))
	}
}

func TestApplyRejectsInvalidValuesAtomically(t *testing.T) {
	t.Cleanup(Reset)
	cases := []struct {
		name string
		doc  string
	}{
		{"malformed", "window: [1, 2"},
		{"zero_width", "window: {width: 0}\nmovement: {walk: 70}"},
		{"negative_speed", "movement: {walk: 70, ride: -1}"},
		{"zero_grid", "movement: {grid: 0}"},
		{"zero_cell", "map: {cellSize: 0}"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			Reset()
			if err := Apply([]byte(c.doc)); err == nil {
				t.Fatalf("expected an error")
			}
			if C.Width != 320 || Movement.Walk != 50 || Map.CellSize != 16 {
				t.Fatalf("globals changed by a rejected document: width=%d walk=%v cell=%d", C.Width, Movement.Walk, Map.CellSize)
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	t.Cleanup(Reset)
	Reset()

	path := filepath.Join(t.TempDir(), "tilewalk.yaml")
	if err := os.WriteFile(path, []byte("sprite:\n  frameMS: 90\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := LoadFile(path); err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if Sprite.FrameMS != 90 || Sprite.FrameWidth != 25 {
		t.Fatalf("sprite = %+v", Sprite)
	}

	if err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatalf("expected an error for a missing file")
	}
}

func TestWindowSize(t *testing.T) {
	t.Cleanup(Reset)
	Reset()

	cases := []struct {
		index int
		w, h  int
	}{
		{0, 320, 240},
		{1, 640, 480},
		{-1, 960, 720},
		{99, 960, 720},
	}
	for _, c := range cases {
		w, h := WindowSize(c.index)
		if w != c.w || h != c.h {
			t.Errorf("WindowSize(%d) = %dx%d, want %dx%d", c.index, w, h, c.w, c.h)
		}
	}
}

package sprite

import (
	"image"
	"os"
	"reflect"
	"testing"
	"testing/fstest"
	"time"
)

func TestSheetFrames(t *testing.T) {
	s := SheetFor(image.Rect(0, 0, 100, 160), 25, 32)
	if s.Columns != 4 || s.Rows != 5 || s.Len() != 20 {
		t.Fatalf("sheet = %+v", s)
	}
	cases := []struct {
		i    int
		want image.Rectangle
	}{
		{0, image.Rect(0, 0, 25, 32)},
		{5, image.Rect(25, 32, 50, 64)},
		{19, image.Rect(75, 128, 100, 160)},
		{20, image.Rectangle{}},
		{-1, image.Rectangle{}},
	}
	for _, c := range cases {
		if got := s.Frame(c.i); got != c.want {
			t.Errorf("Frame(%d) = %v, want %v", c.i, got, c.want)
		}
	}
	if s.Index(2, 3) != 11 {
		t.Errorf("Index(2,3) = %d", s.Index(2, 3))
	}
}

func TestAnimatorLoops(t *testing.T) {
	a := NewAnimator(map[string]Animation{
		"walk": {Frames: []int{4, 5, 6}, Durations: []time.Duration{100 * time.Millisecond}, Loop: true},
	})
	if a.Frame() != -1 {
		t.Fatalf("nothing playing should report -1")
	}
	if !a.Play("walk") {
		t.Fatalf("Play(walk) failed")
	}
	steps := []struct {
		dt    time.Duration
		frame int
	}{
		{50 * time.Millisecond, 4},
		{50 * time.Millisecond, 5},
		{250 * time.Millisecond, 4},
	}
	for i, s := range steps {
		a.Advance(s.dt)
		if a.Frame() != s.frame {
			t.Fatalf("step %d: frame %d, want %d", i, a.Frame(), s.frame)
		}
	}
	if !a.Looped() || a.Finished() {
		t.Fatalf("looped=%v finished=%v", a.Looped(), a.Finished())
	}
}

func TestAnimatorPlaySameKeepsProgress(t *testing.T) {
	a := NewAnimator(map[string]Animation{
		"a": {Frames: []int{0, 1}, Durations: []time.Duration{10 * time.Millisecond}, Loop: true},
		"b": {Frames: []int{7}, Durations: []time.Duration{10 * time.Millisecond}, Loop: true},
	})
	a.Play("a")
	a.Advance(10 * time.Millisecond)
	a.Play("a")
	if a.Frame() != 1 {
		t.Fatalf("replaying the current animation rewound it")
	}
	if a.Play("missing") || a.Current() != "a" {
		t.Fatalf("unknown animation should be refused")
	}
	a.Play("b")
	if a.Frame() != 7 || a.Current() != "b" {
		t.Fatalf("switch failed: %s %d", a.Current(), a.Frame())
	}
}

func TestAnimatorFinishesOnce(t *testing.T) {
	a := NewAnimator(map[string]Animation{
		"wave": {Frames: []int{1, 2, 3}, Durations: []time.Duration{100 * time.Millisecond, 50 * time.Millisecond}},
	})
	a.Play("wave")
	a.Advance(149 * time.Millisecond)
	if a.Frame() != 2 || a.Finished() {
		t.Fatalf("frame=%d finished=%v", a.Frame(), a.Finished())
	}
	a.Advance(101 * time.Millisecond)
	if a.Frame() != 3 || !a.Finished() {
		t.Fatalf("frame=%d finished=%v", a.Frame(), a.Finished())
	}
	a.Advance(time.Second)
	if a.Frame() != 3 {
		t.Fatalf("finished animation kept moving")
	}
	a.Restart()
	if a.Finished() || a.Frame() != 1 {
		t.Fatalf("Restart did not rewind")
	}
}

func TestLoadSpec(t *testing.T) {
	spec, err := LoadSpec(os.DirFS("testdata"), "guard.yaml")
	if err != nil {
		t.Fatalf("LoadSpec: %v", err)
	}
	if spec.Sheet != "sprites/guard.png" || spec.Hitbox.Width != 16 || spec.Hitbox.OffsetY != 16 {
		t.Fatalf("spec = %+v", spec)
	}
	anims, err := spec.Animations()
	if err != nil {
		t.Fatalf("Animations: %v", err)
	}
	if got := anims["walk_down"].Frames; !reflect.DeepEqual(got, []int{0, 1, 2, 3}) {
		t.Errorf("walk_down frames = %v", got)
	}
	wave := anims["wave"]
	if wave.Loop || len(wave.Durations) != 2 || wave.duration(2) != 50*time.Millisecond {
		t.Errorf("wave = %+v", wave)
	}
}

func TestLoadSpecErrors(t *testing.T) {
	fsys := fstest.MapFS{
		"bad.yaml":   {Data: []byte("defs: [unclosed")},
		"range.yaml": {Data: []byte("frame_w: 8\nframe_h: 8\ncolumns: 2\nrows: 1\ndefs:\n  x:\n    frames: [2]\n")},
		"empty.yaml": {Data: []byte("frame_w: 8\nframe_h: 8\ncolumns: 2\nrows: 1\ndefs:\n  x:\n    loop: true\n")},
	}
	if _, err := LoadSpec(fsys, "absent.yaml"); err == nil {
		t.Errorf("missing file should fail")
	}
	if _, err := LoadSpec(fsys, "bad.yaml"); err == nil {
		t.Errorf("malformed yaml should fail")
	}
	for _, name := range []string{"range.yaml", "empty.yaml"} {
		spec, err := LoadSpec(fsys, name)
		if err != nil {
			t.Fatalf("LoadSpec(%s): %v", name, err)
		}
		if _, err := spec.Animations(); err == nil {
			t.Errorf("%s: expected a validation error", name)
		}
	}
	if _, err := (Spec{}).Animations(); err == nil {
		t.Errorf("frameless sheet should fail")
	}
}

func TestCharacterSpecMatchesDirectionRows(t *testing.T) {
	anims, err := CharacterSpec("npc.png", 25, 32, 150*time.Millisecond).Animations()
	if err != nil {
		t.Fatalf("Animations: %v", err)
	}
	want := map[string][]int{
		"idle_left":  {4},
		"idle_right": {8},
		"idle_up":    {12},
		"idle_down":  {0},
		"walk_left":  {4, 5, 6, 7},
		"walk_right": {8, 9, 10, 11},
		"walk_up":    {12, 13, 14, 15},
		"walk_down":  {0, 1, 2, 3},
	}
	if len(anims) != len(want) {
		t.Fatalf("got %d animations", len(anims))
	}
	for name, frames := range want {
		a := anims[name]
		if !reflect.DeepEqual(a.Frames, frames) || !a.Loop || a.duration(0) != 150*time.Millisecond {
			t.Errorf("%s = %+v", name, a)
		}
	}
}

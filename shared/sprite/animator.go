package sprite

import "time"

// Animation is an ordered run of sheet frames. Durations holds one entry per
// frame; a shorter slice repeats its last entry.
type Animation struct {
	Name      string
	Frames    []int
	Durations []time.Duration
	Loop      bool
}

func (a Animation) duration(i int) time.Duration {
	if len(a.Durations) == 0 {
		return 0
	}
	if i >= len(a.Durations) {
		return a.Durations[len(a.Durations)-1]
	}
	return a.Durations[i]
}

// Animator plays one animation at a time out of a fixed set.
type Animator struct {
	set      map[string]Animation
	current  string
	frame    int
	elapsed  time.Duration
	looped   bool
	finished bool
}

func NewAnimator(set map[string]Animation) *Animator {
	return &Animator{set: set}
}

// Play switches to the named animation. Asking for the animation that is
// already playing keeps its progress. It reports whether name exists.
func (a *Animator) Play(name string) bool {
	if name == a.current {
		return true
	}
	if _, ok := a.set[name]; !ok {
		return false
	}
	a.current = name
	a.Restart()
	return true
}

// Restart rewinds the current animation.
func (a *Animator) Restart() {
	a.frame = 0
	a.elapsed = 0
	a.looped = false
	a.finished = false
}

// Advance moves time forward by dt, stepping over as many frames as dt
// covers.
func (a *Animator) Advance(dt time.Duration) {
	anim, ok := a.set[a.current]
	if !ok || len(anim.Frames) == 0 || a.finished || dt <= 0 {
		return
	}
	a.elapsed += dt
	for {
		d := anim.duration(a.frame)
		if d <= 0 || a.elapsed < d {
			return
		}
		a.elapsed -= d
		if a.frame+1 < len(anim.Frames) {
			a.frame++
			continue
		}
		if !anim.Loop {
			a.finished = true
			a.elapsed = 0
			return
		}
		a.frame = 0
		a.looped = true
	}
}

// Current is the name of the playing animation, empty before the first Play.
func (a *Animator) Current() string { return a.current }

// Frame returns the sheet index to draw, or -1 when nothing is playing.
func (a *Animator) Frame() int {
	anim, ok := a.set[a.current]
	if !ok || len(anim.Frames) == 0 {
		return -1
	}
	return anim.Frames[a.frame]
}

// Finished reports that a non-looping animation has shown its last frame
// for its full duration.
func (a *Animator) Finished() bool { return a.finished }

// Looped reports that a looping animation has wrapped at least once since it
// was started.
func (a *Animator) Looped() bool { return a.looped }

// Has reports whether name is part of the set.
func (a *Animator) Has(name string) bool {
	_, ok := a.set[name]
	return ok
}

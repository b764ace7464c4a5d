// Package movement implements the grid-aligned movement state machine shared
// by the player and non-player characters.
package movement

import "github.com/automoto/tilewalk/shared/gamemath"

const (
	// DefaultGrid is the tile size targets snap to.
	DefaultGrid = 16.0
	// DefaultArrival is the remaining distance at which an actor snaps onto
	// its target.
	DefaultArrival = 1.0
)

// State is the movement state of an Actor.
type State int

const (
	Idle State = iota
	MovingFree
	MovingToTarget
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case MovingFree:
		return "moving-free"
	case MovingToTarget:
		return "moving-to-target"
	}
	return "unknown"
}

// Outcome reports what a single update did.
type Outcome int

const (
	None Outcome = iota
	Stepped
	Arrived
	Blocked
)

func (o Outcome) String() string {
	switch o {
	case None:
		return "none"
	case Stepped:
		return "stepped"
	case Arrived:
		return "arrived"
	case Blocked:
		return "blocked"
	}
	return "unknown"
}

// Blocker decides whether a hitbox placed in the world collides.
type Blocker interface {
	Blocked(hitbox gamemath.Rect) bool
}

// BlockerFunc adapts a function to Blocker.
type BlockerFunc func(hitbox gamemath.Rect) bool

func (f BlockerFunc) Blocked(hitbox gamemath.Rect) bool { return f(hitbox) }

// Actor is the movement state of a player or NPC.
//
// Pos is the top-left of the sprite in world pixels. Hitbox is relative to
// Pos and is what gets tested against the map.
type Actor struct {
	Pos     gamemath.Point
	Facing  Direction
	Mode    Mode
	Hitbox  gamemath.Rect
	Speeds  Speeds
	Grid    float64
	Arrival float64

	state     State
	moving    bool
	hasTarget bool
	target    gamemath.Point
}

// NewActor returns an idle actor facing down.
func NewActor(x, y float64, hitbox gamemath.Rect, speeds Speeds) *Actor {
	return &Actor{
		Pos:     gamemath.Point{X: x, Y: y},
		Facing:  Down,
		Mode:    Walk,
		Hitbox:  hitbox,
		Speeds:  speeds,
		Grid:    DefaultGrid,
		Arrival: DefaultArrival,
	}
}

func (a *Actor) State() State    { return a.state }
func (a *Actor) Moving() bool    { return a.moving }
func (a *Actor) HasTarget() bool { return a.hasTarget }

// Target returns the current destination, if any.
func (a *Actor) Target() (gamemath.Point, bool) {
	return a.target, a.hasTarget
}

// Speed is the current speed in world units per second.
func (a *Actor) Speed() float64 {
	return a.Speeds.For(a.Mode)
}

// HitboxAt places the hitbox as if the actor stood at p.
func (a *Actor) HitboxAt(p gamemath.Point) gamemath.Rect {
	return a.Hitbox.Translate(p.X, p.Y)
}

// Bounds is the hitbox at the current position.
func (a *Actor) Bounds() gamemath.Rect {
	return a.HitboxAt(a.Pos)
}

// SetMode changes speed. An in-flight target is kept.
func (a *Actor) SetMode(m Mode) {
	if m < 0 || m >= modeCount {
		return
	}
	a.Mode = m
}

// ApplyToggles switches walk/run on ToggleA and walk/ride on ToggleB.
func (a *Actor) ApplyToggles(in Input) {
	if in.ToggleA {
		if a.Mode == Run {
			a.SetMode(Walk)
		} else {
			a.SetMode(Run)
		}
	}
	if in.ToggleB {
		if a.Mode == Ride {
			a.SetMode(Walk)
		} else {
			a.SetMode(Ride)
		}
	}
}

// Step requests a one-tile move in d. The target is the current grid cell
// boundary advanced by one tile. Step is refused while a target is pending.
func (a *Actor) Step(d Direction) bool {
	if a.hasTarget || !d.Valid() {
		return false
	}
	grid := a.grid()
	target := a.Pos
	switch d {
	case Left:
		target.X = gamemath.SnapDown(a.Pos.X, grid) - grid
	case Right:
		target.X = gamemath.SnapDown(a.Pos.X, grid) + grid
	case Up:
		target.Y = gamemath.SnapDown(a.Pos.Y, grid) - grid
	case Down:
		target.Y = gamemath.SnapDown(a.Pos.Y, grid) + grid
	}
	a.setTarget(target, d)
	return true
}

// MoveBy targets a point distance units away in d, replacing any pending
// target.
func (a *Actor) MoveBy(d Direction, distance float64) {
	if !d.Valid() {
		return
	}
	v := d.Vector()
	a.setTarget(gamemath.Point{X: a.Pos.X + v.X*distance, Y: a.Pos.Y + v.Y*distance}, d)
}

// MoveTo targets (x, y) in a straight line, replacing any pending target.
// Facing follows the dominant axis of the displacement.
func (a *Actor) MoveTo(x, y float64) {
	a.setTarget(gamemath.Point{X: x, Y: y}, dominant(x-a.Pos.X, y-a.Pos.Y))
}

// Cancel drops any pending target and stops the actor where it stands.
func (a *Actor) Cancel() {
	a.hasTarget = false
	a.moving = false
	a.state = Idle
}

// Place teleports the actor and cancels any movement.
func (a *Actor) Place(x, y float64) {
	a.Pos = gamemath.Point{X: x, Y: y}
	a.Cancel()
}

func (a *Actor) setTarget(p gamemath.Point, d Direction) {
	a.target = p
	a.hasTarget = true
	a.moving = true
	a.Facing = d
	a.state = MovingToTarget
}

// Update advances towards the pending target by Speed()*dt. Each tentative
// position is tested as a whole; a colliding step is rejected, the target is
// dropped and the actor stays at its last lawful position.
func (a *Actor) Update(dt float64, b Blocker) Outcome {
	if !a.hasTarget {
		if a.state != MovingFree {
			a.moving = false
			a.state = Idle
		}
		return None
	}

	dist := gamemath.Distance(a.Pos, a.target)
	if dist > a.arrival() {
		step := a.Speed() * dt
		if step <= 0 {
			return None
		}
		if step > dist {
			step = dist
		}
		next := gamemath.Point{
			X: a.Pos.X + (a.target.X-a.Pos.X)/dist*step,
			Y: a.Pos.Y + (a.target.Y-a.Pos.Y)/dist*step,
		}
		if a.blocked(next, b) {
			a.Cancel()
			return Blocked
		}
		a.Pos = next
		if gamemath.Distance(a.Pos, a.target) > a.arrival() {
			return Stepped
		}
	}

	if a.Pos != a.target && a.blocked(a.target, b) {
		a.Cancel()
		return Blocked
	}
	a.Pos = a.target
	a.Cancel()
	return Arrived
}

// MoveFree integrates held movement directly. Each axis is tested on its
// own so the actor slides along whichever axis is still open. Facing follows
// the usual direction priority.
func (a *Actor) MoveFree(in Input, dt float64, b Blocker) Outcome {
	if a.hasTarget {
		return a.Update(dt, b)
	}
	vx, vy := in.Axis()
	if d, ok := in.Direction(); ok {
		a.Facing = d
	}
	if vx == 0 && vy == 0 {
		a.moving = false
		a.state = Idle
		return None
	}
	a.state = MovingFree
	step := a.Speed() * dt

	moved, blocked := false, false
	if vx != 0 {
		next := gamemath.Point{X: a.Pos.X + vx*step, Y: a.Pos.Y}
		if a.blocked(next, b) {
			blocked = true
		} else {
			a.Pos = next
			moved = true
		}
	}
	if vy != 0 {
		next := gamemath.Point{X: a.Pos.X, Y: a.Pos.Y + vy*step}
		if a.blocked(next, b) {
			blocked = true
		} else {
			a.Pos = next
			moved = true
		}
	}
	a.moving = moved
	switch {
	case moved:
		return Stepped
	case blocked:
		return Blocked
	}
	return None
}

// Drive runs one frame of player control. A pending target is followed and
// input ignored until it resolves; otherwise the highest-priority direction
// starts a new grid step.
func (a *Actor) Drive(in Input, dt float64, b Blocker) Outcome {
	a.ApplyToggles(in)
	if !a.hasTarget {
		d, ok := in.Direction()
		if !ok {
			a.moving = false
			a.state = Idle
			return None
		}
		a.Step(d)
	}
	return a.Update(dt, b)
}

func (a *Actor) blocked(p gamemath.Point, b Blocker) bool {
	return b != nil && b.Blocked(a.HitboxAt(p))
}

func (a *Actor) grid() float64 {
	if a.Grid <= 0 {
		return DefaultGrid
	}
	return a.Grid
}

func (a *Actor) arrival() float64 {
	if a.Arrival < 0 {
		return DefaultArrival
	}
	return a.Arrival
}

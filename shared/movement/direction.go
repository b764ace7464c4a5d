package movement

import "github.com/automoto/tilewalk/shared/gamemath"

// Direction is a facing. The numeric values match the integer "direction"
// property used in map files.
type Direction int

const (
	Left Direction = iota
	Right
	Up
	Down
)

type directionInfo struct {
	name   string
	vector gamemath.Point
	idle   string
	walk   string
}

var directions = [...]directionInfo{
	Left:  {name: "left", vector: gamemath.Point{X: -1}, idle: "idle_left", walk: "walk_left"},
	Right: {name: "right", vector: gamemath.Point{X: 1}, idle: "idle_right", walk: "walk_right"},
	Up:    {name: "up", vector: gamemath.Point{Y: -1}, idle: "idle_up", walk: "walk_up"},
	Down:  {name: "down", vector: gamemath.Point{Y: 1}, idle: "idle_down", walk: "walk_down"},
}

// DirectionFromInt validates a raw direction value.
func DirectionFromInt(v int) (Direction, bool) {
	if v < int(Left) || v > int(Down) {
		return Down, false
	}
	return Direction(v), true
}

func (d Direction) Valid() bool {
	return d >= Left && d <= Down
}

func (d Direction) String() string {
	if !d.Valid() {
		return "invalid"
	}
	return directions[d].name
}

// Vector returns the unit step for d.
func (d Direction) Vector() gamemath.Point {
	if !d.Valid() {
		return gamemath.Point{}
	}
	return directions[d].vector
}

// Horizontal reports whether d moves along X.
func (d Direction) Horizontal() bool {
	return d == Left || d == Right
}

// IdleAnimation and WalkAnimation name the animations played for d.
func (d Direction) IdleAnimation() string {
	if !d.Valid() {
		return directions[Down].idle
	}
	return directions[d].idle
}

func (d Direction) WalkAnimation() string {
	if !d.Valid() {
		return directions[Down].walk
	}
	return directions[d].walk
}

// Animation picks the walk or idle animation.
func (d Direction) Animation(moving bool) string {
	if moving {
		return d.WalkAnimation()
	}
	return d.IdleAnimation()
}

// dominant returns the facing for a displacement. Ties go to the vertical
// axis.
func dominant(dx, dy float64) Direction {
	if abs(dx) > abs(dy) {
		if dx > 0 {
			return Right
		}
		return Left
	}
	if dy > 0 {
		return Down
	}
	return Up
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

package movement

// Input is the per-frame snapshot of movement intents. ToggleA and ToggleB
// are edge-triggered: true only on the frame the toggle was pressed.
type Input struct {
	Left, Right, Up, Down bool
	ToggleA, ToggleB      bool
}

// Direction resolves simultaneous intents. Left and right win over up and
// down, in that order.
func (in Input) Direction() (Direction, bool) {
	switch {
	case in.Left:
		return Left, true
	case in.Right:
		return Right, true
	case in.Up:
		return Up, true
	case in.Down:
		return Down, true
	}
	return Down, false
}

// Axis returns the held direction on each axis as -1, 0 or 1. Opposing
// intents cancel.
func (in Input) Axis() (float64, float64) {
	var x, y float64
	if in.Left {
		x--
	}
	if in.Right {
		x++
	}
	if in.Up {
		y--
	}
	if in.Down {
		y++
	}
	return x, y
}

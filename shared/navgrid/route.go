package navgrid

import (
	"github.com/automoto/tilewalk/shared/gamemath"
	"github.com/automoto/tilewalk/shared/movement"
)

// Route walks an actor through a list of waypoints one MoveTo at a time.
type Route struct {
	points []gamemath.Point
	next   int
}

func NewRoute(points []gamemath.Point) *Route {
	return &Route{points: points}
}

// Done reports whether every waypoint has been reached or the route was
// abandoned.
func (r *Route) Done() bool { return r.next >= len(r.points) }

// Remaining is the number of waypoints still ahead.
func (r *Route) Remaining() int { return len(r.points) - r.next }

// Drive advances the actor by dt. When the actor is idle the next waypoint
// becomes its target. A blocked step abandons the rest of the route.
func (r *Route) Drive(a *movement.Actor, dt float64, b movement.Blocker) movement.Outcome {
	if !a.HasTarget() {
		if r.Done() {
			return movement.None
		}
		p := r.points[r.next]
		a.MoveTo(p.X, p.Y)
	}
	out := a.Update(dt, b)
	switch out {
	case movement.Arrived:
		r.next++
	case movement.Blocked:
		r.next = len(r.points)
	}
	return out
}

// Waypoints returns the points still ahead, nearest first.
func (r *Route) Waypoints() []gamemath.Point {
	if r.Done() {
		return nil
	}
	return r.points[r.next:]
}

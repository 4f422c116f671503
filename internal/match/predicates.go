package match

import (
	"math"

	"github.com/tpwave/gestured/internal/gesture"
)

// cardinalCone reports whether (dx, dy) lies in dir's 90-degree cone. The
// four cones partition the plane minus the origin, overlapping only on the
// diagonals |dx| = |dy| — the boundary comparisons are deliberately
// inclusive (<=, >=) on both sides of each diagonal.
//
// Up and down are reckoned in device coordinates, where negative y is up.
func cardinalCone(dir Cardinal, dx, dy float64) bool {
	switch dir {
	case Up:
		return dy <= dx && dy <= -dx
	case Down:
		return dy >= dx && dy >= -dx
	case Right:
		return dx >= dy && dx >= -dy
	case Left:
		return dx <= dy && dx <= -dy
	default:
		return false
	}
}

// matchesSwipeGeometry is the shared distance/direction algebra used by both
// matchesSwipe (over a swipe gesture's own dx/dy) and matchesShear (over a
// pinch gesture's translation component).
func matchesSwipeGeometry(dir Cardinal, distance float64, dx, dy float64) bool {
	if !cardinalCone(dir, dx, dy) {
		return false
	}
	return math.Max(math.Abs(dx), math.Abs(dy)) >= distance
}

func matchesSwipe(t Trigger, g gesture.Gesture, o Origin) bool {
	if t.Fingers != g.Fingers {
		return false
	}
	return matchesSwipeGeometry(t.Cardinal, t.Distance, g.Dx-o.X, g.Dy-o.Y)
}

func matchesShear(t Trigger, g gesture.Gesture, o Origin) bool {
	if t.Fingers != g.Fingers {
		return false
	}
	return matchesSwipeGeometry(t.Cardinal, t.Distance, g.Dx-o.X, g.Dy-o.Y)
}

func matchesPinch(t Trigger, g gesture.Gesture, originScale float64) bool {
	if t.Fingers != g.Fingers {
		return false
	}
	switch t.PinchDir {
	case In:
		return originScale*t.Scale <= g.Scale
	case Out:
		return originScale/t.Scale >= g.Scale
	default:
		return false
	}
}

func matchesRotate(t Trigger, g gesture.Gesture, originRot float64) bool {
	if t.Fingers != g.Fingers {
		return false
	}
	a := g.Angle - originRot
	switch t.RotateDir {
	case Clockwise:
		if a <= 0 {
			return false
		}
	case Anticlockwise:
		if a >= 0 {
			return false
		}
	}
	return math.Abs(a) >= t.Distance
}

func matchesHold(t Trigger, g gesture.Gesture, ctime uint32) bool {
	if t.Fingers != g.Fingers {
		return false
	}
	return saturatingSub(ctime, g.BeginTime) >= t.Time
}

// saturatingSub prevents a monotonic-clock wrap (ctime < beginTime) from
// yielding a spuriously large duration.
func saturatingSub(a, b uint32) uint32 {
	if a < b {
		return 0
	}
	return a - b
}

// Package match decides, for each normalized gesture event, which
// configured triggers fire — applying origin-adjustment and single-fire /
// repeated discipline so that within one gesture a non-repeated trigger
// fires at most once while distinct directions stay free to retrigger.
package match

// Kind tags the variant held by a Trigger.
type Kind int

const (
	KindSwipe Kind = iota
	KindShear
	KindPinch
	KindRotate
	KindHold
)

// Cardinal is a compass direction used by Swipe and Shear triggers.
type Cardinal int

const (
	Up Cardinal = iota
	Down
	Left
	Right
)

// PinchDir is the direction of a Pinch trigger.
type PinchDir int

const (
	In PinchDir = iota
	Out
)

// RotateDir is the direction of a Rotate trigger.
type RotateDir int

const (
	Clockwise RotateDir = iota
	Anticlockwise
)

// AnyDirection unifies Cardinal, PinchDir and RotateDir for the purposes of
// the directional-unlock step: two triggers "share a direction" iff their
// AnyDirection values are equal.
type AnyDirection int

const (
	DirUp AnyDirection = iota
	DirDown
	DirLeft
	DirRight
	DirPinchIn
	DirPinchOut
	DirClockwise
	DirAnticlockwise
)

// Trigger is a declarative rule that becomes a fired index when its
// predicate holds against the current gesture and origin. It is a closed
// sum: Kind selects which of the remaining fields are meaningful, mirroring
// the tagged-union trigger model rather than an open class hierarchy.
type Trigger struct {
	Kind    Kind
	Fingers int

	Cardinal  Cardinal  // Swipe, Shear
	PinchDir  PinchDir  // Pinch
	RotateDir RotateDir // Rotate

	Distance float64 // Swipe/Shear: device units. Rotate: degrees.
	Scale    float64 // Pinch: multiplicative factor, e.g. 1.4.
	Time     uint32  // Hold: milliseconds.

	Repeated bool
}

// Direction reports the AnyDirection this trigger fires under, and whether
// it has one at all (Hold triggers do not).
func (t Trigger) Direction() (AnyDirection, bool) {
	switch t.Kind {
	case KindSwipe, KindShear:
		switch t.Cardinal {
		case Up:
			return DirUp, true
		case Down:
			return DirDown, true
		case Left:
			return DirLeft, true
		case Right:
			return DirRight, true
		}
	case KindPinch:
		if t.PinchDir == In {
			return DirPinchIn, true
		}
		return DirPinchOut, true
	case KindRotate:
		if t.RotateDir == Clockwise {
			return DirClockwise, true
		}
		return DirAnticlockwise, true
	}
	return 0, false
}

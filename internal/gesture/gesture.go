// Package gesture converts a stream of raw touchpad lifecycle events into a
// stable current-gesture value.
package gesture

// Kind tags the variant held by a Gesture.
type Kind int

const (
	// KindNone is the unique quiescent state: no gesture in flight.
	KindNone Kind = iota
	KindSwipe
	KindPinch
	KindHold
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindSwipe:
		return "swipe"
	case KindPinch:
		return "pinch"
	case KindHold:
		return "hold"
	default:
		return "unknown"
	}
}

// Gesture is a snapshot of the in-flight touchpad motion. Only the fields
// relevant to Kind are meaningful; the rest are left at their zero value.
type Gesture struct {
	Kind      Kind
	BeginTime uint32
	Fingers   int

	// Dx, Dy are the cumulative translation since begin, in device units.
	// For Pinch, this is the pinch's own translation component (used by
	// Shear triggers).
	Dx, Dy float64

	// Scale is the cumulative pinch scale ratio; begins at whatever value
	// the first PinchBegin event reports (nominally 1.0). Swipe/Hold leave
	// this at zero.
	Scale float64

	// Angle is the cumulative rotation in degrees; positive is clockwise.
	Angle float64
}

// EventKind tags the variant held by an InputEvent.
type EventKind int

const (
	Ongoing EventKind = iota
	Ended
	Cancelled
)

// InputEvent is the tracker's normalized output: a gesture snapshot paired
// with a monotonic millisecond timestamp and a lifecycle tag.
//
// For Ongoing, Gesture is a copy of the in-flight state — callers must not
// expect it to alias anything the tracker continues to mutate. For Ended or
// Cancelled, Gesture is the final value, moved out of the tracker; after
// emission the tracker's own state is KindNone.
type InputEvent struct {
	Kind    EventKind
	Gesture Gesture
	Time    uint32
}

// RawKind tags the raw lifecycle events the event source produces.
type RawKind int

const (
	RawSwipeBegin RawKind = iota
	RawSwipeUpdate
	RawSwipeEnd
	RawPinchBegin
	RawPinchUpdate
	RawPinchEnd
	RawHoldBegin
	RawHoldEnd
)

// RawEvent is one lifecycle event as produced by the raw event source
// (internal/evsource). Only the fields relevant to Kind need be set.
type RawEvent struct {
	Kind      RawKind
	Time      uint32
	Fingers   int
	DxDelta   float64
	DyDelta   float64
	Scale     float64
	AngleDelta float64
	Cancelled bool
}

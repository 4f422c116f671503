package gesture

import "github.com/sirupsen/logrus"

// Tracker holds the single in-flight Gesture and advances it one raw event
// at a time. It is not safe for concurrent use; the dispatch loop owns it
// exclusively.
type Tracker struct {
	current Gesture
}

// New returns a Tracker at rest (KindNone).
func New() *Tracker {
	return &Tracker{current: Gesture{Kind: KindNone}}
}

// Update consumes one raw event and returns the InputEvent it produces.
// Exactly one InputEvent is emitted per call.
func (t *Tracker) Update(ev RawEvent) InputEvent {
	switch ev.Kind {
	case RawSwipeBegin:
		t.current = Gesture{Kind: KindSwipe, BeginTime: ev.Time, Fingers: ev.Fingers}
		return t.ongoing(ev.Time)

	case RawSwipeUpdate:
		if t.current.Kind == KindSwipe {
			t.current.Dx += ev.DxDelta
			t.current.Dy += ev.DyDelta
		} else {
			logrus.WithField("raw", "SwipeUpdate").Warn("impossible coords update")
		}
		return t.ongoing(ev.Time)

	case RawSwipeEnd:
		return t.finish(ev.Time, ev.Cancelled)

	case RawPinchBegin:
		t.current = Gesture{Kind: KindPinch, BeginTime: ev.Time, Fingers: ev.Fingers, Scale: ev.Scale}
		return t.ongoing(ev.Time)

	case RawPinchUpdate:
		if t.current.Kind == KindPinch {
			t.current.Dx += ev.DxDelta
			t.current.Dy += ev.DyDelta
			t.current.Scale = ev.Scale
			t.current.Angle += ev.AngleDelta
		} else {
			logrus.WithField("raw", "PinchUpdate").Warn("impossible coords update")
		}
		return t.ongoing(ev.Time)

	case RawPinchEnd:
		if t.current.Kind == KindPinch {
			t.current.Scale = ev.Scale
		}
		return t.finish(ev.Time, ev.Cancelled)

	case RawHoldBegin:
		t.current = Gesture{Kind: KindHold, BeginTime: ev.Time, Fingers: ev.Fingers}
		return t.ongoing(ev.Time)

	case RawHoldEnd:
		return t.finish(ev.Time, ev.Cancelled)

	default:
		logrus.WithField("raw", ev.Kind).Warn("unrecognized or out-of-order raw event")
		return t.ongoing(ev.Time)
	}
}

func (t *Tracker) ongoing(time uint32) InputEvent {
	return InputEvent{Kind: Ongoing, Gesture: t.current, Time: time}
}

// finish moves the current gesture out of the tracker, resets it to
// KindNone, and wraps it in Ended or Cancelled depending on cancelled.
func (t *Tracker) finish(time uint32, cancelled bool) InputEvent {
	g := t.current
	t.current = Gesture{Kind: KindNone}
	kind := Ended
	if cancelled {
		kind = Cancelled
	}
	return InputEvent{Kind: kind, Gesture: g, Time: time}
}

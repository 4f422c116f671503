package match

import "github.com/tpwave/gestured/internal/gesture"

// Matcher decides which configured triggers fire on each InputEvent. It
// owns Origin and the set of already-fired trigger indices exclusively; the
// trigger list itself is immutable for the lifetime of the Matcher.
type Matcher struct {
	triggers  []Trigger
	origin    Origin
	triggered map[int]struct{}
}

// New builds a Matcher over a fixed, ordered trigger list.
func New(triggers []Trigger) *Matcher {
	return &Matcher{
		triggers:  triggers,
		origin:    restOrigin(),
		triggered: make(map[int]struct{}),
	}
}

// Triggers returns the matcher's trigger list, for callers (the dispatcher)
// that need to look up the bound action by index.
func (m *Matcher) Triggers() []Trigger {
	return m.triggers
}

// Adapt is the matcher's single public operation: given one InputEvent, it
// returns the ascending list of trigger indices that fire now.
func (m *Matcher) Adapt(ev gesture.InputEvent) []int {
	g := ev.Gesture
	ended := ev.Kind == gesture.Ended || ev.Kind == gesture.Cancelled
	if ev.Kind == gesture.Cancelled {
		// Cancellation substitutes None so that nothing can match it.
		g = gesture.Gesture{Kind: gesture.KindNone}
	}

	fired := m.candidates(g, ev.Time)

	if ended {
		m.origin = restOrigin()
		m.triggered = make(map[int]struct{})
		return fired
	}

	if len(fired) > 0 {
		m.moveOrigin(g)
		m.unlockOtherDirections(fired)
	}

	return fired
}

// candidates runs the five match predicates over every trigger and applies
// the single-fire filter, in trigger-list order.
func (m *Matcher) candidates(g gesture.Gesture, ctime uint32) []int {
	var fired []int
	for i, t := range m.triggers {
		if !m.matches(t, g, ctime) {
			continue
		}
		if !t.Repeated {
			if _, already := m.triggered[i]; already {
				continue
			}
			m.triggered[i] = struct{}{}
		}
		fired = append(fired, i)
	}
	return fired
}

func (m *Matcher) matches(t Trigger, g gesture.Gesture, ctime uint32) bool {
	switch {
	case t.Kind == KindSwipe && g.Kind == gesture.KindSwipe:
		return matchesSwipe(t, g, m.origin)
	case t.Kind == KindShear && g.Kind == gesture.KindPinch:
		return matchesShear(t, g, m.origin)
	case t.Kind == KindPinch && g.Kind == gesture.KindPinch:
		return matchesPinch(t, g, m.origin.Scale)
	case t.Kind == KindRotate && g.Kind == gesture.KindPinch:
		return matchesRotate(t, g, m.origin.Rotation)
	case t.Kind == KindHold && g.Kind == gesture.KindHold:
		return matchesHold(t, g, ctime)
	default:
		return false
	}
}

// moveOrigin snaps Origin to the gesture's current cumulative state so that
// subsequent matches measure movement from where the fingers now rest.
func (m *Matcher) moveOrigin(g gesture.Gesture) {
	switch g.Kind {
	case gesture.KindSwipe:
		m.origin.X = g.Dx
		m.origin.Y = g.Dy
	case gesture.KindPinch:
		m.origin.X = g.Dx
		m.origin.Y = g.Dy
		m.origin.Scale = g.Scale
		m.origin.Rotation = g.Angle
	}
}

// unlockOtherDirections lets the single-fire set rescind triggers whose
// direction differs from anything that just fired, so the same gesture can
// retrigger them later in a new direction. Triggers already fired in a
// direction that just fired again stay locked; Holds have no direction and
// are never touched here.
func (m *Matcher) unlockOtherDirections(fired []int) {
	justFired := make(map[AnyDirection]bool)
	for _, i := range fired {
		if dir, ok := m.triggers[i].Direction(); ok {
			justFired[dir] = true
		}
	}
	if len(justFired) == 0 {
		return
	}
	for i := range m.triggered {
		dir, ok := m.triggers[i].Direction()
		if !ok {
			continue // Hold: never unlocked here.
		}
		if !justFired[dir] {
			delete(m.triggered, i)
		}
	}
}

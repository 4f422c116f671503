package match

import (
	"reflect"
	"testing"

	"github.com/tpwave/gestured/internal/gesture"
)

func ongoingSwipe(fingers int, dx, dy float64, t uint32) gesture.InputEvent {
	return gesture.InputEvent{
		Kind: gesture.Ongoing,
		Time: t,
		Gesture: gesture.Gesture{
			Kind:    gesture.KindSwipe,
			Fingers: fingers,
			Dx:      dx,
			Dy:      dy,
		},
	}
}

func endedSwipe(fingers int, dx, dy float64, t uint32) gesture.InputEvent {
	ev := ongoingSwipe(fingers, dx, dy, t)
	ev.Kind = gesture.Ended
	return ev
}

func cancelledSwipe(fingers int, dx, dy float64, t uint32) gesture.InputEvent {
	ev := ongoingSwipe(fingers, dx, dy, t)
	ev.Kind = gesture.Cancelled
	return ev
}

func ongoingPinch(fingers int, scale, angle, dx, dy float64, t uint32) gesture.InputEvent {
	return gesture.InputEvent{
		Kind: gesture.Ongoing,
		Time: t,
		Gesture: gesture.Gesture{
			Kind:    gesture.KindPinch,
			Fingers: fingers,
			Scale:   scale,
			Angle:   angle,
			Dx:      dx,
			Dy:      dy,
		},
	}
}

func ongoingHold(fingers int, begin, t uint32) gesture.InputEvent {
	return gesture.InputEvent{
		Kind: gesture.Ongoing,
		Time: t,
		Gesture: gesture.Gesture{
			Kind:      gesture.KindHold,
			Fingers:   fingers,
			BeginTime: begin,
		},
	}
}

// The end-to-end scenarios describe a stream of raw per-event deltas as they
// would arrive from the event source, not already-accumulated gesture
// totals — so these drive a real gesture.Tracker ahead of the Matcher,
// exactly as the production pipeline does.
func swipeUpdate(tr *gesture.Tracker, fingers int, dxDelta, dyDelta float64, t uint32) gesture.InputEvent {
	return tr.Update(gesture.RawEvent{Kind: gesture.RawSwipeUpdate, Fingers: fingers, DxDelta: dxDelta, DyDelta: dyDelta, Time: t})
}

func pinchUpdate(tr *gesture.Tracker, fingers int, scale, angleDelta float64, t uint32) gesture.InputEvent {
	return tr.Update(gesture.RawEvent{Kind: gesture.RawPinchUpdate, Fingers: fingers, Scale: scale, AngleDelta: angleDelta, Time: t})
}

// scenarioTriggers builds the five-trigger list used throughout spec §8's
// end-to-end scenarios.
func scenarioTriggers() []Trigger {
	return []Trigger{
		{Kind: KindSwipe, Fingers: 3, Cardinal: Up, Distance: 200, Repeated: false},    // 0
		{Kind: KindSwipe, Fingers: 3, Cardinal: Down, Distance: 200, Repeated: false},  // 1
		{Kind: KindPinch, Fingers: 3, PinchDir: In, Scale: 1.4, Repeated: false},       // 2
		{Kind: KindRotate, Fingers: 3, RotateDir: Clockwise, Distance: 60, Repeated: false}, // 3
		{Kind: KindSwipe, Fingers: 3, Cardinal: Up, Distance: 200, Repeated: true},     // 4
	}
}

func assertFired(t *testing.T, got []int, want []int) {
	t.Helper()
	if len(got) == 0 {
		got = nil
	}
	if len(want) == 0 {
		want = nil
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("fired = %v, want %v", got, want)
	}
}

// Scenario 1.
func TestScenarioSingleFireAndRepeated(t *testing.T) {
	tr := gesture.New()
	m := New(scenarioTriggers())
	tr.Update(gesture.RawEvent{Kind: gesture.RawSwipeBegin, Fingers: 3, Time: 0})

	assertFired(t, m.Adapt(swipeUpdate(tr, 3, 30, 10, 20)), nil)
	assertFired(t, m.Adapt(swipeUpdate(tr, 3, 10, -101, 30)), nil)
	assertFired(t, m.Adapt(swipeUpdate(tr, 3, -20, -202, 40)), []int{0, 4})
	assertFired(t, m.Adapt(swipeUpdate(tr, 3, 10, -303, 50)), []int{4})
	assertFired(t, m.Adapt(tr.Update(gesture.RawEvent{Kind: gesture.RawSwipeEnd, Time: 60})), nil)
}

// Scenario 2.
func TestScenarioDirectionalUnlock(t *testing.T) {
	tr := gesture.New()
	m := New(scenarioTriggers())
	tr.Update(gesture.RawEvent{Kind: gesture.RawSwipeBegin, Fingers: 3, Time: 0})

	m.Adapt(swipeUpdate(tr, 3, 30, 10, 20))
	m.Adapt(swipeUpdate(tr, 3, 10, -101, 30))
	assertFired(t, m.Adapt(swipeUpdate(tr, 3, -20, -202, 40)), []int{0, 4})

	assertFired(t, m.Adapt(swipeUpdate(tr, 3, 10, 10, 70)), nil)
	assertFired(t, m.Adapt(swipeUpdate(tr, 3, 10, 210, 80)), []int{1})
}

// Scenario 3.
func TestScenarioPinch(t *testing.T) {
	tr := gesture.New()
	m := New(scenarioTriggers())
	tr.Update(gesture.RawEvent{Kind: gesture.RawPinchBegin, Fingers: 3, Scale: 1.0, Time: 0})

	assertFired(t, m.Adapt(pinchUpdate(tr, 3, 1.2, 0, 10)), nil)
	assertFired(t, m.Adapt(pinchUpdate(tr, 3, 1.41, 0, 20)), []int{2})
	assertFired(t, m.Adapt(tr.Update(gesture.RawEvent{Kind: gesture.RawPinchEnd, Scale: 1.41, Time: 30})), nil)
}

// Scenario 4.
func TestScenarioRotate(t *testing.T) {
	tr := gesture.New()
	m := New(scenarioTriggers())
	tr.Update(gesture.RawEvent{Kind: gesture.RawPinchBegin, Fingers: 3, Scale: 1.0, Time: 0})

	assertFired(t, m.Adapt(pinchUpdate(tr, 3, 1.0, 30, 10)), nil)
	assertFired(t, m.Adapt(pinchUpdate(tr, 3, 1.0, 61, 20)), []int{3})
}

// Scenario 5.
func TestScenarioHoldFiresOnce(t *testing.T) {
	triggers := append(scenarioTriggers(), Trigger{Kind: KindHold, Fingers: 3, Time: 50})
	m := New(triggers)

	assertFired(t, m.Adapt(ongoingHold(3, 100, 120)), nil)
	assertFired(t, m.Adapt(ongoingHold(3, 100, 160)), []int{5})
	// Still within the same gesture: must not refire.
	assertFired(t, m.Adapt(ongoingHold(3, 100, 200)), nil)
}

// Scenario 6.
func TestScenarioCancelledSubstitutesNone(t *testing.T) {
	m := New(scenarioTriggers())
	assertFired(t, m.Adapt(cancelledSwipe(3, 0, -500, 40)), nil)

	if m.origin != restOrigin() {
		t.Fatalf("expected origin reset after cancel, got %+v", m.origin)
	}
	if len(m.triggered) != 0 {
		t.Fatalf("expected triggered set cleared after cancel")
	}
}

func TestOriginAndTriggeredResetAfterEnd(t *testing.T) {
	m := New(scenarioTriggers())
	m.Adapt(ongoingSwipe(3, 0, -250, 10))
	m.Adapt(endedSwipe(3, 0, -250, 20))

	if m.origin != restOrigin() {
		t.Fatalf("origin not reset: %+v", m.origin)
	}
	if len(m.triggered) != 0 {
		t.Fatalf("triggered set not cleared")
	}
}

func TestNonRepeatedFiresAtMostOncePerGesture(t *testing.T) {
	triggers := []Trigger{{Kind: KindSwipe, Fingers: 3, Cardinal: Up, Distance: 100, Repeated: false}}
	m := New(triggers)

	count := 0
	for i, dy := range []float64{0, -120, -240, -360, -480} {
		got := m.Adapt(ongoingSwipe(3, 0, dy, uint32(i*10)))
		count += len(got)
	}
	if count != 1 {
		t.Fatalf("expected exactly one firing, got %d", count)
	}
}

func TestRepeatedFiresBoundedByDisplacementOverDistance(t *testing.T) {
	const distance = 100.0
	triggers := []Trigger{{Kind: KindSwipe, Fingers: 3, Cardinal: Up, Distance: distance, Repeated: true}}
	m := New(triggers)

	maxDisplacement := 455.0
	count := 0
	steps := 20
	for i := 0; i <= steps; i++ {
		dy := -maxDisplacement * float64(i) / float64(steps)
		got := m.Adapt(ongoingSwipe(3, 0, dy, uint32(i)))
		count += len(got)
	}
	upperBound := int(maxDisplacement/distance) + 1
	if count > upperBound {
		t.Fatalf("fired %d times, exceeds bound %d", count, upperBound)
	}
}

func TestMatchesSwipeInvariantUnderNegationAndOppositeDirection(t *testing.T) {
	cases := []struct {
		dir     Cardinal
		dx, dy  float64
		oppDir  Cardinal
	}{
		{Up, 0, -150, Down},
		{Right, 150, 0, Left},
	}
	for _, c := range cases {
		g := gesture.Gesture{Kind: gesture.KindSwipe, Fingers: 3, Dx: c.dx, Dy: c.dy}
		gOpp := gesture.Gesture{Kind: gesture.KindSwipe, Fingers: 3, Dx: -c.dx, Dy: -c.dy}

		tr := Trigger{Kind: KindSwipe, Fingers: 3, Cardinal: c.dir, Distance: 100}
		trOpp := Trigger{Kind: KindSwipe, Fingers: 3, Cardinal: c.oppDir, Distance: 100}

		if !matchesSwipe(tr, g, restOrigin()) {
			t.Fatalf("expected %v to match original", c.dir)
		}
		if !matchesSwipe(trOpp, gOpp, restOrigin()) {
			t.Fatalf("expected %v to match negated", c.oppDir)
		}
	}
}

func TestSwipeBoundaryExactDistance(t *testing.T) {
	tr := Trigger{Kind: KindSwipe, Fingers: 3, Cardinal: Right, Distance: 200}
	atExact := gesture.Gesture{Kind: gesture.KindSwipe, Fingers: 3, Dx: 200, Dy: 0}
	belowExact := gesture.Gesture{Kind: gesture.KindSwipe, Fingers: 3, Dx: 199.999, Dy: 0}

	if !matchesSwipe(tr, atExact, restOrigin()) {
		t.Fatalf("expected exact distance to fire")
	}
	if matchesSwipe(tr, belowExact, restOrigin()) {
		t.Fatalf("expected below-distance to not fire")
	}
}

func TestPinchBoundaryExactScale(t *testing.T) {
	tr := Trigger{Kind: KindPinch, Fingers: 3, PinchDir: In, Scale: 1.4}
	g := gesture.Gesture{Kind: gesture.KindPinch, Fingers: 3, Scale: 1.4}
	if !matchesPinch(tr, g, 1.0) {
		t.Fatalf("expected exact origin*scale==g.Scale to fire")
	}
}

func TestHoldBoundaryExactTime(t *testing.T) {
	tr := Trigger{Kind: KindHold, Fingers: 3, Time: 50}
	g := gesture.Gesture{Kind: gesture.KindHold, Fingers: 3, BeginTime: 100}
	if !matchesHold(tr, g, 150) {
		t.Fatalf("expected ctime-begin==time to fire")
	}
}

func TestHoldClockWrapSaturates(t *testing.T) {
	tr := Trigger{Kind: KindHold, Fingers: 3, Time: 1}
	g := gesture.Gesture{Kind: gesture.KindHold, Fingers: 3, BeginTime: 1000}
	if matchesHold(tr, g, 5) {
		t.Fatalf("expected clock-wrap subtraction to saturate to zero, not fire")
	}
}

func TestCardinalConeDiagonalOverlap(t *testing.T) {
	// On the diagonal dx == -dy (up and to the right), both the Up and Right
	// cones are inclusive; the tie-break is intentional.
	if !cardinalCone(Up, 10, -10) || !cardinalCone(Right, 10, -10) {
		t.Fatalf("expected inclusive diagonal boundary to match both adjacent cones")
	}
}

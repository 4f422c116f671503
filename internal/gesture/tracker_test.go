package gesture

import "testing"

func TestTrackerStaysNoneWithoutBegin(t *testing.T) {
	tr := New()

	ev := tr.Update(RawEvent{Kind: RawSwipeUpdate, DxDelta: 5, DyDelta: 5, Time: 10})
	if ev.Kind != Ongoing {
		t.Fatalf("expected Ongoing, got %v", ev.Kind)
	}
	if ev.Gesture.Kind != KindNone {
		t.Fatalf("expected gesture to remain None, got %v", ev.Gesture.Kind)
	}
}

func TestSwipeLifecycle(t *testing.T) {
	tr := New()

	ev := tr.Update(RawEvent{Kind: RawSwipeBegin, Fingers: 3, Time: 10})
	if ev.Kind != Ongoing || ev.Gesture.Kind != KindSwipe || ev.Gesture.Fingers != 3 {
		t.Fatalf("unexpected begin event: %+v", ev)
	}

	ev = tr.Update(RawEvent{Kind: RawSwipeUpdate, DxDelta: 10, DyDelta: -20, Time: 20})
	if ev.Gesture.Dx != 10 || ev.Gesture.Dy != -20 {
		t.Fatalf("expected accumulated dx/dy, got %+v", ev.Gesture)
	}

	ev = tr.Update(RawEvent{Kind: RawSwipeUpdate, DxDelta: 5, DyDelta: 5, Time: 30})
	if ev.Gesture.Dx != 15 || ev.Gesture.Dy != -15 {
		t.Fatalf("expected further accumulation, got %+v", ev.Gesture)
	}

	ev = tr.Update(RawEvent{Kind: RawSwipeEnd, Time: 40})
	if ev.Kind != Ended {
		t.Fatalf("expected Ended, got %v", ev.Kind)
	}
	if ev.Gesture.Dx != 15 || ev.Gesture.Dy != -15 {
		t.Fatalf("expected final snapshot preserved, got %+v", ev.Gesture)
	}

	// Tracker must have returned to None.
	ev = tr.Update(RawEvent{Kind: RawSwipeUpdate, DxDelta: 1, DyDelta: 1, Time: 50})
	if ev.Gesture.Kind != KindNone {
		t.Fatalf("expected tracker at rest after end, got %v", ev.Gesture.Kind)
	}
}

func TestSwipeCancelled(t *testing.T) {
	tr := New()
	tr.Update(RawEvent{Kind: RawSwipeBegin, Fingers: 3, Time: 10})
	ev := tr.Update(RawEvent{Kind: RawSwipeEnd, Time: 20, Cancelled: true})
	if ev.Kind != Cancelled {
		t.Fatalf("expected Cancelled, got %v", ev.Kind)
	}
}

func TestPinchLifecycle(t *testing.T) {
	tr := New()

	ev := tr.Update(RawEvent{Kind: RawPinchBegin, Fingers: 3, Scale: 1.0, Time: 10})
	if ev.Gesture.Kind != KindPinch || ev.Gesture.Scale != 1.0 {
		t.Fatalf("unexpected begin event: %+v", ev)
	}

	ev = tr.Update(RawEvent{Kind: RawPinchUpdate, DxDelta: 1, DyDelta: 1, Scale: 1.2, AngleDelta: 30, Time: 20})
	if ev.Gesture.Scale != 1.2 || ev.Gesture.Angle != 30 {
		t.Fatalf("unexpected overwrite/accumulate: %+v", ev.Gesture)
	}

	ev = tr.Update(RawEvent{Kind: RawPinchUpdate, DxDelta: 1, DyDelta: 1, Scale: 1.41, AngleDelta: 31, Time: 30})
	if ev.Gesture.Scale != 1.41 || ev.Gesture.Angle != 61 {
		t.Fatalf("unexpected overwrite/accumulate: %+v", ev.Gesture)
	}

	ev = tr.Update(RawEvent{Kind: RawPinchEnd, Scale: 1.45, Time: 40})
	if ev.Kind != Ended || ev.Gesture.Scale != 1.45 {
		t.Fatalf("expected final scale overwritten on end, got %+v", ev)
	}
}

func TestHoldLifecycle(t *testing.T) {
	tr := New()
	ev := tr.Update(RawEvent{Kind: RawHoldBegin, Fingers: 3, Time: 100})
	if ev.Gesture.Kind != KindHold || ev.Gesture.BeginTime != 100 {
		t.Fatalf("unexpected hold begin: %+v", ev)
	}
	ev = tr.Update(RawEvent{Kind: RawHoldEnd, Time: 160})
	if ev.Kind != Ended {
		t.Fatalf("expected hold to end normally, got %v", ev.Kind)
	}
}

func TestUnrecognizedEventPreservesState(t *testing.T) {
	tr := New()
	tr.Update(RawEvent{Kind: RawSwipeBegin, Fingers: 3, Time: 10})
	tr.Update(RawEvent{Kind: RawSwipeUpdate, DxDelta: 5, DyDelta: 5, Time: 20})

	ev := tr.Update(RawEvent{Kind: RawKind(99), Time: 30})
	if ev.Kind != Ongoing {
		t.Fatalf("expected Ongoing passthrough, got %v", ev.Kind)
	}
	if ev.Gesture.Dx != 5 || ev.Gesture.Dy != 5 {
		t.Fatalf("expected state preserved, got %+v", ev.Gesture)
	}
}

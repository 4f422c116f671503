// Package evsource turns a raw Linux multitouch device (protocol B) into
// the begin/update/end gesture lifecycle the tracker consumes. It owns the
// handle opened from the OS's input subsystem, same as
// Pitmairen/tpswipe's evdev.Open, but classifies the finger movement into
// a gesture kind instead of deciding a fixed direction one-shot.
package evsource

import (
	"context"
	"math"
	"time"

	"github.com/gvalkov/golang-evdev"
	"github.com/sirupsen/logrus"

	"github.com/tpwave/gestured/internal/gesture"
)

const (
	maxSlots = 16

	// classifyDelay mirrors Pitmairen/tpswipe's CHECK_DELAY: how long to
	// buffer finger movement before deciding what kind of gesture it is.
	classifyDelay = 50 * time.Millisecond

	// holdDistance is the maximum finger displacement, in device units,
	// still considered "not moving" for the purposes of classifying a
	// Hold versus a Swipe or Pinch.
	holdDistance = 40.0

	// directionCos is the minimum cosine similarity between two fingers'
	// displacement vectors for their motion to be considered "the same
	// direction" (a straight swipe rather than a pinch/rotate).
	directionCos = 0.7
)

// DeviceOpenError wraps a failure to open the raw input device.
type DeviceOpenError struct {
	Path string
	Err  error
}

func (e *DeviceOpenError) Error() string { return "evsource: open " + e.Path + ": " + e.Err.Error() }
func (e *DeviceOpenError) Unwrap() error { return e.Err }

type point struct{ x, y float64 }

func (p point) sub(q point) point { return point{p.x - q.x, p.y - q.y} }
func (p point) length() float64   { return math.Hypot(p.x, p.y) }

type finger struct {
	active    bool
	first     point
	last      point
	hasX      bool
	hasY      bool
}

func (f *finger) displacement() float64 {
	return f.last.sub(f.first).length()
}

// Source reads one physical device and produces the raw gesture event
// stream. It is not safe for concurrent use.
type Source struct {
	dev *evdev.InputDevice

	fingers     [maxSlots]finger
	currentSlot int
	fingerCount int

	session      sessionKind
	classifying  bool
	classifyMs   uint32
	beginTime    uint32

	prevCentroid point
	prevSpan     float64
	prevAngle    float64
	cumScale     float64

	pending []gesture.RawEvent

	clock func() uint32
}

type sessionKind int

const (
	sessionNone sessionKind = iota
	sessionSwipe
	sessionPinch
	sessionHold
)

// Open opens path (e.g. "/dev/input/event4") as a multitouch source.
func Open(path string) (*Source, error) {
	dev, err := evdev.Open(path)
	if err != nil {
		return nil, &DeviceOpenError{Path: path, Err: err}
	}
	logrus.WithField("path", path).Debug("opened raw input device")
	return &Source{dev: dev, clock: monotonicMillis}, nil
}

func (s *Source) Close() error {
	return s.dev.File.Close()
}

// Next blocks until one raw gesture event is available or the device
// returns an I/O error (which the raw-event reader's contract treats as
// fatal). ctx is checked before each device read; a read that is already
// blocked on the device is not interrupted when ctx is done.
func (s *Source) Next(ctx context.Context) (gesture.RawEvent, error) {
	for len(s.pending) == 0 {
		if err := ctx.Err(); err != nil {
			return gesture.RawEvent{}, err
		}
		events, err := s.dev.Read()
		if err != nil {
			return gesture.RawEvent{}, err
		}
		for i := range events {
			s.handle(&events[i])
		}
	}
	ev := s.pending[0]
	s.pending = s.pending[1:]
	return ev, nil
}

func (s *Source) handle(ev *evdev.InputEvent) {
	switch ev.Type {
	case evdev.EV_ABS:
		s.handleAbs(ev)
	case evdev.EV_SYN:
		if ev.Code == evdev.SYN_REPORT {
			s.report()
		}
	}
}

func (s *Source) handleAbs(ev *evdev.InputEvent) {
	switch ev.Code {
	case evdev.ABS_MT_SLOT:
		if int(ev.Value) >= 0 && int(ev.Value) < maxSlots {
			s.currentSlot = int(ev.Value)
		}
	case evdev.ABS_MT_TRACKING_ID:
		f := &s.fingers[s.currentSlot]
		if ev.Value == -1 {
			if f.active {
				s.fingerCount--
			}
			f.active = false
		} else {
			if !f.active {
				s.fingerCount++
			}
			f.active = true
			f.hasX, f.hasY = false, false
		}
	case evdev.ABS_MT_POSITION_X:
		s.setPosition(&s.fingers[s.currentSlot].first.x, &s.fingers[s.currentSlot].last.x, &s.fingers[s.currentSlot].hasX, float64(ev.Value))
	case evdev.ABS_MT_POSITION_Y:
		s.setPosition(&s.fingers[s.currentSlot].first.y, &s.fingers[s.currentSlot].last.y, &s.fingers[s.currentSlot].hasY, float64(ev.Value))
	}
}

func (s *Source) setPosition(first, last *float64, has *bool, value float64) {
	if !*has {
		*first = value
		*has = true
	}
	*last = value
}

// report runs once per SYN_REPORT: the per-slot position fields are now
// settled for this frame.
func (s *Source) report() {
	now := s.clock()

	if s.fingerCount < 2 {
		if s.session != sessionNone || s.classifying {
			s.endSession(now, s.fingerCount > 0)
		}
		return
	}

	if s.session == sessionNone && !s.classifying {
		s.startClassifying(now)
		return
	}

	if s.classifying {
		if now-s.classifyMs < uint32(classifyDelay/time.Millisecond) {
			return
		}
		s.classify(now)
		return
	}

	s.emitUpdate(now)
}

func (s *Source) startClassifying(now uint32) {
	for i := range s.fingers {
		f := &s.fingers[i]
		if f.active {
			f.first = f.last
			f.hasX, f.hasY = true, true
		}
	}
	s.classifying = true
	s.classifyMs = now
	s.beginTime = now
}

// classify decides, from the buffered displacement over classifyDelay,
// whether this is a Hold, a Swipe (fingers moving the same way) or a Pinch
// (the catch-all for scaling/rotating/shearing motion — the matcher tells
// these apart from the Pinch gesture's own dx/dy/scale/angle).
func (s *Source) classify(now uint32) {
	s.classifying = false

	active := s.activeFingers()
	maxDisp := 0.0
	for _, f := range active {
		if d := f.displacement(); d > maxDisp {
			maxDisp = d
		}
	}

	if maxDisp < holdDistance {
		s.session = sessionHold
		s.pending = append(s.pending, gesture.RawEvent{
			Kind: gesture.RawHoldBegin, Time: s.beginTime, Fingers: s.fingerCount,
		})
		return
	}

	if sameDirection(active) {
		s.session = sessionSwipe
		centroid := centroidOf(active, func(f *finger) point { return f.last })
		firstCentroid := centroidOf(active, func(f *finger) point { return f.first })
		delta := centroid.sub(firstCentroid)
		s.prevCentroid = centroid

		s.pending = append(s.pending,
			gesture.RawEvent{Kind: gesture.RawSwipeBegin, Time: s.beginTime, Fingers: s.fingerCount},
			gesture.RawEvent{Kind: gesture.RawSwipeUpdate, Time: now, DxDelta: delta.x, DyDelta: delta.y},
		)
		return
	}

	s.session = sessionPinch
	s.cumScale = 1.0
	firstCentroid := centroidOf(active, func(f *finger) point { return f.first })
	centroid := centroidOf(active, func(f *finger) point { return f.last })
	startSpan := averageSpan(active, firstCentroid, func(f *finger) point { return f.first })
	span := averageSpan(active, centroid, func(f *finger) point { return f.last })
	if startSpan > 0 {
		s.cumScale = span / startSpan
	}
	angleStart := referenceAngle(active[0], firstCentroid, func(f *finger) point { return f.first })
	angleEnd := referenceAngle(active[0], centroid, func(f *finger) point { return f.last })
	angleDelta := normalizeDegrees(angleEnd - angleStart)
	delta := centroid.sub(firstCentroid)
	s.prevCentroid = centroid
	s.prevSpan = span
	s.prevAngle = angleEnd

	s.pending = append(s.pending,
		gesture.RawEvent{Kind: gesture.RawPinchBegin, Time: s.beginTime, Fingers: s.fingerCount, Scale: 1.0},
		gesture.RawEvent{Kind: gesture.RawPinchUpdate, Time: now, DxDelta: delta.x, DyDelta: delta.y, Scale: s.cumScale, AngleDelta: angleDelta},
	)
}

func (s *Source) emitUpdate(now uint32) {
	active := s.activeFingers()
	if len(active) == 0 {
		return
	}

	switch s.session {
	case sessionSwipe:
		centroid := centroidOf(active, func(f *finger) point { return f.last })
		delta := centroid.sub(s.prevCentroid)
		s.prevCentroid = centroid
		if delta.x == 0 && delta.y == 0 {
			return
		}
		s.pending = append(s.pending, gesture.RawEvent{Kind: gesture.RawSwipeUpdate, Time: now, DxDelta: delta.x, DyDelta: delta.y})

	case sessionPinch:
		centroid := centroidOf(active, func(f *finger) point { return f.last })
		span := averageSpan(active, centroid, func(f *finger) point { return f.last })
		angle := referenceAngle(active[0], centroid, func(f *finger) point { return f.last })

		delta := centroid.sub(s.prevCentroid)
		ratio := 1.0
		if s.prevSpan > 0 {
			ratio = span / s.prevSpan
		}
		s.cumScale *= ratio
		angleDelta := normalizeDegrees(angle - s.prevAngle)

		s.prevCentroid = centroid
		s.prevSpan = span
		s.prevAngle = angle

		s.pending = append(s.pending, gesture.RawEvent{Kind: gesture.RawPinchUpdate, Time: now, DxDelta: delta.x, DyDelta: delta.y, Scale: s.cumScale, AngleDelta: angleDelta})

	case sessionHold:
		// No update payload: a Hold carries no geometry, only elapsed time,
		// which the matcher reads off the event's own timestamp.
	}
}

func (s *Source) endSession(now uint32, cancelled bool) {
	switch {
	case s.classifying:
		s.classifying = false
		return
	case s.session == sessionSwipe:
		s.pending = append(s.pending, gesture.RawEvent{Kind: gesture.RawSwipeEnd, Time: now, Cancelled: cancelled})
	case s.session == sessionPinch:
		s.pending = append(s.pending, gesture.RawEvent{Kind: gesture.RawPinchEnd, Time: now, Scale: s.cumScale, Cancelled: cancelled})
	case s.session == sessionHold:
		s.pending = append(s.pending, gesture.RawEvent{Kind: gesture.RawHoldEnd, Time: now, Cancelled: cancelled})
	}
	s.session = sessionNone
}

func (s *Source) activeFingers() []*finger {
	var out []*finger
	for i := range s.fingers {
		if s.fingers[i].active {
			out = append(out, &s.fingers[i])
		}
	}
	return out
}

func sameDirection(active []*finger) bool {
	var ref point
	haveRef := false
	for _, f := range active {
		d := f.last.sub(f.first)
		if d.length() == 0 {
			continue
		}
		if !haveRef {
			ref = d
			haveRef = true
			continue
		}
		if cosine(ref, d) < directionCos {
			return false
		}
	}
	return true
}

func cosine(a, b point) float64 {
	dot := a.x*b.x + a.y*b.y
	denom := a.length() * b.length()
	if denom == 0 {
		return 1
	}
	return dot / denom
}

func centroidOf(active []*finger, at func(*finger) point) point {
	var sum point
	for _, f := range active {
		p := at(f)
		sum.x += p.x
		sum.y += p.y
	}
	n := float64(len(active))
	return point{sum.x / n, sum.y / n}
}

func averageSpan(active []*finger, centroid point, at func(*finger) point) float64 {
	var total float64
	for _, f := range active {
		total += at(f).sub(centroid).length()
	}
	return total / float64(len(active))
}

func referenceAngle(ref *finger, centroid point, at func(*finger) point) float64 {
	d := at(ref).sub(centroid)
	return math.Atan2(d.y, d.x) * 180 / math.Pi
}

// normalizeDegrees folds a raw angle difference into (-180, 180], so a
// crossing of the atan2 branch cut does not read as a near-360-degree
// rotation.
func normalizeDegrees(deg float64) float64 {
	for deg > 180 {
		deg -= 360
	}
	for deg <= -180 {
		deg += 360
	}
	return deg
}

func monotonicMillis() uint32 {
	return uint32(time.Now().UnixMilli())
}

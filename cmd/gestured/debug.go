package main

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/tpwave/gestured/internal/config"
	"github.com/tpwave/gestured/internal/displayserver"
	"github.com/tpwave/gestured/internal/evsource"
	"github.com/tpwave/gestured/internal/gesture"
	"github.com/tpwave/gestured/internal/match"
)

// runDebugConfig parses filename and prints the resolved in-memory model
// back out as TOML, exercising the config round-trip law.
func runDebugConfig(filename string) error {
	out, err := config.Describe(filename)
	if err != nil {
		return err
	}
	fmt.Print(out)
	return nil
}

// runDebugGestures synthesizes the comprehensive built-in trigger set from
// spec.md's worked examples, plus one of every trigger kind, and logs
// every firing without requiring a config file.
func runDebugGestures(devicePath string) error {
	if devicePath == "" {
		devicePath = defaultDevicePath
	}
	src, err := evsource.Open(devicePath)
	if err != nil {
		return err
	}
	defer src.Close()

	display := displayserver.Detect()
	triggers := builtinTriggers()
	matcher := match.New(triggers)
	tracker := gesture.New()

	logrus.WithField("triggers", len(triggers)).Info("debug-gestures: logging firings against the built-in trigger set")

	return pump(context.Background(), src, tracker, matcher, nil, func(ev gesture.InputEvent, fired []int) {
		if len(fired) == 0 {
			return
		}
		logrus.WithFields(logrus.Fields{
			"fired":  fired,
			"kind":   ev.Kind,
			"window": display.PerWindowHint(),
		}).Info("trigger fired")
	})
}

// runDebugEvents logs every raw event from the input source before it
// reaches the tracker.
func runDebugEvents(devicePath string) error {
	if devicePath == "" {
		devicePath = defaultDevicePath
	}
	src, err := evsource.Open(devicePath)
	if err != nil {
		return err
	}
	defer src.Close()

	logged := evsource.DebugEventLogger{Source: src}
	tracker := gesture.New()
	matcher := match.New(nil)

	return pump(context.Background(), logged, tracker, matcher, nil, nil)
}

// builtinTriggers mirrors spec.md §8's example trigger list (indices 0..4)
// plus one Shear and one Hold trigger, so that every trigger kind is
// present.
func builtinTriggers() []match.Trigger {
	return []match.Trigger{
		{Kind: match.KindSwipe, Fingers: 3, Cardinal: match.Up, Distance: 200},
		{Kind: match.KindSwipe, Fingers: 3, Cardinal: match.Down, Distance: 200},
		{Kind: match.KindPinch, Fingers: 3, PinchDir: match.In, Scale: 1.4},
		{Kind: match.KindRotate, Fingers: 3, RotateDir: match.Clockwise, Distance: 60},
		{Kind: match.KindSwipe, Fingers: 3, Cardinal: match.Up, Distance: 200, Repeated: true},
		{Kind: match.KindShear, Fingers: 4, Cardinal: match.Left, Distance: 200},
		{Kind: match.KindHold, Fingers: 2, Time: 500},
	}
}

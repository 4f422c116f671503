package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/tpwave/gestured/internal/action"
	"github.com/tpwave/gestured/internal/config"
	"github.com/tpwave/gestured/internal/displayserver"
	"github.com/tpwave/gestured/internal/evsource"
	"github.com/tpwave/gestured/internal/gesture"
	"github.com/tpwave/gestured/internal/match"
	"github.com/tpwave/gestured/internal/notify"
)

const defaultDevicePath = "/dev/input/event0"

// runDaemon is the `run` subcommand: discover config, open the virtual
// keyboard and the raw device, then loop source -> tracker -> matcher ->
// dispatcher until the source returns an error.
func runDaemon(configPath, devicePath string) error {
	display := displayserver.Detect()

	path, err := config.Discover(configPath)
	if err != nil {
		if !errors.Is(err, config.ConfigNotFound) {
			fatal("config discovery failed", err)
			return err
		}
		logrus.Info("no config file found, running with zero triggers")
	}

	keyboard, err := action.OpenKeyboard()
	if err != nil {
		fatal("failed to open virtual keyboard", err)
		return err
	}

	var loaded *config.Loaded
	if path != "" {
		loaded, err = config.Load(path, display.IsWayland(), keyboard)
		if err != nil {
			fatal("failed to load config", err)
			return err
		}
	} else {
		loaded = &config.Loaded{}
	}

	if devicePath == "" {
		devicePath = defaultDevicePath
	}
	src, err := evsource.Open(devicePath)
	if err != nil {
		fatal("failed to open input device", err)
		return err
	}
	defer src.Close()

	matcher := match.New(loaded.Triggers)
	registry := action.NewRegistry(loaded.Actions)
	tracker := gesture.New()

	logrus.WithFields(logrus.Fields{
		"device":   devicePath,
		"triggers": len(loaded.Triggers),
	}).Info("gestured started")

	return pump(context.Background(), src, tracker, matcher, registry, nil)
}

// pump runs the single-threaded source -> tracker -> matcher -> dispatcher
// loop; only src.Next blocks. onEvent, when non-nil, observes every
// dispatched InputEvent alongside its fired indices — used by the debug
// subcommands to log without a real dispatcher.
func pump(ctx context.Context, src interface {
	Next(ctx context.Context) (gesture.RawEvent, error)
}, tracker *gesture.Tracker, matcher *match.Matcher, registry *action.Registry, onEvent func(gesture.InputEvent, []int)) error {
	for {
		raw, err := src.Next(ctx)
		if err != nil {
			logrus.WithError(err).Error("input source terminated")
			return err
		}

		ev := tracker.Update(raw)
		fired := matcher.Adapt(ev)

		if onEvent != nil {
			onEvent(ev, fired)
		}
		if registry != nil && len(fired) > 0 {
			registry.Dispatch(fired)
		}
	}
}

func fatal(summary string, err error) {
	logrus.WithError(err).Error(summary)
	if notifyErr := notify.Error("gestured", fmt.Sprintf("%s: %v", summary, err)); notifyErr != nil {
		logrus.WithError(notifyErr).Debug("failed to send desktop notification")
	}
}

package evsource

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/tpwave/gestured/internal/gesture"
)

// DebugEventLogger wraps a Source and logs every raw event at debug level
// before returning it, for the debug-events subcommand.
type DebugEventLogger struct {
	Source interface {
		Next(ctx context.Context) (gesture.RawEvent, error)
	}
}

func (d DebugEventLogger) Next(ctx context.Context) (gesture.RawEvent, error) {
	ev, err := d.Source.Next(ctx)
	if err != nil {
		return ev, err
	}
	logrus.WithFields(logrus.Fields{
		"kind":    ev.Kind,
		"time":    ev.Time,
		"fingers": ev.Fingers,
		"dx":      ev.DxDelta,
		"dy":      ev.DyDelta,
		"scale":   ev.Scale,
		"angle":   ev.AngleDelta,
	}).Debug("raw event")
	return ev, nil
}

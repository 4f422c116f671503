// Package notify sends desktop notifications for fatal startup errors,
// over a direct DBus call rather than a higher-level wrapper — the same
// low-level approach several desktop-integration tools in this ecosystem
// take when they need nothing beyond Notify itself.
package notify

import (
	"github.com/godbus/dbus/v5"
	"github.com/sirupsen/logrus"
)

const (
	busName      = "org.freedesktop.Notifications"
	objectPath   = "/org/freedesktop/Notifications"
	notifyMethod = "org.freedesktop.Notifications.Notify"
)

// Error shows a desktop notification for a fatal startup error. If no
// session bus is reachable, it logs at debug level and returns nil: a
// failed notification must never itself become a startup-blocking error.
func Error(summary, body string) error {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		logrus.WithError(err).Debug("no session bus reachable, skipping desktop notification")
		return nil
	}
	defer conn.Close()

	obj := conn.Object(busName, dbus.ObjectPath(objectPath))
	call := obj.Call(notifyMethod, 0,
		"gestured",      // app_name
		uint32(0),       // replaces_id
		"dialog-error",  // app_icon
		summary,
		body,
		[]string{},          // actions
		map[string]dbus.Variant{}, // hints
		int32(5000),         // expire_timeout (ms)
	)
	if call.Err != nil {
		logrus.WithError(call.Err).Debug("desktop notification failed")
		return nil
	}
	return nil
}

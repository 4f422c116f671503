// Package displayserver detects which display-server family is running
// and, on X11, exposes the focused window's class the way
// Pitmairen/tpswipe does with xgbutil/ewmh/icccm — used only as debug
// context, never as a trigger-matching input.
package displayserver

import (
	"os"

	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"
	"github.com/sirupsen/logrus"
)

// Server reports the active display-server family and, when connected to
// X11, can look up the focused window's WM_CLASS on demand.
type Server struct {
	wayland bool
	xutil   *xgbutil.XUtil
}

// Detect inspects $WAYLAND_DISPLAY to choose the trigger-list family, and
// if not Wayland, opportunistically connects to X11 for the per-window
// debug hint. A failed X11 connection is logged at warning and leaves
// PerWindowHint always returning "".
func Detect() *Server {
	if os.Getenv("WAYLAND_DISPLAY") != "" {
		logrus.Debug("WAYLAND_DISPLAY set, selecting wayland trigger list")
		return &Server{wayland: true}
	}

	xutil, err := xgbutil.NewConn()
	if err != nil {
		logrus.WithError(err).Warn("no X11 connection; per-window debug hint disabled")
		return &Server{}
	}
	return &Server{xutil: xutil}
}

// IsWayland reports which trigger list (global+wayland vs global+x11) the
// loader should flatten.
func (s *Server) IsWayland() bool { return s.wayland }

// PerWindowHint returns the focused window's WM_CLASS, or "" if no X11
// connection is available or the lookup fails. It exists purely for
// debug-gestures output, never for trigger matching.
func (s *Server) PerWindowHint() string {
	if s.xutil == nil {
		return ""
	}
	client, err := ewmh.ActiveWindowGet(s.xutil)
	if err != nil {
		return ""
	}
	class, err := icccm.WmClassGet(s.xutil, client)
	if err != nil {
		return ""
	}
	return class.Class
}

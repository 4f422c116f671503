// Package config loads the TOML configuration file into the trigger and
// action lists the dispatch loop runs against.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/bendahl/uinput"
	shellwords "github.com/mattn/go-shellwords"
	"github.com/sirupsen/logrus"

	"github.com/tpwave/gestured/internal/action"
	"github.com/tpwave/gestured/internal/keycode"
	"github.com/tpwave/gestured/internal/match"
)

// ConfigNotFound is returned by Discover when no config file exists on any
// searched path and none was given explicitly. Callers treat this as
// non-fatal: the daemon runs with zero triggers.
var ConfigNotFound = errors.New("config: no config file found")

// ConfigParseError wraps any failure while decoding or validating a config
// file that was found (or explicitly named).
type ConfigParseError struct {
	Path string
	Err  error
}

func (e *ConfigParseError) Error() string {
	return fmt.Sprintf("config: failed to parse %s: %v", e.Path, e.Err)
}

func (e *ConfigParseError) Unwrap() error { return e.Err }

const (
	defaultSwipeDistance    = 100
	defaultShearDistance    = 100
	defaultPinchDistance    = 1.4
	defaultRotationDistance = 60.0

	configDirName  = "wzmach"
	configFileName = "config.toml"
)

// fileModel is the raw TOML shape, decoded before any defaulting or
// trigger/action materialization happens.
type fileModel struct {
	SwipeDistance    uint32 `toml:"swipe_distance"`
	ShearDistance    uint32 `toml:"shear_distance"`
	PinchDistance    float64 `toml:"pinch_distance"`
	RotationDistance float64 `toml:"rotation_distance"`

	GlobalTriggers  []triggerRecord `toml:"global_triggers"`
	X11Triggers     []triggerRecord `toml:"x11_triggers"`
	WaylandTriggers []triggerRecord `toml:"wayland_triggers"`
}

type triggerRecord struct {
	Trigger triggerPayload `toml:"trigger"`
	Action  actionPayload  `toml:"action"`
}

// triggerPayload mirrors spec.md's tagged trigger sum as a flat TOML
// table: Kind selects which remaining fields apply, and an omitted
// Distance/Scale falls back to the loader's resolved defaults.
type triggerPayload struct {
	Kind      string  `toml:"kind"`
	Fingers   int     `toml:"fingers"`
	Direction string  `toml:"direction"`
	Distance  float64 `toml:"distance"`
	Scale     float64 `toml:"scale"`
	Time      uint32  `toml:"time"`
	Repeated  bool    `toml:"repeated"`
}

// actionPayload mirrors the three action variants as one flat table with
// an ActionKind discriminator and the union of each variant's fields.
type actionPayload struct {
	ActionKind string   `toml:"action_kind"`
	Modifiers  []string `toml:"modifiers"`
	Sequence   []string `toml:"sequence"`
	Path       string   `toml:"path"`
	Args       []string `toml:"args"`
	Command    string   `toml:"command"`
}

// Loaded is the materialized result of a successful config load: parallel
// trigger and action slices, indexed identically, ready for match.New and
// action.NewRegistry.
type Loaded struct {
	Triggers []match.Trigger
	Actions  []action.Action
}

// Discover applies spec.md's config discovery order: an explicit path
// wins outright; otherwise $XDG_CONFIG_HOME, then $HOME/.config, then
// /etc, each joined with the "wzmach/config.toml" suffix this daemon
// keeps for lineage with the config format it replaces. ConfigNotFound is
// returned, not treated as fatal, when explicitPath is empty and nothing
// on the search path exists.
func Discover(explicitPath string) (string, error) {
	if explicitPath != "" {
		return explicitPath, nil
	}

	var candidates []string
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		candidates = append(candidates, filepath.Join(xdg, configDirName, configFileName))
	}
	if home := os.Getenv("HOME"); home != "" {
		candidates = append(candidates, filepath.Join(home, ".config", configDirName, configFileName))
	}
	candidates = append(candidates, filepath.Join("/etc", configDirName, configFileName))

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", ConfigNotFound
}

// Load reads and validates the file at path, and flattens it into a
// single ordered (triggers, actions) pair against isWayland. keyboard is
// the single shared virtual device every KeyAction is bound to.
func Load(path string, isWayland bool, keyboard uinput.Keyboard) (*Loaded, error) {
	logrus.WithField("path", path).Debug("reading config")

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, &ConfigParseError{Path: path, Err: err}
	}

	var model fileModel
	model.SwipeDistance = defaultSwipeDistance
	model.ShearDistance = defaultShearDistance
	model.PinchDistance = defaultPinchDistance
	model.RotationDistance = defaultRotationDistance

	if err := toml.Unmarshal(raw, &model); err != nil {
		return nil, &ConfigParseError{Path: path, Err: err}
	}

	records := model.GlobalTriggers
	if isWayland {
		records = append(records, model.WaylandTriggers...)
	} else {
		records = append(records, model.X11Triggers...)
	}

	triggers := make([]match.Trigger, 0, len(records))
	actions := make([]action.Action, 0, len(records))
	for i, rec := range records {
		t, err := materializeTrigger(rec.Trigger, model)
		if err != nil {
			return nil, &ConfigParseError{Path: path, Err: fmt.Errorf("trigger %d: %w", i, err)}
		}
		a, err := materializeAction(rec.Action, keyboard)
		if err != nil {
			return nil, &ConfigParseError{Path: path, Err: fmt.Errorf("action %d: %w", i, err)}
		}
		triggers = append(triggers, t)
		actions = append(actions, a)
	}

	return &Loaded{Triggers: triggers, Actions: actions}, nil
}

func materializeTrigger(p triggerPayload, defaults fileModel) (match.Trigger, error) {
	t := match.Trigger{Fingers: p.Fingers, Repeated: p.Repeated}

	switch p.Kind {
	case "swipe", "shear":
		dir, ok := parseCardinal(p.Direction)
		if !ok {
			return match.Trigger{}, fmt.Errorf("unknown direction %q", p.Direction)
		}
		t.Cardinal = dir
		t.Distance = p.Distance
		if t.Distance == 0 {
			if p.Kind == "swipe" {
				t.Distance = float64(defaults.SwipeDistance)
			} else {
				t.Distance = float64(defaults.ShearDistance)
			}
		}
		if p.Kind == "swipe" {
			t.Kind = match.KindSwipe
		} else {
			t.Kind = match.KindShear
		}
	case "pinch":
		t.Kind = match.KindPinch
		switch p.Direction {
		case "in":
			t.PinchDir = match.In
		case "out":
			t.PinchDir = match.Out
		default:
			return match.Trigger{}, fmt.Errorf("unknown pinch direction %q", p.Direction)
		}
		t.Scale = p.Scale
		if t.Scale == 0 {
			t.Scale = defaults.PinchDistance
		}
	case "rotate":
		t.Kind = match.KindRotate
		switch p.Direction {
		case "clockwise":
			t.RotateDir = match.Clockwise
		case "anticlockwise":
			t.RotateDir = match.Anticlockwise
		default:
			return match.Trigger{}, fmt.Errorf("unknown rotate direction %q", p.Direction)
		}
		t.Distance = p.Distance
		if t.Distance == 0 {
			t.Distance = defaults.RotationDistance
		}
	case "hold":
		t.Kind = match.KindHold
		t.Time = p.Time
	default:
		return match.Trigger{}, fmt.Errorf("unknown trigger kind %q", p.Kind)
	}

	return t, nil
}

func parseCardinal(s string) (match.Cardinal, bool) {
	switch s {
	case "up":
		return match.Up, true
	case "down":
		return match.Down, true
	case "left":
		return match.Left, true
	case "right":
		return match.Right, true
	default:
		return 0, false
	}
}

func materializeAction(p actionPayload, keyboard uinput.Keyboard) (action.Action, error) {
	switch p.ActionKind {
	case "key":
		modifiers, err := resolveKeys(p.Modifiers)
		if err != nil {
			return nil, err
		}
		sequence, err := resolveKeys(p.Sequence)
		if err != nil {
			return nil, err
		}
		return action.KeyAction{Device: keyboard, Modifiers: modifiers, Sequence: sequence}, nil
	case "command":
		if p.Path == "" {
			return nil, errors.New("command action requires a path")
		}
		return action.ProcessAction{Path: p.Path, Args: p.Args}, nil
	case "shell":
		if _, err := shellwords.Parse(p.Command); err != nil {
			return nil, fmt.Errorf("malformed shell command: %w", err)
		}
		return action.ShellAction(p.Command), nil
	default:
		return nil, fmt.Errorf("unknown action_kind %q", p.ActionKind)
	}
}

func resolveKeys(names []string) ([]int, error) {
	codes := make([]int, 0, len(names))
	for _, name := range names {
		code, ok := keycode.Lookup(name)
		if !ok {
			return nil, fmt.Errorf("unknown key name %q", name)
		}
		codes = append(codes, code)
	}
	return codes, nil
}

// encode renders model back out as TOML, used by debug-config to print the
// resolved defaults a loaded file round-trips through.
func encode(model fileModel) (string, error) {
	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	if err := enc.Encode(model); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Describe parses path and returns its TOML re-encoding together with the
// resolved defaults, without materializing triggers/actions. Used by the
// debug-config subcommand, which has no virtual keyboard to bind actions
// to.
func Describe(path string) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", &ConfigParseError{Path: path, Err: err}
	}

	var model fileModel
	model.SwipeDistance = defaultSwipeDistance
	model.ShearDistance = defaultShearDistance
	model.PinchDistance = defaultPinchDistance
	model.RotationDistance = defaultRotationDistance

	if err := toml.Unmarshal(raw, &model); err != nil {
		return "", &ConfigParseError{Path: path, Err: err}
	}

	return encode(model)
}

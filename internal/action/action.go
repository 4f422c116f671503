// Package action executes the side effect bound to a fired trigger: a
// synthetic key sequence on a shared virtual keyboard, or a detached
// subprocess.
package action

import (
	"os"
	"os/exec"
	"syscall"

	"github.com/bendahl/uinput"
	"github.com/sirupsen/logrus"
)

// Action is the common execute operation every bound action implements. A
// failure is reported to the caller, logged at error level, and otherwise
// swallowed; no action is retried.
type Action interface {
	Execute() error
}

// KeyAction presses a set of modifier keys, clicks a sequence of keys, and
// releases the modifiers in reverse order, against a shared virtual
// keyboard device.
type KeyAction struct {
	Device    uinput.Keyboard
	Modifiers []int
	Sequence  []int
}

func (a KeyAction) Execute() error {
	logrus.WithFields(logrus.Fields{"modifiers": a.Modifiers, "sequence": a.Sequence}).Debug("dispatching key action")

	for _, key := range a.Modifiers {
		if err := a.Device.KeyDown(key); err != nil {
			return err
		}
	}
	for _, key := range a.Sequence {
		if err := a.Device.KeyPress(key); err != nil {
			releaseModifiers(a.Device, a.Modifiers)
			return err
		}
	}
	releaseModifiers(a.Device, a.Modifiers)
	return nil
}

func releaseModifiers(dev uinput.Keyboard, modifiers []int) {
	for i := len(modifiers) - 1; i >= 0; i-- {
		if err := dev.KeyUp(modifiers[i]); err != nil {
			logrus.WithError(err).Warn("failed to release modifier")
		}
	}
}

// OpenKeyboard creates the single virtual keyboard device shared by every
// KeyAction for the process lifetime.
func OpenKeyboard() (uinput.Keyboard, error) {
	dev, err := uinput.CreateKeyboard("/dev/uinput", []byte("gestured-virtual"))
	if err != nil {
		return nil, err
	}
	logrus.Debug("opened uinput virtual keyboard")
	return dev, nil
}

// ProcessAction spawns an external command with the given argv. Stdin is
// closed, stdout and stderr are inherited, and the child is detached so the
// dispatcher never waits on it and no zombie remains.
type ProcessAction struct {
	Path string
	Args []string
}

func (a ProcessAction) Execute() error {
	logrus.WithFields(logrus.Fields{"path": a.Path, "args": a.Args}).Debug("dispatching process action")
	cmd := exec.Command(a.Path, a.Args...)
	cmd.Stdin = nil
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Env = stripSessionBusAddress(os.Environ())
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}

	if err := cmd.Start(); err != nil {
		return err
	}
	go func() {
		_ = cmd.Wait()
	}()
	return nil
}

// ShellAction builds the ProcessAction equivalent to running command
// through /bin/sh -c. It is a constructor, not a distinct Action type: the
// dispatcher only ever sees ProcessAction values.
func ShellAction(command string) ProcessAction {
	return ProcessAction{Path: "/bin/sh", Args: []string{"-c", command}}
}

// stripSessionBusAddress removes DBUS_SESSION_BUS_ADDRESS from the child's
// environment so a detached process does not inherit the daemon's bus
// connection.
func stripSessionBusAddress(env []string) []string {
	out := env[:0:0]
	for _, kv := range env {
		if len(kv) >= len("DBUS_SESSION_BUS_ADDRESS=") && kv[:len("DBUS_SESSION_BUS_ADDRESS=")] == "DBUS_SESSION_BUS_ADDRESS=" {
			continue
		}
		out = append(out, kv)
	}
	return out
}

// Registry holds the actions bound to each trigger index, in trigger-list
// order, and dispatches fired indices one at a time.
type Registry struct {
	actions []Action
}

func NewRegistry(actions []Action) *Registry {
	return &Registry{actions: actions}
}

// Dispatch executes every fired index in order. A per-action error is
// logged and does not stop the remaining indices.
func (r *Registry) Dispatch(fired []int) {
	for _, i := range fired {
		if i < 0 || i >= len(r.actions) {
			continue
		}
		if err := r.actions[i].Execute(); err != nil {
			logrus.WithError(err).WithField("index", i).Error("action failed")
		}
	}
}

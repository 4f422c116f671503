// Command gestured watches a touchpad's gesture stream and dispatches
// configured actions when a trigger matches.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func main() {
	configureLogging()

	root := &cobra.Command{
		Use:   "gestured",
		Short: "Touchpad gesture recognition daemon",
	}

	var configPath string
	var devicePath string

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Watch the touchpad and dispatch configured actions",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDaemon(configPath, devicePath)
		},
	}
	runCmd.Flags().StringVar(&configPath, "config", "", "path to config.toml (overrides discovery)")
	runCmd.Flags().StringVar(&devicePath, "device", "", "path to the raw input device (e.g. /dev/input/event4)")

	debugConfigCmd := &cobra.Command{
		Use:   "debug-config FILENAME",
		Short: "Parse a config file and print it back as TOML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDebugConfig(args[0])
		},
	}

	debugGesturesCmd := &cobra.Command{
		Use:   "debug-gestures",
		Short: "Run with a built-in trigger set and log every firing",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDebugGestures(devicePath)
		},
	}
	debugGesturesCmd.Flags().StringVar(&devicePath, "device", "", "path to the raw input device")

	debugEventsCmd := &cobra.Command{
		Use:   "debug-events",
		Short: "Log every raw event from the input source",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDebugEvents(devicePath)
		},
	}
	debugEventsCmd.Flags().StringVar(&devicePath, "device", "", "path to the raw input device")

	root.AddCommand(runCmd, debugConfigCmd, debugGesturesCmd, debugEventsCmd)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// configureLogging sets the logrus level from GESTURED_LOG, this daemon's
// own name for the RUST_LOG-style level variable spec.md names.
func configureLogging() {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	level := strings.ToLower(os.Getenv("GESTURED_LOG"))
	if level == "" {
		logrus.SetLevel(logrus.InfoLevel)
		return
	}
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		logrus.SetLevel(logrus.InfoLevel)
		logrus.WithField("value", level).Warn("unrecognized GESTURED_LOG level, defaulting to info")
		return
	}
	logrus.SetLevel(parsed)
}

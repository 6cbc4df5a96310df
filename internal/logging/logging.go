// Package logging builds the charm loggers used by dtmux.
package logging

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"charm.land/log/v2"
	"github.com/adrg/xdg"
)

// EnvDebug enables debug logging when set to a true value.
const EnvDebug = "DTMUX_DEBUG"

// DebugFromEnv reports whether EnvDebug asks for debug logging.
func DebugFromEnv() bool {
	v, err := strconv.ParseBool(os.Getenv(EnvDebug))
	return err == nil && v
}

// New returns a timestamped logger writing to w. The level is debug when
// debug is set, warn otherwise.
func New(w io.Writer, prefix string, debug bool) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	logger.SetLevel(Level(debug))
	return logger
}

// Level maps the debug switch to a log level.
func Level(debug bool) log.Level {
	if debug {
		return log.DebugLevel
	}
	return log.WarnLevel
}

// GetLogPath returns the log file path under the XDG state directory.
func GetLogPath() (string, error) {
	return xdg.StateFile("dtmux/dtmux.log")
}

// OpenFile creates a logger appending to the dtmux log file. The terminal
// belongs to the TUI while it runs, so nothing may be written to stderr.
// The returned closer must be called on exit.
func OpenFile(debug bool) (*log.Logger, io.Closer, error) {
	path, err := GetLogPath()
	if err != nil {
		return nil, nil, fmt.Errorf("resolve log path: %w", err)
	}
	return OpenPath(path, debug)
}

// OpenPath is OpenFile with an explicit path.
func OpenPath(path string, debug bool) (*log.Logger, io.Closer, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return New(f, "dtmux", debug), f, nil
}

// Package logger sets up the process-wide logger.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

var Logger *log.Logger

func init() {
	Logger = New(os.Stderr)

	// LOG_LEVEL can be overridden later by the config file.
	if err := SetLevel(os.Getenv("LOG_LEVEL")); err != nil {
		Logger.SetLevel(log.InfoLevel)
	}
}

// New returns a logger that writes to w at info level.
func New(w io.Writer) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Level:           log.InfoLevel,
		ReportTimestamp: true,
	})
}

// ParseLevel parses a level name. An empty name is info level.
func ParseLevel(name string) (log.Level, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "DEBUG":
		return log.DebugLevel, nil
	case "", "INFO":
		return log.InfoLevel, nil
	case "WARN", "WARNING":
		return log.WarnLevel, nil
	case "ERROR":
		return log.ErrorLevel, nil
	case "FATAL":
		return log.FatalLevel, nil
	default:
		return log.InfoLevel, fmt.Errorf("unknown log level %q", name)
	}
}

// SetLevel sets the level of Logger. Loggers already returned by For
// keep their old level.
func SetLevel(name string) error {
	level, err := ParseLevel(name)
	if err != nil {
		return err
	}
	Logger.SetLevel(level)
	return nil
}

// For returns a logger for the named subsystem.
func For(subsystem string) *log.Logger {
	return Logger.WithPrefix(subsystem)
}

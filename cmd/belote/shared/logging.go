package shared

import (
	"os"
	"time"

	"github.com/charmbracelet/log"
)

// SetupLogger returns a stderr logger at info level, or debug when asked.
func SetupLogger(debug bool) *log.Logger {
	level := log.InfoLevel
	if debug {
		level = log.DebugLevel
	}
	return log.NewWithOptions(os.Stderr, log.Options{
		Level:           level,
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly,
	})
}

// ParseLevel maps a config log level onto the logger, keeping debug when
// the flag forces it.
func ParseLevel(logger *log.Logger, level string, debug bool) error {
	if debug {
		return nil
	}
	l, err := log.ParseLevel(level)
	if err != nil {
		return err
	}
	logger.SetLevel(l)
	return nil
}

package app

import (
	"strings"

	"github.com/charlesng35/kurukshetra/pkg/logger"
)

// ConfigureLogging initialises the global logger with the provided level and
// encoding, defaulting to info and json.
func ConfigureLogging(level, format string) error {
	level = strings.TrimSpace(level)
	if level == "" {
		level = "info"
	}
	format = strings.TrimSpace(format)
	if format == "" {
		format = "json"
	}
	return logger.Init(level, format)
}

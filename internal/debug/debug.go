// Package debug provides the CLI's debug tracing. Output goes to stderr and
// is disabled unless --debug is set. The package wraps zerolog so trace lines
// carry timestamps and consistent formatting without hand-rolled ANSI codes.
package debug

import (
	"encoding/json"
	"os"
	"sync"

	"github.com/rs/zerolog"
)

var (
	mu      sync.RWMutex
	enabled bool
	logger  = newLogger(false)
)

func newLogger(noColor bool) zerolog.Logger {
	writer := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		NoColor:    noColor,
		TimeFormat: "15:04:05.000",
	}
	return zerolog.New(writer).Level(zerolog.DebugLevel).With().Timestamp().Logger()
}

// SetDebug enables or disables debug mode.
func SetDebug(enable bool) {
	mu.Lock()
	defer mu.Unlock()
	enabled = enable
}

// IsEnabled returns whether debug mode is enabled.
func IsEnabled() bool {
	mu.RLock()
	defer mu.RUnlock()
	return enabled
}

// SetNoColor enables or disables colored output.
func SetNoColor(disable bool) {
	mu.Lock()
	defer mu.Unlock()
	logger = newLogger(disable)
}

func log() (zerolog.Logger, bool) {
	mu.RLock()
	defer mu.RUnlock()
	return logger, enabled
}

// Debug prints a formatted debug message.
func Debug(format string, args ...interface{}) {
	l, ok := log()
	if !ok {
		return
	}
	l.Debug().Msgf(format, args...)
}

// Debugf is an alias for Debug.
func Debugf(format string, args ...interface{}) {
	Debug(format, args...)
}

// DebugSection prints a section header for debug output.
func DebugSection(section string) {
	l, ok := log()
	if !ok {
		return
	}
	l.Debug().Msgf("=== %s ===", section)
}

// DebugValue prints key=value style debug info.
func DebugValue(key string, value interface{}) {
	l, ok := log()
	if !ok {
		return
	}
	l.Debug().Interface(key, value).Msg("")
}

// DebugJSON prints structured data as indented JSON for debugging.
func DebugJSON(key string, v interface{}) {
	l, ok := log()
	if !ok {
		return
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		l.Debug().Msgf("failed to marshal %s to JSON: %v", key, err)
		return
	}
	l.Debug().Msgf("%s:\n%s", key, data)
}

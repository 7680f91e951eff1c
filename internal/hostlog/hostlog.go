// Package hostlog provides the process-wide structured logger. Other
// packages log through a component logger from hostlog.With rather than
// writing to stdout/stderr directly, so log level and format can be set in
// one place with Configure.
package hostlog

import (
	"io"
	"os"
	"sync"

	"github.com/rs/zerolog"
)

var (
	mu     sync.RWMutex
	logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}).
		With().Timestamp().Logger()
)

// Configure replaces the process-wide logger. pretty selects the
// human-readable console writer used during development; when false, raw
// JSON lines are written to w, suited to piping into a log aggregator.
func Configure(w io.Writer, level zerolog.Level, pretty bool) {
	mu.Lock()
	defer mu.Unlock()

	out := w
	if pretty {
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05"}
	}
	logger = zerolog.New(out).With().Timestamp().Logger().Level(level)
}

// Get returns the current process-wide logger.
func Get() *zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return &logger
}

// With returns a child logger with the given component name attached, for
// packages that want every line tagged with their subsystem.
func With(component string) zerolog.Logger {
	return Get().With().Str("component", component).Logger()
}

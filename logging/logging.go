// Package logging wires zerolog for the toolkit. Every package that
// needs to log holds its own component logger:
//
//	var log = logging.New("colorfind")
package logging

import (
	"os"
	"sync"

	"github.com/rs/zerolog"
)

var (
	mu   sync.Mutex
	base = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(zerolog.InfoLevel).
		With().
		Timestamp().
		Logger()
)

// New returns a child logger tagged with the component name.
func New(component string) zerolog.Logger {
	mu.Lock()
	defer mu.Unlock()
	return base.With().Str("component", component).Logger()
}

// SetLevel changes the level for loggers created after the call.
func SetLevel(level zerolog.Level) {
	mu.Lock()
	defer mu.Unlock()
	base = base.Level(level)
}

// SetBase replaces the base logger entirely, for callers that already
// carry their own zerolog configuration.
func SetBase(l zerolog.Logger) {
	mu.Lock()
	defer mu.Unlock()
	base = l
}

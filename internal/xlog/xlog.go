package xlog

import (
	"io"

	"github.com/rs/zerolog"
)

// New builds a component-tagged logger writing to w at the given level,
// following the `log.With().Str("component", ...).Logger()` pattern every
// constructor in this module's packages expects as its logger argument.
func New(w io.Writer, component string, level zerolog.Level) zerolog.Logger {
	return zerolog.New(w).Level(level).With().Timestamp().Str("component", component).Logger()
}

// Component re-tags an existing logger with a new "component" field,
// used when a subsystem wants to narrow an already-configured logger
// (e.g. a provider handing a scoped logger to a curve bootstrap call)
// without constructing a fresh sink.
func Component(log zerolog.Logger, component string) zerolog.Logger {
	return log.With().Str("component", component).Logger()
}

// Nop returns a disabled logger, for tests and callers that don't want
// logging overhead.
func Nop() zerolog.Logger { return zerolog.Nop() }

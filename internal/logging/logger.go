// Package logging holds the process-wide zerolog logger.
package logging

import (
	"github.com/rs/zerolog"
)

// Logger is the logger used by every package in this module. It discards
// everything until SetGlobalLogger is called.
var Logger zerolog.Logger

func init() {
	SetGlobalLogger(zerolog.Nop())
}

func SetGlobalLogger(logger zerolog.Logger) {
	Logger = logger
	zerolog.DefaultContextLogger = &Logger
}

func With() zerolog.Context { return Logger.With() }

func Err(err error) *zerolog.Event { return Logger.Err(err) }

func Trace() *zerolog.Event { return Logger.Trace() }

func Debug() *zerolog.Event { return Logger.Debug() }

func Info() *zerolog.Event { return Logger.Info() }

func Warn() *zerolog.Event { return Logger.Warn() }

func Error() *zerolog.Event { return Logger.Error() }

// Component returns an event at the given level tagged with the emitting
// component, e.g. "hash" or "dictionary".
func Component(level zerolog.Level, component string) *zerolog.Event {
	return Logger.WithLevel(level).Str("component", component)
}

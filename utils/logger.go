package utils

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

const timeFormat = "2006-01-02 15:04:05"

// Logger provides leveled logging throughout the application.
// Info, Warn and Debug go to stdout; Error goes to stderr.
type Logger struct {
	out zerolog.Logger
	err zerolog.Logger
}

// NewLogger creates a new Logger writing to stdout/stderr at the given level
// ("debug", "info", "warn", "error"). Unknown levels fall back to info.
func NewLogger(level string) *Logger {
	lvl := parseLevel(level)
	return &Logger{
		out: newConsole(os.Stdout, false).Level(lvl),
		err: newConsole(os.Stderr, false).Level(lvl),
	}
}

// NewLoggerTo creates a debug-level Logger that writes every level to w
// without colour. Used by tests to inspect diagnostics.
func NewLoggerTo(w io.Writer) *Logger {
	l := newConsole(w, true).Level(zerolog.DebugLevel)
	return &Logger{out: l, err: l}
}

// NewNopLogger returns a Logger that discards everything.
func NewNopLogger() *Logger {
	return &Logger{out: zerolog.Nop(), err: zerolog.Nop()}
}

func newConsole(w io.Writer, noColor bool) zerolog.Logger {
	cw := zerolog.ConsoleWriter{Out: w, TimeFormat: timeFormat, NoColor: noColor}
	return zerolog.New(cw).With().Timestamp().Logger()
}

func parseLevel(level string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		return zerolog.InfoLevel
	}
	return lvl
}

func (l *Logger) Info(format string, args ...any) {
	l.out.Info().Msgf(format, args...)
}

func (l *Logger) Warn(format string, args ...any) {
	l.out.Warn().Msgf(format, args...)
}

func (l *Logger) Error(format string, args ...any) {
	l.err.Error().Msgf(format, args...)
}

func (l *Logger) Debug(format string, args ...any) {
	l.out.Debug().Msgf(format, args...)
}

// Package logging backs the installer's Logger interface with charmbracelet/log.
package logging

import (
	"io"

	"github.com/charmbracelet/log"
)

// Logger writes leveled, key-value structured messages.
type Logger struct {
	l *log.Logger
}

// New returns a Logger writing to w. Debug messages are shown only when
// verbose is set.
func New(w io.Writer, verbose bool) *Logger {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}

	return &Logger{
		l: log.NewWithOptions(w, log.Options{
			Prefix: "phantomjs-installer",
			Level:  level,
		}),
	}
}

func (lg *Logger) Debug(msg string, keysAndValues ...interface{}) {
	lg.l.Debug(msg, keysAndValues...)
}

func (lg *Logger) Info(msg string, keysAndValues ...interface{}) {
	lg.l.Info(msg, keysAndValues...)
}

func (lg *Logger) Warn(msg string, keysAndValues ...interface{}) {
	lg.l.Warn(msg, keysAndValues...)
}

func (lg *Logger) Error(msg string, keysAndValues ...interface{}) {
	lg.l.Error(msg, keysAndValues...)
}

// Package console renders the headless pipeline for an operator at a terminal:
// prompt-styled log lines, the command frame, the dependency table and the
// confirmation prompt.
package console

import (
	"io"

	"github.com/bombsimon/logrusr/v3"
	"github.com/go-logr/logr"
	"github.com/sirupsen/logrus"

	"github.com/ochairo/headless/internal/domain/interfaces"
)

// Options controls console rendering
type Options struct {
	Verbose bool // Show debug messages
	NoColor bool // Plain text, no ANSI escapes
}

// Logger implements interfaces.Logger on top of logrus
type Logger struct {
	logrus *logrus.Logger
}

// NewLogger creates a logger writing prompt-styled lines to w
func NewLogger(w io.Writer, opts Options) *Logger {
	l := logrus.New()
	l.SetOutput(w)
	l.SetFormatter(&promptFormatter{noColor: opts.NoColor})
	l.SetLevel(logrus.InfoLevel)
	if opts.Verbose {
		l.SetLevel(logrus.DebugLevel)
	}
	return &Logger{logrus: l}
}

// Logr exposes the same sink as a logr.Logger for adapters that log through logr.
// V(1) messages map to debug.
func (l *Logger) Logr() logr.Logger {
	return logrusr.New(l.logrus)
}

// Debug logs debug-level messages
func (l *Logger) Debug(msg string, fields ...interfaces.Field) {
	l.entry(fields).Debug(msg)
}

// Info logs informational messages
func (l *Logger) Info(msg string, fields ...interfaces.Field) {
	l.entry(fields).Info(msg)
}

// Warn logs warning messages
func (l *Logger) Warn(msg string, fields ...interfaces.Field) {
	l.entry(fields).Warn(msg)
}

// Error logs error messages
func (l *Logger) Error(msg string, fields ...interfaces.Field) {
	l.entry(fields).Error(msg)
}

func (l *Logger) entry(fields []interfaces.Field) *logrus.Entry {
	data := make(logrus.Fields, len(fields))
	for _, f := range fields {
		data[f.Key] = f.Value
	}
	return l.logrus.WithFields(data)
}

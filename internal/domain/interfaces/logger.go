// Package interfaces defines core domain contracts.
//
//nolint:revive // Package name 'interfaces' is intentional for domain layer
package interfaces

// Logger defines the interface for structured logging
type Logger interface {
	// Debug logs debug-level messages
	Debug(msg string, fields ...Field)

	// Info logs informational messages
	Info(msg string, fields ...Field)

	// Warn logs warning messages
	Warn(msg string, fields ...Field)

	// Error logs error messages
	Error(msg string, fields ...Field)
}

// Field represents a structured log field
type Field struct {
	Key   string
	Value interface{}
}

// F creates a new Field (convenience function)
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

// NoOpLogger is a logger that does nothing (useful for tests)
type NoOpLogger struct{}

// Debug does nothing (no-op implementation)
func (n *NoOpLogger) Debug(_ string, _ ...Field) {}

// Info does nothing (no-op implementation)
func (n *NoOpLogger) Info(_ string, _ ...Field) {}

// Warn does nothing (no-op implementation)
func (n *NoOpLogger) Warn(_ string, _ ...Field) {}

// Error does nothing (no-op implementation)
func (n *NoOpLogger) Error(_ string, _ ...Field) {}

// Entry is a message captured by RecordingLogger
type Entry struct {
	Level   string
	Message string
	Fields  []Field
}

// RecordingLogger keeps every message in memory (useful for tests)
type RecordingLogger struct {
	Entries []Entry
}

// Debug records a debug-level message
func (r *RecordingLogger) Debug(msg string, fields ...Field) {
	r.record("DEBUG", msg, fields)
}

// Info records an informational message
func (r *RecordingLogger) Info(msg string, fields ...Field) {
	r.record("INFO", msg, fields)
}

// Warn records a warning
func (r *RecordingLogger) Warn(msg string, fields ...Field) {
	r.record("WARN", msg, fields)
}

// Error records an error
func (r *RecordingLogger) Error(msg string, fields ...Field) {
	r.record("ERROR", msg, fields)
}

// Messages returns the recorded messages of the given level in order
func (r *RecordingLogger) Messages(level string) []string {
	var out []string
	for _, e := range r.Entries {
		if e.Level == level {
			out = append(out, e.Message)
		}
	}
	return out
}

func (r *RecordingLogger) record(level, msg string, fields []Field) {
	r.Entries = append(r.Entries, Entry{Level: level, Message: msg, Fields: fields})
}

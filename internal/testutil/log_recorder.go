package testutil

import (
	"strings"
	"sync"

	"github.com/hupe1980/stagekit/logging"
)

// LogEntry is one captured log call.
type LogEntry struct {
	Level logging.LogLevel
	Msg   string
	Args  []any
}

// LogRecorder is a logging.Logger that keeps every entry in memory.
// Example:
//
//	rec := testutil.NewLogRecorder()
//	g, _ := game.New(func(o *game.Options) { o.Logger = rec })
//	assert.Equal(t, 1, rec.Count(logging.LogLevelWarn))
type LogRecorder struct {
	mu      sync.Mutex
	entries []LogEntry
}

// NewLogRecorder creates an empty recorder.
func NewLogRecorder() *LogRecorder { return &LogRecorder{} }

func (r *LogRecorder) add(level logging.LogLevel, msg string, args []any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, LogEntry{Level: level, Msg: msg, Args: append([]any(nil), args...)})
}

// Debug records a debug entry.
func (r *LogRecorder) Debug(msg string, args ...any) { r.add(logging.LogLevelDebug, msg, args) }

// Info records an info entry.
func (r *LogRecorder) Info(msg string, args ...any) { r.add(logging.LogLevelInfo, msg, args) }

// Warn records a warn entry.
func (r *LogRecorder) Warn(msg string, args ...any) { r.add(logging.LogLevelWarn, msg, args) }

// Error records an error entry.
func (r *LogRecorder) Error(msg string, args ...any) { r.add(logging.LogLevelError, msg, args) }

// Entries returns a copy of every entry.
func (r *LogRecorder) Entries() []LogEntry {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]LogEntry(nil), r.entries...)
}

// Count returns the number of entries logged at level.
func (r *LogRecorder) Count(level logging.LogLevel) int {
	n := 0
	for _, e := range r.Entries() {
		if e.Level == level {
			n++
		}
	}
	return n
}

// Contains reports whether any entry at level has a message or argument
// containing substr.
func (r *LogRecorder) Contains(level logging.LogLevel, substr string) bool {
	for _, e := range r.Entries() {
		if e.Level != level {
			continue
		}
		if strings.Contains(e.Msg, substr) {
			return true
		}
		for _, a := range e.Args {
			if s, ok := a.(string); ok && strings.Contains(s, substr) {
				return true
			}
		}
	}
	return false
}

// Reset drops every entry.
func (r *LogRecorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = nil
}

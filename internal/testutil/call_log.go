package testutil

import (
	"fmt"
	"sync"
)

// CallLog records calls in order so tests can assert dispatch sequences.
type CallLog struct {
	mu    sync.Mutex
	calls []string
}

// Add appends a formatted call.
func (c *CallLog) Add(format string, args ...any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls = append(c.calls, fmt.Sprintf(format, args...))
}

// Calls returns the recorded calls in order.
func (c *CallLog) Calls() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.calls...)
}

// Count returns how many times call was recorded.
func (c *CallLog) Count(call string) int {
	n := 0
	for _, s := range c.Calls() {
		if s == call {
			n++
		}
	}
	return n
}

// Reset clears the log.
func (c *CallLog) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls = nil
}

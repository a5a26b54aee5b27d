package browser

import "sync"

// ConsoleCollector accumulates console messages of type error in emission
// order. Playwright delivers events on its own goroutine.
type ConsoleCollector struct {
	mu     sync.Mutex
	errors []string
}

// Record is the console event handler.
func (c *ConsoleCollector) Record(kind, text string) {
	if kind != "error" {
		return
	}
	c.mu.Lock()
	c.errors = append(c.errors, text)
	c.mu.Unlock()
}

// Errors returns a copy of the collected messages.
func (c *ConsoleCollector) Errors() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, len(c.errors))
	copy(out, c.errors)
	return out
}

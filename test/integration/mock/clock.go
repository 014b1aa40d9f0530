package mock

import (
	"sync"
	"time"
)

// Clock is a settable clock so scenarios can travel across due dates.
type Clock struct {
	mu  sync.Mutex
	now time.Time
}

// NewClock creates a clock starting at the real current time.
func NewClock() *Clock {
	return &Clock{now: time.Now().UTC()}
}

// Set pins the clock to the given instant.
func (c *Clock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

// Now implements adapter.Clock.
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

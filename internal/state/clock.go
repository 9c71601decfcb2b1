package state

import (
	"sync"

	"LocalCanvas/internal/history"
)

// Clock hands out action timestamps in Unix milliseconds. Successive ticks
// are strictly increasing even when the wall clock stalls or steps back.
type Clock struct {
	mu   sync.Mutex
	last int64
	now  func() int64
}

// Tick returns the next timestamp.
func (c *Clock) Tick() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := history.Now
	if c.now != nil {
		now = c.now
	}
	ts := now()
	if ts <= c.last {
		ts = c.last + 1
	}
	c.last = ts
	return ts
}

// Update moves the clock past a timestamp seen elsewhere, such as in a
// replayed log.
func (c *Clock) Update(ts int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if ts > c.last {
		c.last = ts
	}
}

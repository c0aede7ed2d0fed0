package service

import (
	"sync"
	"time"
)

// Clock supplies the current time to anything that needs it. Injected
// everywhere so the debug clock and tests can steer time without globals.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// pollIncrement is how far simulated time jumps per host-display poll.
const pollIncrement = 30 * time.Second

// debugBaseHour/Minute pin simulated time to the start of the serving
// window so the cafeteria reads as open the moment debug mode turns on.
const (
	debugBaseHour   = 11
	debugBaseMinute = 45
)

// SimClock is a Clock that can be switched into a simulated mode for
// host-display rehearsals. While simulating, time only moves when Poll is
// called (+30s per poll); Now never side-effects.
type SimClock struct {
	real Clock

	mu        sync.Mutex
	debug     bool
	base      time.Time
	increment time.Duration
}

func NewSimClock(real Clock) *SimClock {
	if real == nil {
		real = SystemClock{}
	}
	return &SimClock{real: real}
}

// Now returns the current real or simulated time without advancing it.
func (c *SimClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.debug {
		return c.base.Add(c.increment)
	}
	return c.real.Now()
}

// Poll returns the current time, advancing simulated time by the poll
// increment first. In real mode it behaves exactly like Now. Only the time
// endpoint calls this.
func (c *SimClock) Poll() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.debug {
		c.increment += pollIncrement
		return c.base.Add(c.increment)
	}
	return c.real.Now()
}

// EnableDebug pins simulated time to today at the opening minute and resets
// the poll counter.
func (c *SimClock) EnableDebug() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.real.Now()
	c.debug = true
	c.base = time.Date(now.Year(), now.Month(), now.Day(),
		debugBaseHour, debugBaseMinute, 0, 0, now.Location())
	c.increment = 0
	return c.base
}

// Reset leaves debug mode and returns to the wall clock.
func (c *SimClock) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.debug = false
	c.base = time.Time{}
	c.increment = 0
}

// IsDebug reports whether simulated time is active.
func (c *SimClock) IsDebug() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.debug
}

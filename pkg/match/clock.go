// Package match runs timed games on top of a world: a countdown clock with
// optional stoppage time, a scoreboard fed by arena hits and a referee that
// turns both into a final outcome.
package match

import (
	"fmt"
	"math"
	"time"
)

// Clock counts a period down in whole ticks
type Clock struct {
	tickRate      int
	remaining     int
	stoppageTicks int
	inStoppage    bool
}

// NewClock creates a clock for a regulation period of duration seconds
// followed, on demand, by stoppage seconds of extra time.
func NewClock(duration, stoppage float64, tickRate int) *Clock {
	return &Clock{
		tickRate:      tickRate,
		remaining:     secondsToTicks(duration, tickRate),
		stoppageTicks: secondsToTicks(stoppage, tickRate),
	}
}

func secondsToTicks(seconds float64, tickRate int) int {
	return int(math.Round(seconds * float64(tickRate)))
}

// Tick consumes one tick and reports whether the current period ran out on it
func (c *Clock) Tick() bool {
	if c.remaining <= 0 {
		return false
	}
	c.remaining--
	return c.remaining == 0
}

// Expired reports whether the current period is over
func (c *Clock) Expired() bool { return c.remaining <= 0 }

// InStoppage reports whether the clock is running stoppage time
func (c *Clock) InStoppage() bool { return c.inStoppage }

// RemainingTicks returns the ticks left in the current period
func (c *Clock) RemainingTicks() int { return c.remaining }

// Remaining returns the time left in the current period
func (c *Clock) Remaining() time.Duration {
	if c.tickRate <= 0 {
		return 0
	}
	return time.Duration(c.remaining) * time.Second / time.Duration(c.tickRate)
}

// StartStoppage starts the stoppage period. It returns false when no
// stoppage time is configured or it was already used.
func (c *Clock) StartStoppage() bool {
	if c.inStoppage || c.stoppageTicks <= 0 {
		return false
	}
	c.inStoppage = true
	c.remaining = c.stoppageTicks
	return true
}

// String formats the remaining time as mm:ss, prefixed during stoppage time
func (c *Clock) String() string {
	secs := int(c.Remaining() / time.Second)
	s := fmt.Sprintf("%02d:%02d", secs/60, secs%60)
	if c.inStoppage {
		return "stoppage " + s
	}
	return s
}

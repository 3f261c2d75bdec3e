// Package counter animates displayed integers toward their targets. It is a
// cosmetic concern for the live aggregate view and plays no part in the data
// contract: aggregates are always exact, only their on-screen rendering eases
// toward the new value.
package counter

import (
	"context"
	"sync"
	"time"
)

// Counter eases a displayed value toward a moving target.
type Counter struct {
	mu        sync.Mutex
	displayed int
	target    int
}

// SetTarget updates the value the display should approach.
func (c *Counter) SetTarget(target int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.target = target
}

// Value returns the currently displayed value.
func (c *Counter) Value() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.displayed
}

// Done reports whether the display has reached the target.
func (c *Counter) Done() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.displayed == c.target
}

// Step advances the display one tick toward the target, covering a tenth of
// the remaining distance but always at least one unit, and never overshoots.
func (c *Counter) Step() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	diff := c.target - c.displayed
	if diff == 0 {
		return c.displayed
	}

	step := diff / 10
	if step == 0 {
		if diff > 0 {
			step = 1
		} else {
			step = -1
		}
	}
	c.displayed += step
	return c.displayed
}

// Run steps the counter on the given interval until the context is done.
// Each tick's value is delivered to onTick.
func (c *Counter) Run(ctx context.Context, interval time.Duration, onTick func(int)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			v := c.Step()
			if onTick != nil {
				onTick(v)
			}
		}
	}
}

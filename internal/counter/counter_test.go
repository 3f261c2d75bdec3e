package counter

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCounterConverges(t *testing.T) {
	c := &Counter{}
	c.SetTarget(57)

	steps := 0
	for !c.Done() {
		c.Step()
		steps++
		if steps > 1000 {
			t.Fatal("counter did not converge")
		}
	}
	assert.Equal(t, 57, c.Value())
}

func TestCounterNeverOvershoots(t *testing.T) {
	c := &Counter{}
	c.SetTarget(7)

	prev := 0
	for !c.Done() {
		v := c.Step()
		assert.Greater(t, v, prev)
		assert.LessOrEqual(t, v, 7)
		prev = v
	}
}

func TestCounterFollowsMovingTarget(t *testing.T) {
	c := &Counter{}
	c.SetTarget(100)
	for i := 0; i < 5; i++ {
		c.Step()
	}
	mid := c.Value()
	assert.Greater(t, mid, 0)

	// target drops below the display; the counter reverses
	c.SetTarget(0)
	for !c.Done() {
		c.Step()
	}
	assert.Equal(t, 0, c.Value())
}

func TestCounterIdleStep(t *testing.T) {
	c := &Counter{}
	assert.Equal(t, 0, c.Step())
	assert.True(t, c.Done())
}

func TestCounterRun(t *testing.T) {
	c := &Counter{}
	c.SetTarget(5)

	ctx, cancel := context.WithCancel(context.Background())
	seen := make([]int, 0, 8)
	done := make(chan struct{})
	go func() {
		defer close(done)
		c.Run(ctx, time.Millisecond, func(v int) {
			seen = append(seen, v)
			if v == 5 {
				cancel()
			}
		})
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		cancel()
		t.Fatal("Run did not converge")
	}
	assert.Equal(t, []int{1, 2, 3, 4, 5}, seen)
	assert.True(t, c.Done())
}

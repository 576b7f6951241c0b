package app

import (
	"time"

	"clockface/face/clockmath"
	"clockface/hal"
)

// TickClock samples the HAL wall clock together with the newest monotonic
// tick. Ticks that piled up since the last sample are drained without
// blocking.
type TickClock struct {
	t    hal.Time
	tick uint64
	now  func() time.Time
}

func NewTickClock(t hal.Time) *TickClock {
	c := &TickClock{t: t, now: time.Now}
	if t != nil {
		c.now = t.Now
	}
	return c
}

func (c *TickClock) Now() clockmath.Snapshot {
	c.drain()
	return clockmath.SnapshotOf(c.now(), c.tick)
}

func (c *TickClock) drain() {
	if c.t == nil {
		return
	}
	ch := c.t.Ticks()
	if ch == nil {
		return
	}
	for {
		select {
		case seq, ok := <-ch:
			if !ok {
				return
			}
			if seq > c.tick {
				c.tick = seq
			}
		default:
			return
		}
	}
}

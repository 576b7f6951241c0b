//go:build !tinygo

package hal

import "time"

type hostTime struct {
	ch  chan uint64
	seq uint64

	last time.Time
	acc  time.Duration

	now func() time.Time
}

func newHostTime() *hostTime {
	return &hostTime{ch: make(chan uint64, 1024), now: time.Now}
}

func (t *hostTime) Ticks() <-chan uint64 { return t.ch }

func (t *hostTime) Now() time.Time { return t.now() }

// step converts elapsed wall time into millisecond ticks.
func (t *hostTime) step() {
	now := t.now()
	if t.last.IsZero() {
		t.last = now
		t.acc = 0
		t.stepN(1)
		return
	}

	t.acc += now.Sub(t.last)
	t.last = now

	const tickDur = time.Millisecond
	ticks := uint64(t.acc / tickDur)
	if ticks == 0 {
		return
	}
	t.acc = t.acc % tickDur
	t.stepN(ticks)
}

func (t *hostTime) stepN(n uint64) {
	t.seq += n
	// Only the latest sequence matters to readers; drop stale values when full.
	select {
	case t.ch <- t.seq:
	default:
		select {
		case <-t.ch:
		default:
		}
		select {
		case t.ch <- t.seq:
		default:
		}
	}
}

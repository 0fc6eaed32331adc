package stopwatch

import (
	"sync"
	"sync/atomic"
	"time"
)

var tickerIDs atomic.Int64

// Ticker is a cancellable repeating tick source. A ticker is acquired when
// the stopwatch starts and released on pause, reset or teardown.
type Ticker struct {
	id     int64
	period time.Duration
	t      *time.Ticker
	done   chan struct{}
	once   sync.Once
}

// NewTicker starts a ticker firing every period.
func NewTicker(period time.Duration) *Ticker {
	if period <= 0 {
		period = DefaultTick
	}
	return &Ticker{
		id:     tickerIDs.Add(1),
		period: period,
		t:      time.NewTicker(period),
		done:   make(chan struct{}),
	}
}

// ID identifies the ticker so ticks from a released ticker can be told apart.
func (t *Ticker) ID() int64 {
	return t.id
}

// Period returns the tick period.
func (t *Ticker) Period() time.Duration {
	return t.period
}

// Next blocks until the next tick. It returns false once the ticker is
// stopped, including when Stop races with a pending tick.
func (t *Ticker) Next() (time.Time, bool) {
	select {
	case <-t.done:
		return time.Time{}, false
	default:
	}
	select {
	case <-t.done:
		return time.Time{}, false
	case now := <-t.t.C:
		select {
		case <-t.done:
			return time.Time{}, false
		default:
		}
		return now, true
	}
}

// Stop releases the ticker and wakes any waiter. Safe to call more than once.
func (t *Ticker) Stop() {
	t.once.Do(func() {
		t.t.Stop()
		close(t.done)
	})
}

// Stopped reports whether Stop has been called.
func (t *Ticker) Stopped() bool {
	select {
	case <-t.done:
		return true
	default:
		return false
	}
}

package receiver

import (
	"time"

	"github.com/hostbench/netbench/pkg/ramp/model"
)

// Aggregator accumulates per-packet contributions into the active window and
// emits a snapshot once the reporting interval has elapsed. It is only ever
// touched by the receive loop's single goroutine, so it needs no locking.
type Aggregator struct {
	interval    time.Duration
	windowStart time.Time
	stats       model.WindowStats
}

// NewAggregator returns an Aggregator whose first window opens at now.
func NewAggregator(interval time.Duration, now time.Time) *Aggregator {
	return &Aggregator{
		interval:    interval,
		windowStart: now,
	}
}

// Add records one received packet: its size, its clamped one-way latency and
// the loss gap its sequence number revealed.
func (a *Aggregator) Add(bytes int, latencyNS uint64, lost uint64) {
	a.stats.BytesReceived += uint64(bytes)
	a.stats.PacketsReceived++
	a.stats.PacketsLost += lost
	a.stats.LatencySumNS += latencyNS
	a.stats.LatencyCount++
}

// MaybeFlush closes the window if the reporting interval has elapsed since
// it opened. On a close it returns a snapshot of the accumulated stats,
// resets every interval-scoped counter to zero and opens the next window at
// now. Windows only close from here, which the receive loop reaches on
// packet arrival: intervals with zero traffic produce no record.
func (a *Aggregator) MaybeFlush(now time.Time) (model.WindowSnapshot, bool) {
	if now.Sub(a.windowStart) <= a.interval {
		return model.WindowSnapshot{}, false
	}
	snap := model.WindowSnapshot{
		Time:        now,
		WindowStats: a.stats,
	}
	a.stats = model.WindowStats{}
	a.windowStart = now
	return snap, true
}

// Pending returns the stats accumulated in the currently open window.
func (a *Aggregator) Pending() model.WindowStats { return a.stats }

// Package pacer implements the adaptive-wait scheduling discipline used by
// the rate-limited generator. The goal is an aggregate byte rate that
// converges to the target over any sufficiently long interval while keeping
// CPU burn from busy-waiting bounded: long gaps are slept, short gaps yield
// the processor, and sub-microsecond gaps spin.
package pacer

import (
	"runtime"
	"time"
)

const (
	// sleepThreshold is the remaining gap above which the pacer blocks.
	// It sleeps only half the gap and re-checks, so scheduler granularity
	// cannot overshoot the deadline by more than half a gap at a time.
	sleepThreshold = 100 * time.Microsecond

	// yieldThreshold is the remaining gap above which the pacer yields the
	// processor instead of spinning.
	yieldThreshold = 1 * time.Microsecond
)

// Clock abstracts time observation and the waiting primitives so tests can
// drive the pacer with a simulated clock, free of real scheduler jitter.
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
	Yield()
}

// SystemClock is the Clock used outside of tests.
type SystemClock struct{}

// Now returns the current time.
func (SystemClock) Now() time.Time { return time.Now() }

// Sleep blocks for d.
func (SystemClock) Sleep(d time.Duration) { time.Sleep(d) }

// Yield yields the processor without blocking.
func (SystemClock) Yield() { runtime.Gosched() }

// Pacer schedules sends at a fixed inter-packet interval derived from a
// target byte rate and a constant packet size.
type Pacer struct {
	clock    Clock
	interval time.Duration
	next     time.Time
}

// New returns a Pacer driven by the given clock. A nil clock means the
// system clock.
func New(clock Clock) *Pacer {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Pacer{clock: clock}
}

// SetRate derives the inter-packet interval analytically from the target
// rate. It is called once per ramp step, not per packet, and restarts the
// send deadline at the current time.
func (p *Pacer) SetRate(bytesPerSecond uint64, packetSize int) {
	pps := bytesPerSecond / uint64(packetSize)
	if pps == 0 {
		pps = 1
	}
	p.interval = time.Duration(uint64(time.Second) / pps)
	p.next = p.clock.Now()
}

// Interval returns the current inter-packet interval.
func (p *Pacer) Interval() time.Duration { return p.interval }

// Tick reports whether a packet is due at now. On a send, the deadline
// advances by exactly one interval rather than resetting to now+interval, so
// per-send overshoot does not accumulate as rate drift. When no packet is
// due, Tick performs one step of the adaptive wait and returns false; the
// caller loops.
func (p *Pacer) Tick(now time.Time) bool {
	if !now.Before(p.next) {
		p.next = p.next.Add(p.interval)
		return true
	}
	remaining := p.next.Sub(now)
	switch {
	case remaining > sleepThreshold:
		p.clock.Sleep(remaining / 2)
	case remaining > yieldThreshold:
		p.clock.Yield()
	}
	return false
}

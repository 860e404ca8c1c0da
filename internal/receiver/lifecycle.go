package receiver

import (
	"fmt"
	"time"
)

// SessionState is the lifecycle state of one receiver run.
type SessionState int

const (
	// AwaitingTraffic means no packet has been received yet.
	AwaitingTraffic SessionState = iota
	// Active means traffic has started and arrived within the idle timeout.
	Active
	// Terminated is final: there is no transition back.
	Terminated
)

func (s SessionState) String() string {
	switch s {
	case AwaitingTraffic:
		return "awaiting-traffic"
	case Active:
		return "active"
	case Terminated:
		return "terminated"
	default:
		return fmt.Sprintf("unknown(%d)", int(s))
	}
}

// Lifecycle decides when the receive loop stops, via two independent
// policies: a long startup grace period while no traffic has ever arrived,
// and a short idle timeout once it has. Both thresholds are configurable;
// see spec.DefaultStartupTimeout and spec.DefaultIdleTimeout for the
// documented defaults.
type Lifecycle struct {
	state          SessionState
	startupTimeout time.Duration
	idleTimeout    time.Duration
	startedAt      time.Time
	lastPacket     time.Time
}

// NewLifecycle returns a Lifecycle in AwaitingTraffic whose startup clock
// begins at now.
func NewLifecycle(startupTimeout, idleTimeout time.Duration, now time.Time) *Lifecycle {
	return &Lifecycle{
		state:          AwaitingTraffic,
		startupTimeout: startupTimeout,
		idleTimeout:    idleTimeout,
		startedAt:      now,
	}
}

// OnPacket records a packet arrival at now, resetting the idle timer. It
// reports whether this was the session's first packet.
func (l *Lifecycle) OnPacket(now time.Time) bool {
	if l.state == Terminated {
		return false
	}
	first := l.state == AwaitingTraffic
	l.state = Active
	l.lastPacket = now
	return first
}

// Check evaluates the timeout policies at now. When it reports done, the
// session has moved to Terminated and the reason describes why; both timeout
// terminations are normal, user-visible completions, not failures.
func (l *Lifecycle) Check(now time.Time) (reason string, done bool) {
	switch l.state {
	case AwaitingTraffic:
		if now.Sub(l.startedAt) > l.startupTimeout {
			l.state = Terminated
			return fmt.Sprintf("no traffic received for %s", l.startupTimeout), true
		}
	case Active:
		if now.Sub(l.lastPacket) > l.idleTimeout {
			l.state = Terminated
			return fmt.Sprintf("traffic stopped for %s", l.idleTimeout), true
		}
	case Terminated:
		return "session terminated", true
	}
	return "", false
}

// State returns the current session state.
func (l *Lifecycle) State() SessionState { return l.state }

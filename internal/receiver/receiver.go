// Package receiver implements the session receiver: a single-goroutine
// bounded-wait receive loop that validates datagrams, detects sequence gaps,
// aggregates per-window statistics and terminates the session via dual
// timeout policies.
package receiver

import (
	"context"
	"errors"
	"net"
	"time"

	"github.com/charmbracelet/log"
	"github.com/jellydator/ttlcache/v3"

	"github.com/hostbench/netbench/internal/clockx"
	"github.com/hostbench/netbench/internal/metrics"
	"github.com/hostbench/netbench/pkg/emitter"
	"github.com/hostbench/netbench/pkg/ramp"
	"github.com/hostbench/netbench/pkg/ramp/model"
	"github.com/hostbench/netbench/pkg/ramp/spec"
)

// PacketConn is the subset of *net.UDPConn the receiver needs: receive with
// a bounded wait, returning the sender address and payload.
type PacketConn interface {
	ReadFrom(b []byte) (int, net.Addr, error)
	SetReadDeadline(t time.Time) error
}

// Config configures a receiver session.
type Config struct {
	// StartupTimeout is how long to wait for the first datagram before
	// terminating. Zero means spec.DefaultStartupTimeout.
	StartupTimeout time.Duration

	// IdleTimeout is the maximum gap between consecutive datagrams once
	// traffic has started. Zero means spec.DefaultIdleTimeout.
	IdleTimeout time.Duration

	// ReportInterval is the statistics window length. Zero means
	// spec.ReportInterval.
	ReportInterval time.Duration

	// PollTimeout bounds each receive call. Zero means spec.PollTimeout.
	PollTimeout time.Duration

	// MeasurementID identifies this run in logs and archival data.
	MeasurementID string
}

func (c Config) withDefaults() Config {
	if c.StartupTimeout == 0 {
		c.StartupTimeout = spec.DefaultStartupTimeout
	}
	if c.IdleTimeout == 0 {
		c.IdleTimeout = spec.DefaultIdleTimeout
	}
	if c.ReportInterval == 0 {
		c.ReportInterval = spec.ReportInterval
	}
	if c.PollTimeout == 0 {
		c.PollTimeout = spec.PollTimeout
	}
	return c
}

// Receiver runs one benchmark session over a bound UDP socket.
type Receiver struct {
	conn    PacketConn
	cfg     Config
	emitter emitter.Emitter

	// senders tracks the addresses currently sending to us, mostly to log
	// when a sender appears or goes quiet. The data path does not depend
	// on it: the protocol has a single logical flow.
	senders *ttlcache.Cache[string, time.Time]
}

// New returns a Receiver reading from conn.
func New(conn PacketConn, cfg Config, e emitter.Emitter) *Receiver {
	cfg = cfg.withDefaults()
	senders := ttlcache.New(
		ttlcache.WithTTL[string, time.Time](cfg.IdleTimeout),
	)
	senders.OnEviction(func(ctx context.Context,
		er ttlcache.EvictionReason,
		i *ttlcache.Item[string, time.Time]) {
		log.Debug("sender went quiet", "remote", i.Key(), "lastPacket", i.Value())
	})
	return &Receiver{
		conn:    conn,
		cfg:     cfg,
		emitter: e,
		senders: senders,
	}
}

// Run executes the receive loop until the lifecycle controller terminates
// the session or ctx is canceled, and returns the archival record of the
// run. Timeout terminations are normal completions and produce a nil error;
// the only errors worth surfacing mid-run are logged and skipped.
func (r *Receiver) Run(ctx context.Context) *model.ArchivalData {
	start := time.Now()
	archive := model.NewArchivalData(r.cfg.MeasurementID, start)

	lifecycle := NewLifecycle(r.cfg.StartupTimeout, r.cfg.IdleTimeout, start)
	agg := NewAggregator(r.cfg.ReportInterval, start)
	var tracker SequenceTracker

	go r.senders.Start()
	defer r.senders.Stop()

	// Datagrams are at most spec.PacketSize, but oversized ones are still
	// read (and then counted by their actual size) rather than truncated.
	buf := make([]byte, 2*spec.PacketSize)

	for {
		if ctx.Err() != nil {
			archive.Reason = "canceled"
			break
		}

		r.conn.SetReadDeadline(time.Now().Add(r.cfg.PollTimeout))
		n, addr, err := r.conn.ReadFrom(buf)
		// The poll deadline above already required a clock read, so
		// re-checking the lifecycle timers here costs no extra syscall.
		now := time.Now()

		if err != nil {
			var netErr net.Error
			if !errors.As(err, &netErr) || !netErr.Timeout() {
				metrics.ReceiveErrors.Inc()
				r.emitter.OnError(err)
			}
			// Both a timed-out poll and a failed read leave the session
			// timers running: a socket that only ever errors must still
			// terminate through the startup or idle timeout.
			if reason, done := lifecycle.Check(now); done {
				r.emitter.OnComplete(reason)
				archive.Reason = reason
				break
			}
			continue
		}

		if n < ramp.HeaderSize {
			// Undersized datagrams cannot be attributed to a sequence
			// number: silently dropped, neither received nor lost.
			continue
		}
		pkt, err := ramp.Unmarshal(buf[:n])
		if err != nil {
			continue
		}

		if lifecycle.OnPacket(now) {
			r.emitter.OnTrafficStart(addr.String())
		}
		r.senders.Set(addr.String(), now, ttlcache.DefaultTTL)

		// One-way latency, clamped at zero when the sender's clock runs
		// ahead of ours. Meaningful only under synchronized clocks.
		var latency uint64
		if recvNS := clockx.NowNS(); recvNS > pkt.SendTimeNS {
			latency = recvNS - pkt.SendTimeNS
		}

		gap := tracker.Observe(pkt.Seq)
		agg.Add(n, latency, gap)
		metrics.PacketsReceived.Inc()
		if gap > 0 {
			metrics.PacketsLost.Add(float64(gap))
		}

		if snap, ok := agg.MaybeFlush(now); ok {
			archive.AddWindow(snap)
			r.emitter.OnWindow(snap)
		}
	}

	archive.EndTime = time.Now()
	return archive
}

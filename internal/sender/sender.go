// Package sender implements the rate-limited generator: a paced stream of
// fixed-size datagrams whose target rate escalates through discrete 1 MB/s
// steps. The generator is fire-and-forget: it expects no acknowledgments and
// has no knowledge of packet loss or the receiver's state.
package sender

import (
	"context"
	"time"

	"github.com/hostbench/netbench/internal/clockx"
	"github.com/hostbench/netbench/internal/metrics"
	"github.com/hostbench/netbench/internal/pacer"
	"github.com/hostbench/netbench/pkg/emitter"
	"github.com/hostbench/netbench/pkg/ramp"
	"github.com/hostbench/netbench/pkg/ramp/spec"
)

// PacketWriter is the subset of net.Conn the generator needs: send to a
// known peer.
type PacketWriter interface {
	Write(b []byte) (int, error)
}

// Config configures a generator run.
type Config struct {
	// MaxRateMB is the last step of the ramp, in MB/s. The ramp runs from
	// 1 MB/s to MaxRateMB inclusive in 1 MB/s steps.
	MaxRateMB int

	// StepDuration is the wall-clock time spent at each rate step. Steps
	// follow each other immediately, with no gap or drain period.
	StepDuration time.Duration

	// PacketSize is the total datagram size. Defaults to spec.PacketSize.
	PacketSize int
}

// Sender paces datagrams to the configured ramp of target rates.
type Sender struct {
	conn    PacketWriter
	cfg     Config
	emitter emitter.Emitter
	clock   pacer.Clock
}

// New returns a Sender writing to conn.
func New(conn PacketWriter, cfg Config, e emitter.Emitter) *Sender {
	if cfg.PacketSize == 0 {
		cfg.PacketSize = spec.PacketSize
	}
	return &Sender{
		conn:    conn,
		cfg:     cfg,
		emitter: e,
		clock:   pacer.SystemClock{},
	}
}

// Run executes the full ramp and returns when the last step's duration has
// elapsed. Individual send errors are reported and skipped: a single failed
// syscall must not end a multi-minute run. Cancellation is checked at step
// boundaries only; a started step runs to completion.
func (s *Sender) Run(ctx context.Context) error {
	buf := make([]byte, s.cfg.PacketSize)
	p := pacer.New(s.clock)

	// Sequence numbers start at 1 and keep increasing across steps, so the
	// receiver sees one continuous session.
	seq := uint64(1)

	for rate := 1; rate <= s.cfg.MaxRateMB; rate++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		s.emitter.OnRampStep(rate)
		metrics.TargetRate.Set(float64(rate))

		p.SetRate(uint64(rate)<<20, s.cfg.PacketSize)
		stepEnd := s.clock.Now().Add(s.cfg.StepDuration)

		for {
			now := s.clock.Now()
			if !now.Before(stepEnd) {
				break
			}
			if !p.Tick(now) {
				continue
			}

			pkt := ramp.Packet{Seq: seq, SendTimeNS: clockx.NowNS()}
			seq++
			pkt.Marshal(buf)
			if _, err := s.conn.Write(buf); err != nil {
				metrics.SendErrors.Inc()
				s.emitter.OnError(err)
				continue
			}
			metrics.PacketsSent.Inc()
		}
	}

	s.emitter.OnSendComplete()
	return nil
}

// Package spec contains constants for the ramp benchmark protocol.
package spec

import "time"

const (
	// PacketSize is the total size of every datagram sent by the generator.
	// It is a safe UDP payload size that avoids IP fragmentation on common
	// MTUs, and keeping it constant keeps the pacing math stable.
	PacketSize = 1400

	// DataPort is the default UDP port the receiver binds to.
	DataPort = 10001

	// ReportInterval is the receiver's statistics window length.
	ReportInterval = 1 * time.Second

	// PollTimeout bounds every receive call so the lifecycle controller can
	// re-check its timeouts even when no traffic arrives.
	PollTimeout = 1 * time.Second

	// DefaultStartupTimeout is how long the receiver waits for the first
	// datagram before giving up. The original tool used conflicting values
	// in different code paths; 30 minutes is the documented choice here and
	// it is configurable via the receiver's -startup-timeout flag.
	DefaultStartupTimeout = 30 * time.Minute

	// DefaultIdleTimeout is the maximum gap between consecutive datagrams,
	// once traffic has started, before the session is considered ended.
	// Configurable via the receiver's -idle-timeout flag.
	DefaultIdleTimeout = 30 * time.Second

	// DefaultMaxRateMB is the default last step of the ramp, in MB/s.
	DefaultMaxRateMB = 100

	// DefaultStepDuration is the default time spent at each ramp step.
	DefaultStepDuration = 5 * time.Second

	// SocketBufferSize is requested for both SO_RCVBUF and SO_SNDBUF so the
	// kernel can absorb bursts at the high end of the ramp.
	SocketBufferSize = 8 << 20
)

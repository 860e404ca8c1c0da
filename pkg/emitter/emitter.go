// Package emitter defines how benchmark progress and per-window results are
// reported. The data stream (one CSV record per window) owns stdout; all
// human-readable progress goes through the structured logger on stderr so the
// two never interleave.
package emitter

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/hostbench/netbench/pkg/ramp/model"
)

// Emitter is the interface used to emit benchmark events. Senders only
// trigger the ramp callbacks and receivers only the window/session ones; an
// implementation is free to ignore the calls it has no use for.
type Emitter interface {
	// OnRampStep is called by the generator when it moves to a new target
	// rate.
	OnRampStep(rateMB int)
	// OnSendComplete is called after the last ramp step finishes.
	OnSendComplete()
	// OnTrafficStart is called when the receiver sees the first datagram of
	// a session.
	OnTrafficStart(remote string)
	// OnWindow is called once per closed statistics window.
	OnWindow(s model.WindowSnapshot)
	// OnComplete is called when the session terminates. Timeout
	// terminations are normal completions, not failures.
	OnComplete(reason string)
	// OnError is called on non-fatal send/receive errors.
	OnError(err error)
}

// csvHeader names the four columns of the receiver's output stream.
const csvHeader = "epoch_seconds,throughput_mbps,avg_latency_ns,packets_lost_this_window"

// CSV emits one line per window in the benchmark's CSV format and routes
// everything else to the logger.
type CSV struct {
	w io.Writer
}

// NewCSV returns a CSV emitter writing records to w. The column header is
// written immediately so it is always the first line of the stream.
func NewCSV(w io.Writer) *CSV {
	fmt.Fprintln(w, csvHeader)
	return &CSV{w: w}
}

// OnWindow writes one CSV record: epoch seconds, throughput (2dp), average
// one-way latency in ns (0dp) and the packets lost in this window.
func (c *CSV) OnWindow(s model.WindowSnapshot) {
	fmt.Fprintf(c.w, "%d,%.2f,%.0f,%d\n",
		s.Time.Unix(), s.ThroughputMbps(), s.AvgLatencyNS(), s.PacketsLost)
}

// OnTrafficStart logs the start of the session.
func (c *CSV) OnTrafficStart(remote string) {
	log.Info("Traffic started", "remote", remote)
}

// OnComplete logs the termination reason.
func (c *CSV) OnComplete(reason string) {
	log.Info("Session ended", "reason", reason)
}

// OnError logs a non-fatal receive error.
func (c *CSV) OnError(err error) {
	log.Error("receive error", "error", err)
}

// OnRampStep does nothing: the receiver does not know the sender's ramp.
func (c *CSV) OnRampStep(rateMB int) {}

// OnSendComplete does nothing on the receiver side.
func (c *CSV) OnSendComplete() {}

// HumanReadable prints generator progress to stdout, one line per ramp step.
type HumanReadable struct{}

// OnRampStep prints the new target rate.
func (HumanReadable) OnRampStep(rateMB int) {
	fmt.Printf("Testing rate: %d MB/s\n", rateMB)
}

// OnSendComplete prints the completion line.
func (HumanReadable) OnSendComplete() {
	fmt.Println("Test complete.")
}

// OnError logs a non-fatal send error.
func (HumanReadable) OnError(err error) {
	log.Error("send error", "error", err)
}

// OnTrafficStart does nothing on the sender side.
func (HumanReadable) OnTrafficStart(remote string) {}

// OnWindow does nothing on the sender side.
func (HumanReadable) OnWindow(s model.WindowSnapshot) {}

// OnComplete does nothing on the sender side.
func (HumanReadable) OnComplete(reason string) {}

// Checks that both implementations satisfy Emitter.
var (
	_ Emitter = &CSV{}
	_ Emitter = HumanReadable{}
)

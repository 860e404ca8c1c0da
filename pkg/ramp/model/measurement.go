// Package model contains the data structures produced by the receiver.
package model

import (
	"time"

	"github.com/m-lab/go/prometheusx"
)

// WindowStats is one reporting interval's aggregate. All counters are
// interval-scoped: the aggregator resets them to zero every time a window
// closes, so PacketsLost counts losses detected during that window only, not
// since session start.
type WindowStats struct {
	// BytesReceived is the sum of the sizes of all valid datagrams received
	// in the window.
	BytesReceived uint64

	// PacketsReceived counts valid datagrams, including duplicates and
	// reordered arrivals.
	PacketsReceived uint64

	// PacketsLost is the sum of forward sequence gaps observed in the window.
	PacketsLost uint64

	// LatencySumNS and LatencyCount derive the window's average one-way
	// latency. LatencyCount never exceeds PacketsReceived: latency is
	// computed exactly once per received packet.
	LatencySumNS uint64
	LatencyCount uint64
}

// ThroughputMbps returns the window's throughput in megabits per second,
// assuming a one-second window.
func (s WindowStats) ThroughputMbps() float64 {
	return float64(s.BytesReceived) * 8 / 1e6
}

// AvgLatencyNS returns the window's average one-way latency in nanoseconds,
// or 0 if no latency samples were collected.
func (s WindowStats) AvgLatencyNS() float64 {
	if s.LatencyCount == 0 {
		return 0
	}
	return float64(s.LatencySumNS) / float64(s.LatencyCount)
}

// WindowSnapshot is the copy of WindowStats emitted when a window closes.
type WindowSnapshot struct {
	// Time is the wall-clock time at which the window closed.
	Time time.Time

	WindowStats
}

// ArchivalData is the JSON record written to disk when a receiver session
// ends. It carries the same per-window data as the CSV stream plus run
// metadata.
type ArchivalData struct {
	// GitShortCommit is the Git commit (short form) of the running code.
	GitShortCommit string
	// MeasurementID is the unique identifier for this receiver run.
	MeasurementID string

	// StartTime is when the receiver started listening.
	StartTime time.Time
	// EndTime is when the session terminated.
	EndTime time.Time
	// Reason is the human-readable termination reason.
	Reason string

	// Windows holds every emitted window, in emission order.
	Windows []WindowSnapshot

	// Session totals, summed over all windows.
	TotalBytes   uint64
	TotalPackets uint64
	TotalLost    uint64
}

// NewArchivalData returns an ArchivalData with run metadata filled in.
func NewArchivalData(measurementID string, startTime time.Time) *ArchivalData {
	return &ArchivalData{
		GitShortCommit: prometheusx.GitShortCommit,
		MeasurementID:  measurementID,
		StartTime:      startTime,
	}
}

// AddWindow appends a window snapshot and updates the session totals.
func (a *ArchivalData) AddWindow(s WindowSnapshot) {
	a.Windows = append(a.Windows, s)
	a.TotalBytes += s.BytesReceived
	a.TotalPackets += s.PacketsReceived
	a.TotalLost += s.PacketsLost
}

// Package clockx provides the monotonic clock readings stamped into packets
// on the wire. Sender and receiver compare these readings directly to compute
// one-way latency, which is only meaningful when the two hosts' monotonic
// clocks are synchronized; the protocol assumes that and does not synchronize
// them itself.
package clockx

// NowNS returns the current monotonic clock reading in nanoseconds since an
// arbitrary epoch.
func NowNS() uint64 {
	return nowNS()
}

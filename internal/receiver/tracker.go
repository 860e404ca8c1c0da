package receiver

// SequenceTracker holds the highest sequence number observed during one
// session and attributes forward gaps to packet loss.
type SequenceTracker struct {
	maxSeen uint64
}

// Observe records seq and returns the size of the loss gap it reveals, if
// any. A gap is counted only when seq jumps past maxSeen+1. Packets with
// seq <= maxSeen (duplicates or reordered arrivals) return 0: they are
// accepted but not treated as loss, so a packet that fills a gap after a
// higher-numbered one already arrived does not retroactively adjust the loss
// count. The very first packet of a session sets the baseline without
// counting a gap, whatever its sequence number.
func (t *SequenceTracker) Observe(seq uint64) uint64 {
	var gap uint64
	if t.maxSeen > 0 && seq > t.maxSeen+1 {
		gap = seq - t.maxSeen - 1
	}
	if seq > t.maxSeen {
		t.maxSeen = seq
	}
	return gap
}

// MaxSeen returns the highest sequence number observed so far.
func (t *SequenceTracker) MaxSeen() uint64 { return t.maxSeen }

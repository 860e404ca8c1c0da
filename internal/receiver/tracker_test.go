package receiver

import "testing"

func TestSequenceTracker_ForwardGap(t *testing.T) {
	var tr SequenceTracker
	var lost uint64
	for _, seq := range []uint64{1, 2, 3, 5, 6} {
		lost += tr.Observe(seq)
	}
	if lost != 1 {
		t.Errorf("lost = %d, want 1 (single gap at seq 4)", lost)
	}
	if tr.MaxSeen() != 6 {
		t.Errorf("MaxSeen() = %d, want 6", tr.MaxSeen())
	}
}

func TestSequenceTracker_DuplicatesAreNotLoss(t *testing.T) {
	var tr SequenceTracker
	var lost uint64
	for _, seq := range []uint64{1, 2, 2, 3} {
		lost += tr.Observe(seq)
	}
	if lost != 0 {
		t.Errorf("lost = %d, want 0 for a duplicated sequence", lost)
	}
}

func TestSequenceTracker_FirstPacketSetsBaseline(t *testing.T) {
	var tr SequenceTracker
	// A session joined mid-stream must not attribute the missed prefix to
	// loss.
	if lost := tr.Observe(5); lost != 0 {
		t.Errorf("first Observe(5) = %d, want 0", lost)
	}
	if lost := tr.Observe(6); lost != 0 {
		t.Errorf("Observe(6) = %d, want 0", lost)
	}
	if lost := tr.Observe(9); lost != 2 {
		t.Errorf("Observe(9) = %d, want 2", lost)
	}
}

func TestSequenceTracker_LateFillDoesNotAdjust(t *testing.T) {
	var tr SequenceTracker
	var lost uint64
	// 3 and 4 arrive after 5: the gap was already charged and filling it
	// later is not specially handled.
	for _, seq := range []uint64{1, 2, 5, 3, 4} {
		lost += tr.Observe(seq)
	}
	if lost != 2 {
		t.Errorf("lost = %d, want 2 (gap charged when 5 arrived)", lost)
	}
	if tr.MaxSeen() != 5 {
		t.Errorf("MaxSeen() = %d, want 5", tr.MaxSeen())
	}
}

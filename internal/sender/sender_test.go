package sender

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hostbench/netbench/pkg/ramp"
	"github.com/hostbench/netbench/pkg/ramp/model"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.now = c.now.Add(50 * time.Nanosecond)
	return c.now
}

func (c *fakeClock) Sleep(d time.Duration) { c.now = c.now.Add(d) }

func (c *fakeClock) Yield() { c.now = c.now.Add(200 * time.Nanosecond) }

// captureConn records every datagram written to it and can be configured to
// fail every Nth write.
type captureConn struct {
	packets   [][]byte
	failEvery int
	writes    int
}

func (c *captureConn) Write(b []byte) (int, error) {
	c.writes++
	if c.failEvery > 0 && c.writes%c.failEvery == 0 {
		return 0, errors.New("no buffer space available")
	}
	p := make([]byte, len(b))
	copy(p, b)
	c.packets = append(c.packets, p)
	return len(b), nil
}

// recordingEmitter records the ramp callbacks.
type recordingEmitter struct {
	steps    []int
	complete bool
	errors   int
}

func (e *recordingEmitter) OnRampStep(rateMB int)           { e.steps = append(e.steps, rateMB) }
func (e *recordingEmitter) OnSendComplete()                 { e.complete = true }
func (e *recordingEmitter) OnTrafficStart(remote string)    {}
func (e *recordingEmitter) OnWindow(s model.WindowSnapshot) {}
func (e *recordingEmitter) OnComplete(reason string)        {}
func (e *recordingEmitter) OnError(err error)               { e.errors++ }

func TestSender_RampPacingAccuracy(t *testing.T) {
	const packetSize = 1400
	conn := &captureConn{}
	em := &recordingEmitter{}
	s := New(conn, Config{
		MaxRateMB:    3,
		StepDuration: time.Second,
		PacketSize:   packetSize,
	}, em)
	s.clock = &fakeClock{now: time.Unix(1000, 0)}

	if err := s.Run(context.Background()); err != nil {
		t.Fatalf("Run() returned error: %v", err)
	}

	// 1+2+3 MB over one simulated second each.
	expected := float64(6<<20) / packetSize
	got := float64(len(conn.packets))
	if ratio := got / expected; ratio < 0.98 || ratio > 1.02 {
		t.Errorf("sent %.0f packets, expected %.0f (ratio %.4f)", got, expected, ratio)
	}

	if want := []int{1, 2, 3}; len(em.steps) != len(want) {
		t.Errorf("ramp steps = %v, want %v", em.steps, want)
	}
	if !em.complete {
		t.Errorf("OnSendComplete was not called")
	}
}

func TestSender_SequenceStartsAtOneAndIncreases(t *testing.T) {
	conn := &captureConn{}
	s := New(conn, Config{
		MaxRateMB:    2,
		StepDuration: 100 * time.Millisecond,
	}, &recordingEmitter{})
	s.clock = &fakeClock{now: time.Unix(1000, 0)}

	if err := s.Run(context.Background()); err != nil {
		t.Fatalf("Run() returned error: %v", err)
	}
	if len(conn.packets) == 0 {
		t.Fatalf("no packets sent")
	}
	for i, b := range conn.packets {
		pkt, err := ramp.Unmarshal(b)
		if err != nil {
			t.Fatalf("packet %d does not unmarshal: %v", i, err)
		}
		if pkt.Seq != uint64(i+1) {
			t.Fatalf("packet %d has seq %d, want %d", i, pkt.Seq, i+1)
		}
		if len(b) != 1400 {
			t.Fatalf("packet %d has size %d, want 1400", i, len(b))
		}
	}
}

func TestSender_ContinuesAfterSendErrors(t *testing.T) {
	conn := &captureConn{failEvery: 2}
	em := &recordingEmitter{}
	s := New(conn, Config{
		MaxRateMB:    1,
		StepDuration: 100 * time.Millisecond,
	}, em)
	s.clock = &fakeClock{now: time.Unix(1000, 0)}

	if err := s.Run(context.Background()); err != nil {
		t.Fatalf("Run() returned error: %v", err)
	}
	if em.errors == 0 {
		t.Fatalf("expected send errors to be reported")
	}
	if !em.complete {
		t.Errorf("ramp did not run to completion despite send errors")
	}
	// A failed send still consumes its sequence number, so the delivered
	// packets show gaps rather than repeats.
	var last uint64
	for _, b := range conn.packets {
		pkt, _ := ramp.Unmarshal(b)
		if pkt.Seq <= last {
			t.Fatalf("sequence not strictly increasing: %d after %d", pkt.Seq, last)
		}
		last = pkt.Seq
	}
}

func TestSender_CanceledBeforeStart(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	conn := &captureConn{}
	s := New(conn, Config{MaxRateMB: 5, StepDuration: time.Second}, &recordingEmitter{})
	s.clock = &fakeClock{now: time.Unix(1000, 0)}

	if err := s.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Run() = %v, want context.Canceled", err)
	}
	if len(conn.packets) != 0 {
		t.Errorf("sent %d packets after cancellation", len(conn.packets))
	}
}

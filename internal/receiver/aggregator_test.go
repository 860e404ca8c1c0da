package receiver

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hostbench/netbench/pkg/ramp/model"
)

func TestAggregator_AccumulateAndFlush(t *testing.T) {
	start := time.Unix(1000, 0)
	a := NewAggregator(time.Second, start)

	a.Add(1400, 1000, 0)
	a.Add(1400, 3000, 2)

	// Still inside the window: no flush.
	_, ok := a.MaybeFlush(start.Add(900 * time.Millisecond))
	assert.False(t, ok)

	snap, ok := a.MaybeFlush(start.Add(1100 * time.Millisecond))
	require.True(t, ok)
	assert.Equal(t, uint64(2800), snap.BytesReceived)
	assert.Equal(t, uint64(2), snap.PacketsReceived)
	assert.Equal(t, uint64(2), snap.PacketsLost)
	assert.Equal(t, uint64(4000), snap.LatencySumNS)
	assert.Equal(t, uint64(2), snap.LatencyCount)
	assert.InDelta(t, 2000.0, snap.AvgLatencyNS(), 0.001)
}

func TestAggregator_ResetAfterFlush(t *testing.T) {
	start := time.Unix(1000, 0)
	a := NewAggregator(time.Second, start)
	a.Add(1400, 500, 1)

	_, ok := a.MaybeFlush(start.Add(2 * time.Second))
	require.True(t, ok)

	// Every interval-scoped counter must be exactly zero after emission.
	assert.Equal(t, model.WindowStats{}, a.Pending())

	// The next window starts a sum independent of the previous one.
	a.Add(100, 7, 0)
	snap, ok := a.MaybeFlush(start.Add(4 * time.Second))
	require.True(t, ok)
	assert.Equal(t, uint64(100), snap.BytesReceived)
	assert.Equal(t, uint64(1), snap.PacketsReceived)
	assert.Equal(t, uint64(0), snap.PacketsLost)
	assert.Equal(t, uint64(7), snap.LatencySumNS)
}

func TestWindowStats_DerivedFields(t *testing.T) {
	s := model.WindowStats{BytesReceived: 1_000_000}
	assert.InDelta(t, 8.0, s.ThroughputMbps(), 0.001)

	// No latency samples means average zero, not NaN.
	assert.Equal(t, 0.0, s.AvgLatencyNS())

	s.LatencySumNS = 300
	s.LatencyCount = 3
	assert.InDelta(t, 100.0, s.AvgLatencyNS(), 0.001)
}

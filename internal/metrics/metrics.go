// Package metrics defines the Prometheus metrics exported by the sender and
// receiver binaries.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// PacketsSent counts datagrams written by the generator.
	PacketsSent = promauto.NewCounter(prometheus.CounterOpts{
		Name: "netbench_sender_packets_sent_total",
		Help: "Datagrams sent by the rate-limited generator.",
	})

	// SendErrors counts failed sends. A failed send skips that packet; the
	// ramp loop keeps running.
	SendErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "netbench_sender_errors_total",
		Help: "Send errors encountered by the generator.",
	})

	// TargetRate is the ramp step currently being generated, in MB/s.
	TargetRate = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "netbench_sender_target_rate_mb",
		Help: "Current target send rate in MB/s.",
	})

	// PacketsReceived counts valid datagrams seen by the receiver.
	PacketsReceived = promauto.NewCounter(prometheus.CounterOpts{
		Name: "netbench_receiver_packets_received_total",
		Help: "Valid datagrams received.",
	})

	// PacketsLost counts losses detected through forward sequence gaps.
	PacketsLost = promauto.NewCounter(prometheus.CounterOpts{
		Name: "netbench_receiver_packets_lost_total",
		Help: "Packets lost according to sequence gap detection.",
	})

	// ReceiveErrors counts non-timeout receive errors. The poll loop logs
	// and continues.
	ReceiveErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "netbench_receiver_errors_total",
		Help: "Non-timeout receive errors.",
	})
)

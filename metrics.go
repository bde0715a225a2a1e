package mcwire

import (
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/gstoney/mcwire/packet"
)

var (
	registerOnce sync.Once

	packetsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "mcwire",
			Subsystem: "channel",
			Name:      "packets_total",
			Help:      "Packets sent and received, by state and direction.",
		},
		[]string{"state", "direction"},
	)
	frameBytes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "mcwire",
			Subsystem: "channel",
			Name:      "payload_bytes_total",
			Help:      "Uncompressed packet bytes, by direction.",
		},
		[]string{"direction"},
	)
	compressedFrames = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "mcwire",
			Subsystem: "channel",
			Name:      "compressed_frames_total",
			Help:      "Frames carried in the compressed framing, by direction.",
		},
		[]string{"direction"},
	)
	decodeFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "mcwire",
			Subsystem: "channel",
			Name:      "decode_failures_total",
			Help:      "Inbound decode failures.",
		},
		[]string{"state", "ignorable"},
	)
	stateTransitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "mcwire",
			Subsystem: "channel",
			Name:      "state_transitions_total",
			Help:      "Channel state transitions.",
		},
		[]string{"from", "to"},
	)
)

// RegisterMetrics registers the channel collectors with the default
// Prometheus registry. It is safe to call more than once.
func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(packetsTotal, frameBytes, compressedFrames, decodeFailures, stateTransitions)
	})
}

// dirLabel names the flow relative to the local endpoint.
func dirLabel(sent bool) string {
	if sent {
		return "sent"
	}
	return "received"
}

func recordPacket(state packet.State, sent bool, size int, compressed bool) {
	RegisterMetrics()
	dir := dirLabel(sent)
	packetsTotal.WithLabelValues(state.String(), dir).Inc()
	frameBytes.WithLabelValues(dir).Add(float64(size))
	if compressed {
		compressedFrames.WithLabelValues(dir).Inc()
	}
}

func recordDecodeFailure(state packet.State, ignorable bool) {
	RegisterMetrics()
	decodeFailures.WithLabelValues(state.String(), strconv.FormatBool(ignorable)).Inc()
}

func recordTransition(from, to packet.State) {
	RegisterMetrics()
	stateTransitions.WithLabelValues(from.String(), to.String()).Inc()
}

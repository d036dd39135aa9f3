package provisioning

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	phaseResultCompleted = "completed"
	phaseResultFailed    = "failed"
)

var (
	phaseTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "mlopslab",
			Subsystem: "provisioning",
			Name:      "phase_total",
			Help:      "Total number of executed provisioning phases by result",
		},
		[]string{"phase", "result"},
	)

	phaseDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "mlopslab",
			Subsystem: "provisioning",
			Name:      "phase_duration_seconds",
			Help:      "Duration of provisioning phases in seconds",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 12), // 1s to ~68min
		},
		[]string{"phase"},
	)
)

func init() {
	prometheus.MustRegister(
		phaseTotal,
		phaseDuration,
	)
}

// observePhase records the outcome and duration of a single phase run.
func observePhase(phase, result string, duration time.Duration) {
	phaseTotal.WithLabelValues(phase, result).Inc()
	phaseDuration.WithLabelValues(phase).Observe(duration.Seconds())
}

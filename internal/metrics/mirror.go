package metrics

import (
	"time"

	"github.com/goodnatureofminers/blockinsight7000-explorer/internal/explorer/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	mirrorOperationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blockinsight7000",
		Subsystem: "mirror",
		Name:      "operations_total",
		Help:      "Count of analytics mirror operations.",
	}, []string{"operation", "network", "status"})
	mirrorOperationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "blockinsight7000",
		Subsystem: "mirror",
		Name:      "operation_duration_seconds",
		Help:      "Duration of analytics mirror operations.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"operation", "network", "status"})
)

// Mirror tracks the analytics mirror.
type Mirror struct {
	network model.Network
}

// NewMirror constructs a Mirror metrics collector.
func NewMirror(network model.Network) *Mirror {
	return &Mirror{network: networkLabel(network)}
}

// ObserveMirror records one mirror operation: enqueue, write, rewind or catch_up.
func (m Mirror) ObserveMirror(operation string, err error, started time.Time) {
	status := statusLabel(err)
	mirrorOperationsTotal.WithLabelValues(operation, string(m.network), status).Inc()
	mirrorOperationDuration.WithLabelValues(operation, string(m.network), status).Observe(time.Since(started).Seconds())
}

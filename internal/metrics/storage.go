package metrics

import (
	"time"

	"github.com/goodnatureofminers/blockinsight7000-explorer/internal/explorer/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	storageOperationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blockinsight7000",
		Subsystem: "storage",
		Name:      "operations_total",
		Help:      "Count of index storage operations.",
	}, []string{"operation", "network", "status"})
	storageOperationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "blockinsight7000",
		Subsystem: "storage",
		Name:      "operation_duration_seconds",
		Help:      "Duration of index storage operations.",
		Buckets:   []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
	}, []string{"operation", "network", "status"})
)

// Storage tracks metrics for the pebble index store.
type Storage struct {
	network model.Network
}

// NewStorage constructs a Storage metrics collector.
func NewStorage(network model.Network) *Storage {
	return &Storage{network: networkLabel(network)}
}

// Observe records duration and status of a storage operation.
func (m Storage) Observe(operation string, err error, started time.Time) {
	status := statusLabel(err)
	storageOperationsTotal.WithLabelValues(operation, string(m.network), status).Inc()
	storageOperationDuration.WithLabelValues(operation, string(m.network), status).Observe(time.Since(started).Seconds())
}

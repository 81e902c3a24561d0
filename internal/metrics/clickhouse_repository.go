package metrics

import (
	"time"

	"github.com/goodnatureofminers/blockinsight7000-explorer/internal/explorer/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	clickhouseRepositoryRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blockinsight7000",
		Subsystem: "clickhouse_repository",
		Name:      "operations_total",
		Help:      "Count of mirror repository operations.",
	}, []string{"operation", "network", "status"})
	clickhouseRepositoryRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "blockinsight7000",
		Subsystem: "clickhouse_repository",
		Name:      "operation_duration_seconds",
		Help:      "Duration of mirror repository operations.",
		Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 15, 20, 30},
	}, []string{"operation", "network", "status"})
	clickhouseRepositorySlowTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blockinsight7000",
		Subsystem: "clickhouse_repository",
		Name:      "slow_operations_total",
		Help:      "Count of mirror repository operations slower than the slow threshold.",
	}, []string{"operation", "network"})
)

const slowClickhouseOperation = 5 * time.Second

// ClickhouseRepository tracks metrics for the ClickHouse mirror tables of one network.
type ClickhouseRepository struct {
	network model.Network
}

// NewClickhouseRepository creates a ClickhouseRepository metrics collector.
func NewClickhouseRepository(network model.Network) *ClickhouseRepository {
	return &ClickhouseRepository{network: networkLabel(network)}
}

// Observe records duration and status of a repository operation.
func (m ClickhouseRepository) Observe(operation string, err error, started time.Time) {
	elapsed := time.Since(started)
	status := statusLabel(err)

	clickhouseRepositoryRequestsTotal.WithLabelValues(operation, string(m.network), status).Inc()
	clickhouseRepositoryRequestDuration.WithLabelValues(operation, string(m.network), status).Observe(elapsed.Seconds())
	if elapsed >= slowClickhouseOperation {
		clickhouseRepositorySlowTotal.WithLabelValues(operation, string(m.network)).Inc()
	}
}

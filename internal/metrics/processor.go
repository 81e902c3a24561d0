package metrics

import (
	"time"

	"github.com/goodnatureofminers/blockinsight7000-explorer/internal/explorer/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	processBlockTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blockinsight7000",
		Subsystem: "processor",
		Name:      "process_block_total",
		Help:      "Count of blocks decoded by the processor.",
	}, []string{"network", "status"})

	processBlockDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "blockinsight7000",
		Subsystem: "processor",
		Name:      "process_block_duration_seconds",
		Help:      "Duration of decoding one block.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"network", "status"})

	processBlockTxs = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "blockinsight7000",
		Subsystem: "processor",
		Name:      "process_block_transactions",
		Help:      "Number of transactions per processed block.",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 14),
	}, []string{"network"})

	resolveInputsDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "blockinsight7000",
		Subsystem: "processor",
		Name:      "resolve_inputs_duration_seconds",
		Help:      "Duration of the stored-output lookup for one block.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"network", "status"})

	resolveInputsRefs = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "blockinsight7000",
		Subsystem: "processor",
		Name:      "resolve_inputs_refs",
		Help:      "Number of outpoints looked up in storage per block.",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 16),
	}, []string{"network"})
)

// Processor tracks metrics for the block processor.
type Processor struct {
	network model.Network
}

// NewProcessor constructs a Processor metrics collector.
func NewProcessor(network model.Network) *Processor {
	return &Processor{network: networkLabel(network)}
}

// ObserveProcessBlock records one block decode.
func (m Processor) ObserveProcessBlock(err error, txs int, started time.Time) {
	status := statusLabel(err)
	processBlockTotal.WithLabelValues(string(m.network), status).Inc()
	processBlockDuration.WithLabelValues(string(m.network), status).
		Observe(time.Since(started).Seconds())
	if err == nil {
		processBlockTxs.WithLabelValues(string(m.network)).Observe(float64(txs))
	}
}

// ObserveResolveInputs records the batched output lookup for one block.
func (m Processor) ObserveResolveInputs(err error, refs int, started time.Time) {
	resolveInputsDuration.WithLabelValues(string(m.network), statusLabel(err)).
		Observe(time.Since(started).Seconds())
	resolveInputsRefs.WithLabelValues(string(m.network)).Observe(float64(refs))
}

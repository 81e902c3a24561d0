package metrics

import (
	"context"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-explorer/internal/explorer/chain"
	"github.com/goodnatureofminers/blockinsight7000-explorer/internal/explorer/cursor"
	"github.com/goodnatureofminers/blockinsight7000-explorer/internal/explorer/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var cursorStates = []model.CursorState{
	model.CursorIdle,
	model.CursorFetching,
	model.CursorProcessing,
	model.CursorReorgRecovery,
	model.CursorError,
}

var (
	indexerAdvanceTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blockinsight7000",
		Subsystem: "indexer",
		Name:      "advance_total",
		Help:      "Count of cursor advances by outcome.",
	}, []string{"network", "outcome", "status"})

	indexerAdvanceDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "blockinsight7000",
		Subsystem: "indexer",
		Name:      "advance_duration_seconds",
		Help:      "Duration of a single cursor advance.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"network", "status"})

	indexerState = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "blockinsight7000",
		Subsystem: "indexer",
		Name:      "state",
		Help:      "Current cursor state; 1 for the active state.",
	}, []string{"network", "state"})

	indexerTipHeight = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "blockinsight7000",
		Subsystem: "indexer",
		Name:      "tip_height",
		Help:      "Height of the last indexed block.",
	}, []string{"network"})

	indexerReorgsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blockinsight7000",
		Subsystem: "indexer",
		Name:      "reorgs_total",
		Help:      "Count of completed reorg recoveries.",
	}, []string{"network"})

	indexerReorgDepth = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "blockinsight7000",
		Subsystem: "indexer",
		Name:      "reorg_depth_blocks",
		Help:      "Blocks removed per reorg recovery.",
		Buckets:   []float64{1, 2, 3, 5, 8, 13, 21, 34, 55, 100},
	}, []string{"network"})
)

// Indexer tracks the indexing loop and observes cursor transitions.
type Indexer struct {
	network model.Network
}

// NewIndexer constructs an Indexer metrics collector.
func NewIndexer(network model.Network) *Indexer {
	return &Indexer{network: networkLabel(network)}
}

// ObserveAdvance records one loop iteration.
func (m Indexer) ObserveAdvance(outcome cursor.Outcome, err error, started time.Time) {
	status := statusLabel(err)
	label := outcome.String()
	if err != nil {
		label = "failed"
	}
	indexerAdvanceTotal.WithLabelValues(string(m.network), label, status).Inc()
	indexerAdvanceDuration.WithLabelValues(string(m.network), status).Observe(time.Since(started).Seconds())
}

// StateChanged sets the state gauge.
func (m Indexer) StateChanged(_, to model.CursorState) {
	for _, state := range cursorStates {
		value := 0.0
		if state == to {
			value = 1
		}
		indexerState.WithLabelValues(string(m.network), string(state)).Set(value)
	}
}

// BlockIndexed records the new tip height.
func (m Indexer) BlockIndexed(_ context.Context, pb *chain.ProcessedBlock) {
	indexerTipHeight.WithLabelValues(string(m.network)).Set(float64(pb.Block.Height))
}

// Rewound records a completed recovery.
func (m Indexer) Rewound(_ context.Context, forkHeight, depth int64) {
	indexerReorgsTotal.WithLabelValues(string(m.network)).Inc()
	indexerReorgDepth.WithLabelValues(string(m.network)).Observe(float64(depth))
	indexerTipHeight.WithLabelValues(string(m.network)).Set(float64(forkHeight))
}

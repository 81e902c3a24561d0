package transport

import (
	"context"
	"sync/atomic"

	"github.com/goodnatureofminers/blockinsight7000-explorer/internal/explorer/chain"
	"github.com/goodnatureofminers/blockinsight7000-explorer/internal/explorer/model"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// IndexerServiceName is the gRPC health service name of the indexing loop.
const IndexerServiceName = "blockinsight7000.explorer.Indexer"

// HealthReporter mirrors the cursor state into the gRPC health service.
// It is registered as a cursor observer.
type HealthReporter struct {
	server *health.Server
	halted atomic.Bool
}

// NewHealthReporter returns a reporter whose services start SERVING.
func NewHealthReporter() *HealthReporter {
	server := health.NewServer()
	server.SetServingStatus(IndexerServiceName, healthpb.HealthCheckResponse_SERVING)
	return &HealthReporter{server: server}
}

// Server returns the health service to register on a gRPC server.
func (r *HealthReporter) Server() healthpb.HealthServer {
	return r.server
}

// StateChanged marks the indexer NOT_SERVING while the cursor is in the error state.
func (r *HealthReporter) StateChanged(_, to model.CursorState) {
	if r.halted.Load() {
		return
	}
	status := healthpb.HealthCheckResponse_SERVING
	if to == model.CursorError {
		status = healthpb.HealthCheckResponse_NOT_SERVING
	}
	r.server.SetServingStatus("", status)
	r.server.SetServingStatus(IndexerServiceName, status)
}

func (r *HealthReporter) BlockIndexed(context.Context, *chain.ProcessedBlock) {}

func (r *HealthReporter) Rewound(context.Context, int64, int64) {}

// Halt marks the indexer NOT_SERVING for good. The overall status stays SERVING
// because the query API keeps answering from the index.
func (r *HealthReporter) Halt() {
	r.halted.Store(true)
	r.server.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	r.server.SetServingStatus(IndexerServiceName, healthpb.HealthCheckResponse_NOT_SERVING)
}

// Shutdown flips every service to NOT_SERVING ahead of a graceful stop.
func (r *HealthReporter) Shutdown() {
	r.server.Shutdown()
}

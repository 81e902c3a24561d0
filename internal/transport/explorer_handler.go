// Package transport exposes the explorer over HTTP and gRPC.
package transport

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/goodnatureofminers/blockinsight7000-explorer/internal/explorer/model"
	"github.com/goodnatureofminers/blockinsight7000-explorer/internal/explorer/query"
	"go.uber.org/zap"
)

// ExplorerHandler serves the explorer query API.
type ExplorerHandler struct {
	source QuerySource
	chain  ChainSource
	status IndexerStatus
	logger *zap.Logger
}

// NewExplorerHandler returns an ExplorerHandler instance.
func NewExplorerHandler(source QuerySource, chain ChainSource, status IndexerStatus, logger *zap.Logger) *ExplorerHandler {
	return &ExplorerHandler{
		source: source,
		chain:  chain,
		status: status,
		logger: logger.Named("http"),
	}
}

// Block handles GET /api/bitcoin/block/:id where id is a height or a hash.
func (h *ExplorerHandler) Block(c *gin.Context) {
	detail, err := h.source.GetBlock(c.Request.Context(), c.Param("id"))
	respond(c, h.logger, detail, err)
}

// Blocks handles GET /api/bitcoin/blocks?page=N.
func (h *ExplorerHandler) Blocks(c *gin.Context) {
	page, err := pageParam(c)
	if err != nil {
		failWith(c, h.logger, err)
		return
	}
	res, err := h.source.ListBlocks(c.Request.Context(), page)
	respond(c, h.logger, res, err)
}

// Transaction handles GET /api/bitcoin/transaction/:hash.
func (h *ExplorerHandler) Transaction(c *gin.Context) {
	detail, err := h.source.GetTransaction(c.Request.Context(), c.Param("hash"))
	respond(c, h.logger, detail, err)
}

// Address handles GET /api/bitcoin/address/:address?page=N.
func (h *ExplorerHandler) Address(c *gin.Context) {
	page, err := pageParam(c)
	if err != nil {
		failWith(c, h.logger, err)
		return
	}
	info, err := h.source.GetAddressInfo(c.Request.Context(), c.Param("address"), page)
	respond(c, h.logger, info, err)
}

// Height handles GET /api/bitcoin/height.
func (h *ExplorerHandler) Height(c *gin.Context) {
	height, err := h.source.GetCurrentBlockHeight(c.Request.Context())
	respond(c, h.logger, height, err)
}

// Info handles GET /api/bitcoin/info.
func (h *ExplorerHandler) Info(c *gin.Context) {
	ctx := c.Request.Context()
	info, err := h.chain.ChainInfo(ctx)
	if err != nil {
		failWith(c, h.logger, err)
		return
	}
	info.IndexedHeight, err = h.source.GetCurrentBlockHeight(ctx)
	respond(c, h.logger, info, err)
}

// Mempool handles GET /api/bitcoin/mempool.
func (h *ExplorerHandler) Mempool(c *gin.Context) {
	summary, err := h.chain.Mempool(c.Request.Context())
	respond(c, h.logger, summary, err)
}

// Health reports the indexer position; a cursor stuck in the error state is unhealthy.
func (h *ExplorerHandler) Health(c *gin.Context) {
	cur := h.status.Snapshot()
	if cur.State == model.CursorError {
		c.JSON(http.StatusServiceUnavailable, Response{Success: false, Data: cur, Error: "unhealthy", Message: "indexer is failing"})
		return
	}
	ok(c, cur)
}

func pageParam(c *gin.Context) (int, error) {
	raw := c.DefaultQuery("page", "1")
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return 0, fmt.Errorf("%w: page %q", query.ErrInvalidArgument, raw)
	}
	return page, nil
}

package transport

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// NewRouter wires the explorer routes, /health and /metrics.
func NewRouter(h *ExplorerHandler, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	engine := gin.New()
	engine.Use(accessLog(logger), recovery(logger))

	engine.GET("/health", h.Health)
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := engine.Group("/api/bitcoin")
	{
		api.GET("/block/:id", h.Block)
		api.GET("/blocks", h.Blocks)
		api.GET("/transaction/:hash", h.Transaction)
		api.GET("/address/:address", h.Address)
		api.GET("/height", h.Height)
		api.GET("/info", h.Info)
		api.GET("/mempool", h.Mempool)
	}

	engine.NoRoute(func(c *gin.Context) {
		fail(c, http.StatusNotFound, "not found", "unknown route "+c.Request.URL.Path)
	})
	return engine
}

func accessLog(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		started := time.Now()
		c.Next()
		logger.Debug("http request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(started)),
		)
	}
}

func recovery(logger *zap.Logger) gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(nil, func(c *gin.Context, recovered any) {
		logger.Error("panic in handler",
			zap.String("path", c.Request.URL.Path),
			zap.String("panic", fmt.Sprint(recovered)),
			zap.Stack("stack"),
		)
		fail(c, http.StatusInternalServerError, "internal server error", "")
	})
}

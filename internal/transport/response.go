package transport

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/goodnatureofminers/blockinsight7000-explorer/internal/explorer/chain"
	"github.com/goodnatureofminers/blockinsight7000-explorer/internal/explorer/query"
	"go.uber.org/zap"
)

// Response is the envelope of every API reply.
type Response struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

func ok(c *gin.Context, data any) {
	c.JSON(http.StatusOK, Response{Success: true, Data: data})
}

func fail(c *gin.Context, status int, err, message string) {
	c.AbortWithStatusJSON(status, Response{Success: false, Error: err, Message: message})
}

// failWith maps err onto the HTTP status of its class. Internal errors are
// logged and not echoed to the client.
func failWith(c *gin.Context, logger *zap.Logger, err error) {
	switch {
	case errors.Is(err, chain.ErrNotFound):
		fail(c, http.StatusNotFound, "not found", err.Error())
	case errors.Is(err, query.ErrInvalidArgument):
		fail(c, http.StatusBadRequest, "invalid argument", err.Error())
	case chain.IsTransient(err):
		logger.Warn("node unavailable", zap.String("path", c.FullPath()), zap.Error(err))
		fail(c, http.StatusServiceUnavailable, "node unavailable", "the bitcoin node is not reachable, try again later")
	default:
		logger.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
		fail(c, http.StatusInternalServerError, "internal server error", "")
	}
}

func respond[T any](c *gin.Context, logger *zap.Logger, data T, err error) {
	if err != nil {
		failWith(c, logger, err)
		return
	}
	ok(c, data)
}

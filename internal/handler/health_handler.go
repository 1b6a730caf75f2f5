package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Healthz reports the reachability of every probed dependency.
func (h *Handler) Healthz(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	body := gin.H{"status": "ok"}
	status := http.StatusOK
	for name, probe := range h.probes {
		err := probe(ctx)
		body[name] = err == nil
		if err != nil {
			h.logger.Warn("health probe failed", zap.String("dependency", name), zap.Error(err))
			body["status"] = "unavailable"
			status = http.StatusServiceUnavailable
		}
	}
	c.JSON(status, body)
}

package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type IHealthHandler interface {
	Healthz(c *gin.Context)
}

// HealthHandler reports liveness and whether the render cache is attached
type HealthHandler struct {
	cacheEnabled bool
}

func NewHealthHandler(cacheEnabled bool) IHealthHandler {
	return &HealthHandler{cacheEnabled: cacheEnabled}
}

// Healthz returns OK for health checks
func (h *HealthHandler) Healthz(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"status": "ok", "cache": h.cacheEnabled})
}

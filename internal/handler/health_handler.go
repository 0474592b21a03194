package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"hvacbill/internal/port"
)

const readinessTimeout = 2 * time.Second

// HealthHandler serves the liveness and readiness checks. Readiness pings the
// configured record store and reports which driver backs it.
type HealthHandler struct {
	store  port.Pinger
	driver string
}

func NewHealthHandler(store port.Pinger, driver string) *HealthHandler {
	return &HealthHandler{store: store, driver: driver}
}

// Liveness handles GET /healthz
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Readiness handles GET /readyz
func (h *HealthHandler) Readiness(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), readinessTimeout)
	defer cancel()

	started := time.Now()
	err := h.store.Ping(ctx)
	body := gin.H{"store": h.driver, "latency_ms": time.Since(started).Milliseconds()}
	if err != nil {
		body["status"] = "unavailable"
		body["error"] = "record store not reachable"
		c.JSON(http.StatusServiceUnavailable, body)
		return
	}
	body["status"] = "ok"
	c.JSON(http.StatusOK, body)
}

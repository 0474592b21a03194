package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"hvacbill/internal/service"
)

// DashboardHandler handles the dashboard statistics endpoint.
type DashboardHandler struct {
	dashboardService service.DashboardService
	now              func() time.Time
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(dashboardService service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService, now: time.Now}
}

// Stats handles GET /api/v1/dashboard
func (h *DashboardHandler) Stats(c *gin.Context) {
	stats, err := h.dashboardService.Stats(c.Request.Context(), h.now())
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, stats)
}

package handler

import (
	"github.com/gin-gonic/gin"

	"hvacbill/internal/domain"
	"hvacbill/internal/service"
)

// ServiceOrderHandler handles service order endpoints.
type ServiceOrderHandler struct {
	orderService service.ServiceOrderService
}

// NewServiceOrderHandler creates a new ServiceOrderHandler.
func NewServiceOrderHandler(orderService service.ServiceOrderService) *ServiceOrderHandler {
	return &ServiceOrderHandler{orderService: orderService}
}

// UpdateServiceStatusRequest is the body of PATCH /services/:id/status.
type UpdateServiceStatusRequest struct {
	Status domain.ServiceStatus `json:"status" binding:"required"`
}

// Create handles POST /api/v1/services
func (h *ServiceOrderHandler) Create(c *gin.Context) {
	var input service.CreateServiceOrderInput
	if !bindJSON(c, &input) {
		return
	}

	order, err := h.orderService.Create(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, order)
}

// List handles GET /api/v1/services?status=&search=
func (h *ServiceOrderHandler) List(c *gin.Context) {
	orders, err := h.orderService.List(c.Request.Context(), service.ServiceOrderFilter{
		Status: domain.ServiceStatus(c.Query("status")),
		Search: c.Query("search"),
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondList(c, orders, len(orders))
}

// GetByID handles GET /api/v1/services/:id
func (h *ServiceOrderHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c, "service")
	if !ok {
		return
	}

	order, err := h.orderService.GetByID(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, order)
}

// Update handles PUT /api/v1/services/:id
func (h *ServiceOrderHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "service")
	if !ok {
		return
	}
	var input service.UpdateServiceOrderInput
	if !bindJSON(c, &input) {
		return
	}

	order, err := h.orderService.Update(c.Request.Context(), id, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, order)
}

// UpdateStatus handles PATCH /api/v1/services/:id/status
func (h *ServiceOrderHandler) UpdateStatus(c *gin.Context) {
	id, ok := parseID(c, "service")
	if !ok {
		return
	}
	var req UpdateServiceStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	order, err := h.orderService.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, order)
}

// Delete handles DELETE /api/v1/services/:id
func (h *ServiceOrderHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "service")
	if !ok {
		return
	}

	if err := h.orderService.Delete(c.Request.Context(), id); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "service deleted"})
}

package handler

import (
	"github.com/gin-gonic/gin"

	"hvacbill/internal/service"
)

// TechnicianHandler handles technician endpoints.
type TechnicianHandler struct {
	technicianService service.TechnicianService
}

// NewTechnicianHandler creates a new TechnicianHandler.
func NewTechnicianHandler(technicianService service.TechnicianService) *TechnicianHandler {
	return &TechnicianHandler{technicianService: technicianService}
}

// Create handles POST /api/v1/technicians
func (h *TechnicianHandler) Create(c *gin.Context) {
	var input service.CreateTechnicianInput
	if !bindJSON(c, &input) {
		return
	}

	tech, err := h.technicianService.Create(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, tech)
}

// List handles GET /api/v1/technicians
func (h *TechnicianHandler) List(c *gin.Context) {
	techs, err := h.technicianService.List(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondList(c, techs, len(techs))
}

// GetByID handles GET /api/v1/technicians/:id
func (h *TechnicianHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c, "technician")
	if !ok {
		return
	}

	tech, err := h.technicianService.GetByID(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, tech)
}

// Update handles PUT /api/v1/technicians/:id
func (h *TechnicianHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "technician")
	if !ok {
		return
	}
	var input service.UpdateTechnicianInput
	if !bindJSON(c, &input) {
		return
	}

	tech, err := h.technicianService.Update(c.Request.Context(), id, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, tech)
}

// Delete handles DELETE /api/v1/technicians/:id
func (h *TechnicianHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "technician")
	if !ok {
		return
	}

	if err := h.technicianService.Delete(c.Request.Context(), id); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "technician deleted"})
}

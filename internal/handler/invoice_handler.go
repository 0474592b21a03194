package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"hvacbill/internal/domain"
	"hvacbill/internal/export"
	"hvacbill/internal/service"
)

// InvoiceHandler handles invoice endpoints.
type InvoiceHandler struct {
	invoiceService service.InvoiceService
}

// NewInvoiceHandler creates a new InvoiceHandler.
func NewInvoiceHandler(invoiceService service.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService}
}

// UpdateInvoiceStatusRequest is the body of PATCH /invoices/:id/status.
type UpdateInvoiceStatusRequest struct {
	Status domain.PaymentStatus `json:"status" binding:"required"`
}

// Create handles POST /api/v1/invoices
func (h *InvoiceHandler) Create(c *gin.Context) {
	var input service.CreateInvoiceInput
	if !bindJSON(c, &input) {
		return
	}

	inv, err := h.invoiceService.Create(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, inv)
}

// List handles GET /api/v1/invoices?status=&customer_id=&search=
func (h *InvoiceHandler) List(c *gin.Context) {
	filter, ok := invoiceFilter(c)
	if !ok {
		return
	}

	invoices, err := h.invoiceService.List(c.Request.Context(), filter)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondList(c, invoices, len(invoices))
}

// GetByID handles GET /api/v1/invoices/:id
func (h *InvoiceHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c, "invoice")
	if !ok {
		return
	}

	inv, err := h.invoiceService.GetByID(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, inv)
}

// Update handles PUT /api/v1/invoices/:id
func (h *InvoiceHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "invoice")
	if !ok {
		return
	}
	var input service.UpdateInvoiceInput
	if !bindJSON(c, &input) {
		return
	}

	inv, err := h.invoiceService.Update(c.Request.Context(), id, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, inv)
}

// UpdateStatus handles PATCH /api/v1/invoices/:id/status
func (h *InvoiceHandler) UpdateStatus(c *gin.Context) {
	id, ok := parseID(c, "invoice")
	if !ok {
		return
	}
	var req UpdateInvoiceStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	inv, err := h.invoiceService.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, inv)
}

// Delete handles DELETE /api/v1/invoices/:id
func (h *InvoiceHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "invoice")
	if !ok {
		return
	}

	if err := h.invoiceService.Delete(c.Request.Context(), id); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "invoice deleted"})
}

// PDF handles GET /api/v1/invoices/:id/pdf. The document is sent as an
// attachment unless ?inline=true.
func (h *InvoiceHandler) PDF(c *gin.Context) {
	id, ok := parseID(c, "invoice")
	if !ok {
		return
	}

	doc, err := h.invoiceService.RenderPDF(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	disposition := "attachment"
	if c.Query("inline") == "true" {
		disposition = "inline"
	}
	c.Header("Content-Disposition", contentDisposition(disposition, doc.Filename))
	c.Data(http.StatusOK, doc.ContentType, doc.Content)
}

// Send handles POST /api/v1/invoices/:id/send. The body is optional.
func (h *InvoiceHandler) Send(c *gin.Context) {
	id, ok := parseID(c, "invoice")
	if !ok {
		return
	}
	var input service.SendInvoiceInput
	if c.Request.ContentLength != 0 && !bindJSON(c, &input) {
		return
	}

	result, err := h.invoiceService.Send(c.Request.Context(), id, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, result)
}

// Export handles GET /api/v1/invoices/export?format=xlsx|csv. The list
// filters of List apply.
func (h *InvoiceHandler) Export(c *gin.Context) {
	format, ok := exportFormat(c)
	if !ok {
		return
	}
	filter, ok := invoiceFilter(c)
	if !ok {
		return
	}

	invoices, err := h.invoiceService.List(c.Request.Context(), filter)
	if err != nil {
		HandleError(c, err)
		return
	}

	sendTable(c, "invoices", format, export.InvoicesTable(invoices))
}

func invoiceFilter(c *gin.Context) (service.InvoiceFilter, bool) {
	filter := service.InvoiceFilter{
		Status: domain.PaymentStatus(c.Query("status")),
		Search: c.Query("search"),
	}
	if raw := c.Query("customer_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid customer ID")
			return filter, false
		}
		filter.CustomerID = &id
	}
	return filter, true
}

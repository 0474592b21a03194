package handler

import (
	"github.com/gin-gonic/gin"

	"hvacbill/internal/billing"
	"hvacbill/internal/service"
)

// BillingHandler serves the stateless calculators used by the invoice form.
type BillingHandler struct {
	invoiceService service.InvoiceService
}

// NewBillingHandler creates a new BillingHandler.
func NewBillingHandler(invoiceService service.InvoiceService) *BillingHandler {
	return &BillingHandler{invoiceService: invoiceService}
}

// LinePreview handles POST /api/v1/billing/line-preview
func (h *BillingHandler) LinePreview(c *gin.Context) {
	var input service.LineItemInput
	if !bindJSON(c, &input) {
		return
	}

	calc, err := h.invoiceService.PreviewLine(input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, calc)
}

// AmountInWords handles GET /api/v1/billing/words?amount=
func (h *BillingHandler) AmountInWords(c *gin.Context) {
	amount, err := billing.ParseAmount("amount", c.Query("amount"))
	if err != nil {
		HandleError(c, err)
		return
	}

	words, err := billing.AmountInWords(amount)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"amount": amount.StringFixed(2), "words": words})
}

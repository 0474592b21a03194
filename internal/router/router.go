package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"hvacbill/internal/handler"
	"hvacbill/internal/metrics"
	"hvacbill/internal/middleware"
)

// Handlers groups the HTTP handlers mounted by Setup.
type Handlers struct {
	Health     *handler.HealthHandler
	Customer   *handler.CustomerHandler
	Technician *handler.TechnicianHandler
	Service    *handler.ServiceOrderHandler
	Invoice    *handler.InvoiceHandler
	Billing    *handler.BillingHandler
	Dashboard  *handler.DashboardHandler
}

// Setup configures the Gin engine with all routes and middleware.
func Setup(h Handlers, m *metrics.Metrics, log *zap.Logger, allowedOrigins []string) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(log))
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(log))
	r.Use(middleware.CORS(allowedOrigins))
	if m != nil {
		r.Use(middleware.Metrics(m))
		r.GET("/metrics", gin.WrapH(m.Handler()))
	}

	// Health checks
	r.GET("/healthz", h.Health.Liveness)
	r.GET("/readyz", h.Health.Readiness)

	v1 := r.Group("/api/v1")

	customers := v1.Group("/customers")
	customers.POST("", h.Customer.Create)
	customers.GET("", h.Customer.List)
	customers.GET("/export", h.Customer.Export)
	customers.GET("/:id", h.Customer.GetByID)
	customers.PUT("/:id", h.Customer.Update)
	customers.DELETE("/:id", h.Customer.Delete)

	technicians := v1.Group("/technicians")
	technicians.POST("", h.Technician.Create)
	technicians.GET("", h.Technician.List)
	technicians.GET("/:id", h.Technician.GetByID)
	technicians.PUT("/:id", h.Technician.Update)
	technicians.DELETE("/:id", h.Technician.Delete)

	services := v1.Group("/services")
	services.POST("", h.Service.Create)
	services.GET("", h.Service.List)
	services.GET("/:id", h.Service.GetByID)
	services.PUT("/:id", h.Service.Update)
	services.PATCH("/:id/status", h.Service.UpdateStatus)
	services.DELETE("/:id", h.Service.Delete)

	invoices := v1.Group("/invoices")
	invoices.POST("", h.Invoice.Create)
	invoices.GET("", h.Invoice.List)
	invoices.GET("/export", h.Invoice.Export)
	invoices.GET("/:id", h.Invoice.GetByID)
	invoices.PUT("/:id", h.Invoice.Update)
	invoices.PATCH("/:id/status", h.Invoice.UpdateStatus)
	invoices.DELETE("/:id", h.Invoice.Delete)
	invoices.GET("/:id/pdf", h.Invoice.PDF)
	invoices.POST("/:id/send", h.Invoice.Send)

	billingGroup := v1.Group("/billing")
	billingGroup.POST("/line-preview", h.Billing.LinePreview)
	billingGroup.GET("/words", h.Billing.AmountInWords)

	v1.GET("/dashboard", h.Dashboard.Stats)

	return r
}

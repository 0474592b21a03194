package domain

import "github.com/shopspring/decimal"

// MonthlyRevenue is one point of the revenue series.
type MonthlyRevenue struct {
	Month   string          `json:"month"`
	Revenue decimal.Decimal `json:"revenue"`
}

// DashboardStats summarises invoices, service orders and customers.
type DashboardStats struct {
	TotalRevenue          decimal.Decimal       `json:"total_revenue"`
	MonthlyRevenue        decimal.Decimal       `json:"monthly_revenue"`
	AverageMonthlyRevenue decimal.Decimal       `json:"average_monthly_revenue"`
	RevenueByMonth        []MonthlyRevenue      `json:"revenue_by_month"`
	TotalInvoices         int                   `json:"total_invoices"`
	InvoiceStatusCounts   map[PaymentStatus]int `json:"invoice_status_counts"`
	TotalServices         int                   `json:"total_services"`
	PendingServices       int                   `json:"pending_services"`
	ServiceStatusCounts   map[ServiceStatus]int `json:"service_status_counts"`
	ServiceTypeCounts     map[string]int        `json:"service_type_counts"`
	CompletionRate        int                   `json:"completion_rate"`
	ActiveCustomers       int                   `json:"active_customers"`
	TotalCustomers        int                   `json:"total_customers"`
	CustomerTypeCounts    map[CustomerType]int  `json:"customer_type_counts"`
	RecentServices        []*ServiceOrder       `json:"recent_services"`
}

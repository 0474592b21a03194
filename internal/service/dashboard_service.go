package service

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"hvacbill/internal/domain"
	"hvacbill/internal/port"
)

const recentServicesLimit = 5

var monthNames = [12]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// DashboardService provides aggregate statistics for the dashboard and
// report pages.
type DashboardService interface {
	Stats(ctx context.Context, now time.Time) (*domain.DashboardStats, error)
}

type dashboardService struct {
	invoices  port.Store[*domain.Invoice]
	services  port.Store[*domain.ServiceOrder]
	customers port.Store[*domain.Customer]
}

// NewDashboardService creates a new DashboardService implementation.
func NewDashboardService(
	invoices port.Store[*domain.Invoice],
	services port.Store[*domain.ServiceOrder],
	customers port.Store[*domain.Customer],
) DashboardService {
	return &dashboardService{invoices: invoices, services: services, customers: customers}
}

func (s *dashboardService) Stats(ctx context.Context, now time.Time) (*domain.DashboardStats, error) {
	var (
		invoices  []*domain.Invoice
		orders    []*domain.ServiceOrder
		customers []*domain.Customer
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		invoices, err = s.invoices.List(gctx)
		return err
	})
	g.Go(func() (err error) {
		orders, err = s.services.List(gctx)
		return err
	})
	g.Go(func() (err error) {
		customers, err = s.customers.List(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	stats := &domain.DashboardStats{
		InvoiceStatusCounts: make(map[domain.PaymentStatus]int),
		ServiceStatusCounts: make(map[domain.ServiceStatus]int),
		ServiceTypeCounts:   make(map[string]int),
		CustomerTypeCounts:  make(map[domain.CustomerType]int),
	}
	revenueStats(stats, invoices, now)
	serviceStats(stats, orders)

	stats.TotalCustomers = len(customers)
	for _, c := range customers {
		stats.CustomerTypeCounts[c.Type]++
	}
	return stats, nil
}

// revenueStats fills the revenue figures. The monthly series covers the
// calendar year of now; the average divides total revenue by the number of
// distinct months that have at least one invoice.
func revenueStats(stats *domain.DashboardStats, invoices []*domain.Invoice, now time.Time) {
	var series [12]decimal.Decimal
	total := decimal.Zero
	current := decimal.Zero
	months := make(map[string]struct{})

	for _, inv := range invoices {
		stats.InvoiceStatusCounts[inv.Status]++
		total = total.Add(inv.GrandTotal)
		issued, err := time.Parse(domain.DateLayout, inv.IssueDate)
		if err != nil {
			continue
		}
		months[inv.IssueDate[:7]] = struct{}{}
		if issued.Year() != now.Year() {
			continue
		}
		series[issued.Month()-1] = series[issued.Month()-1].Add(inv.GrandTotal)
		if issued.Month() == now.Month() {
			current = current.Add(inv.GrandTotal)
		}
	}

	stats.TotalInvoices = len(invoices)
	stats.TotalRevenue = total
	stats.MonthlyRevenue = current
	stats.AverageMonthlyRevenue = decimal.Zero
	if len(months) > 0 {
		stats.AverageMonthlyRevenue = total.Div(decimal.NewFromInt(int64(len(months)))).Round(2)
	}
	stats.RevenueByMonth = make([]domain.MonthlyRevenue, 12)
	for i := range series {
		stats.RevenueByMonth[i] = domain.MonthlyRevenue{Month: monthNames[i], Revenue: series[i]}
	}
}

// serviceStats fills the service order figures. Active customers are the
// distinct customer names that appear on any service order.
func serviceStats(stats *domain.DashboardStats, orders []*domain.ServiceOrder) {
	active := make(map[string]struct{})
	completed := 0
	for _, o := range orders {
		stats.ServiceStatusCounts[o.Status]++
		if o.ServiceType != "" {
			stats.ServiceTypeCounts[o.ServiceType]++
		}
		switch o.Status {
		case domain.ServiceStatusCompleted:
			completed++
		case domain.ServiceStatusInProgress, domain.ServiceStatusScheduled:
			stats.PendingServices++
		}
		if o.CustomerName != "" {
			active[o.CustomerName] = struct{}{}
		}
	}
	stats.TotalServices = len(orders)
	stats.ActiveCustomers = len(active)
	if len(orders) > 0 {
		// percentage rounded half up
		stats.CompletionRate = (completed*200 + len(orders)) / (2 * len(orders))
	}

	recent := make([]*domain.ServiceOrder, len(orders))
	copy(recent, orders)
	sort.SliceStable(recent, func(i, j int) bool { return recent[i].Date > recent[j].Date })
	if len(recent) > recentServicesLimit {
		recent = recent[:recentServicesLimit]
	}
	stats.RecentServices = recent
}

package domain

// PaymentStatus represents the settlement state of an invoice.
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "Pending"
	PaymentStatusPaid    PaymentStatus = "Paid"
	PaymentStatusOverdue PaymentStatus = "Overdue"
)

// ValidPaymentStatuses lists the accepted invoice payment statuses.
var ValidPaymentStatuses = map[PaymentStatus]bool{
	PaymentStatusPending: true,
	PaymentStatusPaid:    true,
	PaymentStatusOverdue: true,
}

// ServiceStatus represents the lifecycle of a service order.
type ServiceStatus string

const (
	ServiceStatusScheduled  ServiceStatus = "Scheduled"
	ServiceStatusInProgress ServiceStatus = "In Progress"
	ServiceStatusCompleted  ServiceStatus = "Completed"
	ServiceStatusCancelled  ServiceStatus = "Cancelled"
)

// ServiceStatuses is the display order used by reports.
var ServiceStatuses = []ServiceStatus{
	ServiceStatusCompleted,
	ServiceStatusInProgress,
	ServiceStatusScheduled,
	ServiceStatusCancelled,
}

// ValidServiceStatuses lists the accepted service order statuses.
var ValidServiceStatuses = map[ServiceStatus]bool{
	ServiceStatusScheduled:  true,
	ServiceStatusInProgress: true,
	ServiceStatusCompleted:  true,
	ServiceStatusCancelled:  true,
}

// QuantityUnit tags the quantity of a line item.
type QuantityUnit string

const (
	QuantityUnitNone  QuantityUnit = ""
	QuantityUnitUnit  QuantityUnit = "unit"
	QuantityUnitMeter QuantityUnit = "meter"
)

// Suffix returns the label appended to the quantity on printed invoices.
func (u QuantityUnit) Suffix() string {
	switch u {
	case QuantityUnitUnit:
		return " (unit)"
	case QuantityUnitMeter:
		return " (mtr)"
	default:
		return ""
	}
}

// Valid reports whether u is a known unit tag.
func (u QuantityUnit) Valid() bool {
	return u == QuantityUnitNone || u == QuantityUnitUnit || u == QuantityUnitMeter
}

// CustomerType classifies customers for reporting.
type CustomerType string

const (
	CustomerTypeResidential CustomerType = "Residential"
	CustomerTypeCommercial  CustomerType = "Commercial"
	CustomerTypeMultiUnit   CustomerType = "Multi-unit"
)

// CustomerTypes is the display order used by reports.
var CustomerTypes = []CustomerType{
	CustomerTypeResidential,
	CustomerTypeCommercial,
	CustomerTypeMultiUnit,
}

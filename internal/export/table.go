// Package export writes record collections as spreadsheets (xlsx or csv)
// and reads customer sheets back in.
package export

import (
	"fmt"
	"time"

	"hvacbill/internal/domain"
)

// Supported export formats.
const (
	FormatXLSX = "xlsx"
	FormatCSV  = "csv"
)

// Content types of the supported formats.
const (
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	ContentTypeCSV  = "text/csv; charset=utf-8"
)

// Table is a sheet of string cells with a header row.
type Table struct {
	Sheet   string
	Columns []string
	Rows    [][]string
}

var customerColumns = []string{"Name", "Email", "Phone", "Address", "Type", "CreatedAt"}

var invoiceColumns = []string{"Name", "Date", "InvoiceNo", "Address", "CreatedAt", "Total", "Status"}

// CustomersTable lays out customers one per row.
func CustomersTable(customers []*domain.Customer) Table {
	rows := make([][]string, 0, len(customers))
	for _, c := range customers {
		rows = append(rows, []string{
			c.Name,
			c.Email,
			c.Phone,
			c.Address,
			string(c.Type),
			formatTime(c.CreatedAt),
		})
	}
	return Table{Sheet: "Customers", Columns: customerColumns, Rows: rows}
}

// InvoicesTable lays out invoices one per row.
func InvoicesTable(invoices []*domain.Invoice) Table {
	rows := make([][]string, 0, len(invoices))
	for _, inv := range invoices {
		rows = append(rows, []string{
			inv.CustomerName,
			inv.IssueDate,
			inv.InvoiceNumber,
			inv.Address,
			formatTime(inv.CreatedAt),
			inv.GrandTotal.StringFixed(2),
			string(inv.Status),
		})
	}
	return Table{Sheet: "Invoices", Columns: invoiceColumns, Rows: rows}
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

// ValidFormat reports whether format names a supported export format.
func ValidFormat(format string) bool {
	return format == FormatXLSX || format == FormatCSV
}

// ContentType returns the media type for format.
func ContentType(format string) string {
	if format == FormatCSV {
		return ContentTypeCSV
	}
	return ContentTypeXLSX
}

// Filename returns the download name for an export, e.g.
// customers_2024-05-02.xlsx.
func Filename(base, format string, now time.Time) string {
	return fmt.Sprintf("%s_%s.%s", base, now.Format("2006-01-02"), format)
}

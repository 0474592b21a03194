package export

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"hvacbill/internal/domain"
)

var created = time.Date(2024, time.May, 2, 10, 0, 0, 0, time.UTC)

func sampleCustomers() []*domain.Customer {
	return []*domain.Customer{
		{Meta: domain.Meta{ID: uuid.New(), CreatedAt: created}, Name: "Johnson Residence", Email: "j@example.com",
			Phone: "555", Address: "12 MG Road, Chennai", Type: domain.CustomerTypeResidential},
		{Meta: domain.Meta{ID: uuid.New(), CreatedAt: created}, Name: "Tech Solutions", Type: domain.CustomerTypeCommercial},
	}
}

func TestCustomersTable(t *testing.T) {
	tbl := CustomersTable(sampleCustomers())

	assert.Equal(t, "Customers", tbl.Sheet)
	assert.Equal(t, []string{"Name", "Email", "Phone", "Address", "Type", "CreatedAt"}, tbl.Columns)
	require.Len(t, tbl.Rows, 2)
	assert.Equal(t, []string{"Johnson Residence", "j@example.com", "555", "12 MG Road, Chennai", "Residential",
		"2024-05-02T10:00:00Z"}, tbl.Rows[0])
}

func TestInvoicesTable(t *testing.T) {
	tbl := InvoicesTable([]*domain.Invoice{{
		CustomerName:  "Johnson Residence",
		IssueDate:     "2024-05-02",
		InvoiceNumber: "INV-2024-001",
		Address:       "12 MG Road",
		GrandTotal:    decimal.RequireFromString("370.2"),
		Status:        domain.PaymentStatusPaid,
	}})

	require.Len(t, tbl.Rows, 1)
	assert.Equal(t, []string{"Johnson Residence", "2024-05-02", "INV-2024-001", "12 MG Road", "", "370.20", "Paid"}, tbl.Rows[0])
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, CustomersTable(sampleCustomers())))

	require.True(t, bytes.HasPrefix(buf.Bytes(), BOM))
	records, err := csv.NewReader(bytes.NewReader(buf.Bytes()[len(BOM):])).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "Name", records[0][0])
	assert.Equal(t, "12 MG Road, Chennai", records[1][3])
	assert.Equal(t, "Commercial", records[2][4])
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, CustomersTable(sampleCustomers())))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	assert.Equal(t, "Customers", f.GetSheetName(0))
	rows, err := f.GetRows("Customers")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "CreatedAt", rows[0][5])
	assert.Equal(t, "Tech Solutions", rows[2][0])
}

func TestReadCustomersXLSX_RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, CustomersTable(sampleCustomers())))

	customers, err := ReadCustomersXLSX(&buf)

	require.NoError(t, err)
	require.Len(t, customers, 2)
	assert.Equal(t, "Johnson Residence", customers[0].Name)
	assert.Equal(t, "j@example.com", customers[0].Email)
	assert.Equal(t, domain.CustomerTypeCommercial, customers[1].Type)
	assert.Empty(t, customers[1].Phone)
}

func TestReadCustomersXLSX_MissingNameColumn(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, Table{Sheet: "Sheet1", Columns: []string{"Email"}, Rows: [][]string{{"a@b.com"}}}))

	_, err := ReadCustomersXLSX(&buf)

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "customers_2024-05-02.xlsx", Filename("customers", FormatXLSX, created))
	assert.Equal(t, "invoices_2024-05-02.csv", Filename("invoices", FormatCSV, created))
	assert.True(t, ValidFormat("csv"))
	assert.False(t, ValidFormat("pdf"))
	assert.Equal(t, ContentTypeCSV, ContentType(FormatCSV))
}

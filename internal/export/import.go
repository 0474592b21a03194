package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"hvacbill/internal/domain"
)

// ReadCustomersXLSX reads the first sheet of a workbook laid out like the
// customers export. Columns are located by header name, ignoring case;
// CreatedAt is ignored. Rows without a name are skipped.
func ReadCustomersXLSX(r io.Reader) ([]*domain.Customer, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("export: open workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, fmt.Errorf("export: read rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	index := make(map[string]int, len(rows[0]))
	for i, h := range rows[0] {
		index[strings.ToLower(strings.TrimSpace(h))] = i
	}
	if _, ok := index["name"]; !ok {
		return nil, domain.NewValidationError("Name", "column is missing")
	}
	cell := func(row []string, col string) string {
		i, ok := index[col]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var customers []*domain.Customer
	for _, row := range rows[1:] {
		name := cell(row, "name")
		if name == "" {
			continue
		}
		c := &domain.Customer{
			Name:    name,
			Email:   cell(row, "email"),
			Phone:   cell(row, "phone"),
			Address: cell(row, "address"),
			Type:    domain.CustomerType(cell(row, "type")),
		}
		customers = append(customers, c)
	}
	return customers, nil
}

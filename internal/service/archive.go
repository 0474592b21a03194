package service

import "strings"

// archiveKey returns the object key an invoice PDF is archived under,
// grouped by the year and month of its issue date.
func archiveKey(issueDate, filename string) string {
	safe := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_', r == '.':
			return r
		default:
			return '_'
		}
	}, filename)
	year, month := "0000", "00"
	if len(issueDate) >= 7 {
		year, month = issueDate[:4], issueDate[5:7]
	}
	return "invoices/" + year + "/" + month + "/" + safe
}

package port

import "context"

// InvoiceEmail is the content of an invoice notification.
type InvoiceEmail struct {
	ToEmail       string
	ToName        string
	InvoiceNumber string
	IssueDate     string
	Amount        string
	AmountInWords string
	// DownloadURL is empty when invoices are not archived.
	DownloadURL string
}

// EmailSender defines the contract for sending emails.
type EmailSender interface {
	SendInvoiceEmail(ctx context.Context, msg InvoiceEmail) error
}

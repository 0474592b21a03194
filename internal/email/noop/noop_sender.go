package noop

import (
	"context"

	"go.uber.org/zap"

	"hvacbill/internal/port"
)

type noopSender struct {
	log *zap.Logger
}

// NewNoopSender creates a no-op EmailSender that only logs what it would send.
func NewNoopSender(log *zap.Logger) port.EmailSender {
	return &noopSender{log: log}
}

func (s *noopSender) SendInvoiceEmail(_ context.Context, msg port.InvoiceEmail) error {
	s.log.Info("noop email: invoice",
		zap.String("to", msg.ToEmail),
		zap.String("invoice_number", msg.InvoiceNumber),
		zap.String("amount", msg.Amount),
		zap.String("download_url", msg.DownloadURL),
	)
	return nil
}

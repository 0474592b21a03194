package ses

import (
	"context"
	"fmt"
	"html"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"hvacbill/internal/port"
)

type sesSender struct {
	client      *sesv2.Client
	fromAddress string
	fromName    string
}

// NewSESSender creates a new SES-backed EmailSender.
func NewSESSender(ctx context.Context, region, fromAddress, fromName string) (port.EmailSender, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config for SES: %w", err)
	}
	return &sesSender{
		client:      sesv2.NewFromConfig(cfg),
		fromAddress: fromAddress,
		fromName:    fromName,
	}, nil
}

func (s *sesSender) SendInvoiceEmail(ctx context.Context, msg port.InvoiceEmail) error {
	subject := fmt.Sprintf("Invoice %s from %s", msg.InvoiceNumber, s.fromName)
	htmlBody := BuildInvoiceHTML(s.fromName, msg)
	textBody := BuildInvoiceText(s.fromName, msg)
	from := fmt.Sprintf("%s <%s>", s.fromName, s.fromAddress)

	_, err := s.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: &from,
		Destination: &types.Destination{
			ToAddresses: []string{msg.ToEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: &subject},
				Body: &types.Body{
					Html: &types.Content{Data: &htmlBody},
					Text: &types.Content{Data: &textBody},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("SES SendEmail: %w", err)
	}
	return nil
}

// BuildInvoiceText renders the plain-text body of an invoice email.
func BuildInvoiceText(company string, msg port.InvoiceEmail) string {
	body := fmt.Sprintf("Dear %s,\n\nPlease find the details of invoice %s dated %s.\n\nAmount due: Rs. %s\n(%s)\n",
		msg.ToName, msg.InvoiceNumber, msg.IssueDate, msg.Amount, msg.AmountInWords)
	if msg.DownloadURL != "" {
		body += fmt.Sprintf("\nDownload your invoice:\n%s\n", msg.DownloadURL)
	}
	return body + fmt.Sprintf("\nThank you for your business.\n\n%s", company)
}

// BuildInvoiceHTML renders the HTML body of an invoice email.
func BuildInvoiceHTML(company string, msg port.InvoiceEmail) string {
	link := ""
	if msg.DownloadURL != "" {
		link = fmt.Sprintf(`
  <p style="text-align: center; margin: 30px 0;">
    <a href="%s" style="background-color: #0E7490; color: white; padding: 12px 24px; text-decoration: none; border-radius: 6px; display: inline-block;">Download Invoice</a>
  </p>`, html.EscapeString(msg.DownloadURL))
	}
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h2 style="color: #333;">Invoice %s</h2>
  <p>Dear %s,</p>
  <p>Please find the details of your invoice dated %s.</p>
  <p style="font-size: 18px;"><strong>Amount due: Rs. %s</strong></p>
  <p style="color: #666;">%s</p>%s
  <hr style="border: none; border-top: 1px solid #eee; margin: 20px 0;">
  <p style="color: #999; font-size: 12px;">%s</p>
</body>
</html>`,
		html.EscapeString(msg.InvoiceNumber),
		html.EscapeString(msg.ToName),
		html.EscapeString(msg.IssueDate),
		html.EscapeString(msg.Amount),
		html.EscapeString(msg.AmountInWords),
		link,
		html.EscapeString(company),
	)
}

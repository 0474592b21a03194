package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"hvacbill/internal/billing"
	"hvacbill/internal/domain"
	"hvacbill/internal/metrics"
	"hvacbill/internal/port"
	"hvacbill/internal/render"
)

// maxNumberAttempts bounds how many sequence values Create will try when a
// generated invoice number is already taken by a hand-entered one.
const maxNumberAttempts = 5

// LineItemInput is one billed row as posted by the invoice form. Numeric
// fields accept JSON numbers or strings.
type LineItemInput struct {
	Serial      string              `json:"sno"`
	Description string              `json:"name" validate:"required"`
	HSN         string              `json:"hsn"`
	Quantity    Amount              `json:"units"`
	Unit        domain.QuantityUnit `json:"quantity_type" validate:"omitempty,oneof=unit meter"`
	Price       Amount              `json:"price"`
	GSTRate     Amount              `json:"gst"`
}

// CreateInvoiceInput is the DTO for creating an invoice. InvoiceNumber is
// generated when empty; Date defaults to today.
type CreateInvoiceInput struct {
	BillType      string               `json:"bill_type" validate:"required"`
	CustomerID    *uuid.UUID           `json:"customer_id"`
	CustomerName  string               `json:"customer"`
	Address       string               `json:"address"`
	City          string               `json:"city"`
	State         string               `json:"state"`
	PostalCode    string               `json:"zip"`
	InvoiceNumber string               `json:"invoice_number"`
	Date          string               `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Items         []LineItemInput      `json:"items"`
	Notes         string               `json:"notes"`
	Status        domain.PaymentStatus `json:"status" validate:"omitempty,oneof=Pending Paid Overdue"`
}

// UpdateInvoiceInput is the DTO for editing an invoice. A non-nil Items
// replaces every line; totals are always recomputed.
type UpdateInvoiceInput struct {
	BillType      *string               `json:"bill_type" validate:"omitempty,min=1"`
	CustomerID    *uuid.UUID            `json:"customer_id"`
	CustomerName  *string               `json:"customer"`
	Address       *string               `json:"address"`
	City          *string               `json:"city"`
	State         *string               `json:"state"`
	PostalCode    *string               `json:"zip"`
	InvoiceNumber *string               `json:"invoice_number" validate:"omitempty,min=1"`
	Date          *string               `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Items         *[]LineItemInput      `json:"items"`
	Notes         *string               `json:"notes"`
	Status        *domain.PaymentStatus `json:"status" validate:"omitempty,oneof=Pending Paid Overdue"`
}

// SendInvoiceInput optionally overrides the recipient address.
type SendInvoiceInput struct {
	Email string `json:"email" validate:"omitempty,email"`
}

// SendResult describes a delivered invoice.
type SendResult struct {
	InvoiceNumber string `json:"invoice_number"`
	Recipient     string `json:"recipient"`
	ArchiveKey    string `json:"archive_key,omitempty"`
	DownloadURL   string `json:"download_url,omitempty"`
}

// InvoiceFilter narrows InvoiceService.List. Search matches the customer
// name or the invoice number, ignoring case.
type InvoiceFilter struct {
	Status     domain.PaymentStatus
	CustomerID *uuid.UUID
	Search     string
}

// InvoiceOptions holds invoice policy settings.
type InvoiceOptions struct {
	DefaultHSN       string
	OverdueAfterDays int
	ArchivePDFs      bool
	// LinkTTL is how long e-mailed download links stay valid.
	LinkTTL time.Duration
	// Now defaults to time.Now.
	Now func() time.Time
}

// InvoiceRenderer produces the printable form of an invoice.
type InvoiceRenderer interface {
	Render(inv *domain.Invoice) (*render.Document, error)
}

// InvoiceService defines the invoice contract.
type InvoiceService interface {
	Create(ctx context.Context, input CreateInvoiceInput) (*domain.Invoice, error)
	List(ctx context.Context, filter InvoiceFilter) ([]*domain.Invoice, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Invoice, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateInvoiceInput) (*domain.Invoice, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.PaymentStatus) (*domain.Invoice, error)
	Delete(ctx context.Context, id uuid.UUID) error
	RenderPDF(ctx context.Context, id uuid.UUID) (*render.Document, error)
	Send(ctx context.Context, id uuid.UUID, input SendInvoiceInput) (*SendResult, error)
	PreviewLine(input LineItemInput) (*billing.LineCalc, error)
	MarkOverdue(ctx context.Context, now time.Time) (int, error)
}

type invoiceService struct {
	repo      port.Store[*domain.Invoice]
	customers port.Store[*domain.Customer]
	seq       port.Sequence
	renderer  InvoiceRenderer
	archive   port.InvoiceArchive
	mailer    port.EmailSender
	metrics   *metrics.Metrics
	log       *zap.Logger
	opts      InvoiceOptions
}

// NewInvoiceService creates a new InvoiceService implementation. archive may
// be nil when opts.ArchivePDFs is false; m may be nil.
func NewInvoiceService(
	repo port.Store[*domain.Invoice],
	customers port.Store[*domain.Customer],
	seq port.Sequence,
	renderer InvoiceRenderer,
	archive port.InvoiceArchive,
	mailer port.EmailSender,
	m *metrics.Metrics,
	log *zap.Logger,
	opts InvoiceOptions,
) InvoiceService {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &invoiceService{
		repo:      repo,
		customers: customers,
		seq:       seq,
		renderer:  renderer,
		archive:   archive,
		mailer:    mailer,
		metrics:   m,
		log:       log,
		opts:      opts,
	}
}

func (s *invoiceService) Create(ctx context.Context, input CreateInvoiceInput) (*domain.Invoice, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	inv := &domain.Invoice{
		BillType:     input.BillType,
		CustomerName: strings.TrimSpace(input.CustomerName),
		Address:      input.Address,
		City:         input.City,
		State:        input.State,
		PostalCode:   input.PostalCode,
		IssueDate:    input.Date,
		Notes:        input.Notes,
		Status:       input.Status,
	}
	if inv.IssueDate == "" {
		inv.IssueDate = s.opts.Now().Format(domain.DateLayout)
	}
	if inv.Status == "" {
		inv.Status = domain.PaymentStatusPending
	}
	if input.CustomerID != nil {
		if err := s.resolveCustomer(ctx, inv, *input.CustomerID); err != nil {
			return nil, err
		}
	}
	items, err := s.buildItems(input.Items)
	if err != nil {
		return nil, err
	}
	inv.Items = items
	if err := billing.Recalculate(inv); err != nil {
		return nil, err
	}
	if err := inv.Validate(); err != nil {
		return nil, err
	}

	taken, err := s.takenNumbers(ctx, uuid.Nil)
	if err != nil {
		return nil, err
	}
	if n := strings.TrimSpace(input.InvoiceNumber); n != "" {
		if taken[n] {
			return nil, domain.ErrDuplicateInvoiceNumber
		}
		inv.InvoiceNumber = n
	} else {
		n, err := s.nextNumber(ctx, inv.IssueDate, taken)
		if err != nil {
			return nil, err
		}
		inv.InvoiceNumber = n
	}

	if err := s.repo.Create(ctx, inv); err != nil {
		return nil, err
	}
	s.metrics.InvoiceCreated()
	s.log.Info("invoice created",
		zap.String("invoice_id", inv.ID.String()),
		zap.String("invoice_number", inv.InvoiceNumber),
		zap.String("total", inv.GrandTotal.StringFixed(2)),
	)
	return inv, nil
}

func (s *invoiceService) List(ctx context.Context, filter InvoiceFilter) ([]*domain.Invoice, error) {
	invoices, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	search := strings.ToLower(strings.TrimSpace(filter.Search))
	out := make([]*domain.Invoice, 0, len(invoices))
	for _, inv := range invoices {
		if filter.Status != "" && inv.Status != filter.Status {
			continue
		}
		if filter.CustomerID != nil && (inv.CustomerID == nil || *inv.CustomerID != *filter.CustomerID) {
			continue
		}
		if search != "" && !containsFold(inv.CustomerName, search) && !containsFold(inv.InvoiceNumber, search) {
			continue
		}
		out = append(out, inv)
	}
	return out, nil
}

func (s *invoiceService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Invoice, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *invoiceService) Update(ctx context.Context, id uuid.UUID, input UpdateInvoiceInput) (*domain.Invoice, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	inv, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.BillType != nil {
		inv.BillType = *input.BillType
	}
	if input.CustomerName != nil {
		inv.CustomerName = strings.TrimSpace(*input.CustomerName)
		inv.CustomerID = nil
	}
	if input.CustomerID != nil {
		if err := s.resolveCustomer(ctx, inv, *input.CustomerID); err != nil {
			return nil, err
		}
	}
	if input.Address != nil {
		inv.Address = *input.Address
	}
	if input.City != nil {
		inv.City = *input.City
	}
	if input.State != nil {
		inv.State = *input.State
	}
	if input.PostalCode != nil {
		inv.PostalCode = *input.PostalCode
	}
	if input.Date != nil {
		inv.IssueDate = *input.Date
	}
	if input.Notes != nil {
		inv.Notes = *input.Notes
	}
	if input.Status != nil {
		inv.Status = *input.Status
	}
	if input.Items != nil {
		items, err := s.buildItems(*input.Items)
		if err != nil {
			return nil, err
		}
		inv.Items = items
	}
	if err := billing.Recalculate(inv); err != nil {
		return nil, err
	}
	if err := inv.Validate(); err != nil {
		return nil, err
	}

	if input.InvoiceNumber != nil {
		n := strings.TrimSpace(*input.InvoiceNumber)
		if n != inv.InvoiceNumber {
			taken, err := s.takenNumbers(ctx, inv.ID)
			if err != nil {
				return nil, err
			}
			if taken[n] {
				return nil, domain.ErrDuplicateInvoiceNumber
			}
			inv.InvoiceNumber = n
		}
	}

	if err := s.repo.Update(ctx, inv); err != nil {
		return nil, err
	}
	return inv, nil
}

func (s *invoiceService) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.PaymentStatus) (*domain.Invoice, error) {
	if !domain.ValidPaymentStatuses[status] {
		return nil, domain.NewValidationError("status", "must be one of Pending, Paid, Overdue")
	}
	inv, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	inv.Status = status
	if err := s.repo.Update(ctx, inv); err != nil {
		return nil, err
	}
	return inv, nil
}

// Delete removes the invoice and, when archiving is on, its archived PDF.
// Failing to remove the archived copy is logged, not returned.
func (s *invoiceService) Delete(ctx context.Context, id uuid.UUID) error {
	inv, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	if s.archiving() {
		key := archiveKey(inv.IssueDate, render.Filename(inv.InvoiceNumber))
		if err := s.archive.Delete(ctx, key); err != nil {
			s.log.Warn("removing archived invoice failed", zap.String("key", key), zap.Error(err))
		}
	}
	return nil
}

func (s *invoiceService) archiving() bool {
	return s.opts.ArchivePDFs && s.archive != nil
}

func (s *invoiceService) RenderPDF(ctx context.Context, id uuid.UUID) (*render.Document, error) {
	inv, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.render(inv)
}

func (s *invoiceService) render(inv *domain.Invoice) (*render.Document, error) {
	done := s.metrics.TrackRender()
	defer done()
	return s.renderer.Render(inv)
}

// Send renders the invoice, archives it when enabled, and e-mails the
// customer. The recipient is input.Email, else the linked customer's email.
func (s *invoiceService) Send(ctx context.Context, id uuid.UUID, input SendInvoiceInput) (*SendResult, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	inv, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	recipient, err := s.recipient(ctx, inv, input.Email)
	if err != nil {
		return nil, err
	}

	doc, err := s.render(inv)
	if err != nil {
		return nil, err
	}
	words, err := billing.AmountInWords(inv.GrandTotal)
	if err != nil {
		return nil, err
	}

	result := &SendResult{InvoiceNumber: inv.InvoiceNumber, Recipient: recipient}
	if s.archiving() {
		key := archiveKey(inv.IssueDate, doc.Filename)
		if err := s.archive.Put(ctx, port.ArchiveObject{
			Key:           key,
			Filename:      doc.Filename,
			ContentType:   doc.ContentType,
			InvoiceNumber: inv.InvoiceNumber,
			Content:       doc.Content,
		}); err != nil {
			return nil, fmt.Errorf("invoiceService.Send: archiving %s: %w", inv.InvoiceNumber, err)
		}
		url, err := s.archive.URL(ctx, key, s.opts.LinkTTL)
		if err != nil {
			return nil, fmt.Errorf("invoiceService.Send: presigning %s: %w", key, err)
		}
		result.ArchiveKey = key
		result.DownloadURL = url
	}

	if err := s.mailer.SendInvoiceEmail(ctx, port.InvoiceEmail{
		ToEmail:       recipient,
		ToName:        inv.CustomerName,
		InvoiceNumber: inv.InvoiceNumber,
		IssueDate:     inv.IssueDate,
		Amount:        inv.GrandTotal.StringFixed(2),
		AmountInWords: words,
		DownloadURL:   result.DownloadURL,
	}); err != nil {
		return nil, fmt.Errorf("invoiceService.Send: %w", err)
	}

	s.log.Info("invoice sent",
		zap.String("invoice_number", inv.InvoiceNumber),
		zap.String("recipient", recipient),
		zap.Bool("archived", result.ArchiveKey != ""),
	)
	return result, nil
}

func (s *invoiceService) recipient(ctx context.Context, inv *domain.Invoice, override string) (string, error) {
	if e := strings.TrimSpace(override); e != "" {
		return e, nil
	}
	if inv.CustomerID == nil {
		return "", domain.ErrNoRecipient
	}
	c, err := s.customers.GetByID(ctx, *inv.CustomerID)
	if errors.Is(err, domain.ErrNotFound) {
		return "", domain.ErrNoRecipient
	}
	if err != nil {
		return "", err
	}
	if c.Email == "" {
		return "", domain.ErrNoRecipient
	}
	return c.Email, nil
}

// PreviewLine computes the derived figures of a line without saving anything.
func (s *invoiceService) PreviewLine(input LineItemInput) (*billing.LineCalc, error) {
	price, err := billing.ParseAmount("price", string(input.Price))
	if err != nil {
		return nil, err
	}
	qty, err := billing.ParseAmount("units", string(input.Quantity))
	if err != nil {
		return nil, err
	}
	gst, err := billing.ParseAmount("gst", string(input.GSTRate))
	if err != nil {
		return nil, err
	}
	calc, err := billing.ComputeLine(price, qty, gst)
	if err != nil {
		return nil, err
	}
	return &calc, nil
}

// MarkOverdue moves Pending invoices whose payment window has fully elapsed
// by now to Overdue and returns how many changed. A non-positive window
// disables the sweep.
func (s *invoiceService) MarkOverdue(ctx context.Context, now time.Time) (int, error) {
	days := s.opts.OverdueAfterDays
	if days <= 0 {
		return 0, nil
	}
	invoices, err := s.repo.List(ctx)
	if err != nil {
		return 0, err
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	marked := 0
	for _, inv := range invoices {
		if inv.Status != domain.PaymentStatusPending {
			continue
		}
		issued, err := time.Parse(domain.DateLayout, inv.IssueDate)
		if err != nil {
			s.log.Warn("skipping invoice with unparsable date",
				zap.String("invoice_number", inv.InvoiceNumber), zap.String("date", inv.IssueDate))
			continue
		}
		if !today.After(issued.AddDate(0, 0, days)) {
			continue
		}
		inv.Status = domain.PaymentStatusOverdue
		if err := s.repo.Update(ctx, inv); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				continue
			}
			s.metrics.MarkedOverdue(marked)
			return marked, err
		}
		marked++
	}
	s.metrics.MarkedOverdue(marked)
	return marked, nil
}

func (s *invoiceService) resolveCustomer(ctx context.Context, inv *domain.Invoice, id uuid.UUID) error {
	c, err := s.customers.GetByID(ctx, id)
	if err != nil {
		return referenceErr("customer_id", err)
	}
	inv.CustomerID = &c.ID
	inv.CustomerName = c.Name
	if inv.Address == "" {
		inv.Address = c.Address
	}
	return nil
}

// buildItems parses the posted rows. Blank serials are numbered from 1 and
// blank HSN codes take the configured default.
func (s *invoiceService) buildItems(inputs []LineItemInput) ([]domain.LineItem, error) {
	items := make([]domain.LineItem, 0, len(inputs))
	for i, in := range inputs {
		prefix := "items[" + strconv.Itoa(i) + "]."
		if err := validateInput(in); err != nil {
			var ve *domain.ValidationError
			if errors.As(err, &ve) {
				return nil, domain.NewValidationError(prefix+ve.Field, ve.Reason)
			}
			return nil, err
		}
		qty, err := billing.ParseAmount(prefix+"units", string(in.Quantity))
		if err != nil {
			return nil, err
		}
		price, err := billing.ParseAmount(prefix+"price", string(in.Price))
		if err != nil {
			return nil, err
		}
		gst, err := billing.ParseAmount(prefix+"gst", string(in.GSTRate))
		if err != nil {
			return nil, err
		}
		item := domain.LineItem{
			Serial:      strings.TrimSpace(in.Serial),
			Description: in.Description,
			HSN:         strings.TrimSpace(in.HSN),
			Quantity:    qty,
			Unit:        in.Unit,
			Price:       price,
			GSTRate:     gst,
		}
		if item.Serial == "" {
			item.Serial = strconv.Itoa(i + 1)
		}
		if item.HSN == "" {
			item.HSN = s.opts.DefaultHSN
		}
		items = append(items, item)
	}
	return items, nil
}

// takenNumbers returns every invoice number in use, ignoring the invoice
// with id except.
func (s *invoiceService) takenNumbers(ctx context.Context, except uuid.UUID) (map[string]bool, error) {
	invoices, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	taken := make(map[string]bool, len(invoices))
	for _, inv := range invoices {
		if inv.ID != except {
			taken[inv.InvoiceNumber] = true
		}
	}
	return taken, nil
}

// nextNumber draws INV-<year>-<seq> numbers from the per-year sequence until
// one is free.
func (s *invoiceService) nextNumber(ctx context.Context, issueDate string, taken map[string]bool) (string, error) {
	year := issueDate[:4]
	for attempt := 0; attempt < maxNumberAttempts; attempt++ {
		n, err := s.seq.Next(ctx, "invoice-"+year)
		if err != nil {
			return "", err
		}
		number := fmt.Sprintf("INV-%s-%03d", year, n)
		if !taken[number] {
			return number, nil
		}
		s.log.Warn("generated invoice number already in use", zap.String("invoice_number", number))
	}
	return "", domain.ErrDuplicateInvoiceNumber
}

package render

import (
	"bytes"
	"fmt"

	"hvacbill/internal/domain"
)

// ContentTypePDF is the media type of rendered documents.
const ContentTypePDF = "application/pdf"

// Document is a rendered, downloadable invoice.
type Document struct {
	Filename    string
	ContentType string
	Pages       int
	Content     []byte
}

// Renderer turns invoices into PDF documents.
type Renderer struct {
	letterhead Letterhead
	newSurface func(Letterhead) (Surface, error)
}

// NewRenderer creates a Renderer that prints lh on every invoice. Empty
// letterhead fields fall back to DefaultLetterhead.
func NewRenderer(lh Letterhead) *Renderer {
	return &Renderer{
		letterhead: lh.withDefaults(),
		newSurface: func(lh Letterhead) (Surface, error) { return NewPDFSurface(lh) },
	}
}

// Filename returns the download name for an invoice number.
func Filename(invoiceNumber string) string {
	return "Invoice-" + invoiceNumber + ".pdf"
}

// Render lays out inv and returns the finished document.
func (r *Renderer) Render(inv *domain.Invoice) (*Document, error) {
	s, err := r.newSurface(r.letterhead)
	if err != nil {
		return nil, fmt.Errorf("renderer.Render: %w", err)
	}
	if err := Layout(s, inv, r.letterhead); err != nil {
		return nil, fmt.Errorf("renderer.Render: %w", err)
	}
	var buf bytes.Buffer
	if err := s.Output(&buf); err != nil {
		return nil, fmt.Errorf("renderer.Render: writing pdf: %w", err)
	}
	return &Document{
		Filename:    Filename(inv.InvoiceNumber),
		ContentType: ContentTypePDF,
		Pages:       s.PageCount(),
		Content:     buf.Bytes(),
	}, nil
}

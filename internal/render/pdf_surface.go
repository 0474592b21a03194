package render

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/jung-kurt/gofpdf"
)

const fontFamily = "Helvetica"

// Image names registered from the letterhead.
const (
	ImageLogo   = "logo"
	ImageFooter = "footer"
)

// PDFSurface draws onto an A4 portrait gofpdf document.
type PDFSurface struct {
	pdf    *gofpdf.Fpdf
	tr     func(string) string
	images map[string]bool
}

// NewPDFSurface creates an empty A4 document and registers the letterhead
// logo and footer images when their paths are set.
func NewPDFSurface(lh Letterhead) (*PDFSurface, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetFont(fontFamily, "", 10)
	pdf.SetFillColor(255, 255, 255)

	s := &PDFSurface{
		pdf:    pdf,
		tr:     pdf.UnicodeTranslatorFromDescriptor(""),
		images: make(map[string]bool),
	}
	if err := s.registerImage(ImageLogo, lh.LogoPath); err != nil {
		return nil, err
	}
	if err := s.registerImage(ImageFooter, lh.FooterPath); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *PDFSurface) registerImage(name, path string) error {
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s image: %w", name, err)
	}
	imageType := strings.TrimPrefix(strings.ToUpper(filepath.Ext(path)), ".")
	opts := gofpdf.ImageOptions{ImageType: imageType, ReadDpi: true}
	s.pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(data))
	if err := s.pdf.Error(); err != nil {
		return fmt.Errorf("registering %s image: %w", name, err)
	}
	s.images[name] = true
	return nil
}

func (s *PDFSurface) AddPage() { s.pdf.AddPage() }

func (s *PDFSurface) SetFont(style string, size float64) {
	s.pdf.SetFont(fontFamily, style, size)
}

// The core fonts only cover cp1252. The rupee sign is spelled out and other
// runes outside the code page print as '.'.
var currencyReplacer = strings.NewReplacer("₹", "Rs.")

// encode converts UTF-8 text to the single-byte form the core fonts draw.
// Layout strings stay UTF-8 and are encoded only here.
func (s *PDFSurface) encode(text string) string {
	return s.tr(currencyReplacer.Replace(text))
}

func (s *PDFSurface) Text(x, y float64, text string) {
	s.pdf.Text(x, y, s.encode(text))
}

func (s *PDFSurface) TextWidth(text string) float64 {
	return s.pdf.GetStringWidth(s.encode(text))
}

// SplitText wraps on the encoded widths but returns UTF-8 lines, so Text
// encodes each line exactly once.
func (s *PDFSurface) SplitText(text string, width float64) []string {
	return wrapText(text, width, s.TextWidth)
}

func (s *PDFSurface) Rect(x, y, w, h float64, fill bool) {
	style := "D"
	if fill {
		style = "F"
	}
	s.pdf.Rect(x, y, w, h, style)
}

func (s *PDFSurface) Image(name string, x, y, w, h float64) {
	if !s.images[name] {
		return
	}
	s.pdf.ImageOptions(name, x, y, w, h, false, gofpdf.ImageOptions{}, 0, "")
}

func (s *PDFSurface) PageCount() int { return s.pdf.PageCount() }

func (s *PDFSurface) Output(w io.Writer) error {
	return s.pdf.Output(w)
}

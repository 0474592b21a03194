package render

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"

	"hvacbill/internal/billing"
	"hvacbill/internal/domain"
)

type column struct {
	title string
	x     float64
	width float64
}

// Fixed table template, left to right.
var columns = []column{
	{"SL NO", 20, 13},
	{"ITEM DESCRIPTION", 33, 47},
	{"HSN", 80, 15},
	{"QTY", 95, 15},
	{"RATE", 110, 15},
	{"GST", 125, 15},
	{"CGST", 140, 17.5},
	{"SGST", 157.5, 17.5},
	{"TOTAL AMT", 175, 20},
}

const descriptionColumn = 1

// Page geometry in millimetres.
const (
	marginLeft   = 20.0
	contentWidth = 170.0
	titleX       = 105.0
	titleY       = 45.0
	partyTop     = 60.0
	lineStep     = 5.0
	infoLabelX   = 150.0
	invoiceNoX   = 173.0
	dateX        = 165.0

	tableWidth      = 190.0
	headerHeight    = 10.0
	headerGap       = 2.0
	continuationTop = 20.0
	pageBottom      = 270.0

	minRowHeight     = 10.0
	textLineHeight   = 4.0
	rowPadding       = 4.0
	descriptionInset = 2.0
	cellInset        = 4.0
	baselineOffset   = 3.0

	totalRowHeight  = 8.0
	totalLabelWidth = 135.0
	totalValueWidth = 40.0
	afterTotals     = 15.0
	afterWords      = 20.0

	declarationWidth = 90.0
	bankLabelX       = 150.0
	bankValueX       = 170.0

	signatureY = 253.0
	footerY    = 268.0
)

// Font sizes in points.
const (
	titleSize = 16.0
	bodySize  = 10.0
	tableSize = 9.0
)

// RowHeight is the height of a table row whose tallest cell wraps to lines.
func RowHeight(lines int) float64 {
	return math.Max(minRowHeight, float64(lines)*textLineHeight+rowPadding)
}

// Layout draws inv onto s as a single pass over the fixed invoice template.
// The grand total and amount in words are derived from the line items, so a
// stale stored total never reaches the page.
func Layout(s Surface, inv *domain.Invoice, lh Letterhead) error {
	lh = lh.withDefaults()
	totals := billing.Aggregate(inv.Items)
	words, err := billing.AmountInWords(totals.Total)
	if err != nil {
		return err
	}

	s.AddPage()
	s.Image(ImageLogo, marginLeft, 0, contentWidth, 40)
	s.SetFont(StyleNormal, titleSize)
	s.Text(titleX-s.TextWidth(inv.BillType)/2, titleY, inv.BillType)

	y := drawParties(s, inv, partyTop)
	y = drawTableHeader(s, y)
	for i := range inv.Items {
		y = drawRow(s, &inv.Items[i], y)
	}
	y = drawGrandTotal(s, totals.Total, y)
	drawTrailer(s, inv.Notes, words, lh, y+afterTotals)
	return nil
}

func drawParties(s Surface, inv *domain.Invoice, top float64) float64 {
	y := top
	s.SetFont(StyleBold, bodySize)
	s.Text(marginLeft, y, "TO:")
	s.SetFont(StyleNormal, bodySize)
	y += lineStep
	s.Text(marginLeft, y, inv.CustomerName)
	y += lineStep
	for _, line := range strings.Split(inv.Address, "\n") {
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		s.Text(marginLeft, y, line)
		y += lineStep
	}
	if line := cityLine(inv); line != "" {
		s.Text(marginLeft, y, line)
	}

	s.SetFont(StyleBold, bodySize)
	s.Text(infoLabelX, top, "INVOICE NO:")
	s.Text(infoLabelX, top+lineStep, "DATE:")
	s.SetFont(StyleNormal, bodySize)
	s.Text(invoiceNoX, top, inv.InvoiceNumber)
	s.Text(dateX, top+lineStep, inv.IssueDate)

	return y + lineStep
}

// cityLine formats "city, state - zip", dropping whichever parts are empty.
func cityLine(inv *domain.Invoice) string {
	var parts []string
	if inv.City != "" {
		parts = append(parts, inv.City)
	}
	if inv.State != "" {
		parts = append(parts, inv.State)
	}
	line := strings.Join(parts, ", ")
	if inv.PostalCode != "" {
		if line != "" {
			line += " - "
		}
		line += inv.PostalCode
	}
	return line
}

func drawTableHeader(s Surface, y float64) float64 {
	s.SetFont(StyleBold, tableSize)
	s.Rect(marginLeft, y, tableWidth, headerHeight, true)
	for _, col := range columns {
		s.Rect(col.x, y, col.width, headerHeight, false)
		drawCentered(s, s.SplitText(col.title, col.width-cellInset), col.x, y, col.width, headerHeight)
	}
	return y + headerHeight + headerGap
}

func drawRow(s Surface, item *domain.LineItem, y float64) float64 {
	s.SetFont(StyleNormal, tableSize)
	cells := rowCells(item)
	wrapped := make([][]string, len(columns))
	tallest := 0
	for i, col := range columns {
		inset := cellInset
		if i == descriptionColumn {
			inset = descriptionInset
		}
		wrapped[i] = s.SplitText(cells[i], col.width-inset)
		tallest = max(tallest, len(wrapped[i]))
	}
	h := RowHeight(tallest)

	if y+h > pageBottom && firstRowY()+h <= pageBottom {
		y = continueTable(s)
	}
	if y+h <= pageBottom {
		drawCells(s, wrapped, 0, tallest, y, h)
		return y + h
	}

	// Taller than a page: continue the cells on the following pages.
	for from := 0; from < tallest; {
		fit := int((pageBottom - y - rowPadding) / textLineHeight)
		if fit < 2 {
			y = continueTable(s)
			continue
		}
		to := min(from+fit, tallest)
		chunk := RowHeight(to - from)
		drawCells(s, wrapped, from, to, y, chunk)
		y += chunk
		from = to
		if from < tallest {
			y = continueTable(s)
		}
	}
	return y
}

// firstRowY is where rows start on a continuation page.
func firstRowY() float64 {
	return continuationTop + headerHeight + headerGap
}

// continueTable starts a new page with the table header and returns the y of
// the first row.
func continueTable(s Surface) float64 {
	s.AddPage()
	y := drawTableHeader(s, continuationTop)
	s.SetFont(StyleNormal, tableSize)
	return y
}

// drawCells draws lines [from, to) of every wrapped cell as one row of height h.
func drawCells(s Surface, wrapped [][]string, from, to int, y, h float64) {
	for i, col := range columns {
		s.Rect(col.x, y, col.width, h, false)
		lines := wrapped[i]
		if from >= len(lines) {
			lines = nil
		} else {
			lines = lines[from:min(to, len(lines))]
		}
		drawCentered(s, lines, col.x, y, col.width, h)
	}
}

func rowCells(item *domain.LineItem) []string {
	return []string{
		item.Serial,
		item.Description,
		item.HSN,
		item.Quantity.String() + item.Unit.Suffix(),
		item.Price.StringFixed(2),
		percentOrDash(item.GSTRate),
		amountOrDash(item.CGST),
		amountOrDash(item.SGST),
		item.Total.StringFixed(2),
	}
}

func percentOrDash(d decimal.Decimal) string {
	if d.IsZero() {
		return "-"
	}
	return d.String() + "%"
}

func amountOrDash(d decimal.Decimal) string {
	if d.IsZero() {
		return "-"
	}
	return d.StringFixed(2)
}

func drawGrandTotal(s Surface, total decimal.Decimal, y float64) float64 {
	if y+totalRowHeight > pageBottom {
		y = continueTable(s)
	}
	s.SetFont(StyleBold, tableSize)
	s.Rect(marginLeft, y, totalLabelWidth, totalRowHeight, false)
	s.Rect(marginLeft+totalLabelWidth, y, totalValueWidth, totalRowHeight, false)
	drawCentered(s, []string{"GRAND TOTAL"}, marginLeft, y, totalLabelWidth, totalRowHeight)
	drawCentered(s, []string{total.StringFixed(2)}, marginLeft+totalLabelWidth, y, totalValueWidth, totalRowHeight)
	return y + totalRowHeight
}

// drawCentered centres lines inside the cell both ways.
func drawCentered(s Surface, lines []string, x, y, w, h float64) {
	startY := y + (h-float64(len(lines))*textLineHeight)/2 + baselineOffset
	for i, line := range lines {
		s.Text(x+(w-s.TextWidth(line))/2, startY+float64(i)*textLineHeight, line)
	}
}

// trailerHeight is the vertical space used by notes, amount in words and the
// declaration/bank block.
func trailerHeight(noteLines, declarationLines int) float64 {
	h := afterWords
	if noteLines > 0 {
		h += lineStep + float64(noteLines)*textLineHeight + lineStep
	}
	declaration := lineStep + float64(max(declarationLines-1, 0))*textLineHeight
	return h + math.Max(declaration, 3*lineStep)
}

func drawTrailer(s Surface, notes, words string, lh Letterhead, y float64) {
	s.SetFont(StyleNormal, bodySize)
	noteLines := s.SplitText(notes, contentWidth)
	s.SetFont(StyleNormal, tableSize)
	declaration := s.SplitText(lh.Declaration, declarationWidth)

	// Keep the trailer clear of the signature captions. Notes too long for
	// one page flow from where the table ended instead.
	limit := signatureY - lineStep
	full := trailerHeight(len(noteLines), len(declaration))
	if y+full > limit && continuationTop+full <= limit {
		s.AddPage()
		y = continuationTop
	}

	if len(noteLines) > 0 {
		if y+lineStep+textLineHeight > pageBottom {
			s.AddPage()
			y = continuationTop
		}
		s.SetFont(StyleBold, bodySize)
		s.Text(marginLeft, y, "Notes:")
		y += lineStep
		s.SetFont(StyleNormal, bodySize)
		for _, line := range noteLines {
			if y > pageBottom {
				s.AddPage()
				y = continuationTop
			}
			s.Text(marginLeft, y, line)
			y += textLineHeight
		}
		y += lineStep
	}

	if y+trailerHeight(0, len(declaration)) > limit {
		s.AddPage()
		y = continuationTop
	}

	s.SetFont(StyleBold, bodySize)
	s.Text(marginLeft, y, "Amount in Words:")
	s.SetFont(StyleNormal, bodySize)
	s.Text(marginLeft, y+lineStep, words)
	y += afterWords

	s.SetFont(StyleBold, tableSize)
	s.Text(marginLeft, y, "Declaration:")
	bankY := y
	s.SetFont(StyleNormal, tableSize)
	for i, line := range declaration {
		s.Text(marginLeft, y+lineStep+float64(i)*textLineHeight, line)
	}

	bank := [][2]string{
		{"Bank name:", lh.BankName},
		{"Ac/no:", lh.AccountNumber},
		{"IFSC code:", lh.IFSC},
		{"G PAY:", lh.UPI},
	}
	for i, row := range bank {
		rowY := bankY + float64(i)*lineStep
		s.SetFont(StyleBold, tableSize)
		s.Text(bankLabelX, rowY, row[0])
		s.SetFont(StyleNormal, tableSize)
		s.Text(bankValueX, rowY, row[1])
	}

	s.SetFont(StyleNormal, tableSize)
	s.Text(20, signatureY, "Customer Signature:")
	s.Text(75, signatureY, "Computer generated invoice requires no signature:")
	s.Text(150, signatureY, "For "+lh.CompanyName+":")
	s.Image(ImageFooter, marginLeft, footerY, contentWidth, 30)
}

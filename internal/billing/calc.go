package billing

import (
	"errors"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"hvacbill/internal/domain"
)

var (
	hundred = decimal.NewFromInt(100)
	two     = decimal.NewFromInt(2)
)

// LineCalc holds the derived figures for one line item, each rounded to 2 places.
// GSTAmount is the rounded tax on the subtotal. CGST and SGST are its rounded
// halves, so when GSTAmount has an odd number of paise CGST+SGST is one paisa
// more than GSTAmount (1.00 at 5% gives 0.05 against 0.03+0.03). Total always
// follows CGST+SGST.
type LineCalc struct {
	Subtotal  decimal.Decimal `json:"subtotal"`
	GSTAmount decimal.Decimal `json:"gst_amount"`
	CGST      decimal.Decimal `json:"cgst"`
	SGST      decimal.Decimal `json:"sgst"`
	Total     decimal.Decimal `json:"total"`
}

// Totals holds the invoice-level sums.
type Totals struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Tax      decimal.Decimal `json:"tax"`
	Total    decimal.Decimal `json:"total"`
}

// ParseAmount parses a numeric form field. An empty value is zero; anything
// non-numeric or negative is rejected.
func ParseAmount(field, raw string) (decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, domain.NewValidationError(field, "must be numeric")
	}
	if d.IsNegative() {
		return decimal.Zero, domain.NewValidationError(field, "must not be negative")
	}
	return d, nil
}

// ComputeLine derives subtotal, GST and its CGST/SGST halves for one line.
// CGST and SGST are each half of the rounded GST amount, rounded again, and
// the line total is subtotal + CGST + SGST.
func ComputeLine(price, quantity, gstPercent decimal.Decimal) (LineCalc, error) {
	switch {
	case price.IsNegative():
		return LineCalc{}, domain.NewValidationError("price", "must not be negative")
	case quantity.IsNegative():
		return LineCalc{}, domain.NewValidationError("units", "must not be negative")
	case gstPercent.IsNegative():
		return LineCalc{}, domain.NewValidationError("gst", "must not be negative")
	}

	subtotal := price.Mul(quantity).Round(2)
	gst := subtotal.Mul(gstPercent).Div(hundred).Round(2)
	half := gst.Div(two).Round(2)

	return LineCalc{
		Subtotal:  subtotal,
		GSTAmount: gst,
		CGST:      half,
		SGST:      half,
		Total:     subtotal.Add(half).Add(half),
	}, nil
}

// ApplyLine recomputes the derived fields of item in place.
func ApplyLine(item *domain.LineItem) error {
	calc, err := ComputeLine(item.Price, item.Quantity, item.GSTRate)
	if err != nil {
		return err
	}
	item.CGST = calc.CGST
	item.SGST = calc.SGST
	item.Total = calc.Total
	return nil
}

// Aggregate sums the already-rounded per-line figures. Because every line is
// rounded when computed, the decimal sums are exact and the final rounding
// never moves a value.
func Aggregate(items []domain.LineItem) Totals {
	subtotal := decimal.Zero
	tax := decimal.Zero
	total := decimal.Zero
	for i := range items {
		item := &items[i]
		subtotal = subtotal.Add(item.Price.Mul(item.Quantity).Round(2))
		tax = tax.Add(item.CGST).Add(item.SGST)
		total = total.Add(item.Total)
	}
	return Totals{
		Subtotal: subtotal.Round(2),
		Tax:      tax.Round(2),
		Total:    total.Round(2),
	}
}

// Recalculate refreshes every line of inv and then its totals.
func Recalculate(inv *domain.Invoice) error {
	for i := range inv.Items {
		if err := ApplyLine(&inv.Items[i]); err != nil {
			var ve *domain.ValidationError
			if errors.As(err, &ve) {
				return domain.NewValidationError("items["+strconv.Itoa(i)+"]."+ve.Field, ve.Reason)
			}
			return err
		}
	}
	t := Aggregate(inv.Items)
	inv.Subtotal = t.Subtotal
	inv.TaxTotal = t.Tax
	inv.GrandTotal = t.Total
	return nil
}

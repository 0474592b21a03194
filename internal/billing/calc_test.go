package billing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hvacbill/internal/domain"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestComputeLine(t *testing.T) {
	tests := []struct {
		name                              string
		price, qty, gst                   string
		subtotal, gstAmt, half, wantTotal string
	}{
		{"simple", "1000", "2", "18", "2000.00", "360.00", "180.00", "2360.00"},
		{"no tax", "450", "1", "0", "450.00", "0.00", "0.00", "450.00"},
		{"fractional qty", "125.50", "2.5", "18", "313.75", "56.48", "28.24", "370.23"},
		{"odd cent split", "0.25", "1", "18", "0.25", "0.05", "0.03", "0.31"},
		{"zero qty", "500", "0", "18", "0.00", "0.00", "0.00", "0.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ComputeLine(d(tt.price), d(tt.qty), d(tt.gst))
			require.NoError(t, err)
			assert.Equal(t, tt.subtotal, got.Subtotal.StringFixed(2))
			assert.Equal(t, tt.gstAmt, got.GSTAmount.StringFixed(2))
			assert.Equal(t, tt.half, got.CGST.StringFixed(2))
			assert.True(t, got.CGST.Equal(got.SGST))
			assert.Equal(t, tt.wantTotal, got.Total.StringFixed(2))
			assert.True(t, got.Total.Equal(got.Subtotal.Add(got.CGST.Mul(two))))
		})
	}
}

func TestComputeLine_HalfSplitPaisaGap(t *testing.T) {
	got, err := ComputeLine(d("1.00"), d("1"), d("5"))
	require.NoError(t, err)

	assert.Equal(t, "0.05", got.GSTAmount.StringFixed(2))
	assert.Equal(t, "0.03", got.CGST.StringFixed(2))
	assert.Equal(t, "1.06", got.Total.StringFixed(2))

	for _, price := range []string{"0.01", "0.25", "1.00", "19.99", "125.50", "999.99"} {
		for _, rate := range []string{"5", "12", "18", "28"} {
			got, err := ComputeLine(d(price), d("1"), d(rate))
			require.NoError(t, err)
			gap := got.CGST.Add(got.SGST).Sub(got.GSTAmount)
			assert.True(t, gap.GreaterThanOrEqual(decimal.Zero) && gap.LessThanOrEqual(d("0.01")),
				"price %s rate %s: gap %s", price, rate, gap)
		}
	}
}

func TestComputeLine_RejectsNegative(t *testing.T) {
	tests := []struct {
		name            string
		price, qty, gst string
		field           string
	}{
		{"price", "-1", "1", "18", "price"},
		{"quantity", "1", "-2", "18", "units"},
		{"gst", "1", "1", "-5", "gst"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ComputeLine(d(tt.price), d(tt.qty), d(tt.gst))
			var ve *domain.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.field, ve.Field)
		})
	}
}

func TestComputeLine_Idempotent(t *testing.T) {
	item := domain.LineItem{Price: d("333.33"), Quantity: d("3"), GSTRate: d("12.5")}
	require.NoError(t, ApplyLine(&item))
	first := item
	require.NoError(t, ApplyLine(&item))
	assert.Equal(t, first, item)
}

func TestParseAmount(t *testing.T) {
	v, err := ParseAmount("price", "")
	require.NoError(t, err)
	assert.True(t, v.IsZero())

	v, err = ParseAmount("price", " 12.50 ")
	require.NoError(t, err)
	assert.Equal(t, "12.5", v.String())

	_, err = ParseAmount("price", "abc")
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = ParseAmount("price", "-3")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestAggregate(t *testing.T) {
	items := []domain.LineItem{
		{Price: d("125.50"), Quantity: d("2.5"), GSTRate: d("18")},
		{Price: d("0.25"), Quantity: d("1"), GSTRate: d("18")},
		{Price: d("999.99"), Quantity: d("3"), GSTRate: d("28")},
	}
	sum := decimal.Zero
	for i := range items {
		require.NoError(t, ApplyLine(&items[i]))
		sum = sum.Add(items[i].Total)
	}

	totals := Aggregate(items)
	assert.True(t, totals.Total.Equal(sum.Round(2)), "total %s != %s", totals.Total, sum)
	assert.True(t, totals.Total.Equal(totals.Subtotal.Add(totals.Tax)))
	assert.Equal(t, "3313.97", totals.Subtotal.StringFixed(2))
}

func TestAggregate_Empty(t *testing.T) {
	totals := Aggregate(nil)
	assert.Equal(t, "0.00", totals.Subtotal.StringFixed(2))
	assert.Equal(t, "0.00", totals.Tax.StringFixed(2))
	assert.Equal(t, "0.00", totals.Total.StringFixed(2))
}

func TestRecalculate(t *testing.T) {
	inv := &domain.Invoice{Items: []domain.LineItem{
		{Price: d("1000"), Quantity: d("2"), GSTRate: d("18")},
		{Price: d("500"), Quantity: d("1"), GSTRate: d("0")},
	}}
	require.NoError(t, Recalculate(inv))
	assert.Equal(t, "2500.00", inv.Subtotal.StringFixed(2))
	assert.Equal(t, "360.00", inv.TaxTotal.StringFixed(2))
	assert.Equal(t, "2860.00", inv.GrandTotal.StringFixed(2))

	inv.Items[1].Price = d("-1")
	err := Recalculate(inv)
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "items[1].price", ve.Field)
}

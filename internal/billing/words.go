package billing

import (
	"strings"

	"github.com/shopspring/decimal"

	"hvacbill/internal/domain"
)

// MaxWordsAmount is the largest value ToWords can spell (99 crore and change).
const MaxWordsAmount int64 = 999_999_999

var ones = []string{
	"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine", "Ten",
	"Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen", "Sixteen", "Seventeen", "Eighteen", "Nineteen",
}

var tens = []string{"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy", "Eighty", "Ninety"}

// ToWords spells n using the Indian grouping (crore, lakh, thousand, hundred),
// upper-cased. Zero is spelled "ZERO".
//
//	1234567 -> "TWELVE LAKH THIRTY FOUR THOUSAND FIVE HUNDRED AND SIXTY SEVEN"
func ToWords(n int64) (string, error) {
	if n < 0 {
		return "", domain.NewValidationError("amount", "must not be negative")
	}
	if n > MaxWordsAmount {
		return "", &domain.OutOfRangeError{Value: n, Max: MaxWordsAmount}
	}
	if n == 0 {
		return "ZERO", nil
	}

	crore := n / 10_000_000
	lakh := (n / 100_000) % 100
	thousand := (n / 1000) % 100
	hundred := (n / 100) % 10
	rest := n % 100

	var parts []string
	if crore > 0 {
		parts = append(parts, under100(crore)+" Crore")
	}
	if lakh > 0 {
		parts = append(parts, under100(lakh)+" Lakh")
	}
	if thousand > 0 {
		parts = append(parts, under100(thousand)+" Thousand")
	}
	if hundred > 0 {
		parts = append(parts, ones[hundred]+" Hundred")
	}
	if rest > 0 {
		if len(parts) > 0 {
			parts = append(parts, "and "+under100(rest))
		} else {
			parts = append(parts, under100(rest))
		}
	}
	return strings.ToUpper(strings.Join(parts, " ")), nil
}

func under100(n int64) string {
	if n < 20 {
		return ones[n]
	}
	if n%10 == 0 {
		return tens[n/10]
	}
	return tens[n/10] + " " + ones[n%10]
}

// AmountInWords rounds amount to whole rupees and spells it with the
// "RUPEES ONLY" suffix used on invoices.
func AmountInWords(amount decimal.Decimal) (string, error) {
	words, err := ToWords(amount.Round(0).IntPart())
	if err != nil {
		return "", err
	}
	return words + " RUPEES ONLY", nil
}

package services

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"orcaeletricista/models"
)

// FormatBRL formats an amount in Brazilian Real notation: thousands grouped
// with dots, two decimals after a comma (e.g., R$ 1.234,56).
// Rounding happens here only; stored values keep full precision.
func FormatBRL(amount decimal.Decimal) string {
	negative := amount.IsNegative()
	raw := amount.Abs().StringFixed(2)

	parts := strings.SplitN(raw, ".", 2)
	intPart := parts[0]
	decPart := parts[1]

	result := "R$ " + applyThousandsGrouping(intPart, ".") + "," + decPart
	if negative && raw != "0.00" {
		result = "-" + result
	}
	return result
}

// applyThousandsGrouping inserts sep every 3 digits from the right.
func applyThousandsGrouping(s, sep string) string {
	n := len(s)
	if n <= 3 {
		return s
	}

	var b strings.Builder
	head := n % 3
	if head > 0 {
		b.WriteString(s[:head])
	}
	for i := head; i < n; i += 3 {
		if b.Len() > 0 {
			b.WriteString(sep)
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

// FormatDate renders t as dd/mm/yyyy in loc. A nil loc keeps t's own zone.
func FormatDate(t time.Time, loc *time.Location) string {
	if loc != nil {
		t = t.In(loc)
	}
	return t.Format("02/01/2006")
}

// FormatCalendarDate prints a calendar day as DD/MM/YYYY. No zone applies.
func FormatCalendarDate(d models.Date) string {
	return d.Format("02/01/2006")
}

// formatQty renders a quantity with a decimal comma and no trailing zeros.
func formatQty(qty decimal.Decimal) string {
	return strings.Replace(qty.String(), ".", ",", 1)
}

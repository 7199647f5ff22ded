// Package services provides the quote pricing, document generation and
// export functions behind the HTTP handlers.
package services

import (
	"github.com/shopspring/decimal"

	"orcaeletricista/models"
)

// QuoteTotals holds the derived monetary figures of a quote.
type QuoteTotals struct {
	ServicesSubtotal  decimal.Decimal `json:"servicesSubtotal"`
	MaterialsSubtotal decimal.Decimal `json:"materialsSubtotal"`
	TravelFee         decimal.Decimal `json:"travelFee"`
	Discount          decimal.Decimal `json:"discount"`
	GrandTotal        decimal.Decimal `json:"grandTotal"`
}

// LineTotal returns quantity * unitPrice without rounding.
func LineTotal(quantity, unitPrice decimal.Decimal) decimal.Decimal {
	return quantity.Mul(unitPrice)
}

// ServiceLineTotal is LineTotal for a service line.
func ServiceLineTotal(s models.SelectedService) decimal.Decimal {
	return LineTotal(decimal.NewFromInt(int64(s.Quantity)), s.UnitPrice)
}

// MaterialLineTotal is LineTotal for a material line.
func MaterialLineTotal(m models.MaterialItem) decimal.Decimal {
	return LineTotal(m.Quantity, m.UnitPrice)
}

func ServicesSubtotal(q models.Quote) decimal.Decimal {
	sum := decimal.Zero
	for _, s := range q.Services {
		sum = sum.Add(ServiceLineTotal(s))
	}
	return sum
}

func MaterialsSubtotal(q models.Quote) decimal.Decimal {
	sum := decimal.Zero
	for _, m := range q.Materials {
		sum = sum.Add(MaterialLineTotal(m))
	}
	return sum
}

// GrandTotal is services + materials + travel fee - discount. It is not
// clamped: a discount larger than the rest yields a negative total.
func GrandTotal(q models.Quote) decimal.Decimal {
	return ServicesSubtotal(q).
		Add(MaterialsSubtotal(q)).
		Add(q.TravelFee).
		Sub(q.Discount)
}

// CalcQuoteTotals computes every figure shown in a totals block.
func CalcQuoteTotals(q models.Quote) QuoteTotals {
	return QuoteTotals{
		ServicesSubtotal:  ServicesSubtotal(q),
		MaterialsSubtotal: MaterialsSubtotal(q),
		TravelFee:         q.TravelFee,
		Discount:          q.Discount,
		GrandTotal:        GrandTotal(q),
	}
}

// AggregateFleetValue sums GrandTotal over quotes. Every status counts,
// cancelled included.
func AggregateFleetValue(quotes []models.Quote) decimal.Decimal {
	sum := decimal.Zero
	for _, q := range quotes {
		sum = sum.Add(GrandTotal(q))
	}
	return sum
}

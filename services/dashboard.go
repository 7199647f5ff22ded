package services

import (
	"strings"

	"github.com/shopspring/decimal"

	"orcaeletricista/models"
)

// recentQuotesLimit is how many quotes the dashboard lists.
const recentQuotesLimit = 5

// QuoteSummary is a quote row as shown in lists, with its grand total.
type QuoteSummary struct {
	models.Quote
	Total decimal.Decimal `json:"total"`
}

// DashboardSummary is the data behind the dashboard view.
type DashboardSummary struct {
	TotalValue    decimal.Decimal `json:"totalValue"`
	QuoteCount    int             `json:"quoteCount"`
	PendingCount  int             `json:"pendingCount"`
	ApprovedCount int             `json:"approvedCount"`
	Recent        []QuoteSummary  `json:"recent"`
}

// Summarize builds a QuoteSummary per quote, keeping order.
func Summarize(quotes []models.Quote) []QuoteSummary {
	out := make([]QuoteSummary, 0, len(quotes))
	for _, q := range quotes {
		out = append(out, QuoteSummary{Quote: q, Total: GrandTotal(q)})
	}
	return out
}

// BuildDashboard aggregates quotes (newest first). The total value counts
// every quote regardless of status.
func BuildDashboard(quotes []models.Quote) DashboardSummary {
	d := DashboardSummary{
		TotalValue: AggregateFleetValue(quotes),
		QuoteCount: len(quotes),
	}
	for _, q := range quotes {
		switch q.Status {
		case models.StatusPending:
			d.PendingCount++
		case models.StatusApproved:
			d.ApprovedCount++
		}
	}
	d.Recent = Summarize(quotes[:min(len(quotes), recentQuotesLimit)])
	return d
}

// FilterQuotes keeps quotes whose client name or address contains term,
// ignoring case. A blank term keeps everything.
func FilterQuotes(quotes []models.Quote, term string) []models.Quote {
	term = strings.TrimSpace(term)
	out := make([]models.Quote, 0, len(quotes))
	for _, q := range quotes {
		if term == "" || containsFold(q.ClientName, term) || containsFold(q.Address, term) {
			out = append(out, q)
		}
	}
	return out
}

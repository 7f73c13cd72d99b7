package export

import (
	"github.com/shopspring/decimal"

	"github.com/efekanoption-hub/FisTaray-c/internal/extraction"
)

// CategoryTotal aggregates the receipts of one category.
type CategoryTotal struct {
	Category extraction.Category `json:"category"`
	Count    int                 `json:"count"`
	VATTotal decimal.Decimal     `json:"vat_total"`
	Total    decimal.Decimal     `json:"total"`
	Share    decimal.Decimal     `json:"share"` // percent of overall spending
}

// Summary aggregates a receipt history.
type Summary struct {
	ReceiptCount int             `json:"receipt_count"`
	Total        decimal.Decimal `json:"total"`
	VATTotal     decimal.Decimal `json:"vat_total"`
	Categories   []CategoryTotal `json:"categories"`
}

var hundred = decimal.NewFromInt(100)

// Summarize totals receipts overall and per category. Categories follow
// classification priority order and those without receipts are left out.
func Summarize(receipts []*extraction.Receipt) Summary {
	byCategory := make(map[extraction.Category]*CategoryTotal, len(extraction.Categories))
	summary := Summary{
		Total:      decimal.Zero,
		VATTotal:   decimal.Zero,
		Categories: []CategoryTotal{},
	}

	for _, r := range receipts {
		summary.ReceiptCount++
		summary.Total = summary.Total.Add(r.Amount)
		summary.VATTotal = summary.VATTotal.Add(r.VATAmount)

		c, ok := byCategory[r.Category]
		if !ok {
			c = &CategoryTotal{Category: r.Category, VATTotal: decimal.Zero, Total: decimal.Zero}
			byCategory[r.Category] = c
		}
		c.Count++
		c.Total = c.Total.Add(r.Amount)
		c.VATTotal = c.VATTotal.Add(r.VATAmount)
	}

	for _, category := range extraction.Categories {
		c, ok := byCategory[category]
		if !ok {
			continue
		}
		c.Share = decimal.Zero
		if !summary.Total.IsZero() {
			c.Share = c.Total.Div(summary.Total).Mul(hundred).Round(2)
		}
		summary.Categories = append(summary.Categories, *c)
	}

	return summary
}

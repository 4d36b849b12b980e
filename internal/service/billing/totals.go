package billing

import "github.com/caremitra/portal/internal/model"

// deriveItem recomputes the three derived fields of a line item from its
// editable fields. It is the only writer of Amount, GSTAmount and
// DiscountAmount.
func deriveItem(item *model.LineItem) {
	item.Amount = item.Quantity * item.Rate
	item.GSTAmount = item.Amount * item.GSTPercent / 100
	item.DiscountAmount = item.Amount * item.DiscountPercent / 100
}

// Totals re-derives the four bill aggregates from a full item sequence.
// It always re-sums from scratch rather than applying deltas, so the
// aggregates cannot drift from the items. Pure function.
func Totals(items []model.LineItem) (netTotal, totalGST, totalDiscount, grandTotal float64) {
	for _, item := range items {
		netTotal += item.Amount
		totalGST += item.GSTAmount
		totalDiscount += item.DiscountAmount
	}
	grandTotal = netTotal + totalGST - totalDiscount
	return netTotal, totalGST, totalDiscount, grandTotal
}

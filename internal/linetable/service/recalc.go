package service

import linetabledomain "github.com/smallbiznis/gstdesk/internal/linetable/domain"

// recalcRow rewrites the derived fields from the row's inputs and the
// table-wide inter-state flag. A discount larger than quantity*rate yields
// a negative taxable amount and negative tax; that is surfaced as-is, not
// clamped.
func recalcRow(row *linetabledomain.LineItem, interState bool) {
	base := row.Quantity * row.Rate
	discounted := base - row.Discount
	taxAmount := discounted * row.TaxRate / 100

	if interState {
		row.IGST = taxAmount
		row.CGST = 0
		row.SGST = 0
	} else {
		row.CGST = taxAmount / 2
		row.SGST = taxAmount / 2
		row.IGST = 0
	}

	row.Amount = discounted + taxAmount
}

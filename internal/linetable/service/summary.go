package service

import linetabledomain "github.com/smallbiznis/gstdesk/internal/linetable/domain"

// Summary recomputes the table aggregates from scratch. Nothing is cached;
// any mutation is reflected on the next read.
func (t *table) Summary() linetabledomain.TableSummary {
	var summary linetabledomain.TableSummary
	for _, row := range t.rows {
		summary.Subtotal += row.Quantity * row.Rate
		summary.TotalDiscount += row.Discount
		summary.TotalCGST += row.CGST
		summary.TotalSGST += row.SGST
		summary.TotalIGST += row.IGST
		summary.TotalCess += row.Cess
		summary.GrandTotal += row.Amount
	}
	return summary
}

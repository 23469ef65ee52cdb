// Package billing holds the invoice computation core: the tax engine,
// the sequence allocator and the record assembler. Everything here is pure
// domain logic; persistence and transport live elsewhere.
package billing

import "billing-backend/internal/models"

// GST rates applied to the subtotal. CGST and SGST apply on intrastate
// sales, IGST on interstate; all three are computed on every invoice so the
// printed document can show each row.
const (
	CGSTRate = 0.025
	SGSTRate = 0.025
	IGSTRate = 0.05
)

// ComputeTotals sums the line amounts and derives the tax components.
// Amounts are trusted as-is: the form layer recomputes meters x rate on
// every edit, so by the time items arrive here each Amount is consistent.
//
// The grand total is subtotal + CGST + SGST only. IGST is computed and
// displayed but never added in; that matches the issued documents and is
// kept deliberately (see DESIGN.md). No rounding happens here, display
// formatting rounds to two decimals.
func ComputeTotals(items []models.LineItem) models.Totals {
	var subtotal float64
	for _, item := range items {
		subtotal += item.Amount
	}

	cgst := subtotal * CGSTRate
	sgst := subtotal * SGSTRate
	igst := subtotal * IGSTRate

	return models.Totals{
		Subtotal:   subtotal,
		CGST:       cgst,
		SGST:       sgst,
		IGST:       igst,
		GrandTotal: subtotal + cgst + sgst,
	}
}

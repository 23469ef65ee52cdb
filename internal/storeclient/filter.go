package storeclient

import (
	"strings"

	"billing-backend/internal/models"
)

// Refine is the client-side second filter stage. The server's Search is an
// OR across fields; Refine intersects AND-style: a non-empty invoiceNo must
// match the invoice number AND a non-empty customerName must match either
// party name. Kept as a separate stage so the observable result set is the
// composition of the two, not a single collapsed query.
func Refine(invoices []models.Invoice, invoiceNo, customerName string) []models.Invoice {
	results := invoices

	if invoiceNo != "" {
		q := strings.ToLower(invoiceNo)
		var kept []models.Invoice
		for _, inv := range results {
			if strings.Contains(strings.ToLower(inv.InvoiceNo), q) {
				kept = append(kept, inv)
			}
		}
		results = kept
	}

	if customerName != "" {
		q := strings.ToLower(customerName)
		var kept []models.Invoice
		for _, inv := range results {
			if strings.Contains(strings.ToLower(inv.Receiver.Name), q) ||
				strings.Contains(strings.ToLower(inv.Consignee.Name), q) {
				kept = append(kept, inv)
			}
		}
		results = kept
	}

	return results
}

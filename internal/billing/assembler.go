package billing

import (
	"errors"
	"fmt"
	"strings"

	"billing-backend/internal/models"
)

// ErrMissingFields is the sentinel behind every assembly rejection; callers
// use errors.Is and then inspect the wrapped ValidationError for the field
// list.
var ErrMissingFields = errors.New("required invoice fields are missing")

// ValidationError names the fields that blocked assembly so the form layer
// can highlight them.
type ValidationError struct {
	MissingFields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", ErrMissingFields.Error(), strings.Join(e.MissingFields, ", "))
}

func (e *ValidationError) Unwrap() error {
	return ErrMissingFields
}

// FormFields is the user-entered portion of the invoice form, everything
// except items and computed values.
type FormFields struct {
	Date          string
	WayBillNo     string
	TransportMode string
	VehicleNumber string
	PlaceOfSupply string
	Receiver      models.Party
	Consignee     models.Party
}

// Assemble validates the form and combines it with the items, the computed
// totals and the allocated identifier into one immutable invoice record.
// It is pure: on failure nothing partial is produced, and persistence is a
// separate explicit step for the caller.
func Assemble(form FormFields, items []models.LineItem, totals models.Totals, invoiceNo string) (*models.Invoice, error) {
	var missing []string
	if strings.TrimSpace(form.Receiver.Name) == "" {
		missing = append(missing, "receiver.name")
	}
	if strings.TrimSpace(form.Consignee.Name) == "" {
		missing = append(missing, "consignee.name")
	}
	if len(items) == 0 {
		missing = append(missing, "items")
	}
	for i, item := range items {
		if strings.TrimSpace(item.Description) == "" {
			missing = append(missing, fmt.Sprintf("items[%d].description", i))
		}
		if item.Amount == 0 {
			missing = append(missing, fmt.Sprintf("items[%d].amount", i))
		}
	}
	if len(missing) > 0 {
		return nil, &ValidationError{MissingFields: missing}
	}

	invoice := &models.Invoice{
		InvoiceNo:     invoiceNo,
		Date:          form.Date,
		WayBillNo:     form.WayBillNo,
		TransportMode: form.TransportMode,
		VehicleNumber: form.VehicleNumber,
		PlaceOfSupply: form.PlaceOfSupply,
		Receiver:      form.Receiver,
		Consignee:     form.Consignee,
		Items:         append([]models.LineItem(nil), items...),
		Subtotal:      totals.Subtotal,
		CGST:          totals.CGST,
		SGST:          totals.SGST,
		IGST:          totals.IGST,
		GrandTotal:    totals.GrandTotal,
		AmountInWords: AmountInWords(totals.GrandTotal),
	}

	return invoice, nil
}

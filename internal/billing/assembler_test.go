package billing

import (
	"errors"
	"testing"

	"billing-backend/internal/models"
)

func validForm() FormFields {
	return FormFields{
		Date:          "2025-01-15",
		TransportMode: "Road",
		Receiver:      models.Party{Name: "Sri Lakshmi Textiles", State: "Telangana", Code: "36"},
		Consignee:     models.Party{Name: "Sri Lakshmi Textiles", State: "Telangana", Code: "36"},
	}
}

func validItems() []models.LineItem {
	return []models.LineItem{
		{Description: "Grey Cloth A", HSNCode: "5208", Meters: 100, Rate: 50, Amount: 5000},
	}
}

func TestAssembleRejectsMissingFields(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*FormFields, *[]models.LineItem)
		wantMissing string
	}{
		{
			name: "empty receiver name",
			mutate: func(f *FormFields, _ *[]models.LineItem) {
				f.Receiver.Name = ""
			},
			wantMissing: "receiver.name",
		},
		{
			name: "empty consignee name",
			mutate: func(f *FormFields, _ *[]models.LineItem) {
				f.Consignee.Name = "   "
			},
			wantMissing: "consignee.name",
		},
		{
			name: "no items",
			mutate: func(_ *FormFields, items *[]models.LineItem) {
				*items = nil
			},
			wantMissing: "items",
		},
		{
			name: "item without description",
			mutate: func(_ *FormFields, items *[]models.LineItem) {
				(*items)[0].Description = ""
			},
			wantMissing: "items[0].description",
		},
		{
			name: "item with zero amount",
			mutate: func(_ *FormFields, items *[]models.LineItem) {
				(*items)[0].Amount = 0
			},
			wantMissing: "items[0].amount",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := validForm()
			items := validItems()
			tt.mutate(&form, &items)

			invoice, err := Assemble(form, items, ComputeTotals(items), "INV20250115-001")
			if invoice != nil {
				t.Fatal("expected no invoice on validation failure")
			}
			if !errors.Is(err, ErrMissingFields) {
				t.Fatalf("error = %v, want ErrMissingFields", err)
			}

			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("error %T does not unwrap to *ValidationError", err)
			}
			found := false
			for _, f := range verr.MissingFields {
				if f == tt.wantMissing {
					found = true
				}
			}
			if !found {
				t.Errorf("MissingFields = %v, want to contain %q", verr.MissingFields, tt.wantMissing)
			}
		})
	}
}

func TestAssembleBuildsImmutableRecord(t *testing.T) {
	form := validForm()
	items := []models.LineItem{
		{Description: "Grey Cloth A", HSNCode: "5208", Meters: 100, Rate: 50, Amount: 5000},
		{Description: "Grey Cloth B", HSNCode: "5208", Meters: 50, Rate: 80, Amount: 4000},
		{Description: "Dye Lot C", HSNCode: "3204", Meters: 20, Rate: 120, Amount: 2400},
	}
	totals := ComputeTotals(items)

	invoice, err := Assemble(form, items, totals, "INV20250115-001")
	if err != nil {
		t.Fatalf("Assemble() error = %v", err)
	}

	if invoice.InvoiceNo != "INV20250115-001" {
		t.Errorf("InvoiceNo = %q", invoice.InvoiceNo)
	}
	if invoice.GrandTotal != 11970 {
		t.Errorf("GrandTotal = %v, want 11970", invoice.GrandTotal)
	}
	if invoice.AmountInWords != "ELEVEN THOUSAND NINE HUNDRED SEVENTY RUPEES ONLY" {
		t.Errorf("AmountInWords = %q", invoice.AmountInWords)
	}

	// The record owns its own copy of the item slice.
	items[0].Description = "mutated"
	if invoice.Items[0].Description != "Grey Cloth A" {
		t.Error("invoice items aliased the caller's slice")
	}
}

package services

import (
	"bytes"
	"fmt"

	"billing-backend/internal/config"
	"billing-backend/internal/models"
	"billing-backend/internal/timeutil"

	"github.com/jung-kurt/gofpdf/v2"
)

// PDFService renders the printable A4 tax invoice, matching the layout of
// the paper invoices the company already issues.
type PDFService struct {
	cfg *config.Config
}

func NewPDFService(cfg *config.Config) *PDFService {
	return &PDFService{cfg: cfg}
}

// Render produces the invoice PDF. Any layout failure is wrapped so the
// handler can surface it as a render failure with no state change.
func (s *PDFService) Render(invoice *models.Invoice) ([]byte, error) {
	seller := s.cfg.Seller

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	// Masthead
	pdf.SetFont("Arial", "", 9)
	pdf.CellFormat(190, 5, "TAX INVOICE", "LTR", 1, "C", false, 0, "")
	pdf.CellFormat(190, 4, seller.Phone, "LR", 1, "L", false, 0, "")
	pdf.SetTextColor(220, 20, 60)
	pdf.SetFont("Arial", "B", 18)
	pdf.CellFormat(190, 9, seller.Name, "LR", 1, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(190, 5, seller.Tagline, "LR", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 9)
	pdf.CellFormat(190, 5, seller.Address, "LR", 1, "C", false, 0, "")
	pdf.CellFormat(95, 5, "GSTIN: "+seller.GSTIN, "LB", 0, "L", false, 0, "")
	pdf.CellFormat(95, 5, "Prop: "+seller.Proprietor, "RB", 1, "R", false, 0, "")

	// Invoice metadata grid
	displayDate := invoice.Date
	if d, err := timeutil.ParseDate(invoice.Date); err == nil {
		displayDate = d.Format(timeutil.DisplayLayout)
	}

	pdf.SetFont("Arial", "", 9)
	metaRow := func(label1, value1, label2, value2 string) {
		pdf.SetFont("Arial", "B", 9)
		pdf.CellFormat(35, 6, label1, "1", 0, "L", false, 0, "")
		pdf.SetFont("Arial", "", 9)
		pdf.CellFormat(60, 6, value1, "1", 0, "L", false, 0, "")
		pdf.SetFont("Arial", "B", 9)
		pdf.CellFormat(35, 6, label2, "1", 0, "L", false, 0, "")
		pdf.SetFont("Arial", "", 9)
		pdf.CellFormat(60, 6, value2, "1", 1, "L", false, 0, "")
	}
	metaRow("Invoice No.", invoice.InvoiceNo, "Date", displayDate)
	metaRow("Way bill / DC No.", invoice.WayBillNo, "Transportation Mode", invoice.TransportMode)
	metaRow("State", seller.State+"  Code: "+seller.StateCode, "Vehicle Number", invoice.VehicleNumber)
	metaRow("Place of Supply", invoice.PlaceOfSupply, "Date of Supply", displayDate)

	// Receiver and consignee blocks
	partyBlock := func(title string, p models.Party, border string) {
		x, y := pdf.GetXY()
		pdf.SetFont("Arial", "B", 9)
		pdf.CellFormat(95, 6, title, border, 2, "L", false, 0, "")
		pdf.SetFont("Arial", "", 9)
		pdf.SetX(x)
		pdf.CellFormat(95, 5, "Name: "+p.Name, border, 2, "L", false, 0, "")
		pdf.SetX(x)
		pdf.CellFormat(95, 5, "Address: "+p.Address, border, 2, "L", false, 0, "")
		pdf.SetX(x)
		pdf.CellFormat(95, 5, "GSTIN: "+p.GSTIN, border, 2, "L", false, 0, "")
		pdf.SetX(x)
		pdf.CellFormat(95, 5, fmt.Sprintf("State: %s    Code: %s", p.State, p.Code), border+"B", 2, "L", false, 0, "")
		pdf.SetXY(x, y)
	}
	partyBlock("Details of Receiver / Billed to:", invoice.Receiver, "L")
	pdf.SetX(105)
	partyBlock("Details of Consignee / Shipped to:", invoice.Consignee, "LR")
	pdf.Ln(26)

	// Items table
	pdf.SetFont("Arial", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	pdf.CellFormat(10, 7, "Sl.", "1", 0, "C", true, 0, "")
	pdf.CellFormat(66, 7, "Description of Goods", "1", 0, "C", true, 0, "")
	pdf.CellFormat(20, 7, "HSN", "1", 0, "C", true, 0, "")
	pdf.CellFormat(20, 7, "Pieces", "1", 0, "C", true, 0, "")
	pdf.CellFormat(22, 7, "Meters", "1", 0, "C", true, 0, "")
	pdf.CellFormat(22, 7, "Rate", "1", 0, "C", true, 0, "")
	pdf.CellFormat(30, 7, "Amount", "1", 1, "C", true, 0, "")

	pdf.SetFont("Arial", "", 9)
	for i, item := range invoice.Items {
		desc := item.Description
		if len(desc) > 40 {
			desc = desc[:37] + "..."
		}
		pdf.CellFormat(10, 6, fmt.Sprintf("%d", i+1), "1", 0, "C", false, 0, "")
		pdf.CellFormat(66, 6, desc, "1", 0, "L", false, 0, "")
		pdf.CellFormat(20, 6, item.HSNCode, "1", 0, "C", false, 0, "")
		pdf.CellFormat(20, 6, fmt.Sprintf("%.0f", item.Pieces), "1", 0, "R", false, 0, "")
		pdf.CellFormat(22, 6, fmt.Sprintf("%.2f", item.Meters), "1", 0, "R", false, 0, "")
		pdf.CellFormat(22, 6, fmt.Sprintf("%.2f", item.Rate), "1", 0, "R", false, 0, "")
		pdf.CellFormat(30, 6, fmt.Sprintf("%.2f", item.Amount), "1", 1, "R", false, 0, "")
	}

	// Totals column. IGST shown at its 5% value but excluded from the grand
	// total, same as the issued documents.
	totalRow := func(label string, value float64, bold bool) {
		style := ""
		if bold {
			style = "B"
		}
		pdf.SetFont("Arial", style, 9)
		pdf.CellFormat(160, 6, label, "1", 0, "R", false, 0, "")
		pdf.CellFormat(30, 6, fmt.Sprintf("%.2f", value), "1", 1, "R", false, 0, "")
	}
	totalRow("Total Amount Before Tax", invoice.Subtotal, false)
	totalRow("Add: CGST @ 2.5%", invoice.CGST, false)
	totalRow("Add: SGST @ 2.5%", invoice.SGST, false)
	totalRow("Add: IGST @ 5%", invoice.IGST, false)
	totalRow("Total Amount After Tax", invoice.GrandTotal, true)

	// Amount in words
	pdf.SetFont("Arial", "B", 9)
	pdf.CellFormat(190, 7, "Amount in words: "+invoice.AmountInWords, "1", 1, "L", false, 0, "")

	// Signatory block
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 9)
	pdf.CellFormat(95, 6, "Certified that the particulars given above are true and correct.", "", 0, "L", false, 0, "")
	pdf.CellFormat(95, 6, "For "+seller.Name, "", 1, "R", false, 0, "")
	pdf.Ln(14)
	pdf.CellFormat(95, 6, "", "", 0, "L", false, 0, "")
	pdf.CellFormat(95, 6, "Authorised Signatory", "", 1, "R", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render invoice pdf: %w", err)
	}
	return buf.Bytes(), nil
}

package services

import (
	"context"
	"fmt"
	"time"

	"billing-backend/internal/billing"
	"billing-backend/internal/cache"
	"billing-backend/internal/metrics"
	"billing-backend/internal/models"
	"billing-backend/internal/notify"
	"billing-backend/internal/repositories"
	"billing-backend/internal/timeutil"

	"github.com/rs/zerolog/log"
)

// InvoiceService orchestrates the invoice lifecycle on the store side:
// validate, persist, invalidate caches, notify dashboards, archive the PDF.
type InvoiceService struct {
	Repo    *repositories.InvoiceRepository
	PDF     *PDFService
	Archive *ArchiveService
	Hub     *notify.Hub
}

func NewInvoiceService(repo *repositories.InvoiceRepository, pdf *PDFService, archive *ArchiveService, hub *notify.Hub) *InvoiceService {
	return &InvoiceService{Repo: repo, PDF: pdf, Archive: archive, Hub: hub}
}

// Create validates and persists a submitted invoice. The record is
// re-assembled through the same validation the form layer uses, so a
// hand-crafted request cannot persist a record the form would reject.
// ValidationError comes back to the handler as a 400; once the commit
// succeeds the record is immutable.
func (s *InvoiceService) Create(ctx context.Context, submitted *models.Invoice) error {
	if submitted.InvoiceNo == "" {
		return &billing.ValidationError{MissingFields: []string{"invoiceNo"}}
	}

	form := billing.FormFields{
		Date:          submitted.Date,
		WayBillNo:     submitted.WayBillNo,
		TransportMode: submitted.TransportMode,
		VehicleNumber: submitted.VehicleNumber,
		PlaceOfSupply: submitted.PlaceOfSupply,
		Receiver:      submitted.Receiver,
		Consignee:     submitted.Consignee,
	}
	totals := models.Totals{
		Subtotal:   submitted.Subtotal,
		CGST:       submitted.CGST,
		SGST:       submitted.SGST,
		IGST:       submitted.IGST,
		GrandTotal: submitted.GrandTotal,
	}

	invoice, err := billing.Assemble(form, submitted.Items, totals, submitted.InvoiceNo)
	if err != nil {
		return err
	}

	if err := s.Repo.Create(ctx, invoice); err != nil {
		return err
	}

	metrics.InvoicesIssuedTotal.Inc()
	cache.InvalidateInvoices(ctx)

	if s.Hub != nil {
		s.Hub.Broadcast(notify.InvoiceIssued{
			InvoiceNo:  invoice.InvoiceNo,
			GrandTotal: invoice.GrandTotal,
		})
	}

	s.archive(invoice)
	return nil
}

// NextInvoiceNumber allocates and formats the identifier for a date.
func (s *InvoiceService) NextInvoiceNumber(ctx context.Context, date time.Time) (string, error) {
	seq, err := s.Repo.NextSequence(ctx, date)
	if err != nil {
		return "", err
	}
	metrics.SequenceAllocationsTotal.Inc()
	return fmt.Sprintf("INV%s-%03d", timeutil.DateKey(date), seq), nil
}

// List serves the full invoice list, via the response cache when warm.
func (s *InvoiceService) List(ctx context.Context) ([]*models.Invoice, error) {
	return s.Repo.List(ctx)
}

// Get returns a single invoice by number.
func (s *InvoiceService) Get(ctx context.Context, invoiceNo string) (*models.Invoice, error) {
	return s.Repo.GetByNumber(ctx, invoiceNo)
}

// Search is the server's OR-style text match stage.
func (s *InvoiceService) Search(ctx context.Context, query string) ([]*models.Invoice, error) {
	return s.Repo.Search(ctx, query)
}

// FilterByDate returns invoices in the inclusive range.
func (s *InvoiceService) FilterByDate(ctx context.Context, from, to time.Time) ([]*models.Invoice, error) {
	return s.Repo.FilterByDate(ctx, from, to)
}

// RenderPDF produces the printable A4 document for an invoice.
func (s *InvoiceService) RenderPDF(ctx context.Context, invoiceNo string) ([]byte, error) {
	invoice, err := s.Repo.GetByNumber(ctx, invoiceNo)
	if err != nil {
		return nil, err
	}
	pdf, err := s.PDF.Render(invoice)
	if err != nil {
		return nil, err
	}
	metrics.InvoicePDFsRenderedTotal.Inc()
	return pdf, nil
}

// archive uploads a copy of the issued invoice's PDF offsite. Best-effort:
// failures are logged, the invoice is already committed either way.
func (s *InvoiceService) archive(invoice *models.Invoice) {
	if s.Archive == nil || !s.Archive.Enabled() {
		return
	}

	pdf, err := s.PDF.Render(invoice)
	if err != nil {
		log.Warn().Err(err).Str("invoice_no", invoice.InvoiceNo).Msg("archive render failed")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := s.Archive.Upload(ctx, invoice.InvoiceNo+".pdf", pdf); err != nil {
		log.Warn().Err(err).Str("invoice_no", invoice.InvoiceNo).Msg("archive upload failed")
	}
}

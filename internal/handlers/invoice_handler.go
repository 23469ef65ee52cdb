package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"billing-backend/internal/billing"
	"billing-backend/internal/cache"
	"billing-backend/internal/models"
	"billing-backend/internal/repositories"
	"billing-backend/internal/services"
	"billing-backend/internal/timeutil"
	"billing-backend/pkg/utils"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"
)

type InvoiceHandler struct {
	Service *services.InvoiceService
}

func NewInvoiceHandler(s *services.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{Service: s}
}

// CreateInvoice persists a submitted invoice record.
func (h *InvoiceHandler) CreateInvoice(w http.ResponseWriter, r *http.Request) {
	var invoice models.Invoice
	if err := json.NewDecoder(r.Body).Decode(&invoice); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.Service.Create(r.Context(), &invoice); err != nil {
		var verr *billing.ValidationError
		if errors.As(err, &verr) {
			utils.JSON(w, http.StatusBadRequest, map[string]any{
				"error":         "validation failed",
				"missingFields": verr.MissingFields,
			})
			return
		}
		log.Error().Err(err).Str("invoice_no", invoice.InvoiceNo).Msg("invoice create failed")
		utils.Error(w, http.StatusInternalServerError, "Failed to save invoice")
		return
	}

	utils.JSON(w, http.StatusCreated, map[string]string{"invoiceNo": invoice.InvoiceNo})
}

// ListInvoices serves the list surface. Query parameters select the mode:
// fromDate+toDate filters by inclusive date range, customerName/invoiceNo
// runs the OR-style text search, no parameters returns everything (cached).
func (h *InvoiceHandler) ListInvoices(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	if from, to := q.Get("fromDate"), q.Get("toDate"); from != "" && to != "" {
		fromDate, err1 := timeutil.ParseDate(from)
		toDate, err2 := timeutil.ParseDate(to)
		if err1 != nil || err2 != nil {
			utils.Error(w, http.StatusBadRequest, "Invalid date range")
			return
		}
		invoices, err := h.Service.FilterByDate(r.Context(), fromDate, toDate)
		if err != nil {
			log.Error().Err(err).Msg("date filter failed")
			utils.Error(w, http.StatusInternalServerError, "Failed to load invoices")
			return
		}
		writeInvoices(w, invoices)
		return
	}

	if query := firstNonEmpty(q.Get("customerName"), q.Get("invoiceNo")); query != "" {
		invoices, err := h.Service.Search(r.Context(), query)
		if err != nil {
			log.Error().Err(err).Msg("search failed")
			utils.Error(w, http.StatusInternalServerError, "Failed to load invoices")
			return
		}
		writeInvoices(w, invoices)
		return
	}

	if payload, ok := cache.GetInvoiceList(r.Context()); ok {
		w.Header().Set("Content-Type", "application/json")
		w.Write(payload)
		return
	}

	invoices, err := h.Service.List(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("list failed")
		utils.Error(w, http.StatusInternalServerError, "Failed to load invoices")
		return
	}

	payload, err := json.Marshal(normalize(invoices))
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Failed to load invoices")
		return
	}
	cache.SetInvoiceList(r.Context(), payload)
	w.Header().Set("Content-Type", "application/json")
	w.Write(payload)
}

// GetInvoice returns a single invoice by number.
func (h *InvoiceHandler) GetInvoice(w http.ResponseWriter, r *http.Request) {
	invoiceNo := mux.Vars(r)["invoiceNo"]

	if payload, ok := cache.GetInvoice(r.Context(), invoiceNo); ok {
		w.Header().Set("Content-Type", "application/json")
		w.Write(payload)
		return
	}

	invoice, err := h.Service.Get(r.Context(), invoiceNo)
	if err != nil {
		if errors.Is(err, repositories.ErrInvoiceNotFound) {
			utils.Error(w, http.StatusNotFound, "Invoice not found")
			return
		}
		log.Error().Err(err).Str("invoice_no", invoiceNo).Msg("get failed")
		utils.Error(w, http.StatusInternalServerError, "Failed to load invoice")
		return
	}

	payload, err := json.Marshal(invoice)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Failed to load invoice")
		return
	}
	cache.SetInvoice(r.Context(), invoiceNo, payload)
	w.Header().Set("Content-Type", "application/json")
	w.Write(payload)
}

// DownloadPDF streams the rendered A4 invoice document.
func (h *InvoiceHandler) DownloadPDF(w http.ResponseWriter, r *http.Request) {
	invoiceNo := mux.Vars(r)["invoiceNo"]

	pdf, err := h.Service.RenderPDF(r.Context(), invoiceNo)
	if err != nil {
		if errors.Is(err, repositories.ErrInvoiceNotFound) {
			utils.Error(w, http.StatusNotFound, "Invoice not found")
			return
		}
		log.Error().Err(err).Str("invoice_no", invoiceNo).Msg("pdf render failed")
		utils.Error(w, http.StatusInternalServerError, "Failed to render invoice")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+invoiceNo+`.pdf"`)
	w.WriteHeader(http.StatusOK)
	w.Write(pdf)
}

// NextInvoice allocates the next invoice number for a date.
func (h *InvoiceHandler) NextInvoice(w http.ResponseWriter, r *http.Request) {
	dateParam := r.URL.Query().Get("date")
	date := timeutil.Now()
	if dateParam != "" {
		parsed, err := timeutil.ParseDate(dateParam)
		if err != nil {
			utils.Error(w, http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD")
			return
		}
		date = parsed
	}

	invoiceNo, err := h.Service.NextInvoiceNumber(r.Context(), date)
	if err != nil {
		log.Error().Err(err).Msg("sequence allocation failed")
		utils.Error(w, http.StatusInternalServerError, "Failed to allocate invoice number")
		return
	}

	utils.JSON(w, http.StatusOK, models.NextInvoiceResponse{InvoiceNo: invoiceNo})
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// normalize keeps the wire contract an array, never null.
func normalize(invoices []*models.Invoice) []*models.Invoice {
	if invoices == nil {
		return []*models.Invoice{}
	}
	return invoices
}

func writeInvoices(w http.ResponseWriter, invoices []*models.Invoice) {
	utils.JSON(w, http.StatusOK, normalize(invoices))
}

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total HTTP requests by method, path and status code",
	}, []string{"method", "path", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency by method and path",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})

	InvoicesIssuedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "invoices_issued_total",
		Help: "Invoices persisted to the store",
	})

	InvoicePDFsRenderedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "invoice_pdfs_rendered_total",
		Help: "Invoice PDFs rendered for download",
	})

	SequenceAllocationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sequence_allocations_total",
		Help: "Per-date invoice sequence numbers handed out",
	})
)

package billing

import (
	"context"
	"fmt"
	"sync"
	"time"

	"billing-backend/internal/models"

	"github.com/rs/zerolog/log"
)

// SequenceService is the external counter the allocator coordinates with.
// One implementation talks to the invoice store over HTTP; tests supply
// fakes.
type SequenceService interface {
	NextSequence(ctx context.Context, date time.Time) (*models.NextInvoiceResponse, error)
}

// Allocator produces invoice identifiers of the form
// INV<YYYYMMDD>-<seq padded to 3 digits>.
//
// It is owned by a single form session: the first successful call to Next
// caches the identifier, and every later call returns the cached value
// without another round trip, so UI re-renders cannot double-allocate.
// Reset clears the cache for the next form.
//
// When the counter service is unreachable or returns garbage the allocator
// falls back to INV<YYYYMMDD>-001. There is no durable local counter behind
// the fallback, so repeated degraded-path allocations on the same date
// collide on -001. That is a known, accepted weakness carried over from the
// system this replaces.
type Allocator struct {
	service SequenceService

	mu     sync.Mutex
	cached string
}

func NewAllocator(service SequenceService) *Allocator {
	return &Allocator{service: service}
}

// Next returns the invoice number for the given date. It never fails: any
// service error degrades to the deterministic fallback identifier.
func (a *Allocator) Next(ctx context.Context, date time.Time) string {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.cached != "" {
		return a.cached
	}

	a.cached = a.allocate(ctx, date)
	return a.cached
}

// Reset forgets the cached identifier. Called when the form is cleared or
// after submission.
func (a *Allocator) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.cached = ""
}

func (a *Allocator) allocate(ctx context.Context, date time.Time) string {
	dateKey := date.Format("20060102")
	fallback := fmt.Sprintf("INV%s-001", dateKey)

	if a.service == nil {
		return fallback
	}

	resp, err := a.service.NextSequence(ctx, date)
	if err != nil {
		log.Warn().Err(err).Str("date", dateKey).
			Msg("sequence service unavailable, using fallback invoice number")
		return fallback
	}

	// The service is authoritative over format when it returns a full
	// identifier.
	if resp.InvoiceNo != "" {
		return resp.InvoiceNo
	}
	if resp.Sequence != nil {
		return fmt.Sprintf("INV%s-%03d", dateKey, *resp.Sequence)
	}

	log.Warn().Str("date", dateKey).Msg("malformed sequence response, using fallback invoice number")
	return fallback
}

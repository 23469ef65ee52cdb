package billing

import (
	"context"
	"errors"
	"testing"
	"time"

	"billing-backend/internal/models"
)

type fakeSequenceService struct {
	resp  *models.NextInvoiceResponse
	err   error
	calls int
}

func (f *fakeSequenceService) NextSequence(ctx context.Context, date time.Time) (*models.NextInvoiceResponse, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

func intPtr(n int) *int { return &n }

func TestAllocatorNext(t *testing.T) {
	date := time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		service *fakeSequenceService
		want    string
	}{
		{
			name:    "service returns full identifier verbatim",
			service: &fakeSequenceService{resp: &models.NextInvoiceResponse{InvoiceNo: "INV20250115-007"}},
			want:    "INV20250115-007",
		},
		{
			name:    "bare sequence is formatted with date key",
			service: &fakeSequenceService{resp: &models.NextInvoiceResponse{Sequence: intPtr(42)}},
			want:    "INV20250115-042",
		},
		{
			name:    "service error degrades to -001",
			service: &fakeSequenceService{err: errors.New("connection refused")},
			want:    "INV20250115-001",
		},
		{
			name:    "malformed empty payload degrades to -001",
			service: &fakeSequenceService{resp: &models.NextInvoiceResponse{}},
			want:    "INV20250115-001",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewAllocator(tt.service)
			if got := a.Next(context.Background(), date); got != tt.want {
				t.Errorf("Next() = %q, want %q", got, tt.want)
			}
		})
	}
}

// Allocation must be idempotent within a form session: a second call returns
// the cached identifier without another round trip.
func TestAllocatorCachesPerSession(t *testing.T) {
	date := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	svc := &fakeSequenceService{resp: &models.NextInvoiceResponse{Sequence: intPtr(3)}}
	a := NewAllocator(svc)

	first := a.Next(context.Background(), date)
	second := a.Next(context.Background(), date)

	if first != second {
		t.Errorf("repeated Next() returned %q then %q", first, second)
	}
	if svc.calls != 1 {
		t.Errorf("service called %d times, want 1", svc.calls)
	}

	// Reset starts a new session and allocates again.
	a.Reset()
	svc.resp = &models.NextInvoiceResponse{Sequence: intPtr(4)}
	third := a.Next(context.Background(), date)
	if third != "INV20250115-004" {
		t.Errorf("Next() after Reset = %q, want INV20250115-004", third)
	}
	if svc.calls != 2 {
		t.Errorf("service called %d times after reset, want 2", svc.calls)
	}
}

// The degraded path has no local counter: it yields -001 every time, no
// matter how many allocations already happened that day.
func TestAllocatorDegradedPath(t *testing.T) {
	date := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	svc := &fakeSequenceService{err: errors.New("service down")}

	for i := 0; i < 3; i++ {
		a := NewAllocator(svc)
		if got := a.Next(context.Background(), date); got != "INV20250115-001" {
			t.Fatalf("degraded allocation %d = %q, want INV20250115-001", i, got)
		}
	}
}

func TestAllocatorNilService(t *testing.T) {
	a := NewAllocator(nil)
	date := time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC)
	if got := a.Next(context.Background(), date); got != "INV20250302-001" {
		t.Errorf("Next() with nil service = %q, want INV20250302-001", got)
	}
}

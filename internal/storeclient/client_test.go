package storeclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"billing-backend/internal/models"
)

func testInvoice(no, receiver, consignee string) models.Invoice {
	return models.Invoice{
		InvoiceNo: no,
		Date:      "2025-01-15",
		Receiver:  models.Party{Name: receiver},
		Consignee: models.Party{Name: consignee},
	}
}

func TestClientCreateAndGet(t *testing.T) {
	stored := testInvoice("INV20250115-001", "Sri Lakshmi Textiles", "Sri Lakshmi Textiles")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/api/invoices":
			var got models.Invoice
			if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
				t.Errorf("decode create body: %v", err)
			}
			if got.InvoiceNo != stored.InvoiceNo {
				t.Errorf("created InvoiceNo = %q", got.InvoiceNo)
			}
			w.WriteHeader(http.StatusCreated)
		case r.Method == http.MethodGet && r.URL.Path == "/api/invoices/INV20250115-001":
			json.NewEncoder(w).Encode(stored)
		case r.Method == http.MethodGet && r.URL.Path == "/api/invoices/INV20250115-999":
			w.WriteHeader(http.StatusNotFound)
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
	}))
	defer srv.Close()

	c := New(srv.URL)
	ctx := context.Background()

	if err := c.Create(ctx, &stored); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	got, err := c.Get(ctx, "INV20250115-001")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Receiver.Name != stored.Receiver.Name {
		t.Errorf("round-tripped receiver = %q", got.Receiver.Name)
	}

	if _, err := c.Get(ctx, "INV20250115-999"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get(missing) error = %v, want ErrNotFound", err)
	}
}

func TestClientStoreUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := New(srv.URL)
	ctx := context.Background()

	if err := c.Create(ctx, &models.Invoice{}); !errors.Is(err, ErrStoreUnavailable) {
		t.Errorf("Create() on 500 = %v, want ErrStoreUnavailable", err)
	}
	if _, err := c.List(ctx); !errors.Is(err, ErrStoreUnavailable) {
		t.Errorf("List() on 500 = %v, want ErrStoreUnavailable", err)
	}

	srv.Close() // connection refused from here on
	if _, err := c.List(ctx); !errors.Is(err, ErrStoreUnavailable) {
		t.Errorf("List() on dead server = %v, want ErrStoreUnavailable", err)
	}
}

func TestClientNextSequence(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/next-invoice" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("date"); got != "2025-01-15" {
			t.Errorf("date param = %q", got)
		}
		json.NewEncoder(w).Encode(models.NextInvoiceResponse{InvoiceNo: "INV20250115-007"})
	}))
	defer srv.Close()

	c := New(srv.URL)
	date := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)

	next, err := c.NextSequence(context.Background(), date)
	if err != nil {
		t.Fatalf("NextSequence() error = %v", err)
	}
	if next.InvoiceNo != "INV20250115-007" {
		t.Errorf("InvoiceNo = %q", next.InvoiceNo)
	}
}

func TestClientSearchSendsBothParams(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("customerName") != "lakshmi" || q.Get("invoiceNo") != "lakshmi" {
			t.Errorf("query = %v, want same text in both fields", q)
		}
		json.NewEncoder(w).Encode([]models.Invoice{})
	}))
	defer srv.Close()

	if _, err := New(srv.URL).Search(context.Background(), "lakshmi"); err != nil {
		t.Fatalf("Search() error = %v", err)
	}
}

func TestRefine(t *testing.T) {
	invoices := []models.Invoice{
		testInvoice("INV20250115-001", "Sri Lakshmi Textiles", "Sri Lakshmi Textiles"),
		testInvoice("INV20250115-002", "Bhavani Traders", "Sri Lakshmi Textiles"),
		testInvoice("INV20250116-001", "Bhavani Traders", "Bhavani Traders"),
	}

	tests := []struct {
		name         string
		invoiceNo    string
		customerName string
		want         []string
	}{
		{
			name: "no filters keeps everything",
			want: []string{"INV20250115-001", "INV20250115-002", "INV20250116-001"},
		},
		{
			name:      "invoice number narrows by substring",
			invoiceNo: "20250115",
			want:      []string{"INV20250115-001", "INV20250115-002"},
		},
		{
			name:         "customer matches receiver or consignee",
			customerName: "lakshmi",
			want:         []string{"INV20250115-001", "INV20250115-002"},
		},
		{
			// The AND stage: a server OR-match would keep all three.
			name:         "both filters intersect",
			invoiceNo:    "20250115",
			customerName: "bhavani",
			want:         []string{"INV20250115-002"},
		},
		{
			name:         "no survivors",
			invoiceNo:    "20250116",
			customerName: "lakshmi",
			want:         nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Refine(invoices, tt.invoiceNo, tt.customerName)
			var nos []string
			for _, inv := range got {
				nos = append(nos, inv.InvoiceNo)
			}
			if len(nos) != len(tt.want) {
				t.Fatalf("Refine() = %v, want %v", nos, tt.want)
			}
			for i := range nos {
				if nos[i] != tt.want[i] {
					t.Errorf("Refine()[%d] = %q, want %q", i, nos[i], tt.want[i])
				}
			}
		})
	}
}

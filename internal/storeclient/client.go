// Package storeclient consumes the invoice store's REST surface. Every
// operation is a single request/response round trip with no retries; a
// failed trip surfaces ErrStoreUnavailable and leaves no partial state.
package storeclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"billing-backend/internal/models"
	"billing-backend/internal/timeutil"
)

var (
	// ErrStoreUnavailable covers network failures and 5xx responses.
	ErrStoreUnavailable = errors.New("invoice store unavailable")
	// ErrNotFound is returned for a missing invoice number.
	ErrNotFound = errors.New("invoice not found")
)

type Client struct {
	client  *http.Client
	baseURL string
	token   string
}

// New builds a client for the store at baseURL, e.g. "http://localhost:3001".
func New(baseURL string) *Client {
	return &Client{
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// SetToken attaches a session token to every subsequent request.
func (c *Client) SetToken(token string) {
	c.token = token
}

// Create persists a full invoice record.
func (c *Client) Create(ctx context.Context, invoice *models.Invoice) error {
	body, err := json.Marshal(invoice)
	if err != nil {
		return fmt.Errorf("marshal invoice: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/api/invoices", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	c.authorize(req)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: create returned %d", ErrStoreUnavailable, resp.StatusCode)
	}
	return nil
}

// List fetches every invoice, newest first.
func (c *Client) List(ctx context.Context) ([]models.Invoice, error) {
	return c.fetch(ctx, "/api/invoices", nil)
}

// Get fetches one invoice by number.
func (c *Client) Get(ctx context.Context, invoiceNo string) (*models.Invoice, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/api/invoices/"+url.PathEscape(invoiceNo), nil)
	if err != nil {
		return nil, err
	}
	c.authorize(req)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrNotFound
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, fmt.Errorf("%w: get returned %d", ErrStoreUnavailable, resp.StatusCode)
	}

	var invoice models.Invoice
	if err := json.NewDecoder(resp.Body).Decode(&invoice); err != nil {
		return nil, fmt.Errorf("decode invoice: %w", err)
	}
	return &invoice, nil
}

// Search sends one query against both text fields; the server matches
// OR-style across invoice number and party names. Callers wanting AND-style
// precision apply Refine on the result.
func (c *Client) Search(ctx context.Context, query string) ([]models.Invoice, error) {
	return c.fetch(ctx, "/api/invoices", url.Values{
		"customerName": {query},
		"invoiceNo":    {query},
	})
}

// FilterByDate fetches invoices in the inclusive date range.
func (c *Client) FilterByDate(ctx context.Context, from, to time.Time) ([]models.Invoice, error) {
	return c.fetch(ctx, "/api/invoices", url.Values{
		"fromDate": {from.Format(timeutil.DateLayout)},
		"toDate":   {to.Format(timeutil.DateLayout)},
	})
}

// NextSequence asks the counter service for the next allocation on a date.
// Implements billing.SequenceService.
func (c *Client) NextSequence(ctx context.Context, date time.Time) (*models.NextInvoiceResponse, error) {
	endpoint := c.baseURL + "/api/next-invoice?date=" + date.Format(timeutil.DateLayout)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	c.authorize(req)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: next-invoice returned %d", ErrStoreUnavailable, resp.StatusCode)
	}

	var next models.NextInvoiceResponse
	if err := json.NewDecoder(resp.Body).Decode(&next); err != nil {
		return nil, fmt.Errorf("decode next-invoice response: %w", err)
	}
	return &next, nil
}

func (c *Client) fetch(ctx context.Context, path string, params url.Values) ([]models.Invoice, error) {
	endpoint := c.baseURL + path
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	c.authorize(req)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: list returned %d", ErrStoreUnavailable, resp.StatusCode)
	}

	var invoices []models.Invoice
	if err := json.NewDecoder(resp.Body).Decode(&invoices); err != nil {
		return nil, fmt.Errorf("decode invoices: %w", err)
	}
	return invoices, nil
}

func (c *Client) authorize(req *http.Request) {
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
}

package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"billing-backend/internal/models"
	"billing-backend/internal/timeutil"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrInvoiceNotFound is returned when a lookup by invoice number misses.
var ErrInvoiceNotFound = errors.New("invoice not found")

type InvoiceRepository struct {
	DB *pgxpool.Pool
}

func NewInvoiceRepository(db *pgxpool.Pool) *InvoiceRepository {
	return &InvoiceRepository{DB: db}
}

const invoiceColumns = `invoice_no, invoice_date::text, way_bill_no, transport_mode,
	vehicle_number, place_of_supply,
	receiver_name, receiver_address, receiver_gstin, receiver_state, receiver_code,
	consignee_name, consignee_address, consignee_gstin, consignee_state, consignee_code,
	subtotal, cgst, sgst, igst, grand_total, amount_in_words`

// Create persists an invoice with its items in one transaction. A duplicate
// invoice number fails on the unique constraint; the record is immutable
// once committed.
func (r *InvoiceRepository) Create(ctx context.Context, invoice *models.Invoice) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var id int
	err = tx.QueryRow(ctx,
		`INSERT INTO invoices(invoice_no, invoice_date, way_bill_no, transport_mode,
			vehicle_number, place_of_supply,
			receiver_name, receiver_address, receiver_gstin, receiver_state, receiver_code,
			consignee_name, consignee_address, consignee_gstin, consignee_state, consignee_code,
			subtotal, cgst, sgst, igst, grand_total, amount_in_words)
		 VALUES($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22)
		 RETURNING id`,
		invoice.InvoiceNo, invoice.Date, invoice.WayBillNo, invoice.TransportMode,
		invoice.VehicleNumber, invoice.PlaceOfSupply,
		invoice.Receiver.Name, invoice.Receiver.Address, invoice.Receiver.GSTIN,
		invoice.Receiver.State, invoice.Receiver.Code,
		invoice.Consignee.Name, invoice.Consignee.Address, invoice.Consignee.GSTIN,
		invoice.Consignee.State, invoice.Consignee.Code,
		invoice.Subtotal, invoice.CGST, invoice.SGST, invoice.IGST,
		invoice.GrandTotal, invoice.AmountInWords,
	).Scan(&id)
	if err != nil {
		return fmt.Errorf("insert invoice: %w", err)
	}

	for i, item := range invoice.Items {
		_, err = tx.Exec(ctx,
			`INSERT INTO invoice_items(invoice_id, position, description, hsn_code, pieces, meters, rate, amount)
			 VALUES($1,$2,$3,$4,$5,$6,$7,$8)`,
			id, i, item.Description, item.HSNCode, item.Pieces, item.Meters, item.Rate, item.Amount,
		)
		if err != nil {
			return fmt.Errorf("insert invoice item: %w", err)
		}
	}

	return tx.Commit(ctx)
}

// List returns all invoices, newest first.
func (r *InvoiceRepository) List(ctx context.Context) ([]*models.Invoice, error) {
	return r.query(ctx,
		`SELECT id, `+invoiceColumns+` FROM invoices ORDER BY created_at DESC`)
}

// GetByNumber returns a single invoice with its items.
func (r *InvoiceRepository) GetByNumber(ctx context.Context, invoiceNo string) (*models.Invoice, error) {
	invoices, err := r.query(ctx,
		`SELECT id, `+invoiceColumns+` FROM invoices WHERE invoice_no = $1`, invoiceNo)
	if err != nil {
		return nil, err
	}
	if len(invoices) == 0 {
		return nil, ErrInvoiceNotFound
	}
	return invoices[0], nil
}

// Search applies an OR-style case-insensitive match across the invoice
// number and both party names. Clients narrow the result further on their
// side; the server stays deliberately broad.
func (r *InvoiceRepository) Search(ctx context.Context, query string) ([]*models.Invoice, error) {
	pattern := "%" + query + "%"
	return r.query(ctx,
		`SELECT id, `+invoiceColumns+` FROM invoices
		 WHERE invoice_no ILIKE $1 OR receiver_name ILIKE $1 OR consignee_name ILIKE $1
		 ORDER BY created_at DESC`, pattern)
}

// FilterByDate returns invoices issued in the inclusive date range.
func (r *InvoiceRepository) FilterByDate(ctx context.Context, from, to time.Time) ([]*models.Invoice, error) {
	return r.query(ctx,
		`SELECT id, `+invoiceColumns+` FROM invoices
		 WHERE invoice_date >= $1 AND invoice_date <= $2
		 ORDER BY created_at DESC`,
		from.Format(timeutil.DateLayout), to.Format(timeutil.DateLayout))
}

// NextSequence allocates the next integer for a calendar date. The upsert
// is serialized by Postgres, so concurrent allocations never hand out the
// same number.
func (r *InvoiceRepository) NextSequence(ctx context.Context, date time.Time) (int, error) {
	var seq int
	err := r.DB.QueryRow(ctx,
		`INSERT INTO invoice_sequences(date_key, next) VALUES($1, 2)
		 ON CONFLICT (date_key) DO UPDATE SET next = invoice_sequences.next + 1
		 RETURNING next - 1`,
		timeutil.DateKey(date),
	).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("allocate sequence: %w", err)
	}
	return seq, nil
}

// ResetSequence clears the counter for a date back to 1.
func (r *InvoiceRepository) ResetSequence(ctx context.Context, date time.Time) error {
	_, err := r.DB.Exec(ctx,
		`DELETE FROM invoice_sequences WHERE date_key = $1`, timeutil.DateKey(date))
	return err
}

func (r *InvoiceRepository) query(ctx context.Context, sql string, args ...any) ([]*models.Invoice, error) {
	rows, err := r.DB.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int
	var invoices []*models.Invoice
	for rows.Next() {
		var id int
		var inv models.Invoice
		err := rows.Scan(&id, &inv.InvoiceNo, &inv.Date, &inv.WayBillNo, &inv.TransportMode,
			&inv.VehicleNumber, &inv.PlaceOfSupply,
			&inv.Receiver.Name, &inv.Receiver.Address, &inv.Receiver.GSTIN,
			&inv.Receiver.State, &inv.Receiver.Code,
			&inv.Consignee.Name, &inv.Consignee.Address, &inv.Consignee.GSTIN,
			&inv.Consignee.State, &inv.Consignee.Code,
			&inv.Subtotal, &inv.CGST, &inv.SGST, &inv.IGST, &inv.GrandTotal, &inv.AmountInWords)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
		invoices = append(invoices, &inv)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}

	for i, id := range ids {
		items, err := r.loadItems(ctx, id)
		if err != nil {
			return nil, err
		}
		invoices[i].Items = items
	}
	return invoices, nil
}

func (r *InvoiceRepository) loadItems(ctx context.Context, invoiceID int) ([]models.LineItem, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT description, hsn_code, pieces, meters, rate, amount
		 FROM invoice_items WHERE invoice_id = $1 ORDER BY position`, invoiceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.LineItem
	for rows.Next() {
		var item models.LineItem
		if err := rows.Scan(&item.Description, &item.HSNCode, &item.Pieces,
			&item.Meters, &item.Rate, &item.Amount); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

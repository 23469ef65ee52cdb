package database

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

// Migrator creates the schema at startup. The statements are idempotent so
// the server can run them unconditionally on every boot.
type Migrator struct {
	pool *pgxpool.Pool
}

func NewMigrator(pool *pgxpool.Pool) *Migrator {
	return &Migrator{pool: pool}
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS invoices (
		id             SERIAL PRIMARY KEY,
		invoice_no     TEXT NOT NULL UNIQUE,
		invoice_date   DATE NOT NULL,
		way_bill_no    TEXT NOT NULL DEFAULT '',
		transport_mode TEXT NOT NULL DEFAULT '',
		vehicle_number TEXT NOT NULL DEFAULT '',
		place_of_supply TEXT NOT NULL DEFAULT '',
		receiver_name    TEXT NOT NULL,
		receiver_address TEXT NOT NULL DEFAULT '',
		receiver_gstin   TEXT NOT NULL DEFAULT '',
		receiver_state   TEXT NOT NULL DEFAULT '',
		receiver_code    TEXT NOT NULL DEFAULT '',
		consignee_name    TEXT NOT NULL,
		consignee_address TEXT NOT NULL DEFAULT '',
		consignee_gstin   TEXT NOT NULL DEFAULT '',
		consignee_state   TEXT NOT NULL DEFAULT '',
		consignee_code    TEXT NOT NULL DEFAULT '',
		subtotal        DOUBLE PRECISION NOT NULL,
		cgst            DOUBLE PRECISION NOT NULL,
		sgst            DOUBLE PRECISION NOT NULL,
		igst            DOUBLE PRECISION NOT NULL,
		grand_total     DOUBLE PRECISION NOT NULL,
		amount_in_words TEXT NOT NULL DEFAULT '',
		created_at      TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS invoice_items (
		id          SERIAL PRIMARY KEY,
		invoice_id  INTEGER NOT NULL REFERENCES invoices(id) ON DELETE CASCADE,
		position    INTEGER NOT NULL,
		description TEXT NOT NULL,
		hsn_code    TEXT NOT NULL DEFAULT '',
		pieces      DOUBLE PRECISION NOT NULL DEFAULT 0,
		meters      DOUBLE PRECISION NOT NULL DEFAULT 0,
		rate        DOUBLE PRECISION NOT NULL DEFAULT 0,
		amount      DOUBLE PRECISION NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS invoice_sequences (
		date_key TEXT PRIMARY KEY,
		next     INTEGER NOT NULL DEFAULT 1
	)`,
	`CREATE INDEX IF NOT EXISTS idx_invoices_date ON invoices(invoice_date)`,
	`CREATE INDEX IF NOT EXISTS idx_invoices_receiver_name ON invoices(receiver_name)`,
}

// RunMigrations applies the schema statements in order.
func (m *Migrator) RunMigrations(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := m.pool.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	log.Info().Msg("database schema up to date")
	return nil
}

package models

// LineItem is a single row of the invoice items table. Amount is derived
// (Meters x Rate) by the form layer before the item reaches the backend;
// the tax engine only sums it.
type LineItem struct {
	Description string  `json:"description"`
	HSNCode     string  `json:"hsnCode"`
	Pieces      float64 `json:"pieces"`
	Meters      float64 `json:"meters"`
	Rate        float64 `json:"rate"`
	Amount      float64 `json:"amount"`
}

// Party holds the receiver or consignee block of a tax invoice.
type Party struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	GSTIN   string `json:"gstin"`
	State   string `json:"state"`
	Code    string `json:"code"`
}

// Totals are the computed monetary components of an invoice.
type Totals struct {
	Subtotal   float64 `json:"subtotal"`
	CGST       float64 `json:"cgst"`
	SGST       float64 `json:"sgst"`
	IGST       float64 `json:"igst"`
	GrandTotal float64 `json:"grandTotal"`
}

// Invoice is the full immutable invoice record. Field names on the wire
// match the frontend's storage contract.
type Invoice struct {
	InvoiceNo     string     `json:"invoiceNo"`
	Date          string     `json:"date"` // YYYY-MM-DD
	WayBillNo     string     `json:"wayBillNo"`
	TransportMode string     `json:"transportMode"`
	VehicleNumber string     `json:"vehicleNumber"`
	PlaceOfSupply string     `json:"placeOfSupply"`
	Receiver      Party      `json:"receiver"`
	Consignee     Party      `json:"consignee"`
	Items         []LineItem `json:"items"`
	Subtotal      float64    `json:"subtotal"`
	CGST          float64    `json:"cgst"`
	SGST          float64    `json:"sgst"`
	IGST          float64    `json:"igst"`
	GrandTotal    float64    `json:"grandTotal"`
	AmountInWords string     `json:"amountInWords"`
}

// NextInvoiceResponse is the counter service payload. The service is
// authoritative over format when InvoiceNo is set; otherwise clients format
// the bare sequence themselves.
type NextInvoiceResponse struct {
	InvoiceNo string `json:"invoiceNo,omitempty"`
	Sequence  *int   `json:"sequence,omitempty"`
}

// LoginRequest is the admin login payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	TOTPCode string `json:"totp_code,omitempty"`
}

// AuthResponse carries the session token back to the client.
type AuthResponse struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expires_in"`
}

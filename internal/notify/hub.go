// Package notify pushes invoice-issued events to connected office
// dashboards over websockets. Delivery is best-effort: a slow or dead
// client is dropped, never waited on.
package notify

import (
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

// InvoiceIssued is the event broadcast after an invoice is persisted.
type InvoiceIssued struct {
	InvoiceNo  string  `json:"invoiceNo"`
	GrandTotal float64 `json:"grandTotal"`
}

type Hub struct {
	upgrader websocket.Upgrader

	clientsMux sync.Mutex
	clients    map[*websocket.Conn]bool

	broadcast chan InvoiceIssued
}

func NewHub() *Hub {
	h := &Hub{
		upgrader: websocket.Upgrader{
			// The dashboard is served from a different origin than the API.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		clients:   make(map[*websocket.Conn]bool),
		broadcast: make(chan InvoiceIssued, 64),
	}
	go h.run()
	return h
}

// ServeHTTP upgrades the connection and keeps it registered until the peer
// goes away.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}

	h.clientsMux.Lock()
	h.clients[conn] = true
	h.clientsMux.Unlock()

	// Drain reads so close frames are processed; we never expect payloads.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				h.drop(conn)
				return
			}
		}
	}()
}

// Broadcast queues an event for all connected clients. Never blocks the
// caller: if the queue is full the event is dropped.
func (h *Hub) Broadcast(event InvoiceIssued) {
	select {
	case h.broadcast <- event:
	default:
		log.Warn().Str("invoice_no", event.InvoiceNo).Msg("notify queue full, event dropped")
	}
}

func (h *Hub) run() {
	for event := range h.broadcast {
		h.clientsMux.Lock()
		for conn := range h.clients {
			if err := conn.WriteJSON(event); err != nil {
				conn.Close()
				delete(h.clients, conn)
			}
		}
		h.clientsMux.Unlock()
	}
}

func (h *Hub) drop(conn *websocket.Conn) {
	h.clientsMux.Lock()
	defer h.clientsMux.Unlock()
	conn.Close()
	delete(h.clients, conn)
}

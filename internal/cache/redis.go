package cache

import (
	"context"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache keys. The list key covers the unfiltered GET /api/invoices
// response; individual invoices are cached under their number.
const (
	InvoiceListKey   = "invoices:list"
	InvoiceKeyPrefix = "invoices:no:"

	invoiceTTL = 10 * time.Minute
)

var client *redis.Client

// Init initializes the Redis connection. The cache degrades gracefully:
// when Redis is unreachable the client stays nil and every operation is a
// no-op.
func Init() error {
	host := os.Getenv("REDIS_SERVICE_HOST")
	if host == "" {
		host = "redis"
	}
	port := os.Getenv("REDIS_SERVICE_PORT")
	if port == "" {
		port = "6379"
	}

	client = redis.NewClient(&redis.Options{
		Addr:     host + ":" + port,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		client = nil
		return err
	}
	return nil
}

// GetInvoiceList returns the cached list response, if any.
func GetInvoiceList(ctx context.Context) ([]byte, bool) {
	return get(ctx, InvoiceListKey)
}

// SetInvoiceList caches the serialized list response.
func SetInvoiceList(ctx context.Context, payload []byte) {
	set(ctx, InvoiceListKey, payload)
}

// GetInvoice returns a cached single-invoice response.
func GetInvoice(ctx context.Context, invoiceNo string) ([]byte, bool) {
	return get(ctx, InvoiceKeyPrefix+invoiceNo)
}

// SetInvoice caches a serialized single-invoice response.
func SetInvoice(ctx context.Context, invoiceNo string, payload []byte) {
	set(ctx, InvoiceKeyPrefix+invoiceNo, payload)
}

// InvalidateInvoices drops the list cache after a new invoice is persisted.
// Single-invoice entries stay: persisted invoices are immutable.
func InvalidateInvoices(ctx context.Context) {
	if client == nil {
		return
	}
	client.Del(ctx, InvoiceListKey)
}

func get(ctx context.Context, key string) ([]byte, bool) {
	if client == nil {
		return nil, false
	}
	data, err := client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	return data, true
}

func set(ctx context.Context, key string, payload []byte) {
	if client == nil {
		return
	}
	client.Set(ctx, key, payload, invoiceTTL)
}

package port

import (
	"context"
	"time"
)

// ArchiveObject is one rendered invoice document to keep.
type ArchiveObject struct {
	Key           string
	Filename      string
	ContentType   string
	InvoiceNumber string
	Content       []byte
}

// InvoiceArchive keeps rendered invoices in object storage. The bucket is
// fixed when the archive is built; callers deal in keys only.
type InvoiceArchive interface {
	Put(ctx context.Context, obj ArchiveObject) error
	// URL returns a time-limited download link for key.
	URL(ctx context.Context, key string, ttl time.Duration) (string, error)
	// Delete removes key. A missing key is not an error.
	Delete(ctx context.Context, key string) error
}

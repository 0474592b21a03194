package s3

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hvacbill/internal/config"
	"hvacbill/internal/port"
)

type recordedRequest struct {
	method  string
	path    string
	headers http.Header
	body    string
}

func newTestArchive(t *testing.T) (port.InvoiceArchive, func() []recordedRequest) {
	t.Helper()
	var (
		mu   sync.Mutex
		reqs []recordedRequest
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		mu.Lock()
		reqs = append(reqs, recordedRequest{method: r.Method, path: r.URL.Path, headers: r.Header.Clone(), body: string(body)})
		mu.Unlock()
		switch r.Method {
		case http.MethodPut:
			w.Header().Set("ETag", `"abc123"`)
			w.WriteHeader(http.StatusOK)
		case http.MethodDelete:
			w.WriteHeader(http.StatusNoContent)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	}))
	t.Cleanup(srv.Close)

	a, err := NewS3Archive(context.Background(), &config.S3Config{
		Region:    "ap-south-1",
		Bucket:    "invoices",
		Endpoint:  srv.URL,
		AccessKey: "test",
		SecretKey: "test",
	})
	require.NoError(t, err)
	return a, func() []recordedRequest {
		mu.Lock()
		defer mu.Unlock()
		return append([]recordedRequest(nil), reqs...)
	}
}

func TestNewS3Archive_RequiresBucket(t *testing.T) {
	_, err := NewS3Archive(context.Background(), &config.S3Config{Region: "ap-south-1"})

	assert.ErrorContains(t, err, "bucket is required")
}

func TestArchive_Put(t *testing.T) {
	a, requests := newTestArchive(t)

	err := a.Put(context.Background(), port.ArchiveObject{
		Key:           "invoices/2026/03/Invoice-INV-2026-001.pdf",
		Filename:      "Invoice-INV-2026-001.pdf",
		ContentType:   "application/pdf",
		InvoiceNumber: "INV-2026-001",
		Content:       []byte("%PDF-1.3"),
	})

	require.NoError(t, err)
	reqs := requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, http.MethodPut, reqs[0].method)
	assert.Equal(t, "/invoices/invoices/2026/03/Invoice-INV-2026-001.pdf", reqs[0].path)
	assert.Equal(t, "application/pdf", reqs[0].headers.Get("Content-Type"))
	assert.Equal(t, "INV-2026-001", reqs[0].headers.Get("X-Amz-Meta-Invoice-Number"))
	assert.Contains(t, reqs[0].body, "%PDF-1.3")
}

func TestArchive_Delete(t *testing.T) {
	a, requests := newTestArchive(t)

	require.NoError(t, a.Delete(context.Background(), "invoices/2026/03/x.pdf"))

	reqs := requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, http.MethodDelete, reqs[0].method)
	assert.Equal(t, "/invoices/invoices/2026/03/x.pdf", reqs[0].path)
}

func TestArchive_URL(t *testing.T) {
	a, requests := newTestArchive(t)

	url, err := a.URL(context.Background(), "invoices/2026/03/x.pdf", time.Hour)

	require.NoError(t, err)
	assert.True(t, strings.Contains(url, "/invoices/invoices/2026/03/x.pdf?"), url)
	assert.Contains(t, url, "X-Amz-Expires=3600")
	assert.Empty(t, requests(), "presigning is offline")
}

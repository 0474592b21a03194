package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "hvacbill"

// Metrics holds the collectors exported on /metrics. A nil *Metrics is
// valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	InvoicesCreated     prometheus.Counter
	PDFRenderDuration   prometheus.Histogram
	OverdueMarked       prometheus.Counter
}

// New registers all collectors on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,
		HTTPRequestsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "Duration of HTTP requests in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "path", "status"},
		),
		InvoicesCreated: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "invoices_created_total",
			Help:      "Total number of invoices created",
		}),
		PDFRenderDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "invoice_pdf_render_seconds",
			Help:      "Time spent rendering invoice PDFs",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1},
		}),
		OverdueMarked: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "invoices_marked_overdue_total",
			Help:      "Total number of invoices moved to Overdue by the sweeper",
		}),
	}
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// ObserveRequest records one finished HTTP request.
func (m *Metrics) ObserveRequest(method, path, status string, d time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path, status).Observe(d.Seconds())
}

// InvoiceCreated increments the created-invoices counter.
func (m *Metrics) InvoiceCreated() {
	if m == nil {
		return
	}
	m.InvoicesCreated.Inc()
}

// TrackRender returns a function that records the render duration since start.
func (m *Metrics) TrackRender() func() {
	start := time.Now()
	return func() {
		if m == nil {
			return
		}
		m.PDFRenderDuration.Observe(time.Since(start).Seconds())
	}
}

// MarkedOverdue adds n to the overdue counter.
func (m *Metrics) MarkedOverdue(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.OverdueMarked.Add(float64(n))
}

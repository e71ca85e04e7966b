package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector holds the application's prometheus metrics.
type Collector struct {
	httpRequests  *prometheus.CounterVec
	httpDuration  *prometheus.HistogramVec
	blobOps       *prometheus.CounterVec
	blobBytes     prometheus.Counter
	blobDuration  *prometheus.HistogramVec
	loginAttempts *prometheus.CounterVec
}

// NewCollector creates the metrics and registers them with reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fansite_http_requests_total",
			Help: "HTTP requests by method, route pattern and status code.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "fansite_http_request_duration_seconds",
			Help:    "HTTP request latency by method and route pattern.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		blobOps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fansite_blob_operations_total",
			Help: "Blob store operations by kind and result.",
		}, []string{"op", "result"}),
		blobBytes: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "fansite_blob_uploaded_bytes_total",
			Help: "Bytes successfully written to the blob store.",
		}),
		blobDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "fansite_blob_operation_duration_seconds",
			Help:    "Blob store operation latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"op"}),
		loginAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fansite_login_attempts_total",
			Help: "Admin login attempts by result.",
		}, []string{"result"}),
	}

	reg.MustRegister(
		c.httpRequests,
		c.httpDuration,
		c.blobOps,
		c.blobBytes,
		c.blobDuration,
		c.loginAttempts,
	)

	return c
}

// RecordRequest counts one served request.
func (c *Collector) RecordRequest(method, route string, status int, elapsed time.Duration) {
	c.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// RecordBlobOp counts one blob store operation.
func (c *Collector) RecordBlobOp(op string, err error, bytes int64, elapsed time.Duration) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	c.blobOps.WithLabelValues(op, result).Inc()
	c.blobDuration.WithLabelValues(op).Observe(elapsed.Seconds())
	if err == nil && bytes > 0 {
		c.blobBytes.Add(float64(bytes))
	}
}

// RecordLogin counts an admin login attempt. result is one of
// "success", "failure" or "limited".
func (c *Collector) RecordLogin(result string) {
	c.loginAttempts.WithLabelValues(result).Inc()
}

// Handler exposes the metrics gathered by gatherer.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// Noop discards all measurements. Used where no registry is wired.
type Noop struct{}

func (Noop) RecordRequest(string, string, int, time.Duration) {}

func (Noop) RecordBlobOp(string, error, int64, time.Duration) {}

func (Noop) RecordLogin(string) {}

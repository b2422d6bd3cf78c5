package metrics

import (
	"fmt"
	"net/http"
	"sync/atomic"
)

type Collector struct {
	requests   atomic.Uint64
	errors     atomic.Uint64
	validation atomic.Uint64
}

func NewCollector() *Collector {
	return &Collector{}
}

func (c *Collector) IncRequests() {
	c.requests.Add(1)
}

func (c *Collector) IncErrors() {
	c.errors.Add(1)
}

func (c *Collector) IncValidationFailures() {
	c.validation.Add(1)
}

type Snapshot struct {
	Requests           uint64
	Errors             uint64
	ValidationFailures uint64
}

func (c *Collector) Snapshot() Snapshot {
	return Snapshot{
		Requests:           c.requests.Load(),
		Errors:             c.errors.Load(),
		ValidationFailures: c.validation.Load(),
	}
}

type Handler struct {
	collector *Collector
}

func NewHandler(collector *Collector) *Handler {
	return &Handler{collector: collector}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	var snap Snapshot
	if h.collector != nil {
		snap = h.collector.Snapshot()
	}
	w.Header().Set("Content-Type", "text/plain; version=0.0.4")
	writeCounter(w, "jobtracker_http_requests_total", "Total number of HTTP requests.", snap.Requests)
	writeCounter(w, "jobtracker_http_errors_total", "Total number of 5xx HTTP responses.", snap.Errors)
	writeCounter(w, "jobtracker_validation_failures_total", "Total number of 422 HTTP responses.", snap.ValidationFailures)
}

func writeCounter(w http.ResponseWriter, name, help string, value uint64) {
	_, _ = fmt.Fprintf(w, "# HELP %s %s\n", name, help)
	_, _ = fmt.Fprintf(w, "# TYPE %s counter\n", name)
	_, _ = fmt.Fprintf(w, "%s %d\n", name, value)
}

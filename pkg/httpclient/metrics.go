package httpclient

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	metricsNamespace = "waha"
	metricsSubsystem = "client"
)

// Instrumented decorates a Client with request count and latency metrics.
type Instrumented struct {
	next     Client
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewInstrumented wraps next and registers its collectors on reg.
// A nil reg uses prometheus.DefaultRegisterer.
func NewInstrumented(next Client, reg prometheus.Registerer) (*Instrumented, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Subsystem: metricsSubsystem,
		Name:      "requests_total",
		Help:      "Requests sent to the gateway by method and status code.",
	}, []string{"method", "status"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: metricsNamespace,
		Subsystem: metricsSubsystem,
		Name:      "request_duration_seconds",
		Help:      "Gateway round-trip latency.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method"})

	if err := reg.Register(requests); err != nil {
		return nil, err
	}
	if err := reg.Register(duration); err != nil {
		reg.Unregister(requests)
		return nil, err
	}

	return &Instrumented{next: next, requests: requests, duration: duration}, nil
}

// Do forwards to the wrapped client and records the outcome. Transport
// failures are counted under status "error".
func (i *Instrumented) Do(ctx context.Context, req *Request) (Response, error) {
	method := strings.ToUpper(req.Method)
	start := time.Now()
	resp, err := i.next.Do(ctx, req)
	i.duration.WithLabelValues(method).Observe(time.Since(start).Seconds())

	status := "error"
	if err == nil && resp != nil {
		status = strconv.Itoa(resp.StatusCode())
	}
	i.requests.WithLabelValues(method, status).Inc()
	return resp, err
}

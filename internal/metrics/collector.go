package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
)

// Collector holds every Prometheus metric the control plane emits.
type Collector struct {
	// Signal bus metrics
	eventsPublished *prometheus.CounterVec
	listenerFaults  prometheus.Counter

	// Stream metrics
	streamClients      prometheus.Gauge
	streamSendFailures prometheus.Counter

	// Registry metrics
	registrySize     *prometheus.GaugeVec
	commandsEnqueued prometheus.Counter
	intentsDeclared  prometheus.Counter

	// HTTP metrics
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	logger *zap.Logger
}

// NewCollector creates and registers the control plane metrics under the
// given namespace.
func NewCollector(namespace string, logger *zap.Logger) *Collector {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Collector{
		logger: logger.With(zap.String("component", "metrics")),
	}

	c.eventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_published_total",
			Help:      "Total number of events dispatched on the signal bus",
		},
		[]string{"signal"},
	)

	c.listenerFaults = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bus_listener_faults_total",
			Help:      "Total number of recovered signal listener panics",
		},
	)

	c.streamClients = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "stream_clients",
			Help:      "Number of currently connected stream observers",
		},
	)

	c.streamSendFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stream_send_failures_total",
			Help:      "Total number of failed stream sends",
		},
	)

	c.registrySize = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "registry_size",
			Help:      "Current number of retained entries per registry",
		},
		[]string{"registry"},
	)

	c.commandsEnqueued = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "commands_enqueued_total",
			Help:      "Total number of commands accepted into the queue",
		},
	)

	c.intentsDeclared = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "intents_declared_total",
			Help:      "Total number of declared intents",
		},
	)

	c.httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	c.httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	logger.Info("metrics collector initialized", zap.String("namespace", namespace))
	return c
}

// RecordEvent counts one event dispatched on the bus.
func (c *Collector) RecordEvent(signal string) {
	c.eventsPublished.WithLabelValues(signal).Inc()
}

// RecordListenerFault counts one recovered listener panic.
func (c *Collector) RecordListenerFault() {
	c.listenerFaults.Inc()
}

// SetStreamClients records the current observer count.
func (c *Collector) SetStreamClients(n int) {
	c.streamClients.Set(float64(n))
}

// RecordStreamSendFailure counts one failed stream send.
func (c *Collector) RecordStreamSendFailure() {
	c.streamSendFailures.Inc()
}

// SetRegistrySize records the retained entry count of a registry.
func (c *Collector) SetRegistrySize(registry string, n int) {
	c.registrySize.WithLabelValues(registry).Set(float64(n))
}

// RecordCommandEnqueued counts one accepted command.
func (c *Collector) RecordCommandEnqueued() {
	c.commandsEnqueued.Inc()
}

// RecordIntentDeclared counts one declared intent.
func (c *Collector) RecordIntentDeclared() {
	c.intentsDeclared.Inc()
}

// RecordHTTPRequest records one served HTTP request.
func (c *Collector) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	c.httpRequestsTotal.WithLabelValues(method, path, statusCode(status)).Inc()
	c.httpRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// statusCode classifies an HTTP status into its class label.
func statusCode(code int) string {
	switch {
	case code >= 200 && code < 300:
		return "2xx"
	case code >= 300 && code < 400:
		return "3xx"
	case code >= 400 && code < 500:
		return "4xx"
	case code >= 500:
		return "5xx"
	default:
		return "unknown"
	}
}

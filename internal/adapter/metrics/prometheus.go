package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"aws-slack-notifier/internal/domain/ports"
)

// Recorder implements ports.Metrics on its own Prometheus registry.
type Recorder struct {
	registry *prometheus.Registry

	eventsReceived   *prometheus.CounterVec
	decisions        *prometheus.CounterVec
	deliveries       *prometheus.CounterVec
	deliveryDuration prometheus.Histogram
}

var _ ports.Metrics = (*Recorder)(nil)

// New registers the notifier collectors on a fresh registry.
func New() *Recorder {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Recorder{
		registry: reg,
		eventsReceived: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "notifier_events_received_total",
			Help: "Total number of SNS events received, labelled by payload kind.",
		}, []string{"kind"}),
		decisions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "notifier_decisions_total",
			Help: "Total number of policy decisions, labelled by payload kind and result.",
		}, []string{"kind", "result"}),
		deliveries: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "notifier_deliveries_total",
			Help: "Total number of webhook deliveries, labelled by outcome.",
		}, []string{"outcome"}),
		deliveryDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "notifier_delivery_duration_ms",
			Help:    "Webhook delivery latency in milliseconds.",
			Buckets: []float64{10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
		}),
	}
}

// EventReceived counts an inbound event.
func (r *Recorder) EventReceived(kind string) {
	r.eventsReceived.WithLabelValues(kind).Inc()
}

// Decision counts a policy result.
func (r *Recorder) Decision(kind, result string) {
	r.decisions.WithLabelValues(kind, result).Inc()
}

// Delivery counts a webhook call and observes its latency.
func (r *Recorder) Delivery(outcome string, took time.Duration) {
	r.deliveries.WithLabelValues(outcome).Inc()
	r.deliveryDuration.Observe(float64(took.Milliseconds()))
}

// Registry returns the registry the collectors are registered on.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Handler exposes the registry in the Prometheus text format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Preload outcomes.
const (
	OutcomeFetched  = "fetched"
	OutcomeFresh    = "fresh"
	OutcomeOrphaned = "orphaned"
	OutcomeFailed   = "failed"
)

// Relation changes applied by reconciliation.
const (
	ChangeCreated = "created"
	ChangeDeleted = "deleted"
)

// Metrics records reconciliation, preload and webhook activity. A nil *Metrics is valid and records nothing.
type Metrics struct {
	preload   *prometheus.CounterVec
	webhooks  *prometheus.CounterVec
	fetch     prometheus.Histogram
	relations *prometheus.CounterVec
	enqueued  prometheus.Counter
}

// New registers the metadata metrics on the provided registerer.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		return &Metrics{}
	}
	preload := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "metadata_preload_total",
		Help: "Processed preload items by outcome.",
	}, []string{"outcome"})
	webhooks := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "metadata_webhook_events_total",
		Help: "Handled webhook events by kind.",
	}, []string{"event"})
	fetch := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "metadata_fetch_duration_seconds",
		Help:    "Duration of metadata API calls in seconds.",
		Buckets: prometheus.DefBuckets,
	})
	relations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "metadata_relation_changes_total",
		Help: "Media relations created or deleted by reconciliation.",
	}, []string{"change"})
	enqueued := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "metadata_preload_enqueued_total",
		Help: "Preload tasks added to the queue by reconciliation.",
	})
	reg.MustRegister(preload, webhooks, fetch, relations, enqueued)
	return &Metrics{
		preload:   preload,
		webhooks:  webhooks,
		fetch:     fetch,
		relations: relations,
		enqueued:  enqueued,
	}
}

func (m *Metrics) IncPreload(outcome string) {
	if m == nil || m.preload == nil {
		return
	}
	m.preload.WithLabelValues(normalizeLabel(outcome)).Inc()
}

func (m *Metrics) IncWebhookEvent(event string) {
	if m == nil || m.webhooks == nil {
		return
	}
	m.webhooks.WithLabelValues(normalizeLabel(event)).Inc()
}

func (m *Metrics) ObserveFetch(d time.Duration) {
	if m == nil || m.fetch == nil {
		return
	}
	m.fetch.Observe(d.Seconds())
}

func (m *Metrics) AddRelationChanges(change string, n int) {
	if m == nil || m.relations == nil || n <= 0 {
		return
	}
	m.relations.WithLabelValues(normalizeLabel(change)).Add(float64(n))
}

func (m *Metrics) IncPreloadEnqueued() {
	if m == nil || m.enqueued == nil {
		return
	}
	m.enqueued.Inc()
}

func normalizeLabel(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}

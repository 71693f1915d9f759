package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry holds the back-office collectors. A nil *Registry records nothing.
type Registry struct {
	reg            *prometheus.Registry
	CacheEvents    *prometheus.CounterVec
	Reloads        *prometheus.CounterVec
	ReloadLatency  *prometheus.HistogramVec
	Mutations      *prometheus.CounterVec
	ViewItems      *prometheus.GaugeVec
	IdempotentHits prometheus.Counter
}

func NewRegistry() *Registry {
	r := prometheus.NewRegistry()
	cacheEvents := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "backoffice_cache_events_total",
		Help: "TTL cache lookups by outcome (hit, miss, shared, expired, invalidated).",
	}, []string{"resource", "event"})
	reloads := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "backoffice_reloads_total",
		Help: "List reloads by outcome (applied, stale, error).",
	}, []string{"resource", "outcome"})
	reloadLatency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "backoffice_reload_duration_seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"resource"})
	mutations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "backoffice_mutations_total",
	}, []string{"resource", "op", "outcome"})
	viewItems := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "backoffice_view_items",
	}, []string{"resource"})
	idempotentHits := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "backoffice_idempotent_replays_total",
	})

	r.MustRegister(cacheEvents, reloads, reloadLatency, mutations, viewItems, idempotentHits)
	return &Registry{
		reg:            r,
		CacheEvents:    cacheEvents,
		Reloads:        reloads,
		ReloadLatency:  reloadLatency,
		Mutations:      mutations,
		ViewItems:      viewItems,
		IdempotentHits: idempotentHits,
	}
}

func (r *Registry) Handler() http.Handler { return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{}) }

func (r *Registry) CacheEvent(resource, event string) {
	if r == nil {
		return
	}
	r.CacheEvents.WithLabelValues(resource, event).Inc()
}

func (r *Registry) Reload(resource, outcome string, took time.Duration) {
	if r == nil {
		return
	}
	r.Reloads.WithLabelValues(resource, outcome).Inc()
	r.ReloadLatency.WithLabelValues(resource).Observe(took.Seconds())
}

func (r *Registry) Mutation(resource, op, outcome string) {
	if r == nil {
		return
	}
	r.Mutations.WithLabelValues(resource, op, outcome).Inc()
}

func (r *Registry) Items(resource string, n int) {
	if r == nil {
		return
	}
	r.ViewItems.WithLabelValues(resource).Set(float64(n))
}

func (r *Registry) IdempotentReplay() {
	if r == nil {
		return
	}
	r.IdempotentHits.Inc()
}

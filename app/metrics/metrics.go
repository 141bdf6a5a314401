package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the pricing page collectors.
type Metrics struct {
	PageRendersTotal *prometheus.CounterVec
	PlanActionsTotal *prometheus.CounterVec
	CacheHitsTotal   prometheus.Counter
	CacheMissesTotal prometheus.Counter

	registry *prometheus.Registry
}

func NewMetrics(registry *prometheus.Registry) *Metrics {
	m := &Metrics{
		PageRendersTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pricing_page_renders_total",
				Help: "Total number of pricing page responses",
			},
			[]string{"format", "period"},
		),
		PlanActionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pricing_plan_actions_total",
				Help: "Total number of plan action activations",
			},
			[]string{"plan", "type"},
		),
		CacheHitsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pricing_page_cache_hits_total",
			Help: "Total number of rendered page cache hits",
		}),
		CacheMissesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pricing_page_cache_misses_total",
			Help: "Total number of rendered page cache misses",
		}),
		registry: registry,
	}

	registry.MustRegister(
		m.PageRendersTotal,
		m.PlanActionsTotal,
		m.CacheHitsTotal,
		m.CacheMissesTotal,
	)

	return m
}

// NewDefaultMetrics registers the pricing collectors next to the Go runtime
// and process collectors on a fresh registry.
func NewDefaultMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return NewMetrics(registry)
}

func (m *Metrics) RecordPageRender(format, period string) {
	m.PageRendersTotal.WithLabelValues(format, period).Inc()
}

func (m *Metrics) RecordPlanAction(plan, actionType string) {
	m.PlanActionsTotal.WithLabelValues(plan, actionType).Inc()
}

func (m *Metrics) RecordCacheHit() {
	m.CacheHitsTotal.Inc()
}

func (m *Metrics) RecordCacheMiss() {
	m.CacheMissesTotal.Inc()
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	dto "github.com/prometheus/client_model/go"

	"github.com/viacerta/boleto-cnab-go/internal/domain"
)

// Metrics holds all Prometheus metrics of the emission service.
type Metrics struct {
	// Registry is the Prometheus registry that owns these metrics.
	// Exposed so the /metrics endpoint can use it.
	Registry *prometheus.Registry

	requestDuration *prometheus.HistogramVec
	billsRendered   *prometheus.CounterVec
	remessas        *prometheus.CounterVec
	remessaRecords  *prometheus.CounterVec
	cacheHits       *prometheus.CounterVec
	cacheMisses     *prometheus.CounterVec
	requestsTotal   *prometheus.CounterVec
}

// NewMetrics creates a dedicated Prometheus registry and registers all
// application metrics in it. Using a private registry avoids "duplicate
// collector" panics when NewMetrics is called more than once (e.g. in tests).
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,

		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "boleto_request_duration_seconds",
				Help:    "Duration of requests by operation.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		billsRendered: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "boleto_bills_rendered_total",
				Help: "Total bills rendered, by bank code.",
			},
			[]string{"bank"},
		),
		remessas: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "boleto_remessas_total",
				Help: "Total remittance files generated, by bank code.",
			},
			[]string{"bank"},
		),
		remessaRecords: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "boleto_remessa_records_total",
				Help: "Total CNAB records written, by bank code.",
			},
			[]string{"bank"},
		),
		cacheHits: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "boleto_cache_hits_total",
				Help: "Total cache hits.",
			},
			[]string{"cache"},
		),
		cacheMisses: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "boleto_cache_misses_total",
				Help: "Total cache misses.",
			},
			[]string{"cache"},
		),
		requestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "boleto_requests_total",
				Help: "Total requests processed.",
			},
			[]string{"status"},
		),
	}
}

// RecordRequestDuration records the duration of an operation.
func (m *Metrics) RecordRequestDuration(operation string, d time.Duration) {
	m.requestDuration.WithLabelValues(operation).Observe(d.Seconds())
}

// IncrBillsRendered adds rendered bills for a bank.
func (m *Metrics) IncrBillsRendered(bank string, n int) {
	m.billsRendered.WithLabelValues(bank).Add(float64(n))
}

// IncrRemessa counts one generated remittance file and its records.
func (m *Metrics) IncrRemessa(bank string, records int) {
	m.remessas.WithLabelValues(bank).Inc()
	m.remessaRecords.WithLabelValues(bank).Add(float64(records))
}

// IncrCacheHit increments the cache hit counter.
func (m *Metrics) IncrCacheHit(cache string) {
	m.cacheHits.WithLabelValues(cache).Inc()
}

// IncrCacheMiss increments the cache miss counter.
func (m *Metrics) IncrCacheMiss(cache string) {
	m.cacheMisses.WithLabelValues(cache).Inc()
}

// IncrRequest increments the request counter with a status label.
func (m *Metrics) IncrRequest(status string) {
	m.requestsTotal.WithLabelValues(status).Inc()
}

// GetEmissionSnapshot returns a snapshot of emission metrics suitable
// for the GET /v1/metrics/emission endpoint.
func (m *Metrics) GetEmissionSnapshot() *domain.EmissionMetrics {
	totalRequests := getCounterValue(m.requestsTotal, "success") +
		getCounterValue(m.requestsTotal, "error")
	errorCount := getCounterValue(m.requestsTotal, "error")
	cacheHits := getCounterValue(m.cacheHits, "render")
	cacheMisses := getCounterValue(m.cacheMisses, "render")

	errorRate := float64(0)
	cacheHitRate := float64(0)
	if totalRequests > 0 {
		errorRate = errorCount / totalRequests
	}
	if cacheHits+cacheMisses > 0 {
		cacheHitRate = cacheHits / (cacheHits + cacheMisses)
	}

	bills := float64(0)
	remessas := float64(0)
	records := float64(0)
	for _, bank := range []string{"001", "033", "041", "104", "237", "341", "356"} {
		bills += getCounterValue(m.billsRendered, bank)
		remessas += getCounterValue(m.remessas, bank)
		records += getCounterValue(m.remessaRecords, bank)
	}

	return &domain.EmissionMetrics{
		TotalRequests:  int64(totalRequests),
		BillsRendered:  int64(bills),
		RemessaFiles:   int64(remessas),
		RemessaRecords: int64(records),
		ErrorRate:      errorRate,
		CacheHitRate:   cacheHitRate,
		Period:         "all_time",
	}
}

// getCounterValue extracts the current float64 value from a CounterVec for a given label.
func getCounterValue(cv *prometheus.CounterVec, label string) float64 {
	counter := cv.WithLabelValues(label)
	m := &dto.Metric{}
	if err := counter.(prometheus.Metric).Write(m); err != nil {
		return 0
	}
	if m.Counter != nil && m.Counter.Value != nil {
		return *m.Counter.Value
	}
	return 0
}

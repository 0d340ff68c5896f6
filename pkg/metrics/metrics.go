// Package metrics expõe os coletores Prometheus do agente.
package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics agrupa os coletores. Um *Metrics nil é válido e não registra nada.
type Metrics struct {
	requests      *prometheus.CounterVec
	duration      *prometheus.HistogramVec
	intentSources *prometheus.CounterVec
	historyErrors prometheus.Counter
}

// MustNew registra os coletores no registerer informado.
// Coletores já registrados são reaproveitados.
func MustNew(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "connector_agent",
			Name:      "requests_total",
			Help:      "Queries handled, by resolved action and outcome.",
		}, []string{"action", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "connector_agent",
			Name:      "request_duration_seconds",
			Help:      "End-to-end time spent handling a query.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"action"}),
		intentSources: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "connector_agent",
			Name:      "intent_source_total",
			Help:      "Intents produced by the NLU or by the keyword fallback.",
		}, []string{"source"}),
		historyErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "connector_agent",
			Name:      "history_write_errors_total",
			Help:      "Interactions that could not be recorded.",
		}),
	}

	m.requests = register(reg, m.requests)
	m.duration = register(reg, m.duration)
	m.intentSources = register(reg, m.intentSources)
	m.historyErrors = register(reg, m.historyErrors)
	return m
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) C {
	if err := reg.Register(c); err != nil {
		var already prometheus.AlreadyRegisteredError
		if errors.As(err, &already) {
			if existing, ok := already.ExistingCollector.(C); ok {
				return existing
			}
		}
		panic(err)
	}
	return c
}

// ObserveRequest conta a requisição e registra sua duração
func (m *Metrics) ObserveRequest(action, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(action, outcome).Inc()
	m.duration.WithLabelValues(action).Observe(elapsed.Seconds())
}

// ObserveIntentSource conta a origem da intenção ("nlu" ou "fallback")
func (m *Metrics) ObserveIntentSource(source string) {
	if m == nil {
		return
	}
	m.intentSources.WithLabelValues(source).Inc()
}

// IncHistoryError conta falhas ao gravar o histórico
func (m *Metrics) IncHistoryError() {
	if m == nil {
		return
	}
	m.historyErrors.Inc()
}

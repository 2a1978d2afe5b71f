package engine

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	cacheChat      = "chat"
	cacheEmbedding = "embedding"
)

type metrics struct {
	cacheRequests *prometheus.CounterVec
	evictions     *prometheus.CounterVec
	constructions *prometheus.CounterVec
	loads         *prometheus.CounterVec
	entries       *prometheus.GaugeVec
}

// newMetrics registers the engine collectors with reg. A nil reg leaves them
// unregistered.
func newMetrics(reg prometheus.Registerer) *metrics {
	factory := promauto.With(reg)
	return &metrics{
		cacheRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "modelcat",
				Subsystem: "cache",
				Name:      "requests_total",
				Help:      "Model cache lookups by cache and result",
			},
			[]string{"cache", "result"},
		),
		evictions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "modelcat",
				Subsystem: "cache",
				Name:      "evictions_total",
				Help:      "Model handles dropped to make room",
			},
			[]string{"cache"},
		),
		constructions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "modelcat",
				Subsystem: "provider",
				Name:      "constructions_total",
				Help:      "Provider constructor calls by kind, provider and result",
			},
			[]string{"kind", "provider", "result"},
		),
		loads: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "modelcat",
				Subsystem: "catalog",
				Name:      "loads_total",
				Help:      "Catalog loads and reloads by result",
			},
			[]string{"result"},
		),
		entries: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "modelcat",
				Subsystem: "catalog",
				Name:      "entries",
				Help:      "Entries in the serving catalog",
			},
			[]string{"kind"},
		),
	}
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

// Package metrics exposes Prometheus instrumentation for the server.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// EntryLoads counts journal entry loads, including stale-discarded ones.
	EntryLoads = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "daybook_entry_loads_total",
		Help: "Journal entry loads by outcome.",
	}, []string{"outcome"})

	// EntrySaves counts journal entry saves by outcome (ok, partial, error).
	EntrySaves = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "daybook_entry_saves_total",
		Help: "Journal entry saves by outcome.",
	}, []string{"outcome"})

	// SaveDuration observes end-to-end save latency.
	SaveDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "daybook_entry_save_seconds",
		Help:    "Journal entry save latency.",
		Buckets: prometheus.DefBuckets,
	})

	// TaskMutations counts task creations and updates.
	TaskMutations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "daybook_task_mutations_total",
		Help: "Task mutations by kind.",
	}, []string{"kind"})

	// LiveClients tracks connected websocket task feeds.
	LiveClients = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "daybook_live_clients",
		Help: "Connected websocket task feed clients.",
	})
)

// Handler returns the /metrics HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

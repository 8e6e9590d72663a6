// Package metrics exposes counters for the dashboard's silent failure paths,
// which never surface to callers and would otherwise only show up in logs.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "pbx_dashboard"

// Load fallback reasons.
const (
	ReasonMissing   = "missing"
	ReasonBackend   = "backend"
	ReasonMalformed = "malformed"
)

var (
	PersistWrites = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "persist_writes_total",
		Help:      "Write-through persistence attempts by outcome.",
	}, []string{"outcome"})

	LoadFallbacks = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "load_fallbacks_total",
		Help:      "Registry loads that fell back to the compiled-in catalog.",
	}, []string{"reason"})

	LayoutsApplied = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "layouts_applied_total",
		Help:      "Auto-layout requests by strategy; unknown strategies are counted as \"unknown\".",
	}, []string{"layout"})

	ActiveSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "sessions_active",
		Help:      "Customization sessions held in memory.",
	})
)

// Handler serves the default registry in the Prometheus exposition format.
func Handler() http.Handler {
	return promhttp.Handler()
}

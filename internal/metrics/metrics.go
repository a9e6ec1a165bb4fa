// Package metrics exposes Prometheus collectors for ledger commands, RPCs
// and sessions.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "motoledger"

var (
	// CommandsTotal counts workspace commands by name and outcome kind
	// ("ok", "validation", "not_found", ...).
	CommandsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "commands_total",
		Help:      "Ledger commands executed, by command and outcome.",
	}, []string{"command", "outcome"})

	// RPCDuration tracks unary RPC latency by procedure and connect code.
	RPCDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "rpc_duration_seconds",
		Help:      "Unary RPC latency.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"procedure", "code"})

	// SessionEvents counts session lifecycle events: opened, closed, rejected.
	SessionEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_events_total",
		Help:      "Session lifecycle events.",
	}, []string{"event"})

	// WorkspacesActive is the number of live per-session workspaces.
	WorkspacesActive = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "workspaces_active",
		Help:      "Per-session workspaces currently held in memory.",
	})
)

// ObserveCommand records one command outcome.
func ObserveCommand(command, outcome string) {
	CommandsTotal.WithLabelValues(command, outcome).Inc()
}

// Handler serves the default registry for scraping.
func Handler() http.Handler {
	return promhttp.Handler()
}

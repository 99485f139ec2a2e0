// Package metrics exposes Prometheus counters and histograms for the
// resolution engine, following the same CounterVec/HistogramVec plus
// MustRegister pattern the teacher's gRPC middleware uses.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// QueriesSent counts every query_servers call, labeled by the query
	// type being asked for.
	QueriesSent = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "resolverd_queries_sent_total", Help: "Total queries sent to any server"},
		[]string{"qtype"},
	)

	// ServerTimeouts counts query_servers calls where every candidate
	// server timed out.
	ServerTimeouts = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "resolverd_server_timeouts_total", Help: "query_servers calls where every server timed out"},
	)

	// ReferralsFollowed counts each NS-referral hop taken by the engine.
	ReferralsFollowed = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "resolverd_referrals_followed_total", Help: "NS referrals followed during resolution"},
	)

	// AliasesFollowed counts each CNAME restart-from-root taken.
	AliasesFollowed = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "resolverd_aliases_followed_total", Help: "CNAME aliases followed during resolution"},
	)

	// StepBudgetExceeded counts resolutions that were aborted for running
	// past the engine's step budget.
	StepBudgetExceeded = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "resolverd_step_budget_exceeded_total", Help: "Resolutions aborted for exceeding the step budget"},
	)

	// ResolutionDuration tracks end-to-end wall-clock time of a single
	// top-level Resolve call, labeled by outcome.
	ResolutionDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "resolverd_resolution_duration_seconds", Help: "Resolve() wall-clock duration", Buckets: prometheus.DefBuckets},
		[]string{"outcome"},
	)
)

func init() {
	prometheus.MustRegister(
		QueriesSent,
		ServerTimeouts,
		ReferralsFollowed,
		AliasesFollowed,
		StepBudgetExceeded,
		ResolutionDuration,
	)
}

// Handler returns the promhttp handler serving the registered metrics.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Package metrics defines and registers all custom Prometheus metrics for
// the user directory API. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics register with the default Prometheus registry at import time via
// promauto; the /metrics route exposes them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "userdir"

// ── User lifecycle metrics ────────────────────────────────────────────────────

// UsersCreatedTotal counts successfully created users.
var UsersCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_created_total",
		Help:      "Total number of users created.",
	},
)

// UsersUpdatedTotal counts successful user updates.
// Label:
//   - geodata_refreshed: "true" when the update included a zip change and
//     re-ran geocoding, "false" otherwise
var UsersUpdatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_updated_total",
		Help:      "Total number of users updated, by whether geodata was refreshed.",
	},
	[]string{"geodata_refreshed"},
)

// UsersDeletedTotal counts successful user deletions.
var UsersDeletedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_deleted_total",
		Help:      "Total number of users deleted.",
	},
)

// ── Geodata client metrics ────────────────────────────────────────────────────

// GeodataRequestsTotal counts calls to the upstream geocoding service.
// Label:
//   - outcome: "success" or "error"
var GeodataRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "geodata_requests_total",
		Help:      "Total number of geocoding lookups, by outcome.",
	},
	[]string{"outcome"},
)

// GeodataRequestDuration measures the latency of a single geocoding lookup.
var GeodataRequestDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "geodata_request_duration_seconds",
		Help:      "Duration of geocoding lookups against the upstream service.",
		Buckets:   prometheus.DefBuckets, // .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10
	},
)

// ── Rate limiter metrics ──────────────────────────────────────────────────────

// RateLimitDecisionsTotal counts throttle decisions.
// Label:
//   - result: "allowed", "limited", or "fail_open" (Redis unreachable)
var RateLimitDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rate_limit_decisions_total",
		Help:      "Total number of rate limit decisions, by result.",
	},
	[]string{"result"},
)

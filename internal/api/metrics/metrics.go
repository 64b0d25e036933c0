// Package metrics defines and registers all custom Prometheus metrics for the
// geolocation API. It is the single source of truth for metric names, labels,
// and help strings. Metrics register with the default registry via promauto;
// the /metrics route exposes them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "geolocation"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginAttemptsTotal counts login attempts by outcome.
// Label:
//   - result: "success", "invalid" (bad or missing credentials), "error"
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// TokenRejectionsTotal counts requests blocked by the auth middleware.
// Label:
//   - reason: "missing" (no/malformed Authorization header) or "invalid"
//     (bad signature, wrong algorithm, or expired)
var TokenRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_rejections_total",
		Help:      "Total number of requests rejected by the auth middleware, by reason.",
	},
	[]string{"reason"},
)

// ── Lookup metrics ────────────────────────────────────────────────────────────

// LookupsTotal counts lookup requests by outcome.
// Label:
//   - result: "success" or "error"
var LookupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "lookups_total",
		Help:      "Total number of geolocation lookups served, by result.",
	},
	[]string{"result"},
)

// GeoCacheTotal counts cache consultations.
// Label:
//   - result: "hit" or "miss"
var GeoCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "geo_cache_total",
		Help:      "Total number of geolocation cache reads, labelled by result (hit/miss).",
	},
	[]string{"result"},
)

// LookupDuration measures end-to-end lookup handling time.
var LookupDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "lookup_duration_seconds",
		Help:      "Duration of geolocation lookups from request to response.",
		Buckets:   prometheus.DefBuckets,
	},
)

// ── Recorder metrics ──────────────────────────────────────────────────────────

// RecorderQueueDepth tracks the records waiting in each recorder worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var RecorderQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "recorder_queue_depth",
		Help:      "Current number of history records pending in each recorder worker channel.",
	},
	[]string{"worker_id"},
)

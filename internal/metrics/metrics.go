// Package metrics defines the Prometheus metrics for the session-credential
// service. It is the single source of truth for metric names, labels, and
// help strings. Collectors register themselves with the default registry at
// package init via promauto, so a host process only has to expose or push
// the default gatherer.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "auth"

// LoginsTotal counts login attempts by outcome.
// Label:
//   - result: "created" (new identity), "rotated" (token replaced),
//     "denied", "invalid_request", or "store_error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by outcome.",
	},
	[]string{"result"},
)

// ValidationsTotal counts token validation decisions.
// Label:
//   - result: "granted", "denied", or "store_error"
var ValidationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "validations_total",
		Help:      "Total number of token validations, by decision.",
	},
	[]string{"result"},
)

// StoreConflictsTotal counts mutations that gave up waiting for the store
// lock and surfaced a retryable conflict.
var StoreConflictsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "store_conflicts_total",
		Help:      "Total number of store mutations aborted on lock contention.",
	},
)

// StoreRewriteDuration measures the full read-modify-write cycle of a token
// rotation, lock wait included.
var StoreRewriteDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "store_rewrite_duration_seconds",
		Help:      "Duration of whole-store rewrites, from lock acquisition to rename.",
		Buckets:   prometheus.DefBuckets,
	},
)

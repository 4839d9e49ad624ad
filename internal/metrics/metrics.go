// Package metrics defines and registers all custom Prometheus metrics for
// the newsroom API. It is the single source of truth for metric names,
// labels, and help strings. Metrics register with the default registry at
// package init via promauto; the /metrics endpoint is served by the router.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "newsroom"

// ArticlesCreatedTotal counts articles entering the workflow.
// Label:
//   - status: the initial workflow status ("draft" or "pending")
var ArticlesCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "articles_created_total",
		Help:      "Total number of articles created, by initial status.",
	},
	[]string{"status"},
)

// ArticlesApprovedTotal counts approval calls.
// Label:
//   - result: "approved" (fresh transition) or "already_approved" (no-op)
var ArticlesApprovedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "articles_approved_total",
		Help:      "Total number of approval operations, by result.",
	},
	[]string{"result"},
)

// NotificationsSentTotal counts delivered notification messages.
// Label:
//   - kind: "subscriber" or "author"
var NotificationsSentTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_sent_total",
		Help:      "Total number of approval notifications delivered.",
	},
	[]string{"kind"},
)

// NotificationErrorsTotal counts swallowed transport failures.
// Label:
//   - transport: "mail" or "social"
var NotificationErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notification_errors_total",
		Help:      "Total number of notification transport failures (best-effort, never propagated).",
	},
	[]string{"transport"},
)

// FanoutDedupTotal counts dedup guard decisions on approval fan-outs.
// Label:
//   - result: "hit" (fan-out skipped) or "miss" (fan-out ran)
var FanoutDedupTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "fanout_dedup_total",
		Help:      "Total number of fan-out dedup checks, labelled by result (hit/miss).",
	},
	[]string{"result"},
)

// FanoutDuration measures one fan-out run from recipient computation to
// the last dispatch.
var FanoutDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "fanout_duration_seconds",
		Help:      "Duration of approval notification fan-out runs.",
		Buckets:   prometheus.DefBuckets,
	},
)

// SubscriptionsTotal counts subscription mutations.
// Labels:
//   - target: "publisher" or "journalist"
//   - op: "subscribe" or "unsubscribe"
var SubscriptionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "subscriptions_total",
		Help:      "Total number of subscription changes, by target kind and operation.",
	},
	[]string{"target", "op"},
)

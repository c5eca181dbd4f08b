// Package metrics defines and registers all custom Prometheus metrics for
// the networkasro back-office API. It is the single source of truth for
// metric names, labels, and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "backoffice"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// SignInsTotal counts password sign-in attempts.
// Label:
//   - result: "success" or "failure"
var SignInsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sign_ins_total",
		Help:      "Total number of password sign-in attempts, by result.",
	},
	[]string{"result"},
)

// SessionRefreshesTotal counts refresh-token exchanges.
// Label:
//   - result: "success" or "failure"
var SessionRefreshesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_refreshes_total",
		Help:      "Total number of refresh-token exchanges, by result.",
	},
	[]string{"result"},
)

// ── Billing metrics ───────────────────────────────────────────────────────────

// InvoicesGeneratedTotal counts invoices created by the monthly generator.
var InvoicesGeneratedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "invoices_generated_total",
		Help:      "Total number of invoices created by monthly generation.",
	},
)

// InvoicesVerifiedTotal counts payment verifications.
var InvoicesVerifiedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "invoices_verified_total",
		Help:      "Total number of invoices verified by admin or owner.",
	},
)

// ── Commission accrual metrics ────────────────────────────────────────────────

// AccrualsProcessedTotal counts accrual jobs that completed.
// Label:
//   - result: "ok" or "error"
var AccrualsProcessedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "accruals_processed_total",
		Help:      "Total number of commission accrual jobs processed, by result.",
	},
	[]string{"result"},
)

// AccrualQueueDepth tracks pending accrual jobs per worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var AccrualQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "accrual_queue_depth",
		Help:      "Current number of accrual jobs pending in each worker channel.",
	},
	[]string{"worker_id"},
)

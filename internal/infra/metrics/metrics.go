// Package metrics provides Prometheus metrics for VapeTrack:
// counters and gauges for the puff log, progression, rewards, and sync.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ─── Tracking ───────────────────────────────────────────────────────────────

// PuffsLogged tracks logged puffs by source (direct vs synthetic).
var PuffsLogged = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "vapetrack",
	Name:      "puffs_logged_total",
	Help:      "Total puffs appended to the log.",
}, []string{"source"})

// JuicePurchases tracks new-reservoir checkpoints.
var JuicePurchases = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "vapetrack",
	Name:      "juice_purchases_total",
	Help:      "Total new-reservoir checkpoints recorded.",
})

// ─── Progression ────────────────────────────────────────────────────────────

// XPAwarded tracks experience points granted by the daily award.
var XPAwarded = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "vapetrack",
	Name:      "xp_awarded_total",
	Help:      "Total experience points granted by daily awards.",
})

// XPBalance tracks the current experience balance.
var XPBalance = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "vapetrack",
	Name:      "xp_balance_current",
	Help:      "Current experience point balance.",
})

// BadgesUnlocked tracks badge unlocks.
var BadgesUnlocked = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "vapetrack",
	Name:      "badges_unlocked_total",
	Help:      "Total badges unlocked.",
})

// RewardsPurchased tracks reward purchases by category.
var RewardsPurchased = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "vapetrack",
	Name:      "rewards_purchased_total",
	Help:      "Total cosmetic rewards purchased.",
}, []string{"category"})

// ─── Projection ─────────────────────────────────────────────────────────────

// NetSavings tracks the latest computed net savings (signed).
var NetSavings = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "vapetrack",
	Name:      "net_savings_dollars",
	Help:      "Projected smoking cost avoided minus actual vaping spend.",
})

// ─── Remote Sync ────────────────────────────────────────────────────────────

// SyncWrites tracks successful best-effort remote writes.
var SyncWrites = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "vapetrack",
	Name:      "sync_writes_total",
	Help:      "Successful remote mirror writes.",
}, []string{"kind"})

// SyncFailures tracks failed remote writes (never surfaced locally).
var SyncFailures = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "vapetrack",
	Name:      "sync_failures_total",
	Help:      "Failed remote mirror writes.",
}, []string{"kind"})

// SyncDropped tracks mirror events dropped because the queue was full.
var SyncDropped = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "vapetrack",
	Name:      "sync_dropped_total",
	Help:      "Mirror events dropped due to a full queue.",
})

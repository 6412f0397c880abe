package domain

import "time"

// ─── Log Types ──────────────────────────────────────────────────────────────

// LogSource identifies how a log entry was produced.
type LogSource string

const (
	// SourceDirect is a single tap on the puff counter.
	SourceDirect LogSource = "direct"
	// SourceSynthetic is a bulk entry synthesized from a juice-level decrease.
	SourceSynthetic LogSource = "synthetic"
)

// LogEntry is one consumption event. The log is append-only: entries are
// never edited or removed individually, only wholesale-cleared on reset.
type LogEntry struct {
	ID        int64     `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Source    LogSource `json:"source"`
}

// JuicePurchase marks acquisition of a new liquid reservoir. The
// puffs-since-previous count is computed once at creation and frozen.
type JuicePurchase struct {
	ID                 string    `json:"id"`
	Timestamp          time.Time `json:"timestamp"`
	PuffsSincePrevious int64     `json:"puffs_since_previous"`
}

// ─── Badge Types ────────────────────────────────────────────────────────────

// UserStats is a snapshot of user state fed to badge predicates.
type UserStats struct {
	TotalPuffs   int64         `json:"total_puffs"`
	SmokeFreeFor time.Duration `json:"smoke_free_for"` // Time since last puff
	NetSavings   float64       `json:"net_savings"`
}

// BadgeDef defines a single badge's unlock condition.
type BadgeDef struct {
	ID        string               `json:"id"`
	Name      string               `json:"name"`
	Desc      string               `json:"desc"`
	Icon      string               `json:"icon"`
	Predicate func(UserStats) bool `json:"-"` // Check function (not serialized)
}

// UnlockedBadge records when a badge was earned. Badges are one-way:
// once unlocked they are never removed except by full reset.
type UnlockedBadge struct {
	ID         string    `json:"id"`
	UnlockedAt time.Time `json:"unlocked_at"`
}

// ─── Reward Types ───────────────────────────────────────────────────────────

// RewardCategory classifies cosmetic rewards. Equipping is exclusive
// within a category.
type RewardCategory string

const (
	RewardIcon   RewardCategory = "icon"
	RewardBorder RewardCategory = "border"
	RewardEffect RewardCategory = "effect"
)

// RewardItem is a static catalog definition of a purchasable cosmetic.
type RewardItem struct {
	ID       string         `json:"id"`
	Name     string         `json:"name"`
	Category RewardCategory `json:"category"`
	CostXP   int64          `json:"cost_xp"`
	Icon     string         `json:"icon,omitempty"`
}

// PurchasedReward records an irreversible purchase (no refunds).
type PurchasedReward struct {
	ID          string    `json:"id"`
	PurchasedAt time.Time `json:"purchased_at"`
}

// EquippedRewards maps category → currently-equipped item ID.
// Absent category means nothing equipped.
type EquippedRewards map[RewardCategory]string

// ─── Display Types ──────────────────────────────────────────────────────────

// DisplayStats is the derived, read-only view recomputed on demand from
// the log and profile. Computing it never mutates state.
type DisplayStats struct {
	TodayPuffs          int64         `json:"today_puffs"`
	TotalPuffs          int64         `json:"total_puffs"`
	HabitPercentage     int           `json:"habit_percentage"`
	CigaretteEquivalent float64       `json:"cigarette_equivalent"` // Today, one decimal
	PuffsPerCigarette   int           `json:"puffs_per_cigarette"`
	NetSavings          float64       `json:"net_savings"` // Signed, never clamped
	CigarettesAvoided   float64       `json:"cigarettes_avoided"`
	TimeSinceLastPuff   time.Duration `json:"time_since_last_puff"`
	XP                  int64         `json:"xp"`
	Level               int           `json:"level"`
}

// DayStat is one bar of the weekly trend: a day's consumption expressed
// as cigarette-equivalents against the smoking baseline.
type DayStat struct {
	Date                time.Time `json:"date"`
	Puffs               int64     `json:"puffs"`
	CigaretteEquivalent float64   `json:"cigarette_equivalent"`
	Percentage          int       `json:"percentage"`
}

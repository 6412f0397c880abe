// Package finance computes the running money comparison between the
// old smoking habit and actual vaping spend. All functions are pure
// and side-effect-free; they are recomputed on a short interval for
// the live counters and must stay cheap.
package finance

import (
	"time"

	"github.com/vapetrack/vapetrack/internal/app/equivalence"
)

// DailySmokingCost is what the old habit cost per day:
// (cigarettesPerDay / cigarettesPerPack) × packCost.
// A non-positive pack size falls back to the standard 20.
func DailySmokingCost(cigsPerDay, cigsPerPack int, packCost float64) float64 {
	if cigsPerDay <= 0 || packCost <= 0 {
		return 0
	}
	if cigsPerPack <= 0 {
		cigsPerPack = 20
	}
	return float64(cigsPerDay) / float64(cigsPerPack) * packCost
}

// CostPerPuff spreads a device's unit cost over its rated liquid
// volume at the dosing model's 150 puffs/ml. Zero when either input
// is degenerate.
func CostPerPuff(deviceUnitCost, reservoirMl float64) float64 {
	if deviceUnitCost <= 0 || reservoirMl <= 0 {
		return 0
	}
	return deviceUnitCost / (reservoirMl * equivalence.PuffsPerMl)
}

// NetSavings is projected smoking cost avoided minus actual vaping
// spend. Days are continuous (fractional), and the result is signed:
// heavy vaping can push it negative, which is displayed, not clamped.
func NetSavings(daysSince, dailySmokingCost float64, totalPuffs int64, costPerPuff float64) float64 {
	projected := daysSince * dailySmokingCost
	actual := float64(totalPuffs) * costPerPuff
	return projected - actual
}

// CigarettesAvoided is the continuous count of cigarettes not smoked
// since onboarding.
func CigarettesAvoided(daysSince float64, cigsPerDay int) float64 {
	if daysSince <= 0 || cigsPerDay <= 0 {
		return 0
	}
	return daysSince * float64(cigsPerDay)
}

// DaysSince returns fractional days elapsed from start to now,
// never negative. Zero start (not onboarded) yields 0.
func DaysSince(start, now time.Time) float64 {
	if start.IsZero() || now.Before(start) {
		return 0
	}
	return now.Sub(start).Hours() / 24
}

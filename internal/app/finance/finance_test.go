package finance_test

import (
	"math"
	"testing"
	"time"

	"github.com/vapetrack/vapetrack/internal/app/finance"
)

func TestDailySmokingCost(t *testing.T) {
	// 10/day out of $15 packs of 20 → $7.50/day
	if got := finance.DailySmokingCost(10, 20, 15); got != 7.5 {
		t.Errorf("DailySmokingCost(10, 20, 15) = %v, want 7.5", got)
	}
	// Non-positive pack size falls back to 20
	if got := finance.DailySmokingCost(10, 0, 15); got != 7.5 {
		t.Errorf("zero pack size should fall back to 20: got %v", got)
	}
	if got := finance.DailySmokingCost(0, 20, 15); got != 0 {
		t.Errorf("zero baseline should cost 0: got %v", got)
	}
}

func TestCostPerPuff(t *testing.T) {
	// $15 device, 2 ml → 15/(2*150) = $0.05
	if got := finance.CostPerPuff(15, 2); got != 0.05 {
		t.Errorf("CostPerPuff(15, 2) = %v, want 0.05", got)
	}
	if got := finance.CostPerPuff(15, 0); got != 0 {
		t.Errorf("zero reservoir must yield 0, got %v", got)
	}
	if got := finance.CostPerPuff(0, 2); got != 0 {
		t.Errorf("zero cost must yield 0, got %v", got)
	}
}

func TestNetSavings_StrictlyDecreasingInPuffs(t *testing.T) {
	const days, daily, perPuff = 3.5, 7.5, 0.05
	prev := finance.NetSavings(days, daily, 0, perPuff)
	for puffs := int64(1); puffs <= 100; puffs++ {
		cur := finance.NetSavings(days, daily, puffs, perPuff)
		if cur >= prev {
			t.Fatalf("not strictly decreasing at %d puffs: %v >= %v", puffs, cur, prev)
		}
		prev = cur
	}
}

func TestNetSavings_CanGoNegative(t *testing.T) {
	// Barely any elapsed time, lots of puffs: vaping spend wins
	got := finance.NetSavings(0.01, 7.5, 1000, 0.05)
	if got >= 0 {
		t.Errorf("expected negative savings, got %v", got)
	}
}

func TestNetSavings_FractionalDays(t *testing.T) {
	// Half a day of a $10/day habit, no puffs → exactly $5
	got := finance.NetSavings(0.5, 10, 0, 0.05)
	if math.Abs(got-5) > 1e-9 {
		t.Errorf("NetSavings(0.5, 10, 0, _) = %v, want 5", got)
	}
}

func TestCigarettesAvoided(t *testing.T) {
	got := finance.CigarettesAvoided(2.5, 10)
	if math.Abs(got-25) > 1e-9 {
		t.Errorf("CigarettesAvoided(2.5, 10) = %v, want 25", got)
	}
	if finance.CigarettesAvoided(-1, 10) != 0 {
		t.Error("negative elapsed time must yield 0")
	}
}

func TestDaysSince(t *testing.T) {
	start := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	now := start.Add(36 * time.Hour)
	if got := finance.DaysSince(start, now); math.Abs(got-1.5) > 1e-9 {
		t.Errorf("DaysSince = %v, want 1.5", got)
	}
	if finance.DaysSince(time.Time{}, now) != 0 {
		t.Error("zero start must yield 0")
	}
	if finance.DaysSince(now, start) != 0 {
		t.Error("now before start must yield 0")
	}
}

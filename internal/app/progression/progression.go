// Package progression owns the experience-point balance.
// XP is earned once per calendar day from yesterday's reduction below
// the smoking baseline, and spent only through reward purchases.
// The superseded per-puff award scheme is intentionally absent.
package progression

import (
	"fmt"
	"math"
	"time"

	"github.com/vapetrack/vapetrack/internal/app/equivalence"
	"github.com/vapetrack/vapetrack/internal/infra/metrics"
	"github.com/vapetrack/vapetrack/internal/infra/sqlite"
)

// checkpointKey holds the last local calendar date ("2006-01-02") for
// which the daily award was evaluated.
const checkpointKey = "daily_award_date"

// Service manages the XP ledger and the once-daily award.
type Service struct {
	db *sqlite.DB
}

// NewService creates a progression service.
func NewService(db *sqlite.DB) *Service {
	return &Service{db: db}
}

// Balance returns the current XP balance.
func (s *Service) Balance() (int64, error) {
	p, err := s.db.Profile()
	if err != nil {
		return 0, err
	}
	return p.XP, nil
}

// DailyAward computes the XP granted for a finished day:
// round((100 − pct) × 10) when below baseline, 0 at or above it.
// A day with zero logged puffs earns nothing.
func DailyAward(dayPuffs int64, baselinePerDay int, strengthMgPerMl float64) int64 {
	if dayPuffs <= 0 {
		return 0
	}
	pct := equivalence.HabitPercentage(dayPuffs, baselinePerDay, strengthMgPerMl)
	if pct >= 100 {
		return 0
	}
	return int64(math.Round(float64(100-pct) * 10))
}

// RunDailyAward evaluates yesterday's reduction and credits XP,
// at most once per local calendar date. Re-invocation on the same date
// is a no-op. The checkpoint advances even when yesterday has no logs:
// entries are stamped at creation time, so data for a past day can
// never appear later; holding the checkpoint open buys nothing.
// Returns the XP granted (0 on no-op).
func (s *Service) RunDailyAward(now time.Time) (int64, error) {
	today := now.Format(time.DateOnly)

	last, err := s.db.GetState(checkpointKey)
	if err != nil {
		return 0, fmt.Errorf("read award checkpoint: %w", err)
	}
	if last == today {
		return 0, nil
	}

	p, err := s.db.Profile()
	if err != nil {
		return 0, err
	}

	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	yesterdayPuffs, err := s.db.PuffCountBetween(dayStart.AddDate(0, 0, -1), dayStart)
	if err != nil {
		return 0, fmt.Errorf("count yesterday: %w", err)
	}

	award := DailyAward(yesterdayPuffs, p.CigarettesPerDay, p.DeviceStrength())
	if award > 0 {
		newXP, err := s.db.AddXP(award)
		if err != nil {
			return 0, fmt.Errorf("credit award: %w", err)
		}
		metrics.XPAwarded.Add(float64(award))
		metrics.XPBalance.Set(float64(newXP))
	}

	if err := s.db.SetState(checkpointKey, today); err != nil {
		return 0, fmt.Errorf("advance award checkpoint: %w", err)
	}
	return award, nil
}

// LastAwardDate returns the checkpoint date ("" before any award run).
func (s *Service) LastAwardDate() (string, error) {
	return s.db.GetState(checkpointKey)
}

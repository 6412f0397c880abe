// Package badges implements the milestone badge system: monotonic
// one-way unlocks evaluated against a snapshot of user stats on every
// log mutation. A badge, once earned, is never removed except by full
// reset.
package badges

import (
	"time"

	"github.com/vapetrack/vapetrack/internal/domain"
	"github.com/vapetrack/vapetrack/internal/infra/metrics"
	"github.com/vapetrack/vapetrack/internal/infra/sqlite"
)

// Service evaluates badge predicates and persists unlocks.
type Service struct {
	db          *sqlite.DB
	definitions []domain.BadgeDef
}

// NewService creates a badge service with the full catalog.
func NewService(db *sqlite.DB) *Service {
	return &Service{
		db:          db,
		definitions: AllBadges(),
	}
}

// CheckAndUnlock evaluates all badges against current stats.
// Returns newly unlocked badges (already-unlocked are skipped).
func (s *Service) CheckAndUnlock(stats domain.UserStats) ([]domain.BadgeDef, error) {
	var newlyUnlocked []domain.BadgeDef

	for _, def := range s.definitions {
		unlocked, err := s.db.IsBadgeUnlocked(def.ID)
		if err != nil {
			return nil, err
		}
		if unlocked {
			continue
		}

		if def.Predicate != nil && def.Predicate(stats) {
			isNew, err := s.db.UnlockBadge(def.ID, time.Now())
			if err != nil {
				return nil, err
			}
			if isNew {
				metrics.BadgesUnlocked.Inc()
				newlyUnlocked = append(newlyUnlocked, def)
			}
		}
	}

	return newlyUnlocked, nil
}

// ListUnlocked returns all badges the user has earned.
func (s *Service) ListUnlocked() ([]domain.UnlockedBadge, error) {
	return s.db.ListBadges()
}

// Definitions returns all badge definitions (for display).
func (s *Service) Definitions() []domain.BadgeDef {
	return s.definitions
}

// TotalCount returns the number of defined badges.
func (s *Service) TotalCount() int {
	return len(s.definitions)
}

// ─── Badge Definitions ──────────────────────────────────────────────────────

// AllBadges returns the full badge catalog. Predicates must be
// monotone in the stats snapshot: once true, they stay true (short of
// a full reset), which is what keeps the unlocked set grow-only.
func AllBadges() []domain.BadgeDef {
	return []domain.BadgeDef{
		{
			ID: "first_step", Name: "First Step", Icon: "👣",
			Desc:      "Logged your first puff",
			Predicate: func(s domain.UserStats) bool { return s.TotalPuffs >= 1 },
		},
		{
			ID: "century_club", Name: "Century Club", Icon: "💯",
			Desc:      "Logged 100 puffs",
			Predicate: func(s domain.UserStats) bool { return s.TotalPuffs >= 100 },
		},
		{
			ID: "saver", Name: "Saver", Icon: "💰",
			Desc:      "Saved your first $10",
			Predicate: func(s domain.UserStats) bool { return s.NetSavings >= 10 },
		},
		{
			ID: "clear_day", Name: "Clear Day", Icon: "🌤️",
			Desc:      "24 hours without a puff",
			Predicate: func(s domain.UserStats) bool { return s.SmokeFreeFor >= 24*time.Hour },
		},
		{
			ID: "clean_week", Name: "Clean Week", Icon: "🏆",
			Desc:      "A full week without a puff",
			Predicate: func(s domain.UserStats) bool { return s.SmokeFreeFor >= 7*24*time.Hour },
		},
	}
}

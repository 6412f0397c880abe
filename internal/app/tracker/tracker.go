// Package tracker is the core engine: it owns every mutation of the
// puff log and the profile, and derives the read-only display views.
// All mutating entry points take an explicit clock value so behavior
// is reproducible under test.
package tracker

import (
	"fmt"
	"log"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/vapetrack/vapetrack/internal/app/badges"
	"github.com/vapetrack/vapetrack/internal/app/equivalence"
	"github.com/vapetrack/vapetrack/internal/app/finance"
	"github.com/vapetrack/vapetrack/internal/app/progression"
	"github.com/vapetrack/vapetrack/internal/domain"
	"github.com/vapetrack/vapetrack/internal/infra/metrics"
	"github.com/vapetrack/vapetrack/internal/infra/sqlite"
)

// DevicePuffsPerMl is the manufacturer-style yield used to translate a
// juice-level drop into synthesized log entries. It is deliberately
// distinct from the dosing model's equivalence.PuffsPerMl: device
// ratings describe hardware yield, not nicotine delivery.
const DevicePuffsPerMl = 300.0

// Mirror receives fire-and-forget copies of local mutations for
// best-effort remote sync. Implementations must never block and their
// failures must never surface to the caller.
type Mirror interface {
	ProfileChanged(p domain.Profile)
	PuffLogged(e domain.LogEntry)
}

// Engine coordinates the log, profile, badge checks, and the daily
// XP award around every mutation.
type Engine struct {
	db     *sqlite.DB
	badges *badges.Service
	ledger *progression.Service
	mirror Mirror
}

// NewEngine wires the engine over an open database.
func NewEngine(db *sqlite.DB, b *badges.Service, ledger *progression.Service) *Engine {
	return &Engine{db: db, badges: b, ledger: ledger}
}

// SetMirror attaches a sync mirror. Pass nil to detach.
func (e *Engine) SetMirror(m Mirror) { e.mirror = m }

// Profile returns the current profile (defaults before onboarding).
func (e *Engine) Profile() (domain.Profile, error) {
	return e.db.Profile()
}

// ─── Mutations ──────────────────────────────────────────────────────────────

// LogPuff appends one direct log entry. Logging a puff ends any active
// smoke-free attempt: the attempt state cannot coexist with fresh
// consumption.
func (e *Engine) LogPuff(now time.Time) (domain.LogEntry, error) {
	entry, err := e.db.AppendPuff(now, domain.SourceDirect)
	if err != nil {
		return domain.LogEntry{}, err
	}
	metrics.PuffsLogged.WithLabelValues(string(domain.SourceDirect)).Inc()

	// The entry has committed; a failed clear is handled like the
	// other post-commit hooks, never reported as a failed append.
	if err := e.endSmokeFree(); err != nil {
		log.Printf("[tracker] smoke-free clear failed: %v", err)
	}

	if e.mirror != nil {
		e.mirror.PuffLogged(entry)
	}
	e.afterMutation(now)
	return entry, nil
}

// ApplyJuiceLevel records a new reservoir reading as a percentage.
// A decrease is translated into synthesized log entries at the device
// yield: ml consumed = (old − new)/100 × reservoir, entries =
// round(ml × DevicePuffsPerMl), all timestamped now. An increase
// (refill) just stores the new level and synthesizes nothing.
// Returns the number of entries synthesized.
func (e *Engine) ApplyJuiceLevel(now time.Time, newLevelPct float64) (int, error) {
	if newLevelPct < 0 || newLevelPct > 100 {
		return 0, fmt.Errorf("%w: %.1f", domain.ErrInvalidJuiceLevel, newLevelPct)
	}

	p, err := e.db.Profile()
	if err != nil {
		return 0, err
	}

	synthesized := 0
	if newLevelPct < p.JuiceLevelPct {
		mlConsumed := (p.JuiceLevelPct - newLevelPct) / 100 * p.ReservoirMl()
		synthesized = int(math.Round(mlConsumed * DevicePuffsPerMl))
		if synthesized > 0 {
			if err := e.db.AppendPuffs(synthesized, now, domain.SourceSynthetic); err != nil {
				return 0, err
			}
			metrics.PuffsLogged.WithLabelValues(string(domain.SourceSynthetic)).Add(float64(synthesized))
		}
	}

	p.JuiceLevelPct = newLevelPct
	if synthesized > 0 && p.SmokeFree {
		p.SmokeFree = false
		p.SmokeFreeSince = time.Time{}
	}
	if err := e.saveProfile(p); err != nil {
		return 0, err
	}

	if synthesized > 0 {
		log.Printf("[tracker] juice level %.1f%% applied, synthesized %d entries", newLevelPct, synthesized)
		e.afterMutation(now)
	}
	return synthesized, nil
}

// NewReservoir records acquisition of a fresh reservoir: the puff
// count since the previous checkpoint is frozen into the record, and
// the juice level resets to full.
func (e *Engine) NewReservoir(now time.Time) (domain.JuicePurchase, error) {
	var since int64
	var err error
	if last, lerr := e.db.LastJuicePurchase(); lerr != nil {
		return domain.JuicePurchase{}, lerr
	} else if last != nil {
		since, err = e.db.PuffCountSince(last.Timestamp)
	} else {
		since, err = e.db.PuffCount()
	}
	if err != nil {
		return domain.JuicePurchase{}, err
	}

	jp := domain.JuicePurchase{
		ID:                 uuid.NewString(),
		Timestamp:          now,
		PuffsSincePrevious: since,
	}
	if err := e.db.InsertJuicePurchase(jp); err != nil {
		return domain.JuicePurchase{}, err
	}
	metrics.JuicePurchases.Inc()

	p, err := e.db.Profile()
	if err != nil {
		return domain.JuicePurchase{}, err
	}
	p.JuiceLevelPct = 100
	if err := e.saveProfile(p); err != nil {
		return domain.JuicePurchase{}, err
	}
	return jp, nil
}

// StartSmokeFree begins a smoke-free attempt at now. Requires a
// completed onboarding (the attempt is measured against the baseline)
// and fails when one is already running.
func (e *Engine) StartSmokeFree(now time.Time) error {
	p, err := e.db.Profile()
	if err != nil {
		return err
	}
	if !p.Onboarded() {
		return domain.ErrNotOnboarded
	}
	if p.SmokeFree {
		return domain.ErrAlreadySmokeFree
	}
	p.SmokeFree = true
	p.SmokeFreeSince = now
	return e.saveProfile(p)
}

// Onboard completes first-run setup with the old habit's parameters
// and optional device choice, stamping the onboarding time.
func (e *Engine) Onboard(now time.Time, name string, cigsPerDay int, packCost float64, device *domain.Device) (domain.Profile, error) {
	p, err := e.db.Profile()
	if err != nil {
		return domain.Profile{}, err
	}
	if name != "" {
		p.Name = name
	}
	p.CigarettesPerDay = cigsPerDay
	p.PackCost = packCost
	p.Device = device
	p.OnboardedAt = now
	if err := p.Validate(); err != nil {
		return domain.Profile{}, err
	}
	if err := e.saveProfile(p); err != nil {
		return domain.Profile{}, err
	}
	log.Printf("[tracker] onboarding complete: %d/day, $%.2f per pack", cigsPerDay, packCost)
	return p, nil
}

// UpdateProfile validates and stores an edited profile.
func (e *Engine) UpdateProfile(p domain.Profile) error {
	if err := p.Validate(); err != nil {
		return err
	}
	return e.saveProfile(p)
}

// Reset wipes everything back to first-use state: log, badges,
// purchases, juice history, XP, profile.
func (e *Engine) Reset() error {
	if err := e.db.ResetAll(); err != nil {
		return err
	}
	log.Printf("[tracker] full reset performed")
	return nil
}

func (e *Engine) saveProfile(p domain.Profile) error {
	if err := e.db.SaveProfile(p); err != nil {
		return err
	}
	if e.mirror != nil {
		e.mirror.ProfileChanged(p)
	}
	return nil
}

func (e *Engine) endSmokeFree() error {
	p, err := e.db.Profile()
	if err != nil {
		return err
	}
	if !p.SmokeFree {
		return nil
	}
	p.SmokeFree = false
	p.SmokeFreeSince = time.Time{}
	return e.saveProfile(p)
}

// afterMutation runs the engagement hooks that follow every log
// mutation: badge predicates against a fresh snapshot, then the
// once-daily XP award. Hook failures are logged, never propagated;
// the mutation that triggered them has already committed.
func (e *Engine) afterMutation(now time.Time) {
	stats, err := e.userStats(now)
	if err != nil {
		log.Printf("[tracker] stats snapshot failed: %v", err)
		return
	}

	if e.badges != nil {
		if unlocked, err := e.badges.CheckAndUnlock(stats); err != nil {
			log.Printf("[tracker] badge check failed: %v", err)
		} else {
			for _, b := range unlocked {
				log.Printf("[tracker] badge unlocked: %s", b.ID)
			}
		}
	}

	if e.ledger != nil {
		if award, err := e.ledger.RunDailyAward(now); err != nil {
			log.Printf("[tracker] daily award failed: %v", err)
		} else if award > 0 {
			log.Printf("[tracker] daily award credited: %d XP", award)
		}
	}

	metrics.NetSavings.Set(stats.NetSavings)
}

// ─── Derived Views ──────────────────────────────────────────────────────────

// userStats builds the snapshot badge predicates see.
func (e *Engine) userStats(now time.Time) (domain.UserStats, error) {
	total, err := e.db.PuffCount()
	if err != nil {
		return domain.UserStats{}, err
	}
	p, err := e.db.Profile()
	if err != nil {
		return domain.UserStats{}, err
	}
	last, err := e.db.LastPuffTime()
	if err != nil {
		return domain.UserStats{}, err
	}

	var smokeFreeFor time.Duration
	if !last.IsZero() {
		smokeFreeFor = now.Sub(last)
	} else if p.SmokeFree {
		smokeFreeFor = now.Sub(p.SmokeFreeSince)
	}
	if smokeFreeFor < 0 {
		smokeFreeFor = 0
	}

	return domain.UserStats{
		TotalPuffs:   total,
		SmokeFreeFor: smokeFreeFor,
		NetSavings:   e.netSavings(p, total, now),
	}, nil
}

func (e *Engine) netSavings(p domain.Profile, totalPuffs int64, now time.Time) float64 {
	days := finance.DaysSince(p.OnboardedAt, now)
	daily := finance.DailySmokingCost(p.CigarettesPerDay, p.CigarettesPerPack, p.PackCost)
	perPuff := finance.CostPerPuff(p.DeviceUnitCost(), p.ReservoirMl())
	return finance.NetSavings(days, daily, totalPuffs, perPuff)
}

// Snapshot computes the full display view. Read-only: calling it never
// mutates state.
func (e *Engine) Snapshot(now time.Time) (domain.DisplayStats, error) {
	p, err := e.db.Profile()
	if err != nil {
		return domain.DisplayStats{}, err
	}
	total, err := e.db.PuffCount()
	if err != nil {
		return domain.DisplayStats{}, err
	}

	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	today, err := e.db.PuffCountBetween(dayStart, dayStart.AddDate(0, 0, 1))
	if err != nil {
		return domain.DisplayStats{}, err
	}
	last, err := e.db.LastPuffTime()
	if err != nil {
		return domain.DisplayStats{}, err
	}

	var sinceLast time.Duration
	if !last.IsZero() {
		sinceLast = now.Sub(last)
		if sinceLast < 0 {
			sinceLast = 0
		}
	}

	strength := p.DeviceStrength()
	days := finance.DaysSince(p.OnboardedAt, now)

	return domain.DisplayStats{
		TodayPuffs:          today,
		TotalPuffs:          total,
		HabitPercentage:     equivalence.HabitPercentage(today, p.CigarettesPerDay, strength),
		CigaretteEquivalent: equivalence.CigaretteEquivalent(today, strength),
		PuffsPerCigarette:   equivalence.PuffsPerCigarette(strength),
		NetSavings:          e.netSavings(p, total, now),
		CigarettesAvoided:   finance.CigarettesAvoided(days, p.CigarettesPerDay),
		TimeSinceLastPuff:   sinceLast,
		XP:                  p.XP,
		Level:               p.Level(),
	}, nil
}

// WeeklyTrend returns the last seven calendar days, oldest first, each
// expressed against the smoking baseline.
func (e *Engine) WeeklyTrend(now time.Time) ([]domain.DayStat, error) {
	p, err := e.db.Profile()
	if err != nil {
		return nil, err
	}
	strength := p.DeviceStrength()

	out := make([]domain.DayStat, 0, 7)
	for offset := -6; offset <= 0; offset++ {
		day := now.AddDate(0, 0, offset)
		start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
		puffs, err := e.db.PuffCountBetween(start, start.AddDate(0, 0, 1))
		if err != nil {
			return nil, err
		}
		out = append(out, domain.DayStat{
			Date:                start,
			Puffs:               puffs,
			CigaretteEquivalent: equivalence.CigaretteEquivalent(puffs, strength),
			Percentage:          equivalence.HabitPercentage(puffs, p.CigarettesPerDay, strength),
		})
	}
	return out, nil
}

// RecentPuffs exposes the newest log entries for display.
func (e *Engine) RecentPuffs(limit int) ([]domain.LogEntry, error) {
	return e.db.RecentPuffs(limit)
}

// JuiceHistory returns all reservoir checkpoints, oldest first.
func (e *Engine) JuiceHistory() ([]domain.JuicePurchase, error) {
	return e.db.ListJuicePurchases()
}

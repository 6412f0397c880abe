// Package domain holds the core types of the VapeTrack engine.
// Types here are pure and carry no infrastructure dependency.
package domain

import (
	"fmt"
	"time"
)

// Device describes the user's current vaping hardware.
// A nil Device on the profile means "not yet chosen"; every calculator
// that needs a strength goes through Profile.DeviceStrength so the
// documented default is applied in exactly one place.
type Device struct {
	Name            string  `json:"name"`
	Flavor          string  `json:"flavor,omitempty"`
	Type            string  `json:"type"` // "pen" | "pod" | "tank"
	NicotineMgPerMl float64 `json:"nicotine_mg_per_ml"`
	ReservoirMl     float64 `json:"reservoir_ml"`
	UnitCost        float64 `json:"unit_cost"`
	RatedPuffs      int     `json:"rated_puffs,omitempty"` // Manufacturer rating, 0 if refillable
}

// Profile is the single configuration/state record for the user.
type Profile struct {
	Name              string    `json:"name"`
	Email             string    `json:"email"`
	OnboardedAt       time.Time `json:"onboarded_at"` // Zero until onboarding completes
	CigarettesPerDay  int       `json:"cigarettes_per_day"`
	CigarettesPerPack int       `json:"cigarettes_per_pack"`
	PackCost          float64   `json:"pack_cost"`
	Device            *Device   `json:"device,omitempty"`
	JuiceLevelPct     float64   `json:"juice_level_pct"` // Remaining liquid, 0–100
	BottleSizeMl      float64   `json:"bottle_size_ml"`
	XP                int64     `json:"xp"`
	SmokeFree         bool      `json:"smoke_free"`
	SmokeFreeSince    time.Time `json:"smoke_free_since"` // Non-zero iff SmokeFree
}

// Default baseline figures. These match the documented first-use state:
// a 10-a-day smoker, $15 packs of 20, a full 2 ml bottle, no device yet.
const (
	DefaultCigarettesPerDay  = 10
	DefaultCigarettesPerPack = 20
	DefaultPackCost          = 15.0
	DefaultBottleSizeMl      = 2.0
)

// DefaultStrengthMgPerMl is the fallback device strength used by every
// calculator when no device is set or its strength is non-positive.
const DefaultStrengthMgPerMl = 20.0

// DefaultProfile returns the first-use profile. Full reset restores this.
func DefaultProfile() Profile {
	return Profile{
		Name:              "Guest User",
		CigarettesPerDay:  DefaultCigarettesPerDay,
		CigarettesPerPack: DefaultCigarettesPerPack,
		PackCost:          DefaultPackCost,
		JuiceLevelPct:     100,
		BottleSizeMl:      DefaultBottleSizeMl,
	}
}

// DeviceStrength returns the device nicotine strength in mg/ml,
// falling back to DefaultStrengthMgPerMl when absent or non-positive.
func (p Profile) DeviceStrength() float64 {
	if p.Device == nil || p.Device.NicotineMgPerMl <= 0 {
		return DefaultStrengthMgPerMl
	}
	return p.Device.NicotineMgPerMl
}

// ReservoirMl returns the effective reservoir size in ml: the device's
// reservoir if set, otherwise the profile bottle size.
func (p Profile) ReservoirMl() float64 {
	if p.Device != nil && p.Device.ReservoirMl > 0 {
		return p.Device.ReservoirMl
	}
	if p.BottleSizeMl > 0 {
		return p.BottleSizeMl
	}
	return DefaultBottleSizeMl
}

// DeviceUnitCost returns the device unit cost, 0 when no device is set.
func (p Profile) DeviceUnitCost() float64 {
	if p.Device == nil {
		return 0
	}
	return p.Device.UnitCost
}

// Onboarded reports whether onboarding has completed.
func (p Profile) Onboarded() bool {
	return !p.OnboardedAt.IsZero()
}

// Level is the display level derived from XP: floor(xp/100)+1.
func (p Profile) Level() int {
	return int(p.XP/100) + 1
}

// Validate rejects out-of-range configuration before it reaches the
// calculators. Calculators assume well-formed numeric input.
func (p Profile) Validate() error {
	if p.CigarettesPerDay < 0 {
		return fmt.Errorf("%w: cigarettes per day must be >= 0, got %d", ErrInvalidConfig, p.CigarettesPerDay)
	}
	if p.CigarettesPerPack <= 0 {
		return fmt.Errorf("%w: cigarettes per pack must be > 0, got %d", ErrInvalidConfig, p.CigarettesPerPack)
	}
	if p.PackCost < 0 {
		return fmt.Errorf("%w: pack cost must be >= 0, got %.2f", ErrInvalidConfig, p.PackCost)
	}
	if p.JuiceLevelPct < 0 || p.JuiceLevelPct > 100 {
		return fmt.Errorf("%w: juice level must be in [0,100], got %.1f", ErrInvalidConfig, p.JuiceLevelPct)
	}
	if p.BottleSizeMl <= 0 {
		return fmt.Errorf("%w: bottle size must be > 0 ml, got %.2f", ErrInvalidConfig, p.BottleSizeMl)
	}
	if p.XP < 0 {
		return fmt.Errorf("%w: xp must be >= 0, got %d", ErrInvalidConfig, p.XP)
	}
	if p.Device != nil {
		if p.Device.NicotineMgPerMl < 0 {
			return fmt.Errorf("%w: device strength must be >= 0 mg/ml, got %.1f", ErrInvalidConfig, p.Device.NicotineMgPerMl)
		}
		if p.Device.ReservoirMl < 0 {
			return fmt.Errorf("%w: device reservoir must be >= 0 ml, got %.2f", ErrInvalidConfig, p.Device.ReservoirMl)
		}
		if p.Device.UnitCost < 0 {
			return fmt.Errorf("%w: device cost must be >= 0, got %.2f", ErrInvalidConfig, p.Device.UnitCost)
		}
	}
	if p.SmokeFree && p.SmokeFreeSince.IsZero() {
		return fmt.Errorf("%w: smoke-free flag set without a start timestamp", ErrInvalidConfig)
	}
	if !p.SmokeFree && !p.SmokeFreeSince.IsZero() {
		return fmt.Errorf("%w: smoke-free timestamp set without the flag", ErrInvalidConfig)
	}
	return nil
}

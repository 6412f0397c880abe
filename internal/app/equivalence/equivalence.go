// Package equivalence converts raw puff counts into cigarette-equivalent
// metrics against the user's historical smoking baseline.
//
// The model: a cigarette contains ~12 mg of nicotine but combustion
// loses most of it; the smoker absorbs about 2 mg. A vape delivers
// liquid at PuffsPerMl puffs per ml, and roughly half of the inhaled
// nicotine is absorbed. Dividing absorbed-per-cigarette by
// absorbed-per-puff gives the puffs-per-cigarette conversion.
package equivalence

import "math"

const (
	// AbsorbedMgPerCigarette is the nicotine a smoker absorbs from one
	// cigarette (of ~12 mg content, modeling combustion loss).
	AbsorbedMgPerCigarette = 2.0

	// AbsorptionRate is the fraction of vaped nicotine that is absorbed.
	AbsorptionRate = 0.5

	// PuffsPerMl is the dosing model's liquid delivery rate: 150 puffs
	// consume one ml. This is the nicotine model, deliberately distinct
	// from the manufacturer yield rating used for juice-level synthesis.
	PuffsPerMl = 150.0
)

// DefaultStrengthMgPerMl is the fallback when a device strength is
// missing or non-positive. Matches a standard 20 mg/ml disposable.
const DefaultStrengthMgPerMl = 20.0

// PuffsPerCigarette returns how many puffs deliver the absorbed
// nicotine of one cigarette at the given device strength.
// Recompute on every device change; this is not a global constant.
// For 20 mg/ml: (20/150)*0.5 = 0.0667 mg/puff → round(2/0.0667) = 30.
// Never returns less than 1: extreme strengths would otherwise round
// to 0 and poison every ratio built on this value.
func PuffsPerCigarette(strengthMgPerMl float64) int {
	if strengthMgPerMl <= 0 {
		strengthMgPerMl = DefaultStrengthMgPerMl
	}
	absorbedPerPuff := strengthMgPerMl / PuffsPerMl * AbsorptionRate
	n := int(math.Round(AbsorbedMgPerCigarette / absorbedPerPuff))
	if n < 1 {
		return 1
	}
	return n
}

// HabitPercentage returns today's consumption as a whole-number
// percentage of the smoking baseline. A zero baseline yields 0, never
// a division error.
func HabitPercentage(todayPuffs int64, baselinePerDay int, strengthMgPerMl float64) int {
	if baselinePerDay <= 0 || todayPuffs <= 0 {
		return 0
	}
	baselinePuffs := int64(baselinePerDay) * int64(PuffsPerCigarette(strengthMgPerMl))
	return int(math.Round(100 * float64(todayPuffs) / float64(baselinePuffs)))
}

// CigaretteEquivalent returns the fractional cigarette count for a puff
// count, reported to one decimal.
func CigaretteEquivalent(puffs int64, strengthMgPerMl float64) float64 {
	if puffs <= 0 {
		return 0
	}
	eq := float64(puffs) / float64(PuffsPerCigarette(strengthMgPerMl))
	return math.Round(eq*10) / 10
}

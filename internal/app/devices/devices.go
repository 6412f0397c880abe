// Package devices carries the built-in hardware catalog used during
// onboarding and device switches. Entries are reasonable retail
// defaults; every field can be overridden on the profile afterwards.
package devices

import (
	"strings"

	"github.com/vapetrack/vapetrack/internal/domain"
)

// Catalog returns the built-in device presets. RatedPuffs is zero for
// refillable hardware with no fixed yield.
func Catalog() []domain.Device {
	return []domain.Device{
		{Name: "Elf Bar BC5000", Flavor: "Watermelon Ice", Type: "disposable",
			NicotineMgPerMl: 50, ReservoirMl: 13, UnitCost: 15, RatedPuffs: 5000},
		{Name: "Geek Bar Pulse", Flavor: "Juicy Peach", Type: "disposable",
			NicotineMgPerMl: 50, ReservoirMl: 16, UnitCost: 18, RatedPuffs: 15000},
		{Name: "Lost Mary OS5000", Flavor: "Blue Razz Ice", Type: "disposable",
			NicotineMgPerMl: 50, ReservoirMl: 13, UnitCost: 14, RatedPuffs: 5000},
		{Name: "Juul", Flavor: "Virginia Tobacco", Type: "pod",
			NicotineMgPerMl: 59, ReservoirMl: 0.7, UnitCost: 5, RatedPuffs: 200},
		{Name: "Vaporesso XROS", Flavor: "Refillable", Type: "refillable",
			NicotineMgPerMl: 20, ReservoirMl: 2, UnitCost: 25, RatedPuffs: 0},
	}
}

// Find returns the catalog entry whose name matches, case-insensitively.
func Find(name string) (domain.Device, bool) {
	for _, d := range Catalog() {
		if strings.EqualFold(d.Name, name) {
			return d, true
		}
	}
	return domain.Device{}, false
}

// Search returns catalog entries whose name or flavor contains the
// query, case-insensitively. An empty query returns the full catalog.
func Search(query string) []domain.Device {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return Catalog()
	}
	var out []domain.Device
	for _, d := range Catalog() {
		if strings.Contains(strings.ToLower(d.Name), q) ||
			strings.Contains(strings.ToLower(d.Flavor), q) {
			out = append(out, d)
		}
	}
	return out
}

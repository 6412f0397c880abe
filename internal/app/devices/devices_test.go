package devices_test

import (
	"testing"

	"github.com/vapetrack/vapetrack/internal/app/devices"
)

func TestFind_CaseInsensitive(t *testing.T) {
	d, ok := devices.Find("juul")
	if !ok {
		t.Fatal("expected to find Juul")
	}
	if d.Name != "Juul" || d.RatedPuffs != 200 {
		t.Errorf("unexpected device: %+v", d)
	}
	if _, ok := devices.Find("Nonexistent 9000"); ok {
		t.Error("found a device that is not in the catalog")
	}
}

func TestSearch(t *testing.T) {
	if got := devices.Search(""); len(got) != len(devices.Catalog()) {
		t.Errorf("empty query returned %d entries, want full catalog", len(got))
	}

	got := devices.Search("bar")
	if len(got) != 2 { // Elf Bar, Geek Bar
		t.Fatalf("Search(\"bar\") returned %d entries, want 2", len(got))
	}

	// Flavor text matches too
	got = devices.Search("ice")
	if len(got) != 2 { // Watermelon Ice, Blue Razz Ice
		t.Errorf("Search(\"ice\") returned %d entries, want 2", len(got))
	}
}

func TestCatalog_RefillableHasNoRatedPuffs(t *testing.T) {
	d, ok := devices.Find("Vaporesso XROS")
	if !ok {
		t.Fatal("catalog missing Vaporesso XROS")
	}
	if d.RatedPuffs != 0 {
		t.Errorf("refillable device has rated puffs %d, want 0", d.RatedPuffs)
	}
}

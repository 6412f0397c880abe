package milestones_test

import (
	"testing"
	"time"

	"github.com/vapetrack/vapetrack/internal/app/milestones"
)

func TestTimeline_ChronologicalOrder(t *testing.T) {
	tl := milestones.Timeline()
	if len(tl) != 10 {
		t.Fatalf("timeline has %d milestones, want 10", len(tl))
	}
	for i := 1; i < len(tl); i++ {
		if tl[i].After < tl[i-1].After {
			t.Errorf("milestone %q (%v) out of order after %q (%v)",
				tl[i].ID, tl[i].After, tl[i-1].ID, tl[i-1].After)
		}
	}
}

func TestEvaluate_Boundaries(t *testing.T) {
	cases := []struct {
		elapsed time.Duration
		want    int
	}{
		{0, 0},
		{19 * time.Minute, 0},
		{20 * time.Minute, 1}, // Achieved exactly at the threshold
		{12 * time.Hour, 2},
		{48 * time.Hour, 4}, // Nicotine and taste/smell share 48h
		{15 * 24 * time.Hour, 6},
		{365 * 24 * time.Hour, 10},
	}
	for _, c := range cases {
		if got := milestones.AchievedCount(c.elapsed); got != c.want {
			t.Errorf("AchievedCount(%v) = %d, want %d", c.elapsed, got, c.want)
		}
	}
}

func TestEvaluate_RemainingCountsDown(t *testing.T) {
	out := milestones.Evaluate(10 * time.Minute)
	first := out[0]
	if first.Achieved {
		t.Fatal("heart_rate achieved at 10 minutes")
	}
	if first.Remaining != 10*time.Minute {
		t.Errorf("remaining = %v, want 10m", first.Remaining)
	}

	out = milestones.Evaluate(25 * time.Minute)
	if !out[0].Achieved || out[0].Remaining != 0 {
		t.Errorf("achieved milestone should have zero remaining: %+v", out[0])
	}
}

func TestEvaluate_NegativeDuration(t *testing.T) {
	if got := milestones.AchievedCount(-time.Hour); got != 0 {
		t.Errorf("negative duration achieved %d milestones, want 0", got)
	}
}

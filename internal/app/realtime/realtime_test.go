package realtime_test

import (
	"context"
	"testing"
	"time"

	"github.com/vapetrack/vapetrack/internal/app/badges"
	"github.com/vapetrack/vapetrack/internal/app/progression"
	"github.com/vapetrack/vapetrack/internal/app/realtime"
	"github.com/vapetrack/vapetrack/internal/app/tracker"
	"github.com/vapetrack/vapetrack/internal/infra/sqlite"
)

func testEngine(t *testing.T) *tracker.Engine {
	t.Helper()
	db, err := sqlite.Open(t.TempDir())
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return tracker.NewEngine(db, badges.NewService(db), progression.NewService(db))
}

func TestCompute_GrowsWithTime(t *testing.T) {
	eng := testEngine(t)
	now := time.Date(2025, 7, 10, 12, 0, 0, 0, time.UTC)
	if _, err := eng.Onboard(now, "Sam", 10, 15, nil); err != nil {
		t.Fatalf("onboard: %v", err)
	}

	tick := realtime.NewTicker(eng, 0)

	early, err := tick.Compute(now.Add(time.Hour))
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	later, err := tick.Compute(now.Add(10 * time.Hour))
	if err != nil {
		t.Fatalf("compute: %v", err)
	}

	if later.NetSavings <= early.NetSavings {
		t.Errorf("savings should grow with idle time: %v then %v", early.NetSavings, later.NetSavings)
	}
	if later.CigarettesAvoided <= early.CigarettesAvoided {
		t.Errorf("avoided count should grow: %v then %v", early.CigarettesAvoided, later.CigarettesAvoided)
	}
}

func TestRun_PopulatesLatestAndStops(t *testing.T) {
	eng := testEngine(t)
	tick := realtime.NewTicker(eng, 5*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		tick.Run(ctx)
		close(done)
	}()

	deadline := time.After(2 * time.Second)
	for tick.Latest().At.IsZero() {
		select {
		case <-deadline:
			t.Fatal("ticker never produced a snapshot")
		case <-time.After(2 * time.Millisecond):
		}
	}

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop on context cancel")
	}
}

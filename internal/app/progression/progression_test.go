package progression_test

import (
	"testing"
	"time"

	"github.com/vapetrack/vapetrack/internal/app/progression"
	"github.com/vapetrack/vapetrack/internal/domain"
	"github.com/vapetrack/vapetrack/internal/infra/sqlite"
)

func testDB(t *testing.T) *sqlite.DB {
	t.Helper()
	db, err := sqlite.Open(t.TempDir())
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func onboarded(t *testing.T, db *sqlite.DB) {
	t.Helper()
	p := domain.DefaultProfile()
	p.OnboardedAt = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	if err := db.SaveProfile(p); err != nil {
		t.Fatalf("save profile: %v", err)
	}
}

func TestDailyAward_Formula(t *testing.T) {
	cases := []struct {
		name     string
		puffs    int64
		baseline int
		want     int64
	}{
		// 10 puffs vs 10 cigs/day at 20mg/ml → 3% → round(97*10) = 970
		{"three percent of habit", 10, 10, 970},
		{"zero logs earn nothing", 0, 10, 0},
		{"at baseline earns nothing", 300, 10, 0},
		{"over baseline earns nothing", 600, 10, 0},
		// 150 puffs = 50% → 500
		{"half baseline", 150, 10, 500},
	}
	for _, c := range cases {
		if got := progression.DailyAward(c.puffs, c.baseline, 20); got != c.want {
			t.Errorf("%s: DailyAward(%d, %d, 20) = %d, want %d", c.name, c.puffs, c.baseline, got, c.want)
		}
	}
}

func TestRunDailyAward_CreditsYesterdaysReduction(t *testing.T) {
	db := testDB(t)
	onboarded(t, db)
	svc := progression.NewService(db)

	now := time.Date(2025, 7, 2, 9, 0, 0, 0, time.UTC)
	yesterday := time.Date(2025, 7, 1, 14, 0, 0, 0, time.UTC)
	for i := 0; i < 10; i++ {
		if _, err := db.AppendPuff(yesterday, domain.SourceDirect); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	award, err := svc.RunDailyAward(now)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if award != 970 {
		t.Errorf("expected 970 XP (3%% of baseline), got %d", award)
	}

	bal, _ := svc.Balance()
	if bal != 970 {
		t.Errorf("balance = %d, want 970", bal)
	}
}

func TestRunDailyAward_IdempotentPerDate(t *testing.T) {
	db := testDB(t)
	onboarded(t, db)
	svc := progression.NewService(db)

	now := time.Date(2025, 7, 2, 9, 0, 0, 0, time.UTC)
	_, _ = db.AppendPuff(now.AddDate(0, 0, -1), domain.SourceDirect)

	first, err := svc.RunDailyAward(now)
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	if first == 0 {
		t.Fatal("expected a non-zero first award")
	}

	// Same date, later in the day: must be a no-op regardless of log contents
	for i := 0; i < 50; i++ {
		_, _ = db.AppendPuff(now, domain.SourceDirect)
	}
	second, err := svc.RunDailyAward(now.Add(8 * time.Hour))
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if second != 0 {
		t.Errorf("second same-day run awarded %d, want 0", second)
	}

	bal, _ := svc.Balance()
	if bal != first {
		t.Errorf("balance changed on duplicate run: %d != %d", bal, first)
	}
}

func TestRunDailyAward_ZeroLogDayAdvancesCheckpoint(t *testing.T) {
	db := testDB(t)
	onboarded(t, db)
	svc := progression.NewService(db)

	now := time.Date(2025, 7, 2, 9, 0, 0, 0, time.UTC)

	award, err := svc.RunDailyAward(now)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if award != 0 {
		t.Errorf("empty yesterday awarded %d, want 0", award)
	}

	// The checkpoint still advances: the day is settled, not pending.
	date, _ := svc.LastAwardDate()
	if date != "2025-07-02" {
		t.Errorf("checkpoint = %q, want 2025-07-02", date)
	}
}

func TestRunDailyAward_NewDateAwardsAgain(t *testing.T) {
	db := testDB(t)
	onboarded(t, db)
	svc := progression.NewService(db)

	day1 := time.Date(2025, 7, 2, 9, 0, 0, 0, time.UTC)
	_, _ = db.AppendPuff(day1.AddDate(0, 0, -1), domain.SourceDirect)
	first, _ := svc.RunDailyAward(day1)

	day2 := day1.AddDate(0, 0, 1)
	_, _ = db.AppendPuff(day1.Add(2*time.Hour), domain.SourceDirect) // A log on day1
	second, err := svc.RunDailyAward(day2)
	if err != nil {
		t.Fatalf("day2 run: %v", err)
	}
	if second == 0 {
		t.Error("new date with logged yesterday should award again")
	}

	bal, _ := svc.Balance()
	if bal != first+second {
		t.Errorf("balance = %d, want %d", bal, first+second)
	}
}

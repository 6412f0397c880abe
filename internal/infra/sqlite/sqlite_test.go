package sqlite_test

import (
	"testing"
	"time"

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

func TestProfile_DefaultsWhenEmpty(t *testing.T) {
	db := testDB(t)

	p, err := db.Profile()
	if err != nil {
		t.Fatalf("profile: %v", err)
	}
	if p.CigarettesPerDay != domain.DefaultCigarettesPerDay {
		t.Errorf("expected default baseline %d, got %d", domain.DefaultCigarettesPerDay, p.CigarettesPerDay)
	}
	if p.JuiceLevelPct != 100 {
		t.Errorf("expected full bottle, got %.1f", p.JuiceLevelPct)
	}
	if p.Onboarded() {
		t.Error("fresh profile must not be onboarded")
	}
}

func TestProfile_RoundTrip(t *testing.T) {
	db := testDB(t)

	p := domain.DefaultProfile()
	p.Name = "Dana"
	p.CigarettesPerDay = 15
	p.PackCost = 12.50
	p.OnboardedAt = time.Date(2025, 7, 1, 9, 0, 0, 0, time.UTC)
	p.Device = &domain.Device{
		Name: "Elf Bar BC5000", Type: "pod",
		NicotineMgPerMl: 20, ReservoirMl: 13, UnitCost: 15,
	}
	if err := db.SaveProfile(p); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := db.Profile()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Name != "Dana" || got.CigarettesPerDay != 15 {
		t.Errorf("profile fields lost: %+v", got)
	}
	if got.Device == nil || got.Device.NicotineMgPerMl != 20 {
		t.Errorf("device lost: %+v", got.Device)
	}
	if !got.OnboardedAt.Equal(p.OnboardedAt) {
		t.Errorf("onboarded_at mismatch: %v != %v", got.OnboardedAt, p.OnboardedAt)
	}
}

func TestPuffLog_AppendAndCount(t *testing.T) {
	db := testDB(t)

	now := time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		if _, err := db.AppendPuff(now.Add(time.Duration(i)*time.Minute), domain.SourceDirect); err != nil {
			t.Fatalf("append: %v", err)
		}
	}
	if err := db.AppendPuffs(5, now.Add(time.Hour), domain.SourceSynthetic); err != nil {
		t.Fatalf("bulk append: %v", err)
	}

	n, err := db.PuffCount()
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 8 {
		t.Errorf("expected 8 puffs, got %d", n)
	}

	last, err := db.LastPuffTime()
	if err != nil {
		t.Fatalf("last: %v", err)
	}
	if !last.Equal(now.Add(time.Hour)) {
		t.Errorf("last puff time wrong: %v", last)
	}
}

func TestPurchaseReward_Atomic(t *testing.T) {
	db := testDB(t)

	p := domain.DefaultProfile()
	p.XP = 100
	if err := db.SaveProfile(p); err != nil {
		t.Fatalf("save: %v", err)
	}

	now := time.Now()
	if err := db.PurchaseReward("icon_star", 100, now); err != nil {
		t.Fatalf("purchase: %v", err)
	}
	got, _ := db.Profile()
	if got.XP != 0 {
		t.Errorf("expected balance 0 after exact-cost purchase, got %d", got.XP)
	}

	// Duplicate purchase: declined, balance untouched
	if err := db.PurchaseReward("icon_star", 100, now); err != domain.ErrAlreadyPurchased {
		t.Errorf("expected ErrAlreadyPurchased, got %v", err)
	}
	got, _ = db.Profile()
	if got.XP != 0 {
		t.Errorf("balance mutated by declined purchase: %d", got.XP)
	}

	// Insufficient balance: declined, no purchase row
	if err := db.PurchaseReward("icon_fire", 1, now); err != domain.ErrInsufficientXP {
		t.Errorf("expected ErrInsufficientXP, got %v", err)
	}
	owned, _ := db.IsRewardPurchased("icon_fire")
	if owned {
		t.Error("declined purchase must not record ownership")
	}
}

func TestBadges_MonotonicUnlock(t *testing.T) {
	db := testDB(t)

	isNew, err := db.UnlockBadge("first_step", time.Now())
	if err != nil || !isNew {
		t.Fatalf("first unlock: new=%v err=%v", isNew, err)
	}
	isNew, err = db.UnlockBadge("first_step", time.Now())
	if err != nil || isNew {
		t.Fatalf("re-unlock must be a no-op: new=%v err=%v", isNew, err)
	}

	badges, _ := db.ListBadges()
	if len(badges) != 1 {
		t.Errorf("expected 1 badge, got %d", len(badges))
	}
}

func TestStateKV(t *testing.T) {
	db := testDB(t)

	if v, err := db.GetState("missing"); err != nil || v != "" {
		t.Fatalf("absent key: v=%q err=%v", v, err)
	}
	if err := db.SetState("k", "v1"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := db.SetState("k", "v2"); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	if v, _ := db.GetState("k"); v != "v2" {
		t.Errorf("got %q, want v2", v)
	}
	if err := db.RemoveState("k"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if err := db.RemoveState("k"); err != nil {
		t.Fatalf("remove twice should be a no-op: %v", err)
	}
	if v, _ := db.GetState("k"); v != "" {
		t.Errorf("removed key still present: %q", v)
	}
}

func TestResetAll_RestoresDefaults(t *testing.T) {
	db := testDB(t)

	p := domain.DefaultProfile()
	p.XP = 500
	p.OnboardedAt = time.Now()
	_ = db.SaveProfile(p)
	_, _ = db.AppendPuff(time.Now(), domain.SourceDirect)
	_, _ = db.UnlockBadge("first_step", time.Now())
	_ = db.PurchaseReward("icon_star", 100, time.Now())
	_ = db.SetState("daily_award_date", "2025-07-01")

	if err := db.ResetAll(); err != nil {
		t.Fatalf("reset: %v", err)
	}

	got, _ := db.Profile()
	if got.XP != 0 || got.Onboarded() {
		t.Errorf("profile not restored to defaults: %+v", got)
	}
	if n, _ := db.PuffCount(); n != 0 {
		t.Errorf("log not cleared: %d", n)
	}
	if badges, _ := db.ListBadges(); len(badges) != 0 {
		t.Errorf("badges not cleared: %v", badges)
	}
	if owned, _ := db.IsRewardPurchased("icon_star"); owned {
		t.Error("purchases not cleared")
	}
	if v, _ := db.GetState("daily_award_date"); v != "" {
		t.Errorf("checkpoint not cleared: %q", v)
	}
}

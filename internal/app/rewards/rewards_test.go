package rewards_test

import (
	"errors"
	"testing"

	"github.com/vapetrack/vapetrack/internal/app/rewards"
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

func fund(t *testing.T, db *sqlite.DB, xp int64) {
	t.Helper()
	if err := db.SaveProfile(domain.DefaultProfile()); err != nil {
		t.Fatalf("save profile: %v", err)
	}
	if xp > 0 {
		if _, err := db.AddXP(xp); err != nil {
			t.Fatalf("fund: %v", err)
		}
	}
}

func balance(t *testing.T, db *sqlite.DB) int64 {
	t.Helper()
	p, err := db.Profile()
	if err != nil {
		t.Fatalf("profile: %v", err)
	}
	return p.XP
}

func TestPurchase_ExactBalanceReachesZero(t *testing.T) {
	db := testDB(t)
	fund(t, db, 100) // icon_star costs exactly 100
	svc := rewards.NewService(db)

	if _, err := svc.Purchase("icon_star"); err != nil {
		t.Fatalf("purchase: %v", err)
	}
	if got := balance(t, db); got != 0 {
		t.Errorf("balance = %d, want 0", got)
	}

	owned, _ := svc.Purchased()
	if len(owned) != 1 || owned[0].ID != "icon_star" {
		t.Errorf("ownership not recorded: %+v", owned)
	}
}

func TestPurchase_DuplicateDeclinedWithoutDebit(t *testing.T) {
	db := testDB(t)
	fund(t, db, 300)
	svc := rewards.NewService(db)

	if _, err := svc.Purchase("icon_star"); err != nil {
		t.Fatalf("first purchase: %v", err)
	}
	before := balance(t, db)

	_, err := svc.Purchase("icon_star")
	if !errors.Is(err, domain.ErrAlreadyPurchased) {
		t.Fatalf("expected ErrAlreadyPurchased, got %v", err)
	}
	if got := balance(t, db); got != before {
		t.Errorf("duplicate purchase changed balance: %d != %d", got, before)
	}
}

func TestPurchase_InsufficientByOne(t *testing.T) {
	db := testDB(t)
	fund(t, db, 99) // one XP short of icon_star
	svc := rewards.NewService(db)

	_, err := svc.Purchase("icon_star")
	if !errors.Is(err, domain.ErrInsufficientXP) {
		t.Fatalf("expected ErrInsufficientXP, got %v", err)
	}
	if got := balance(t, db); got != 99 {
		t.Errorf("failed purchase mutated balance: %d", got)
	}
	owned, _ := svc.Purchased()
	if len(owned) != 0 {
		t.Errorf("failed purchase recorded ownership: %+v", owned)
	}
}

func TestPurchase_UnknownItem(t *testing.T) {
	db := testDB(t)
	fund(t, db, 1000)
	svc := rewards.NewService(db)

	_, err := svc.Purchase("icon_unobtainium")
	if !errors.Is(err, domain.ErrRewardNotFound) {
		t.Fatalf("expected ErrRewardNotFound, got %v", err)
	}
}

func TestEquip_ReplacesWithinCategory(t *testing.T) {
	db := testDB(t)
	fund(t, db, 300)
	svc := rewards.NewService(db)

	if _, err := svc.Purchase("icon_star"); err != nil {
		t.Fatalf("purchase star: %v", err)
	}
	if _, err := svc.Purchase("icon_fire"); err != nil {
		t.Fatalf("purchase fire: %v", err)
	}

	if _, err := svc.Equip("icon_star", ""); err != nil {
		t.Fatalf("equip star: %v", err)
	}
	if _, err := svc.Equip("icon_fire", ""); err != nil {
		t.Fatalf("equip fire: %v", err)
	}

	eq, err := svc.Equipped()
	if err != nil {
		t.Fatalf("equipped: %v", err)
	}
	if eq[domain.RewardIcon] != "icon_fire" {
		t.Errorf("equipped icon = %q, want icon_fire", eq[domain.RewardIcon])
	}

	// The displaced item remains owned.
	owned, _ := svc.Purchased()
	if len(owned) != 2 {
		t.Errorf("ownership changed on re-equip: %d items", len(owned))
	}
}

func TestEquip_CategoryMustMatch(t *testing.T) {
	db := testDB(t)
	fund(t, db, 100)
	svc := rewards.NewService(db)

	if _, err := svc.Purchase("icon_star"); err != nil {
		t.Fatalf("purchase: %v", err)
	}

	_, err := svc.Equip("icon_star", domain.RewardBorder)
	if !errors.Is(err, domain.ErrCategoryMismatch) {
		t.Fatalf("expected ErrCategoryMismatch, got %v", err)
	}

	eq, _ := svc.Equipped()
	if len(eq) != 0 {
		t.Errorf("mismatched equip mutated state: %+v", eq)
	}
}

func TestEquip_RequiresOwnership(t *testing.T) {
	db := testDB(t)
	fund(t, db, 0)
	svc := rewards.NewService(db)

	_, err := svc.Equip("icon_star", "")
	if !errors.Is(err, domain.ErrNotPurchased) {
		t.Fatalf("expected ErrNotPurchased, got %v", err)
	}
}

func TestUnequip_Idempotent(t *testing.T) {
	db := testDB(t)
	fund(t, db, 100)
	svc := rewards.NewService(db)

	if _, err := svc.Purchase("icon_star"); err != nil {
		t.Fatalf("purchase: %v", err)
	}
	if _, err := svc.Equip("icon_star", ""); err != nil {
		t.Fatalf("equip: %v", err)
	}

	if err := svc.Unequip(domain.RewardIcon); err != nil {
		t.Fatalf("first unequip: %v", err)
	}
	if err := svc.Unequip(domain.RewardIcon); err != nil {
		t.Fatalf("second unequip should be a no-op: %v", err)
	}

	eq, _ := svc.Equipped()
	if _, ok := eq[domain.RewardIcon]; ok {
		t.Error("icon still equipped after unequip")
	}
}

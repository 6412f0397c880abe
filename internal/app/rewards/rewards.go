// Package rewards implements the cosmetic marketplace: a static
// catalog of profile decorations priced in XP, with irreversible
// purchases and category-exclusive equipping. Purchases spend the same
// balance the daily award credits; there are no refunds.
package rewards

import (
	"time"

	"github.com/vapetrack/vapetrack/internal/domain"
	"github.com/vapetrack/vapetrack/internal/infra/metrics"
	"github.com/vapetrack/vapetrack/internal/infra/sqlite"
)

// Service mediates catalog lookups, purchases, and equipment state.
type Service struct {
	db      *sqlite.DB
	catalog []domain.RewardItem
	byID    map[string]domain.RewardItem
}

// NewService creates a reward service over the static catalog.
func NewService(db *sqlite.DB) *Service {
	items := Catalog()
	byID := make(map[string]domain.RewardItem, len(items))
	for _, it := range items {
		byID[it.ID] = it
	}
	return &Service{db: db, catalog: items, byID: byID}
}

// Catalog returns the static marketplace inventory.
func Catalog() []domain.RewardItem {
	return []domain.RewardItem{
		{ID: "icon_star", Name: "Star", Category: domain.RewardIcon, CostXP: 100, Icon: "⭐"},
		{ID: "icon_fire", Name: "Fire", Category: domain.RewardIcon, CostXP: 150, Icon: "🔥"},
		{ID: "icon_cloud", Name: "Cloud", Category: domain.RewardIcon, CostXP: 200, Icon: "☁️"},
		{ID: "icon_rainbow", Name: "Rainbow", Category: domain.RewardIcon, CostXP: 300, Icon: "🌈"},
		{ID: "icon_crown", Name: "Crown", Category: domain.RewardIcon, CostXP: 500, Icon: "👑"},
		{ID: "border_silver", Name: "Silver Border", Category: domain.RewardBorder, CostXP: 150, Icon: "⬜"},
		{ID: "border_gold", Name: "Gold Border", Category: domain.RewardBorder, CostXP: 250, Icon: "🟨"},
		{ID: "border_rainbow", Name: "Rainbow Border", Category: domain.RewardBorder, CostXP: 400, Icon: "🌈"},
		{ID: "effect_glow", Name: "Glow", Category: domain.RewardEffect, CostXP: 300, Icon: "✨"},
		{ID: "effect_sparkle", Name: "Sparkle", Category: domain.RewardEffect, CostXP: 450, Icon: "💫"},
	}
}

// Items returns the catalog (stable order).
func (s *Service) Items() []domain.RewardItem {
	return s.catalog
}

// Item looks up a catalog entry by ID.
func (s *Service) Item(id string) (domain.RewardItem, error) {
	it, ok := s.byID[id]
	if !ok {
		return domain.RewardItem{}, domain.ErrRewardNotFound
	}
	return it, nil
}

// Purchase buys a catalog item, debiting its cost from the XP balance.
// The debit and the ownership record commit together or not at all.
func (s *Service) Purchase(id string) (domain.RewardItem, error) {
	it, err := s.Item(id)
	if err != nil {
		return domain.RewardItem{}, err
	}
	if err := s.db.PurchaseReward(it.ID, it.CostXP, time.Now()); err != nil {
		return domain.RewardItem{}, err
	}
	metrics.RewardsPurchased.WithLabelValues(string(it.Category)).Inc()
	if bal, err := s.balance(); err == nil {
		metrics.XPBalance.Set(float64(bal))
	}
	return it, nil
}

// Equip makes a purchased item the active one in its category,
// replacing whatever was equipped there. The replaced item stays
// owned. A non-empty category asserts the slot the caller expects;
// it must match the item's catalog category.
func (s *Service) Equip(id string, category domain.RewardCategory) (domain.RewardItem, error) {
	it, err := s.Item(id)
	if err != nil {
		return domain.RewardItem{}, err
	}
	if category != "" && category != it.Category {
		return domain.RewardItem{}, domain.ErrCategoryMismatch
	}
	owned, err := s.db.IsRewardPurchased(it.ID)
	if err != nil {
		return domain.RewardItem{}, err
	}
	if !owned {
		return domain.RewardItem{}, domain.ErrNotPurchased
	}
	if err := s.db.SetEquipped(it.Category, it.ID); err != nil {
		return domain.RewardItem{}, err
	}
	return it, nil
}

// Unequip clears a category. A no-op when nothing is equipped there.
func (s *Service) Unequip(category domain.RewardCategory) error {
	return s.db.ClearEquipped(category)
}

// Equipped returns the category → item mapping.
func (s *Service) Equipped() (domain.EquippedRewards, error) {
	return s.db.EquippedRewards()
}

// Purchased returns all owned items in purchase order.
func (s *Service) Purchased() ([]domain.PurchasedReward, error) {
	return s.db.ListPurchasedRewards()
}

func (s *Service) balance() (int64, error) {
	p, err := s.db.Profile()
	if err != nil {
		return 0, err
	}
	return p.XP, nil
}
